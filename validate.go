package posterwall

import (
	"encoding/json"
	"math"
	"strings"
)

// FailReason classifies why a wall document failed validation. The set is
// closed: every ParseError carries exactly one of the five values below.
type FailReason string

const (
	FailEmpty           FailReason = "empty"            // input is empty or whitespace-only
	FailInvalidJSON     FailReason = "invalid-json"     // input is not syntactically valid JSON
	FailInvalidRoot     FailReason = "invalid-root"     // parsed value is not a non-null object
	FailInvalidSettings FailReason = "invalid-settings" // settings field fails structural checks
	FailInvalidPosters  FailReason = "invalid-posters"  // posters field fails structural checks
)

// failMessages maps each reason to its single user-facing message.
var failMessages = map[FailReason]string{
	FailEmpty:           "the file is empty",
	FailInvalidJSON:     "the file is not valid JSON",
	FailInvalidRoot:     "the file does not contain a wall layout object",
	FailInvalidSettings: "the wall settings are missing or malformed",
	FailInvalidPosters:  "the poster list is missing or malformed",
}

// ParseError reports a document validation failure.
type ParseError struct {
	Reason FailReason
}

// Error returns the fixed human-readable message for the failure reason.
func (e *ParseError) Error() string {
	if msg, ok := failMessages[e.Reason]; ok {
		return msg
	}
	return string(e.Reason)
}

// ParseDocument validates raw text as a wall document. It is a pure function:
// no I/O, no shared state. Exactly one of the two returns is non-nil.
//
// Validation runs in fixed priority order and stops at the first failure:
// empty, invalid-json, invalid-root, invalid-settings, invalid-posters.
// Only the first applicable reason is reported even when several problems
// exist at once. Malformed input is never coerced: there are no partial
// defaults and no field-level recovery.
//
// On success the returned document's posters preserve input order exactly.
// Paint order is meaningful to callers (later posters draw on top).
func ParseDocument(text string) (*Document, *ParseError) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ParseError{Reason: FailEmpty}
	}

	var raw any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, &ParseError{Reason: FailInvalidJSON}
	}

	root, ok := raw.(map[string]any)
	if !ok {
		// Arrays, strings, numbers, booleans, and null all land here.
		return nil, &ParseError{Reason: FailInvalidRoot}
	}

	settings, ok := parseSettings(root["settings"])
	if !ok {
		return nil, &ParseError{Reason: FailInvalidSettings}
	}

	posters, ok := parsePosters(root["posters"])
	if !ok {
		return nil, &ParseError{Reason: FailInvalidPosters}
	}

	return &Document{Settings: settings, Posters: posters}, nil
}

// parseSettings checks the settings value structurally and returns the typed
// record. Any missing or mistyped field fails the whole check.
func parseSettings(v any) (Settings, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Settings{}, false
	}

	wallWidth, ok := positiveNumber(obj["wallWidth"])
	if !ok {
		return Settings{}, false
	}
	wallHeight, ok := positiveNumber(obj["wallHeight"])
	if !ok {
		return Settings{}, false
	}
	background, ok := obj["background"].(string)
	if !ok {
		return Settings{}, false
	}
	showGrid, ok := obj["showGrid"].(bool)
	if !ok {
		return Settings{}, false
	}
	gridStep, ok := positiveNumber(obj["gridStep"])
	if !ok {
		return Settings{}, false
	}
	gridColor, ok := obj["gridColor"].(string)
	if !ok {
		return Settings{}, false
	}

	return Settings{
		WallWidth:  wallWidth,
		WallHeight: wallHeight,
		Background: background,
		ShowGrid:   showGrid,
		GridStep:   gridStep,
		GridColor:  gridColor,
	}, true
}

// parsePosters checks the posters value: it must be an array whose every
// element passes parsePoster. Order is preserved. An empty array is valid.
func parsePosters(v any) ([]Poster, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	posters := make([]Poster, 0, len(arr))
	for _, el := range arr {
		p, ok := parsePoster(el)
		if !ok {
			return nil, false
		}
		posters = append(posters, p)
	}
	return posters, true
}

// parsePoster checks one poster element. Position may be zero, negative, or
// beyond the wall bounds (no range check); dimensions must be positive.
// SizeID is not checked against any template set; dangling references are
// tolerated. The image key is optional, but when present it must hold a
// string: an explicit JSON null fails.
func parsePoster(v any) (Poster, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Poster{}, false
	}

	id, ok := obj["id"].(string)
	if !ok {
		return Poster{}, false
	}
	sizeID, ok := obj["sizeId"].(string)
	if !ok {
		return Poster{}, false
	}
	x, ok := finiteNumber(obj["x"])
	if !ok {
		return Poster{}, false
	}
	y, ok := finiteNumber(obj["y"])
	if !ok {
		return Poster{}, false
	}
	width, ok := positiveNumber(obj["width"])
	if !ok {
		return Poster{}, false
	}
	height, ok := positiveNumber(obj["height"])
	if !ok {
		return Poster{}, false
	}
	label, ok := obj["label"].(string)
	if !ok {
		return Poster{}, false
	}

	var image string
	if raw, present := obj["image"]; present {
		image, ok = raw.(string)
		if !ok {
			return Poster{}, false
		}
	}

	return Poster{
		ID:     id,
		SizeID: sizeID,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Label:  label,
		Image:  image,
	}, true
}

// finiteNumber reports whether v is a finite JSON number.
func finiteNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// positiveNumber reports whether v is a finite JSON number strictly greater
// than zero.
func positiveNumber(v any) (float64, bool) {
	n, ok := finiteNumber(v)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}
