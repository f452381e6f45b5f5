package posterwall

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
)

// MarshalDocument serializes a document as pretty-printed UTF-8 JSON with
// 2-space indentation. This is the on-disk wall file format: two top-level
// fields (settings, posters), no version field, no compression.
func MarshalDocument(doc *Document) ([]byte, error) {
	out := *doc
	if out.Posters == nil {
		out.Posters = []Poster{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal wall document: %w", err)
	}
	return data, nil
}

// SaveDocument writes a document to path as a wall JSON file.
// Single attempt, no retry; the caller decides what a write failure means.
func SaveDocument(path string, doc *Document) error {
	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadDocument reads and validates a wall JSON file. A read failure and a
// validation failure are distinct: the former wraps the OS error, the latter
// returns the ParseError so callers can show its fixed message.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, perr := ParseDocument(string(data))
	if perr != nil {
		return nil, perr
	}
	return doc, nil
}

// ExportName builds a timestamped export filename such as
// "wall_20240131_154502.json". Kind becomes part of the name after
// sanitizing; ext is given without the dot.
func ExportName(kind, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", sanitizeName(kind), t.Format("20060102_150405"), ext)
}

// sanitizeName replaces characters that are unsafe in file names with
// underscores and falls back to "wall" for empty strings.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "wall"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// EncodeDataURL encodes an image as an inline PNG data URL, the payload
// format embedded in a poster's image field.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("data:image/png;base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if err := png.Encode(enc, img); err != nil {
		return "", fmt.Errorf("encode data URL: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode data URL: %w", err)
	}
	return buf.String(), nil
}

// DecodeDataURL decodes a base64 data URL into an image. Any media type the
// registered stdlib decoders understand is accepted; the declared mime type
// is not cross-checked against the payload.
func DecodeDataURL(s string) (image.Image, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, fmt.Errorf("decode data URL: missing data: scheme")
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return nil, fmt.Errorf("decode data URL: missing payload separator")
	}
	meta := s[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("decode data URL: only base64 payloads are supported")
	}
	payload, err := base64.StdEncoding.DecodeString(s[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	return img, nil
}
