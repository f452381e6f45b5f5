package posterwall

import "image/color"

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Settings holds the wall canvas configuration. Width, height, and grid step
// are in world units; colors are CSS-style hex strings. The format is not
// validated: unparseable colors fall back at render time, see ParseHexColor.
type Settings struct {
	WallWidth  float64 `json:"wallWidth"`
	WallHeight float64 `json:"wallHeight"`
	Background string  `json:"background"`
	ShowGrid   bool    `json:"showGrid"`
	GridStep   float64 `json:"gridStep"`
	GridColor  string  `json:"gridColor"`
}

// DefaultSettings returns the settings used for a fresh wall.
func DefaultSettings() Settings {
	return Settings{
		WallWidth:  1400,
		WallHeight: 800,
		Background: "#f4f1ea",
		ShowGrid:   true,
		GridStep:   20,
		GridColor:  "#e0dcd2",
	}
}

// Poster is one rectangular placeholder on the wall. X and Y are the top-left
// corner in world units and may be negative or outside the wall bounds.
// SizeID names the size template the poster was created from; it is cosmetic
// and may dangle (refer to no known template).
//
// Image, when non-empty, is an inline base64 data URL holding the attached
// image payload. Posters without an image render as a flat placeholder with
// a centered label.
type Poster struct {
	ID     string  `json:"id"`
	SizeID string  `json:"sizeId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label"`
	Image  string  `json:"image,omitempty"`
}

// Bounds returns the poster's rectangle in world units.
func (p Poster) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Document is a complete wall layout: settings plus an ordered poster
// sequence. It is the unit of serialization exchanged with the file system;
// poster order is paint order (later entries draw on top).
type Document struct {
	Settings Settings `json:"settings"`
	Posters  []Poster `json:"posters"`
}

// ParseHexColor parses a CSS-style hex color string (#rgb, #rgba, #rrggbb,
// or #rrggbbaa). The second return value reports whether the string parsed;
// on failure the returned color is opaque mid-gray so callers can render a
// visible fallback without branching.
func ParseHexColor(s string) (color.RGBA, bool) {
	fallback := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	if len(s) < 4 || s[0] != '#' {
		return fallback, false
	}
	hex := s[1:]

	nib := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}

	var v [8]uint8
	for i := 0; i < len(hex) && i < 8; i++ {
		n, ok := nib(hex[i])
		if !ok {
			return fallback, false
		}
		v[i] = n
	}

	switch len(hex) {
	case 3: // #rgb
		return color.RGBA{R: v[0] * 17, G: v[1] * 17, B: v[2] * 17, A: 0xff}, true
	case 4: // #rgba
		return color.RGBA{R: v[0] * 17, G: v[1] * 17, B: v[2] * 17, A: v[3] * 17}, true
	case 6: // #rrggbb
		return color.RGBA{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: 0xff}, true
	case 8: // #rrggbbaa
		return color.RGBA{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: v[6]<<4 | v[7]}, true
	}
	return fallback, false
}
