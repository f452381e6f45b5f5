package posterwall

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SizeTemplate is a named poster size, in world units. Templates are
// cosmetic starting points: posters remember the template ID they came from
// (Poster.SizeID), but a deleted template leaves a harmless dangling
// reference.
type SizeTemplate struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultSizes returns the built-in template set used when no stored
// templates exist.
func DefaultSizes() []SizeTemplate {
	return []SizeTemplate{
		{ID: "size-small", Name: "Small", Width: 100, Height: 150},
		{ID: "size-medium", Name: "Medium", Width: 200, Height: 300},
		{ID: "size-large", Name: "Large", Width: 300, Height: 450},
		{ID: "size-square", Name: "Square", Width: 200, Height: 200},
		{ID: "size-wide", Name: "Landscape", Width: 300, Height: 200},
	}
}

// SizeStore persists the user's size templates as a JSON array in a single
// file: read once at open, rewritten on every change. Corrupt or absent
// storage silently falls back to the built-in defaults, and write failures
// are ignored: template storage is never fatal.
type SizeStore struct {
	path  string
	sizes []SizeTemplate
}

// DefaultSizeStorePath returns the per-user template file location. Falls
// back to the current directory when the user config dir is unavailable.
func DefaultSizeStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "posterwall_sizes.json"
	}
	return filepath.Join(dir, "posterwall", "sizes.json")
}

// OpenSizeStore loads the template set stored at path. Anything that
// prevents reading a valid array (missing file, bad JSON, wrong shape)
// yields the default set.
func OpenSizeStore(path string) *SizeStore {
	s := &SizeStore{path: path, sizes: DefaultSizes()}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var stored []SizeTemplate
	if err := json.Unmarshal(data, &stored); err != nil || len(stored) == 0 {
		return s
	}
	s.sizes = stored
	return s
}

// Sizes returns the current template set in stored order.
// Callers must treat it as read-only.
func (s *SizeStore) Sizes() []SizeTemplate {
	return s.sizes
}

// Find returns the template with the given ID.
func (s *SizeStore) Find(id string) (SizeTemplate, bool) {
	for _, t := range s.sizes {
		if t.ID == id {
			return t, true
		}
	}
	return SizeTemplate{}, false
}

// Add appends a new custom template and rewrites the store.
func (s *SizeStore) Add(name string, width, height float64) SizeTemplate {
	t := SizeTemplate{
		ID:     uuid.NewString(),
		Name:   name,
		Width:  width,
		Height: height,
	}
	s.sizes = append(s.sizes, t)
	s.save()
	return t
}

// Remove deletes a template by ID and rewrites the store. Posters created
// from the removed template keep their dangling SizeID.
func (s *SizeStore) Remove(id string) bool {
	for i, t := range s.sizes {
		if t.ID == id {
			s.sizes = append(s.sizes[:i], s.sizes[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

// save rewrites the backing file. Failures are dropped: losing a custom
// template on a full disk degrades to the defaults on next open.
func (s *SizeStore) save() {
	data, err := json.MarshalIndent(s.sizes, "", "  ")
	if err != nil {
		return
	}
	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	_ = os.WriteFile(s.path, data, 0o644)
}
