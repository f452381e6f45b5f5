package posterwall

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Wall is the single owner of live editor state: settings, the ordered poster
// list, the decoded image cache, and the current selection. All mutation goes
// through the command methods below; nothing else touches the poster slice.
// Wall is not safe for concurrent use; the editor loop is single-threaded
// and asynchronous image loads are funneled back through ImageLoader.Drain.
type Wall struct {
	settings Settings
	posters  []Poster
	images   map[string]*ebiten.Image
	selected string // poster ID, "" = no selection
}

// NewWall creates an empty wall with default settings.
func NewWall() *Wall {
	return &Wall{
		settings: DefaultSettings(),
		images:   make(map[string]*ebiten.Image),
	}
}

// Settings returns the current wall settings.
func (w *Wall) Settings() Settings {
	return w.settings
}

// SetSettings replaces the wall settings.
func (w *Wall) SetSettings(s Settings) {
	w.settings = s
}

// Posters returns the live poster slice in paint order (later entries draw
// on top). Callers must treat it as read-only.
func (w *Wall) Posters() []Poster {
	return w.posters
}

// Poster returns the poster with the given ID.
func (w *Wall) Poster(id string) (Poster, bool) {
	for _, p := range w.posters {
		if p.ID == id {
			return p, true
		}
	}
	return Poster{}, false
}

// AddPoster appends a new poster created from a size template, positioned
// with its top-left corner at (x, y), and returns it. The new poster is
// selected and paints on top of everything else.
func (w *Wall) AddPoster(size SizeTemplate, x, y float64) Poster {
	p := Poster{
		ID:     uuid.NewString(),
		SizeID: size.ID,
		X:      x,
		Y:      y,
		Width:  size.Width,
		Height: size.Height,
		Label:  size.Name,
	}
	w.posters = append(w.posters, p)
	w.selected = p.ID
	return p
}

// MovePoster sets a poster's top-left position. Any finite position is
// accepted, including off-wall. Reports whether the poster exists.
func (w *Wall) MovePoster(id string, x, y float64) bool {
	for i := range w.posters {
		if w.posters[i].ID == id {
			w.posters[i].X = x
			w.posters[i].Y = y
			return true
		}
	}
	return false
}

// ResizePoster sets a poster's dimensions. Non-positive dimensions are
// rejected. Reports whether the poster exists and the resize applied.
func (w *Wall) ResizePoster(id string, width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	for i := range w.posters {
		if w.posters[i].ID == id {
			w.posters[i].Width = width
			w.posters[i].Height = height
			return true
		}
	}
	return false
}

// SetLabel sets a poster's display label.
func (w *Wall) SetLabel(id, label string) bool {
	for i := range w.posters {
		if w.posters[i].ID == id {
			w.posters[i].Label = label
			return true
		}
	}
	return false
}

// RemovePoster deletes a poster and its cached image. The selection is
// cleared if it pointed at the removed poster.
func (w *Wall) RemovePoster(id string) bool {
	for i := range w.posters {
		if w.posters[i].ID == id {
			w.posters = append(w.posters[:i], w.posters[i+1:]...)
			delete(w.images, id)
			if w.selected == id {
				w.selected = ""
			}
			return true
		}
	}
	return false
}

// BringToFront moves a poster to the end of the paint order so it draws on
// top. Relative order of the other posters is preserved.
func (w *Wall) BringToFront(id string) bool {
	for i := range w.posters {
		if w.posters[i].ID == id {
			p := w.posters[i]
			w.posters = append(w.posters[:i], w.posters[i+1:]...)
			w.posters = append(w.posters, p)
			return true
		}
	}
	return false
}

// AttachImage stores a data-URL payload on a poster and caches its decoded
// image. The decoded image may be nil when the caller defers decoding to an
// ImageLoader.
func (w *Wall) AttachImage(id, dataURL string, img *ebiten.Image) bool {
	for i := range w.posters {
		if w.posters[i].ID == id {
			w.posters[i].Image = dataURL
			if img != nil {
				w.images[id] = img
			} else {
				delete(w.images, id)
			}
			return true
		}
	}
	return false
}

// SetImage upserts a decoded image into the cache. This is the merge target
// for asynchronous loads: completions arrive in any order and the last
// writer for a given ID wins. Images for unknown IDs are dropped (the poster
// was removed while its decode was in flight).
func (w *Wall) SetImage(id string, img *ebiten.Image) {
	if _, ok := w.Poster(id); !ok {
		return
	}
	w.images[id] = img
}

// Image returns the cached decoded image for a poster, or nil.
func (w *Wall) Image(id string) *ebiten.Image {
	return w.images[id]
}

// Select sets the current selection. An empty ID or an unknown ID clears it.
func (w *Wall) Select(id string) {
	if _, ok := w.Poster(id); !ok {
		w.selected = ""
		return
	}
	w.selected = id
}

// Selected returns the selected poster's ID, or "" when nothing is selected.
func (w *Wall) Selected() string {
	return w.selected
}

// PosterAt returns the topmost poster containing the world point (x, y).
// Iterates back-to-front so hit testing matches paint order.
func (w *Wall) PosterAt(x, y float64) (Poster, bool) {
	for i := len(w.posters) - 1; i >= 0; i-- {
		if w.posters[i].Bounds().Contains(x, y) {
			return w.posters[i], true
		}
	}
	return Poster{}, false
}

// Snapshot builds the transient export document from live state: current
// settings plus a copy of the poster slice in paint order.
func (w *Wall) Snapshot() *Document {
	posters := make([]Poster, len(w.posters))
	copy(posters, w.posters)
	return &Document{Settings: w.settings, Posters: posters}
}

// ReplaceDocument installs a validated document as the new live state.
// The selection and the decoded image cache reset; callers typically start
// an ImageLoader over the new posters right after.
func (w *Wall) ReplaceDocument(doc *Document) {
	w.settings = doc.Settings
	w.posters = make([]Poster, len(doc.Posters))
	copy(w.posters, doc.Posters)
	w.images = make(map[string]*ebiten.Image)
	w.selected = ""
}
