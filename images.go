package posterwall

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadImageFile reads and decodes one image file into an ebiten image.
// Single attempt: either the decoded image or the underlying read/decode
// error, no retry or timeout.
func LoadImageFile(path string) (*ebiten.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// loadedImage is one completed asynchronous decode.
type loadedImage struct {
	id  string
	img *ebiten.Image
}

// ImageLoader decodes poster image payloads concurrently and delivers the
// results back on the game loop. Start spawns one goroutine per payload;
// completions are unordered and independent. A failed decode is swallowed
// silently: it never signals the caller and never affects other loads.
//
// Drain must be called from the owning loop (typically Editor.Update) so all
// wall mutation stays single-threaded. Delivery is an idempotent upsert per
// poster ID: last writer wins, which is safe because completion order is
// irrelevant.
type ImageLoader struct {
	results chan loadedImage
}

// NewImageLoader creates a loader. The buffer absorbs completions between
// frames; Start falls back to blocking sends if it fills, which only delays
// the loading goroutines, never the game loop.
func NewImageLoader() *ImageLoader {
	return &ImageLoader{results: make(chan loadedImage, 64)}
}

// Start begins an asynchronous decode for every poster that carries an image
// payload. Posters without a payload are skipped. Start returns immediately;
// it does not wait for any decode.
func (l *ImageLoader) Start(posters []Poster) {
	for _, p := range posters {
		if p.Image == "" {
			continue
		}
		go func(id, payload string) {
			img, err := DecodeDataURL(payload)
			if err != nil {
				return
			}
			l.results <- loadedImage{id: id, img: ebiten.NewImageFromImage(img)}
		}(p.ID, p.Image)
	}
}

// Drain applies every completed decode that has arrived since the last call,
// then returns. Never blocks.
func (l *ImageLoader) Drain(apply func(id string, img *ebiten.Image)) {
	for {
		select {
		case res := <-l.results:
			apply(res.id, res.img)
		default:
			return
		}
	}
}
