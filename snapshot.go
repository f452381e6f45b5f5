package posterwall

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// snapshotScale is the fixed export pixel density: one wall unit becomes
// snapshotScale pixels in the PNG.
const snapshotScale = 2

// snapshotRequest is one queued PNG export.
type snapshotRequest struct {
	label       string
	transparent bool
}

// Snapshot queues a PNG export of the wall, captured at the end of the
// current frame's Draw call. The file is written to the editor's OutDir with
// a timestamped filename. Transparent exports hide the backdrop and grid
// layers. Safe to call from Update or Draw.
func (e *Editor) Snapshot(label string, transparent bool) {
	e.snapshotQueue = append(e.snapshotQueue, snapshotRequest{label: label, transparent: transparent})
}

// RenderPNG rasterizes the whole wall offscreen at the fixed snapshotScale
// pixel density and returns it as a straight-alpha image ready for PNG
// encoding. Must be called on the game loop (it reads GPU pixels back).
func RenderPNG(w *Wall, transparent bool) *image.NRGBA {
	s := w.Settings()
	pw := int(s.WallWidth * snapshotScale)
	ph := int(s.WallHeight * snapshotScale)

	off := ebiten.NewImage(pw, ph)
	cam := NewCamera(Rect{Width: float64(pw), Height: float64(ph)})
	cam.SetZoom(snapshotScale)
	cam.CenterOn(s.WallWidth/2, s.WallHeight/2)
	DrawWall(off, w, cam, DrawOptions{Transparent: transparent})

	pixels := make([]byte, 4*pw*ph)
	off.ReadPixels(pixels)
	off.Deallocate()

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// flushSnapshots renders and writes every queued export. Called at the end
// of Editor.Draw. Failures are reported on stderr and dropped; the queue is
// always cleared.
func (e *Editor) flushSnapshots() {
	if len(e.snapshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[posterwall] snapshot: mkdir %s: %v\n", e.OutDir, err)
		e.snapshotQueue = e.snapshotQueue[:0]
		return
	}

	now := time.Now()
	for _, req := range e.snapshotQueue {
		img := RenderPNG(e.wall, req.transparent)
		path := filepath.Join(e.OutDir, ExportName(req.label, "png", now))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[posterwall] snapshot: %v\n", err)
		}
	}

	e.snapshotQueue = e.snapshotQueue[:0]
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
