package posterwall

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Fixed editor palette. Wall background and grid colors come from Settings;
// everything else is chrome and stays constant.
var (
	colorWallEdge    = color.RGBA{R: 0x6b, G: 0x66, B: 0x5c, A: 0xff}
	colorPlaceholder = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorPosterEdge  = color.RGBA{R: 0xb8, G: 0xb2, B: 0xa6, A: 0xff}
	colorLabel       = color.RGBA{R: 0x55, G: 0x51, B: 0x4a, A: 0xff}
	colorSelection   = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
)

const labelFontSize = 13

// labelSource is the shared font source for poster labels. Loading gofont
// bytes cannot realistically fail, but a nil source just skips labels.
var labelSource *text.GoTextFaceSource

func init() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("posterwall: load label font: %v", err)
		return
	}
	labelSource = src
}

// DrawOptions controls which layers DrawWall renders.
type DrawOptions struct {
	// Transparent hides the backdrop and grid layers, leaving posters on a
	// fully transparent surface. Used for the transparent PNG export.
	Transparent bool
	// ShowSelection draws the selection outline. Off for exports.
	ShowSelection bool
}

// DrawWall renders the wall into dst through the camera: backdrop, grid,
// posters in paint order, then the selection outline. The destination is not
// cleared first; the editor clears the screen, exports start from a
// transparent image.
func DrawWall(dst *ebiten.Image, w *Wall, cam *Camera, opts DrawOptions) {
	s := w.Settings()
	zoom := cam.Zoom
	ox, oy := cam.WorldToScreen(0, 0)
	wallW := s.WallWidth * zoom
	wallH := s.WallHeight * zoom

	if !opts.Transparent {
		bg, _ := ParseHexColor(s.Background)
		vector.DrawFilledRect(dst, float32(ox), float32(oy), float32(wallW), float32(wallH), bg, false)

		if s.ShowGrid && s.GridStep > 0 {
			gc, _ := ParseHexColor(s.GridColor)
			for x := s.GridStep; x < s.WallWidth; x += s.GridStep {
				sx, _ := cam.WorldToScreen(x, 0)
				vector.StrokeLine(dst, float32(sx), float32(oy), float32(sx), float32(oy+wallH), 1, gc, false)
			}
			for y := s.GridStep; y < s.WallHeight; y += s.GridStep {
				_, sy := cam.WorldToScreen(0, y)
				vector.StrokeLine(dst, float32(ox), float32(sy), float32(ox+wallW), float32(sy), 1, gc, false)
			}
		}

		vector.StrokeRect(dst, float32(ox), float32(oy), float32(wallW), float32(wallH), 1, colorWallEdge, false)
	}

	for _, p := range w.Posters() {
		drawPoster(dst, w, cam, p)
	}

	if opts.ShowSelection {
		if p, ok := w.Poster(w.Selected()); ok {
			sx, sy := cam.WorldToScreen(p.X, p.Y)
			vector.StrokeRect(dst, float32(sx), float32(sy),
				float32(p.Width*zoom), float32(p.Height*zoom), 2, colorSelection, false)
		}
	}
}

// drawPoster renders one poster: its decoded image stretched to the poster
// rect when cached, otherwise a flat placeholder with a centered label.
// A poster whose image payload is still decoding renders as a placeholder
// until the loader delivers it.
func drawPoster(dst *ebiten.Image, w *Wall, cam *Camera, p Poster) {
	zoom := cam.Zoom
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	sw := p.Width * zoom
	sh := p.Height * zoom

	if img := w.Image(p.ID); img != nil {
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sw/float64(b.Dx()), sh/float64(b.Dy()))
		op.GeoM.Translate(sx, sy)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
		return
	}

	vector.DrawFilledRect(dst, float32(sx), float32(sy), float32(sw), float32(sh), colorPlaceholder, false)
	vector.StrokeRect(dst, float32(sx), float32(sy), float32(sw), float32(sh), 1, colorPosterEdge, false)

	if p.Label != "" && labelSource != nil {
		face := &text.GoTextFace{Source: labelSource, Size: labelFontSize}
		op := &text.DrawOptions{}
		op.GeoM.Translate(sx+sw/2, sy+sh/2)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(colorLabel)
		text.Draw(dst, p.Label, face, op)
	}
}
