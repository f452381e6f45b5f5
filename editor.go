package posterwall

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// dragMode tracks what the current pointer gesture is doing.
type dragMode uint8

const (
	dragNone    dragMode = iota
	dragPending          // pressed on a poster, dead zone not yet exceeded
	dragPoster           // moving a poster
	dragPan              // panning the camera
)

// dragDeadZone is how far (in screen pixels) the pointer must move before a
// press on a poster turns into a move gesture rather than a click.
const dragDeadZone = 4.0

// wheelZoomStep is the zoom factor applied per wheel notch.
const wheelZoomStep = 1.1

// colorWorkspace is the editor chrome behind the wall.
var colorWorkspace = color.RGBA{R: 0x2a, G: 0x2a, B: 0x2e, A: 0xff}

// Editor is the interactive wall editor. It implements ebiten.Game.
//
// Controls: left-drag moves posters, click selects the topmost poster under
// the cursor, wheel zooms at the cursor, right- or middle-drag pans. N adds
// a poster, Delete removes the selection, F brings it to front, G toggles
// the grid, 0 resets the view. S exports JSON, P exports a PNG, T exports a
// transparent PNG; all exports land in OutDir with timestamped names.
type Editor struct {
	// OutDir receives exported JSON and PNG files. Defaults to ".".
	OutDir string

	wall   *Wall
	cam    *Camera
	sizes  *SizeStore
	loader *ImageLoader

	width, height int

	mode         dragMode
	dragID       string
	pressX       float64 // screen position of the press
	pressY       float64
	posterStartX float64 // poster position when the gesture began
	posterStartY float64
	lastX, lastY int // previous cursor position for pan deltas

	snapshotQueue []snapshotRequest
}

// NewEditor creates an editor over an existing wall with the given window
// size. Size templates load from the default per-user store.
func NewEditor(wall *Wall, width, height int) *Editor {
	cam := NewCamera(Rect{Width: float64(width), Height: float64(height)})
	s := wall.Settings()
	cam.CenterOn(s.WallWidth/2, s.WallHeight/2)
	return &Editor{
		OutDir: ".",
		wall:   wall,
		cam:    cam,
		sizes:  OpenSizeStore(DefaultSizeStorePath()),
		loader: NewImageLoader(),
		width:  width,
		height: height,
	}
}

// Wall returns the editor's wall state.
func (e *Editor) Wall() *Wall { return e.wall }

// Camera returns the editor's camera.
func (e *Editor) Camera() *Camera { return e.cam }

// Sizes returns the editor's size template store.
func (e *Editor) Sizes() *SizeStore { return e.sizes }

// LoadWallFile imports a wall file: read, validate, replace the live state,
// recenter the view, and start asynchronous image loads for every poster
// payload. On any failure the current state is left untouched.
func (e *Editor) LoadWallFile(path string) error {
	doc, err := LoadDocument(path)
	if err != nil {
		return err
	}
	e.wall.ReplaceDocument(doc)
	e.cam.SetZoom(1)
	e.cam.CenterOn(doc.Settings.WallWidth/2, doc.Settings.WallHeight/2)
	e.loader.Start(doc.Posters)
	return nil
}

// SaveWallFile exports the live state as a timestamped JSON file in OutDir
// and returns the written path.
func (e *Editor) SaveWallFile() (string, error) {
	path := filepath.Join(e.OutDir, ExportName("wall", "json", time.Now()))
	if err := SaveDocument(path, e.wall.Snapshot()); err != nil {
		return "", err
	}
	return path, nil
}

// AddPosterAtCenter places a new poster from the given template at the
// center of the current view and returns it.
func (e *Editor) AddPosterAtCenter(size SizeTemplate) Poster {
	return e.wall.AddPoster(size, e.cam.X-size.Width/2, e.cam.Y-size.Height/2)
}

// Update advances one frame: apply finished image loads, then pointer and
// keyboard input. Part of ebiten.Game.
func (e *Editor) Update() error {
	e.loader.Drain(e.wall.SetImage)
	e.cam.Update(1.0 / float32(ebiten.TPS()))

	mx, my := ebiten.CursorPosition()

	if _, wy := ebiten.Wheel(); wy != 0 {
		e.cam.ZoomAt(math.Pow(wheelZoomStep, wy), float64(mx), float64(my))
	}

	e.updatePointer(mx, my)
	e.updateKeys()

	e.lastX, e.lastY = mx, my
	return nil
}

// updatePointer runs the drag state machine for the current frame.
func (e *Editor) updatePointer(mx, my int) {
	fx, fy := float64(mx), float64(my)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		wx, wy := e.cam.ScreenToWorld(fx, fy)
		if p, ok := e.wall.PosterAt(wx, wy); ok {
			e.wall.Select(p.ID)
			e.mode = dragPending
			e.dragID = p.ID
			e.pressX, e.pressY = fx, fy
			e.posterStartX, e.posterStartY = p.X, p.Y
		} else {
			e.wall.Select("")
			e.mode = dragPan
		}

	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		e.mode = dragPan

	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		switch e.mode {
		case dragPending:
			dx := fx - e.pressX
			dy := fy - e.pressY
			if math.Hypot(dx, dy) > dragDeadZone {
				e.mode = dragPoster
			}
		case dragPoster:
			// Move by the world-space equivalent of the screen delta since
			// the press, so the grab point stays under the cursor.
			e.wall.MovePoster(e.dragID,
				e.posterStartX+(fx-e.pressX)/e.cam.Zoom,
				e.posterStartY+(fy-e.pressY)/e.cam.Zoom)
		case dragPan:
			e.cam.Pan(float64(mx-e.lastX), float64(my-e.lastY))
		}

	default:
		e.mode = dragNone
		e.dragID = ""
	}
}

// updateKeys handles the keyboard shortcuts.
func (e *Editor) updateKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if sizes := e.sizes.Sizes(); len(sizes) > 0 {
			e.AddPosterAtCenter(sizes[0])
		}

	case inpututil.IsKeyJustPressed(ebiten.KeyDelete),
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if id := e.wall.Selected(); id != "" {
			e.wall.RemovePoster(id)
		}

	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if id := e.wall.Selected(); id != "" {
			e.wall.BringToFront(id)
		}

	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		s := e.wall.Settings()
		s.ShowGrid = !s.ShowGrid
		e.wall.SetSettings(s)

	case inpututil.IsKeyJustPressed(ebiten.Key0):
		s := e.wall.Settings()
		e.cam.SetZoom(1)
		e.cam.CenterOn(s.WallWidth/2, s.WallHeight/2)

	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if path, err := e.SaveWallFile(); err != nil {
			log.Printf("posterwall: save wall: %v", err)
		} else {
			fmt.Println("saved", path)
		}

	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		e.Snapshot("wall", false)

	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		e.Snapshot("wall-transparent", true)
	}
}

// Draw renders the frame and flushes any queued PNG exports.
// Part of ebiten.Game.
func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(colorWorkspace)
	DrawWall(screen, e.wall, e.cam, DrawOptions{ShowSelection: true})
	e.flushSnapshots()
}

// Layout reports the logical screen size and keeps the camera viewport in
// sync with window resizes. Part of ebiten.Game.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.width || outsideHeight != e.height {
		e.width, e.height = outsideWidth, outsideHeight
		e.cam.Viewport = Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)}
		e.cam.MarkDirty()
	}
	return e.width, e.height
}
