package posterwall

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default zoom clamp range. The wall is a finite canvas; zooming past these
// limits produces nothing useful.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 8.0
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the wall: position, zoom, and viewport.
// The wall is axis-aligned, so there is no rotation.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// MinZoom and MaxZoom clamp Zoom in SetZoom and ZoomAt.
	MinZoom, MaxZoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
}

// NewCamera creates a Camera with default zoom limits and the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
		Viewport: viewport,
		dirty:    true,
	}
}

// CenterOn points the camera at the given world position, cancelling any
// active scroll animation.
func (c *Camera) CenterOn(x, y float64) {
	c.X = x
	c.Y = y
	c.scrollTween = nil
	c.dirty = true
}

// Pan moves the camera by a screen-space delta, so dragging the wall by
// (dx, dy) pixels feels 1:1 at any zoom level.
func (c *Camera) Pan(dx, dy float64) {
	c.X -= dx / c.Zoom
	c.Y -= dy / c.Zoom
	c.scrollTween = nil
	c.dirty = true
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom]. The viewport
// center stays fixed.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(zoom, c.MaxZoom))
	c.dirty = true
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the given screen position fixed. This is the wheel-zoom primitive: the
// content under the cursor does not slide.
func (c *Camera) ZoomAt(factor, screenX, screenY float64) {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom * factor)
	// Re-center so (wx, wy) maps back to (screenX, screenY) at the new zoom.
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	c.X = wx - (screenX-cx)/c.Zoom
	c.Y = wy - (screenY-cy)/c.Zoom
	c.scrollTween = nil
	c.dirty = true
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Update advances scroll animation and bounds clamping. Called once per frame
// by the editor loop.
func (c *Camera) Update(dt float32) {
	prevX, prevY := c.X, c.Y

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.X != prevX || c.Y != prevY {
		c.dirty = true
	}
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. Call after modifying X/Y directly (e.g. in a pan drag)
// to avoid a single frame outside the bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom

	c.viewMatrix = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	sx, sy = transformPoint(c.viewMatrix, wx, wy)
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	wx, wy = transformPoint(c.invViewMatrix, sx, sy)
	return
}

// VisibleBounds returns the world-space rectangle visible through the viewport.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	x0, y0 := transformPoint(c.invViewMatrix, c.Viewport.X, c.Viewport.Y)
	x1, y1 := transformPoint(c.invViewMatrix, c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// --- Affine helpers ---

// transformPoint applies an affine matrix stored as [a c b d tx ty] to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// invertAffine returns the inverse of an affine matrix. Degenerate matrices
// (zero determinant) return the identity.
func invertAffine(m [6]float64) [6]float64 {
	a, b, cc, d, tx, ty := m[0], m[2], m[1], m[3], m[4], m[5]
	det := a*d - b*cc
	if det == 0 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	inv := 1 / det
	ia := d * inv
	ib := -b * inv
	ic := -cc * inv
	id := a * inv
	itx := -(ia*tx + ib*ty)
	ity := -(ic*tx + id*ty)
	return [6]float64{ia, ic, ib, id, itx, ity}
}
