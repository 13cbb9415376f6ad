package s2

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cameraAnim holds active scroll/zoom tweens.
type cameraAnim struct {
	tweenX, tweenY, tweenZoom *gween.Tween
	doneX, doneY, doneZoom    bool
}

// Camera maps between world space and view space.
//
// The camera centers Position in the viewport. HalfExtents is the world
// distance from the center to the viewport edges at zoom 1, and the visible
// range grows linearly with zoom, so the per-axis scale is
//
//	viewport.X / (2·halfExtents.X·zoom)
//	viewport.Y / (2·halfExtents.Y·zoom)
//
// The two axes scale independently. World Y points up, view Y points down.
//
// The camera caches its view matrix. Every mutator invalidates the cache, but
// view-space values already resolved elsewhere are not touched: run an update
// pass after moving the camera.
type Camera struct {
	position    Vec2
	halfExtents Vec2
	viewport    Vec2
	zoom        float64
	rotation    float64

	boundsEnabled bool
	bounds        Rect

	viewMatrix    Matrix
	invViewMatrix Matrix
	dirty         bool
	version       uint64

	anim *cameraAnim
}

// NewCamera creates a camera at position showing ±halfExtents of the world
// in a viewport of the given pixel size, with zoom 1.
func NewCamera(position, halfExtents, viewport Vec2) *Camera {
	return &Camera{
		position:    position,
		halfExtents: halfExtents,
		viewport:    viewport,
		zoom:        1,
		dirty:       true,
	}
}

// Position returns the world point at the viewport center.
func (c *Camera) Position() Vec2 { return c.position }

// HalfExtents returns the world half-size of the view at zoom 1.
func (c *Camera) HalfExtents() Vec2 { return c.halfExtents }

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() Vec2 { return c.viewport }

// Zoom returns the zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// Rotation returns the camera rotation in radians.
func (c *Camera) Rotation() float64 { return c.rotation }

// SetPosition moves the camera.
func (c *Camera) SetPosition(p Vec2) {
	c.position = p
	c.touch()
}

// SetExtents sets the world half-extents shown at zoom 1.
func (c *Camera) SetExtents(halfExtents Vec2) {
	c.halfExtents = halfExtents
	c.touch()
}

// SetViewport sets the viewport size in pixels.
func (c *Camera) SetViewport(size Vec2) {
	c.viewport = size
	c.touch()
}

// SetZoom sets the zoom factor. Zoom multiplies the visible world range, so
// values above 1 show more of the world.
func (c *Camera) SetZoom(z float64) {
	c.zoom = z
	c.touch()
}

// SetRotation sets the camera rotation around Position in the given unit.
func (c *Camera) SetRotation(angle float64, unit AngleUnit) {
	c.rotation = unit.radians(angle)
	c.touch()
}

// Version increases on every change to the camera. Consumers compare it to
// the version they last resolved against to detect stale view values.
func (c *Camera) Version() uint64 { return c.version }

func (c *Camera) touch() {
	c.dirty = true
	c.version++
}

// Scale returns the per-axis world-to-view scale factors.
func (c *Camera) Scale() Vec2 {
	return Vec2{
		c.viewport.X / (2 * c.halfExtents.X * c.zoom),
		c.viewport.Y / (2 * c.halfExtents.Y * c.zoom),
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// view = Translate(viewport/2) · Scale(sx, -sy) · Rotate(-rotation) · Translate(-position)
func (c *Camera) computeViewMatrix() Matrix {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	s := c.Scale()
	sin, cos := math.Sincos(c.rotation)
	px, py := c.position.X, c.position.Y

	c.viewMatrix = Matrix{
		A: s.X * cos,
		B: s.Y * sin,
		C: s.X * sin,
		D: -s.Y * cos,
		E: c.viewport.X/2 - s.X*(cos*px+sin*py),
		F: c.viewport.Y/2 - s.Y*(sin*px-cos*py),
	}
	c.invViewMatrix = c.viewMatrix.Invert()
	return c.viewMatrix
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() Matrix {
	return c.computeViewMatrix()
}

// InverseViewMatrix returns the view-to-world transform.
func (c *Camera) InverseViewMatrix() Matrix {
	c.computeViewMatrix()
	return c.invViewMatrix
}

// WorldToView converts a world point to view coordinates.
func (c *Camera) WorldToView(p Vec2) Vec2 {
	return c.computeViewMatrix().Apply(p)
}

// ViewToWorld converts a view point to world coordinates.
func (c *Camera) ViewToWorld(p Vec2) Vec2 {
	c.computeViewMatrix()
	return c.invViewMatrix.Apply(p)
}

// WorldToViewVector converts a world direction to view space (Y flipped, no
// translation).
func (c *Camera) WorldToViewVector(v Vec2) Vec2 {
	return c.computeViewMatrix().ApplyVector(v)
}

// ViewToWorldVector converts a view direction to world space.
func (c *Camera) ViewToWorldVector(v Vec2) Vec2 {
	c.computeViewMatrix()
	return c.invViewMatrix.ApplyVector(v)
}

// WorldToViewLength converts a scalar world length using the X scale.
func (c *Camera) WorldToViewLength(l float64) float64 {
	return l * c.Scale().X
}

// ViewToWorldLength converts a scalar view length using the X scale.
func (c *Camera) ViewToWorldLength(l float64) float64 {
	return l / c.Scale().X
}

// WorldToViewExtents converts half-sizes axis by axis. Extents carry no
// position, so neither the translation nor the Y flip applies.
func (c *Camera) WorldToViewExtents(v Vec2) Vec2 {
	return v.Mul(c.Scale())
}

// ViewToWorldExtents converts view half-sizes to world half-sizes.
func (c *Camera) ViewToWorldExtents(v Vec2) Vec2 {
	s := c.Scale()
	return Vec2{v.X / s.X, v.Y / s.Y}
}

// VisibleWorldRect returns the axis-aligned bounding rect of the viewport in
// world space.
func (c *Camera) VisibleWorldRect() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	p0 := inv.Apply(Vec2{0, 0})
	p1 := inv.Apply(Vec2{c.viewport.X, 0})
	p2 := inv.Apply(Vec2{c.viewport.X, c.viewport.Y})
	p3 := inv.Apply(Vec2{0, c.viewport.Y})

	return RectFromPoints(p0, p1).Union(RectFromPoints(p2, p3))
}

// --- Space conversion ---

// ConvertPoint converts p from one space to another. Converting to the same
// space returns p unchanged; otherwise cam must not be nil.
func ConvertPoint(p Vec2, from, to Space, cam *Camera) Vec2 {
	if from == to {
		return p
	}
	mustCamera(cam)
	if to == View {
		return cam.WorldToView(p)
	}
	return cam.ViewToWorld(p)
}

// ConvertVector converts a direction between spaces.
func ConvertVector(v Vec2, from, to Space, cam *Camera) Vec2 {
	if from == to {
		return v
	}
	mustCamera(cam)
	if to == View {
		return cam.WorldToViewVector(v)
	}
	return cam.ViewToWorldVector(v)
}

// ConvertLength converts a scalar length between spaces.
func ConvertLength(l float64, from, to Space, cam *Camera) float64 {
	if from == to {
		return l
	}
	mustCamera(cam)
	if to == View {
		return cam.WorldToViewLength(l)
	}
	return cam.ViewToWorldLength(l)
}

// ConvertExtents converts half-sizes between spaces.
func ConvertExtents(v Vec2, from, to Space, cam *Camera) Vec2 {
	if from == to {
		return v
	}
	mustCamera(cam)
	if to == View {
		return cam.WorldToViewExtents(v)
	}
	return cam.ViewToWorldExtents(v)
}

func mustCamera(cam *Camera) {
	if cam == nil {
		panic("s2: world/view conversion needs a camera")
	}
}

// --- Bounds ---

// SetBounds enables clamping so the visible range stays within bounds.
func (c *Camera) SetBounds(bounds Rect) {
	c.boundsEnabled = true
	c.bounds = bounds
	c.clampToBounds()
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.boundsEnabled = false
}

// ClampToBounds immediately clamps the camera position. Call it after a
// series of SetPosition calls (e.g. in a drag handler). No-op without bounds.
func (c *Camera) ClampToBounds() {
	if c.boundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts the position so the visible range stays within
// bounds. Rotation is ignored.
func (c *Camera) clampToBounds() {
	halfW := c.halfExtents.X * c.zoom
	halfH := c.halfExtents.Y * c.zoom

	minX := c.bounds.X + halfW
	maxX := c.bounds.X + c.bounds.Width - halfW
	minY := c.bounds.Y + halfH
	maxY := c.bounds.Y + c.bounds.Height - halfH

	p := c.position
	// If the bounds are smaller than the visible range, center the camera.
	if minX > maxX {
		p.X = c.bounds.X + c.bounds.Width/2
	} else {
		p.X = clamp(p.X, minX, maxX)
	}
	if minY > maxY {
		p.Y = c.bounds.Y + c.bounds.Height/2
	} else {
		p.Y = clamp(p.Y, minY, maxY)
	}
	if p != c.position {
		c.position = p
		c.touch()
	}
}

// --- Animation ---

// ScrollTo animates the camera position to p over duration seconds.
func (c *Camera) ScrollTo(p Vec2, duration float32, easeFn ease.TweenFunc) {
	a := c.animState()
	a.tweenX = gween.New(float32(c.position.X), float32(p.X), duration, easeFn)
	a.tweenY = gween.New(float32(c.position.Y), float32(p.Y), duration, easeFn)
	a.doneX, a.doneY = false, false
}

// ZoomTo animates the zoom factor to z over duration seconds.
func (c *Camera) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) {
	a := c.animState()
	a.tweenZoom = gween.New(float32(c.zoom), float32(z), duration, easeFn)
	a.doneZoom = false
}

// Animating reports whether a scroll or zoom tween is running.
func (c *Camera) Animating() bool {
	return c.anim != nil
}

func (c *Camera) animState() *cameraAnim {
	if c.anim == nil {
		c.anim = &cameraAnim{doneX: true, doneY: true, doneZoom: true}
	}
	return c.anim
}

// Advance steps running tweens by dt seconds and applies bounds clamping. It
// reports whether the camera changed, in which case resolved view-space
// values are stale.
func (c *Camera) Advance(dt float32) bool {
	prevPos, prevZoom := c.position, c.zoom

	if a := c.anim; a != nil {
		if a.tweenX != nil && !a.doneX {
			v, done := a.tweenX.Update(dt)
			c.position.X = float64(v)
			a.doneX = done
		}
		if a.tweenY != nil && !a.doneY {
			v, done := a.tweenY.Update(dt)
			c.position.Y = float64(v)
			a.doneY = done
		}
		if a.tweenZoom != nil && !a.doneZoom {
			v, done := a.tweenZoom.Update(dt)
			c.zoom = float64(v)
			a.doneZoom = done
		}
		if a.doneX && a.doneY && a.doneZoom {
			c.anim = nil
		}
	}

	if c.boundsEnabled {
		c.clampToBounds()
	}

	changed := c.position != prevPos || c.zoom != prevZoom
	if changed {
		c.touch()
	}
	return changed
}
