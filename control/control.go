// Package control turns pointer input into camera and figure edits on an
// [s2.Scene]: drag to pan, wheel or pinch to zoom, click or drag to pick
// figures.
package control

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	s2 "github.com/ArnaudBannier/s2-sub001"
)

const (
	defaultDragDeadZone  = 4.0 // pixels
	defaultZoomStep      = 1.1 // zoom factor per wheel notch
	defaultPickTolerance = 6.0 // pixels
)

// Input reports the pointer state for one tick. Positions are in view space.
type Input interface {
	Cursor() s2.Vec2
	Pressed() bool
	Wheel() float64
	Touches() []s2.Vec2
}

// EbitenInput reads the left mouse button, the wheel and touches from ebiten.
type EbitenInput struct {
	ids     []ebiten.TouchID
	touches []s2.Vec2
}

// Cursor returns the mouse position.
func (in *EbitenInput) Cursor() s2.Vec2 {
	x, y := ebiten.CursorPosition()
	return s2.V(float64(x), float64(y))
}

// Pressed reports whether the left mouse button is down.
func (in *EbitenInput) Pressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Wheel returns the vertical wheel offset.
func (in *EbitenInput) Wheel() float64 {
	_, y := ebiten.Wheel()
	return y
}

// Touches returns the active touch positions. The slice is reused.
func (in *EbitenInput) Touches() []s2.Vec2 {
	in.ids = ebiten.AppendTouchIDs(in.ids[:0])
	in.touches = in.touches[:0]
	for _, id := range in.ids {
		x, y := ebiten.TouchPosition(id)
		in.touches = append(in.touches, s2.V(float64(x), float64(y)))
	}
	return in.touches
}

type pointerState struct {
	down     bool
	start    s2.Vec2
	last     s2.Vec2
	hit      s2.Figure
	dragging bool
}

type pinchState struct {
	active   bool
	prevDist float64
}

// Controller applies input to a scene. Call Update once per tick before
// Scene.Update.
type Controller struct {
	// DragDeadZone is the distance in pixels the pointer must travel before a
	// press becomes a drag.
	DragDeadZone float64
	// ZoomStep is the zoom factor applied per wheel notch.
	ZoomStep float64
	// MinZoom and MaxZoom clamp the zoom. Zero disables a bound.
	MinZoom, MaxZoom float64
	// PickTolerance is the hit distance in pixels for figures.
	PickTolerance float64

	// OnClick is called when a figure is pressed and released without a drag.
	OnClick func(f s2.Figure)
	// OnDrag is called with the world-space pointer motion while a figure is
	// dragged. When it is nil or returns false the camera pans instead.
	OnDrag func(f s2.Figure, delta s2.Vec2) bool

	scene *s2.Scene
	input Input
	ptr   pointerState
	pinch pinchState
}

// New returns a controller for scene reading from input. A nil input reads
// from ebiten.
func New(scene *s2.Scene, input Input) *Controller {
	if input == nil {
		input = &EbitenInput{}
	}
	return &Controller{
		DragDeadZone:  defaultDragDeadZone,
		ZoomStep:      defaultZoomStep,
		PickTolerance: defaultPickTolerance,
		scene:         scene,
		input:         input,
	}
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.ptr.dragging }

// Update processes one tick of input. It reports whether the camera changed.
func (c *Controller) Update() bool {
	cam := c.scene.Camera()
	version := cam.Version()

	touches := c.input.Touches()
	if len(touches) == 2 {
		c.processPinch(touches[0], touches[1])
	} else {
		c.pinch.active = false
		pos, pressed := c.input.Cursor(), c.input.Pressed()
		if len(touches) == 1 {
			pos, pressed = touches[0], true
		}
		c.processPointer(pos, pressed)
		if w := c.input.Wheel(); w != 0 {
			c.zoomAbout(pos, cam.Zoom()*math.Pow(c.ZoomStep, -w))
		}
	}
	return cam.Version() != version
}

// processPointer runs the press/drag/release state machine.
func (c *Controller) processPointer(pos s2.Vec2, pressed bool) {
	ps := &c.ptr
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.start, ps.last = pos, pos
		ps.hit = c.scene.Pick(pos, c.PickTolerance)
		ps.dragging = false

	case !pressed && ps.down:
		if !ps.dragging && ps.hit != nil && c.OnClick != nil {
			c.OnClick(ps.hit)
		}
		*ps = pointerState{last: pos}

	case pressed && ps.down:
		if pos == ps.last {
			return
		}
		if !ps.dragging && pos.Sub(ps.start).Length() > c.DragDeadZone {
			ps.dragging = true
		}
		if ps.dragging {
			c.drag(pos.Sub(ps.last))
		}
		ps.last = pos
	}
}

func (c *Controller) drag(delta s2.Vec2) {
	cam := c.scene.Camera()
	world := cam.ViewToWorldVector(delta)
	if c.ptr.hit != nil && c.OnDrag != nil && c.OnDrag(c.ptr.hit, world) {
		return
	}
	cam.SetPosition(cam.Position().Sub(world))
	cam.ClampToBounds()
}

// processPinch zooms about the midpoint of two touches. Dragging is
// suppressed while pinching.
func (c *Controller) processPinch(a, b s2.Vec2) {
	c.ptr = pointerState{}
	dist := b.Sub(a).Length()
	if !c.pinch.active {
		c.pinch = pinchState{active: true, prevDist: dist}
		return
	}
	if dist > 0 && c.pinch.prevDist > 0 {
		cam := c.scene.Camera()
		c.zoomAbout(a.Lerp(b, 0.5), cam.Zoom()*c.pinch.prevDist/dist)
	}
	c.pinch.prevDist = dist
}

// zoomAbout sets the zoom and moves the camera so the world point under the
// view point p stays put.
func (c *Controller) zoomAbout(p s2.Vec2, zoom float64) {
	if c.MinZoom > 0 {
		zoom = max(zoom, c.MinZoom)
	}
	if c.MaxZoom > 0 {
		zoom = min(zoom, c.MaxZoom)
	}
	cam := c.scene.Camera()
	before := cam.ViewToWorld(p)
	cam.SetZoom(zoom)
	after := cam.ViewToWorld(p)
	cam.SetPosition(cam.Position().Add(before.Sub(after)))
	cam.ClampToBounds()
}
