package s2

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween drives a progress value from 0 to 1 with an easing function and
// hands it to an apply function every step. The typed-value constructors
// below snapshot two keyframes and call Lerp between them, which marks the
// value (and its owner) dirty only when the interpolated value changes.
//
// There is no global animation manager: call Update yourself or register the
// tween with Scene.AddTween.
type Tween struct {
	tween *gween.Tween
	apply func(t float64)
	Done  bool

	// OnDone, if set, runs once after the final step.
	OnDone func()
}

// NewTween creates a tween that calls apply with eased progress over
// duration seconds.
func NewTween(duration float32, fn ease.TweenFunc, apply func(t float64)) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{tween: gween.New(0, 1, duration, fn), apply: apply}
}

// Update advances the tween by dt seconds.
func (tw *Tween) Update(dt float32) {
	if tw.Done {
		return
	}
	v, finished := tw.tween.Update(dt)
	p := float64(v)
	if finished {
		// The easing output at the end can be off by float32 rounding.
		p = 1
	}
	tw.apply(p)
	if finished {
		tw.Done = true
		if tw.OnDone != nil {
			tw.OnDone()
		}
	}
}

// Reset rewinds the tween to the start.
func (tw *Tween) Reset() {
	tw.tween.Reset()
	tw.Done = false
}

// TweenFloat animates v from its current value to `to`.
func TweenFloat(v *FloatValue, to float64, duration float32, fn ease.TweenFunc) *Tween {
	a, b := NewFloatValue(v.Get()), NewFloatValue(to)
	return NewTween(duration, fn, func(t float64) { v.Lerp(&a, &b, t) })
}

// TweenLength animates v to `to`. The tween runs in v's space; cam converts
// `to` when the spaces differ.
func TweenLength(v *LengthValue, to LengthValue, cam *Camera, duration float32, fn ease.TweenFunc) *Tween {
	a := NewLengthValue(v.Get(), v.Space())
	return NewTween(duration, fn, func(t float64) { v.Lerp(&a, &to, t, cam) })
}

// TweenPosition animates v to `to` in v's space.
func TweenPosition(v *PositionValue, to PositionValue, cam *Camera, duration float32, fn ease.TweenFunc) *Tween {
	a := NewPositionValue(v.Get(), v.Space())
	return NewTween(duration, fn, func(t float64) { v.Lerp(&a, &to, t, cam) })
}

// TweenExtents animates v to `to` in v's space.
func TweenExtents(v *ExtentsValue, to ExtentsValue, cam *Camera, duration float32, fn ease.TweenFunc) *Tween {
	a := NewExtentsValue(v.Get(), v.Space())
	return NewTween(duration, fn, func(t float64) { v.Lerp(&a, &to, t, cam) })
}

// TweenColor animates all four components of v.
func TweenColor(v *ColorValue, to Color, duration float32, fn ease.TweenFunc) *Tween {
	a, b := NewColorValue(v.Get()), NewColorValue(to)
	return NewTween(duration, fn, func(t float64) { v.Lerp(&a, &b, t) })
}

// TweenTransform animates the six coefficients of v independently.
func TweenTransform(v *TransformValue, to Matrix, duration float32, fn ease.TweenFunc) *Tween {
	a, b := NewTransformValue(v.Get()), NewTransformValue(to)
	return NewTween(duration, fn, func(t float64) { v.Lerp(&a, &b, t) })
}
