package scheduler

import "github.com/photoloop/photoloop/internal/model"

// Easing maps normalized time t in [0,1] to eased progress in [0,1].
// Every easing must hit 0 at t=0 and 1 at t=1 exactly so tween
// endpoints land on the origin and target rects without drift.
type Easing func(t float64) float64

// EaseOutCubic decelerates into the target: 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutQuad accelerates through the first half and decelerates
// through the second (piecewise quadratic).
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// TweenRect interpolates every component of a rect from "from" toward
// "to" at normalized time t passed through ease. t outside [0,1] is
// clamped, so t=0 yields from exactly and t>=1 yields to exactly.
func TweenRect(from, to model.Rect, t float64, ease Easing) model.Rect {
	if ease == nil {
		ease = Linear
	}
	p := ease(clamp01(t))
	return model.Rect{
		X: lerp(from.X, to.X, p),
		Y: lerp(from.Y, to.Y, p),
		W: lerp(from.W, to.W, p),
		H: lerp(from.H, to.H, p),
	}
}
