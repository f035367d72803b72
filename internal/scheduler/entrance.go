package scheduler

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Entrance animates the one-time scale pop of a newly merged card with
// a slightly underdamped spring, so the card overshoots and settles.
type Entrance struct {
	Key    string // card key this entrance belongs to
	spring harmonica.Spring
	scale  float64
	vel    float64
}

const (
	defaultEntranceFPS = 30

	entranceFrequency = 7.0
	entranceDamping   = 0.6
)

// NewEntrance starts an entrance animation at scale 0 for the card key.
// The spring is discretized at fps, which must match the rate the
// caller steps it at or the physics play too fast or too slow.
func NewEntrance(key string, fps int) *Entrance {
	if fps <= 0 {
		fps = defaultEntranceFPS
	}
	return &Entrance{
		Key:    key,
		spring: harmonica.NewSpring(harmonica.FPS(fps), entranceFrequency, entranceDamping),
	}
}

// Step advances the spring one frame and returns the current scale.
// Values can overshoot above 1 before settling.
func (e *Entrance) Step() float64 {
	e.scale, e.vel = e.spring.Update(e.scale, e.vel, 1)
	return e.scale
}

// Scale returns the current scale without advancing.
func (e *Entrance) Scale() float64 { return e.scale }

// Done reports whether the spring has settled on the target.
func (e *Entrance) Done() bool {
	return math.Abs(e.scale-1) < 0.005 && math.Abs(e.vel) < 0.005
}
