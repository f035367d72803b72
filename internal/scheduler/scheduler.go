// Package scheduler drives the photo-loop animation cycle: a countdown
// picks the next card, the card travels to the screen center, holds with
// its caption revealed, then returns to its grid slot. At most one cycle
// is in flight at any time, and feed refreshes are buffered while a
// cycle plays.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/photoloop/photoloop/internal/model"
)

// Phase is the current stage of the animation cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMovingToCenter
	PhaseHolding
	PhaseMovingBack
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMovingToCenter:
		return "moving-to-center"
	case PhaseHolding:
		return "holding"
	case PhaseMovingBack:
		return "moving-back"
	}
	return "unknown"
}

// RectResolver reports the current on-screen rect of the card at a grid
// index. ok=false (card unmounted, index out of range) aborts the cycle
// silently.
type RectResolver func(index int) (model.Rect, bool)

// Config holds every timed transition of the cycle as a named duration.
type Config struct {
	CountdownPeriod time.Duration // idle seconds between cycles
	TravelTime      time.Duration // grid slot -> center, and back
	CaptionDelay    time.Duration // arrival -> caption fade-in
	HoldTime        time.Duration // caption visible -> caption fade-out
	ReturnDelay     time.Duration // caption fade-out -> return start
	NewBadgeTime    time.Duration // how long a merged card stays flagged

	Selection SelectionPolicy
	Merge     MergePolicy
	Capacity  int // grid capacity, bounds MergeBackEvict

	// Seed fixes the random selection order; 0 seeds from the clock.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.CountdownPeriod <= 0 {
		c.CountdownPeriod = model.DefaultCountdownPeriod
	}
	if c.TravelTime <= 0 {
		c.TravelTime = model.DefaultTravelTime
	}
	if c.CaptionDelay <= 0 {
		c.CaptionDelay = model.DefaultCaptionDelay
	}
	if c.HoldTime <= 0 {
		c.HoldTime = model.DefaultHoldTime
	}
	if c.ReturnDelay <= 0 {
		c.ReturnDelay = model.DefaultReturnDelay
	}
	if c.NewBadgeTime <= 0 {
		c.NewBadgeTime = model.DefaultNewBadgeTime
	}
	if c.Capacity <= 0 {
		c.Capacity = model.DefaultFeedCap
	}
	return c
}

// Cycle is the state of one in-flight animation.
type Cycle struct {
	Index     int
	Card      model.Card
	Origin    model.Rect // captured at cycle start; also the return target
	StartedAt time.Time
}

// Scheduler owns the countdown, phase, card list, and pending-refresh
// buffer. It is not goroutine-safe: the owning event loop calls every
// method from a single goroutine and passes the current time explicitly.
type Scheduler struct {
	cfg     Config
	resolve RectResolver
	target  model.Rect // fixed center rect cards travel to

	cards    []model.Card
	pending  []model.Card
	buffered bool

	countdown int // whole seconds until the next cycle may start
	phase     Phase
	cycle     *Cycle

	lastIndex int // previous selection, -1 before the first cycle
	rrCursor  int // round-robin position

	badgeExpiry map[string]time.Time
	rng         *rand.Rand
}

// New creates a scheduler. The resolver and center target come from the
// rendering surface; they may be updated later via SetTarget/SetResolver
// when the window resizes.
func New(cfg Config, resolve RectResolver, target model.Rect) *Scheduler {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Scheduler{
		cfg:         cfg,
		resolve:     resolve,
		target:      target,
		countdown:   int(cfg.CountdownPeriod / time.Second),
		lastIndex:   -1,
		badgeExpiry: make(map[string]time.Time),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// SetTarget updates the center rect (window resize).
func (s *Scheduler) SetTarget(target model.Rect) { s.target = target }

// SetResolver updates the rect resolver (layout rebuild).
func (s *Scheduler) SetResolver(resolve RectResolver) { s.resolve = resolve }

// SetSelectionPolicy switches the selection policy. Takes effect on the
// next cycle; an in-flight cycle is untouched.
func (s *Scheduler) SetSelectionPolicy(p SelectionPolicy) { s.cfg.Selection = p }

// SetMergePolicy switches the merge policy for subsequent refreshes.
func (s *Scheduler) SetMergePolicy(p MergePolicy) { s.cfg.Merge = p }

// Phase returns the current cycle phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// Countdown returns the remaining whole seconds until the next cycle.
func (s *Scheduler) Countdown() int { return s.countdown }

// Cards returns the visible card list. Callers must not mutate it.
func (s *Scheduler) Cards() []model.Card { return s.cards }

// Cycle returns the in-flight cycle, or nil while idle.
func (s *Scheduler) Cycle() *Cycle { return s.cycle }

// Target returns the configured center rect.
func (s *Scheduler) Target() model.Rect { return s.target }

// Config returns the effective configuration.
func (s *Scheduler) Config() Config { return s.cfg }

// Tick advances the countdown by one second. It is a no-op while a
// cycle plays or a refresh is buffered; at zero it starts a cycle and
// rearms the countdown whether or not the start succeeded.
func (s *Scheduler) Tick(now time.Time) {
	if s.phase != PhaseIdle || s.buffered {
		return
	}
	s.countdown--
	if s.countdown > 0 {
		return
	}
	s.countdown = int(s.cfg.CountdownPeriod / time.Second)
	s.StartCycle(now)
}

// StartCycle begins a new animation cycle. It is a no-op when a cycle
// is already in flight or no cards exist, and aborts silently when the
// selected card's rect cannot be resolved.
func (s *Scheduler) StartCycle(now time.Time) bool {
	if s.phase != PhaseIdle || len(s.cards) == 0 {
		return false
	}
	idx := s.selectIndex(len(s.cards))
	if s.resolve == nil {
		return false
	}
	origin, ok := s.resolve(idx)
	if !ok {
		return false
	}
	s.lastIndex = idx
	if s.cfg.Selection == SelectRoundRobin {
		s.rrCursor = (idx + 1) % len(s.cards)
	}
	s.cycle = &Cycle{
		Index:     idx,
		Card:      s.cards[idx],
		Origin:    origin,
		StartedAt: now,
	}
	s.phase = PhaseMovingToCenter
	return true
}

// Timeline offsets measured from cycle start.
func (s *Scheduler) arriveAt() time.Duration  { return s.cfg.TravelTime }
func (s *Scheduler) captionAt() time.Duration { return s.arriveAt() + s.cfg.CaptionDelay }
func (s *Scheduler) hideAt() time.Duration    { return s.captionAt() + s.cfg.HoldTime }
func (s *Scheduler) returnAt() time.Duration  { return s.hideAt() + s.cfg.ReturnDelay }
func (s *Scheduler) doneAt() time.Duration    { return s.returnAt() + s.cfg.TravelTime }

// Advance recomputes the phase from elapsed time and handles the idle
// transition: the cycle is cleared, the countdown rearmed, expired
// "new" badges dropped, and a buffered refresh applied. Returns true
// when anything changed (the caller should re-render).
func (s *Scheduler) Advance(now time.Time) bool {
	changed := s.clearExpiredBadges(now)
	if s.cycle == nil {
		return changed
	}

	elapsed := now.Sub(s.cycle.StartedAt)
	next := s.phase
	switch {
	case elapsed >= s.doneAt():
		next = PhaseIdle
	case elapsed >= s.returnAt():
		next = PhaseMovingBack
	case elapsed >= s.arriveAt():
		next = PhaseHolding
	default:
		next = PhaseMovingToCenter
	}
	if next == s.phase {
		return changed
	}

	s.phase = next
	if next == PhaseIdle {
		s.cycle = nil
		s.countdown = int(s.cfg.CountdownPeriod / time.Second)
		if s.buffered {
			s.applyNow(s.pending, now)
			s.pending = nil
			s.buffered = false
		}
	}
	return true
}

// CaptionVisible reports whether the caption is shown at now: from
// CaptionDelay after arrival until HoldTime later.
func (s *Scheduler) CaptionVisible(now time.Time) bool {
	if s.cycle == nil {
		return false
	}
	elapsed := now.Sub(s.cycle.StartedAt)
	return elapsed >= s.captionAt() && elapsed < s.hideAt()
}

// FrameRect returns the interpolated rect of the in-flight card at now.
// ok=false while idle.
func (s *Scheduler) FrameRect(now time.Time) (model.Rect, bool) {
	if s.cycle == nil {
		return model.Rect{}, false
	}
	elapsed := now.Sub(s.cycle.StartedAt)
	switch {
	case elapsed < s.arriveAt():
		t := float64(elapsed) / float64(s.cfg.TravelTime)
		return TweenRect(s.cycle.Origin, s.target, t, EaseInOutQuad), true
	case elapsed < s.returnAt():
		return s.target, true
	case elapsed < s.doneAt():
		t := float64(elapsed-s.returnAt()) / float64(s.cfg.TravelTime)
		return TweenRect(s.target, s.cycle.Origin, t, EaseInOutQuad), true
	}
	return s.cycle.Origin, true
}

// Animating reports whether a frame loop should be running.
func (s *Scheduler) Animating() bool { return s.phase != PhaseIdle }

// clearExpiredBadges drops "new" flags whose display window has passed.
func (s *Scheduler) clearExpiredBadges(now time.Time) bool {
	if len(s.badgeExpiry) == 0 {
		return false
	}
	changed := false
	for i := range s.cards {
		if !s.cards[i].New {
			continue
		}
		key := s.cards[i].Key()
		if exp, ok := s.badgeExpiry[key]; ok && !now.Before(exp) {
			s.cards[i].New = false
			delete(s.badgeExpiry, key)
			changed = true
		}
	}
	return changed
}

// ClearBadge drops a card's "new" flag early, once its entrance
// animation has settled.
func (s *Scheduler) ClearBadge(key string) {
	for i := range s.cards {
		if s.cards[i].New && s.cards[i].Key() == key {
			s.cards[i].New = false
		}
	}
	delete(s.badgeExpiry, key)
}
