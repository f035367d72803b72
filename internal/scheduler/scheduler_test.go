package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/photoloop/photoloop/internal/model"
)

var testTarget = model.Rect{X: 40, Y: 8, W: 30, H: 12}

func testConfig() Config {
	return Config{
		CountdownPeriod: 3 * time.Second,
		TravelTime:      800 * time.Millisecond,
		CaptionDelay:    500 * time.Millisecond,
		HoldTime:        2 * time.Second,
		ReturnDelay:     500 * time.Millisecond,
		NewBadgeTime:    2 * time.Second,
		Capacity:        20,
		Seed:            1,
	}
}

// cycleLength mirrors the full timeline for testConfig:
// travel + caption delay + hold + return delay + travel.
const cycleLength = 800*time.Millisecond + 500*time.Millisecond + 2*time.Second + 500*time.Millisecond + 800*time.Millisecond

func makeCards(n int) []model.Card {
	cards := make([]model.Card, n)
	for i := range cards {
		cards[i] = model.Card{
			Outlet:   fmt.Sprintf("Outlet %d", i),
			Partner:  fmt.Sprintf("Partner %d", i),
			ImageURL: fmt.Sprintf("https://img.example/%d.jpg", i),
		}
	}
	return cards
}

func fixedResolver(r model.Rect) RectResolver {
	return func(int) (model.Rect, bool) { return r, true }
}

func newTestScheduler(t *testing.T, cfg Config, n int) (*Scheduler, time.Time) {
	t.Helper()
	s := New(cfg, fixedResolver(model.Rect{X: 2, Y: 3, W: 16, H: 6}), testTarget)
	now := time.Unix(1700000000, 0)
	s.ApplyPendingData(makeCards(n), now)
	return s, now
}

func TestStartCycleSingleFlight(t *testing.T) {
	s, now := newTestScheduler(t, testConfig(), 6)

	if !s.StartCycle(now) {
		t.Fatal("first StartCycle should succeed")
	}
	first := s.Cycle()
	if first == nil {
		t.Fatal("cycle should be in flight")
	}

	// A second start must be a no-op in every non-idle phase.
	for _, at := range []time.Duration{
		0,
		900 * time.Millisecond,  // holding
		3900 * time.Millisecond, // moving back
	} {
		s.Advance(now.Add(at))
		if s.Phase() == PhaseIdle {
			t.Fatalf("phase at +%v should not be idle", at)
		}
		if s.StartCycle(now.Add(at)) {
			t.Errorf("StartCycle at +%v should be a no-op while %v", at, s.Phase())
		}
		if got := s.Cycle(); got != first {
			t.Errorf("in-flight cycle replaced at +%v", at)
		}
	}
}

func TestStartCycleGuards(t *testing.T) {
	s := New(testConfig(), fixedResolver(model.Rect{W: 10, H: 4}), testTarget)
	now := time.Unix(1700000000, 0)

	if s.StartCycle(now) {
		t.Error("StartCycle with no cards should be a no-op")
	}

	// Unresolvable rect: cycle aborts silently, scheduler stays idle.
	s.ApplyPendingData(makeCards(3), now)
	s.SetResolver(func(int) (model.Rect, bool) { return model.Rect{}, false })
	if s.StartCycle(now) {
		t.Error("StartCycle should abort when the rect cannot be resolved")
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle after aborted start", s.Phase())
	}
	if s.Cycle() != nil {
		t.Error("no cycle should remain after aborted start")
	}
}

func TestTimelinePhases(t *testing.T) {
	s, now := newTestScheduler(t, testConfig(), 4)
	if !s.StartCycle(now) {
		t.Fatal("StartCycle failed")
	}

	steps := []struct {
		at      time.Duration
		phase   Phase
		caption bool
	}{
		{0, PhaseMovingToCenter, false},
		{700 * time.Millisecond, PhaseMovingToCenter, false},
		{900 * time.Millisecond, PhaseHolding, false},       // arrived, caption pending
		{1400 * time.Millisecond, PhaseHolding, true},       // caption revealed
		{3400 * time.Millisecond, PhaseHolding, false},      // caption hidden, return pending
		{3900 * time.Millisecond, PhaseMovingBack, false},
		{cycleLength + time.Millisecond, PhaseIdle, false},
	}
	for _, step := range steps {
		at := now.Add(step.at)
		s.Advance(at)
		if s.Phase() != step.phase {
			t.Errorf("phase at +%v = %v, want %v", step.at, s.Phase(), step.phase)
		}
		if got := s.CaptionVisible(at); got != step.caption {
			t.Errorf("caption at +%v = %v, want %v", step.at, got, step.caption)
		}
	}

	if s.Cycle() != nil {
		t.Error("cycle should be cleared on return completion")
	}
	if s.Countdown() != 3 {
		t.Errorf("countdown = %d, want rearmed to 3", s.Countdown())
	}
}

func TestTickCountdown(t *testing.T) {
	s, now := newTestScheduler(t, testConfig(), 4)

	s.Tick(now)
	if s.Countdown() != 2 {
		t.Fatalf("countdown = %d, want 2", s.Countdown())
	}
	s.Tick(now.Add(time.Second))
	s.Tick(now.Add(2 * time.Second))
	if s.Phase() != PhaseMovingToCenter {
		t.Fatalf("countdown reaching zero should start a cycle, phase = %v", s.Phase())
	}
	if s.Countdown() != 3 {
		t.Errorf("countdown = %d, want reset to period", s.Countdown())
	}

	// Ticks while animating must not touch the countdown.
	s.Tick(now.Add(3 * time.Second))
	if s.Countdown() != 3 {
		t.Errorf("countdown = %d, want unchanged while animating", s.Countdown())
	}
}

func TestTickWithEmptyFeedNeverStarts(t *testing.T) {
	s := New(testConfig(), fixedResolver(model.Rect{W: 10, H: 4}), testTarget)
	now := time.Unix(1700000000, 0)
	s.ApplyPendingData(nil, now)

	for i := 0; i < 10; i++ {
		s.Tick(now.Add(time.Duration(i) * time.Second))
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle forever on empty feed", s.Phase())
	}
}

func TestRoundRobinVisitsEveryCardOncePerPass(t *testing.T) {
	cfg := testConfig()
	cfg.Selection = SelectRoundRobin
	const n = 5
	s, now := newTestScheduler(t, cfg, n)

	for pass := 0; pass < 3; pass++ {
		visited := make(map[int]int)
		for i := 0; i < n; i++ {
			if !s.StartCycle(now) {
				t.Fatalf("pass %d cycle %d: StartCycle failed", pass, i)
			}
			visited[s.Cycle().Index]++
			now = now.Add(cycleLength + time.Millisecond)
			s.Advance(now)
		}
		for idx := 0; idx < n; idx++ {
			if visited[idx] != 1 {
				t.Errorf("pass %d: index %d visited %d times, want 1", pass, idx, visited[idx])
			}
		}
	}
}

func TestRoundRobinRetriesCardAfterAbortedStart(t *testing.T) {
	cfg := testConfig()
	cfg.Selection = SelectRoundRobin
	s, now := newTestScheduler(t, cfg, 3)

	resolvable := false
	s.SetResolver(func(int) (model.Rect, bool) {
		if !resolvable {
			return model.Rect{}, false
		}
		return model.Rect{X: 2, Y: 3, W: 16, H: 6}, true
	})

	if s.StartCycle(now) {
		t.Fatal("StartCycle should abort while the rect is unresolvable")
	}

	// The aborted start must not consume the card's turn in the pass.
	resolvable = true
	if !s.StartCycle(now) {
		t.Fatal("StartCycle should succeed once the rect resolves")
	}
	if got := s.Cycle().Index; got != 0 {
		t.Fatalf("first committed cycle picked index %d, want 0", got)
	}

	now = now.Add(cycleLength + time.Millisecond)
	s.Advance(now)
	if !s.StartCycle(now) {
		t.Fatal("second cycle should start")
	}
	if got := s.Cycle().Index; got != 1 {
		t.Errorf("second cycle picked index %d, want 1", got)
	}
}

func TestRandomSelectionAvoidsImmediateRepeat(t *testing.T) {
	cfg := testConfig()
	cfg.Selection = SelectRandom
	s, now := newTestScheduler(t, cfg, 5)

	prev := -1
	for i := 0; i < 200; i++ {
		if !s.StartCycle(now) {
			t.Fatalf("cycle %d: StartCycle failed", i)
		}
		idx := s.Cycle().Index
		if idx == prev {
			t.Fatalf("cycle %d repeated index %d", i, idx)
		}
		prev = idx
		now = now.Add(cycleLength + time.Millisecond)
		s.Advance(now)
	}
}

func TestRandomSelectionSingleCard(t *testing.T) {
	cfg := testConfig()
	cfg.Selection = SelectRandom
	s, now := newTestScheduler(t, cfg, 1)

	for i := 0; i < 3; i++ {
		if !s.StartCycle(now) {
			t.Fatalf("cycle %d: StartCycle failed with one card", i)
		}
		if s.Cycle().Index != 0 {
			t.Fatalf("index = %d, want 0", s.Cycle().Index)
		}
		now = now.Add(cycleLength + time.Millisecond)
		s.Advance(now)
	}
}

func TestFrameRectEndpoints(t *testing.T) {
	origin := model.Rect{X: 2, Y: 3, W: 16, H: 6}
	s, now := newTestScheduler(t, testConfig(), 4)
	if !s.StartCycle(now) {
		t.Fatal("StartCycle failed")
	}

	got, ok := s.FrameRect(now)
	if !ok || got != origin {
		t.Errorf("rect at t=0 = %+v, want origin %+v", got, origin)
	}

	s.Advance(now.Add(900 * time.Millisecond))
	got, ok = s.FrameRect(now.Add(900 * time.Millisecond))
	if !ok || got != testTarget {
		t.Errorf("rect while holding = %+v, want target %+v", got, testTarget)
	}

	end := now.Add(cycleLength)
	got, ok = s.FrameRect(end.Add(-time.Nanosecond))
	if !ok {
		t.Fatal("rect should resolve during return")
	}
	s.Advance(end.Add(time.Millisecond))
	if _, ok := s.FrameRect(end.Add(time.Millisecond)); ok {
		t.Error("rect should not resolve once idle")
	}
}
