package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/photoloop/photoloop/internal/model"
	"github.com/photoloop/photoloop/internal/scheduler"
)

// fakeSource serves canned cards for the poll loop.
type fakeSource struct {
	mu    sync.Mutex
	cards []model.Card
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]model.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.cards, nil
}

func newTestModel(t *testing.T, source model.CardSource) *LoopModel {
	t.Helper()
	m := NewLoopModel(Config{
		GridRows:  5,
		GridCols:  2,
		Scheduler: scheduler.Config{Seed: 1},
	}, source, zerolog.Nop())
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 21})
	return m
}

func loadCards(m *LoopModel, cards []model.Card, at time.Time) {
	m.Update(feedLoadedMsg{cards: cards, at: at})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFeedErrorSurfacedOnlyBeforeFirstLoad(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(t, src)
	at := time.Unix(1700000000, 0)

	m.Update(feedLoadedMsg{err: errors.New("connection refused"), at: at})
	if m.lastError == "" {
		t.Error("error before first load should be surfaced")
	}
	if m.everLoaded {
		t.Error("failed poll must not mark the feed as loaded")
	}

	loadCards(m, makeTestCards(4), at.Add(time.Second))
	if m.lastError != "" {
		t.Errorf("successful load should clear the error, got %q", m.lastError)
	}
	if !m.everLoaded {
		t.Error("successful load should mark the feed as loaded")
	}

	// Stale data keeps displaying; later failures stay off-screen.
	m.Update(feedLoadedMsg{err: errors.New("connection refused"), at: at.Add(2 * time.Second)})
	if m.lastError != "" {
		t.Errorf("error after a successful load should stay hidden, got %q", m.lastError)
	}
	if m.lastFetchOK {
		t.Error("failed poll should clear lastFetchOK")
	}
	if len(m.Scheduler().Cards()) != 4 {
		t.Error("stale cards must survive a failed poll")
	}
}

func TestCountdownStartsCycle(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	now := time.Unix(1700000000, 0)
	loadCards(m, makeTestCards(6), now)

	for i := 0; i < 3; i++ {
		now = now.Add(time.Second)
		m.Update(CountdownTickMsg(now))
	}
	if m.Scheduler().Phase() == scheduler.PhaseIdle {
		t.Fatal("countdown reaching zero should start a cycle")
	}
	if !m.frameActive {
		t.Error("starting a cycle should arm the frame loop")
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	now := time.Unix(1700000000, 0)
	loadCards(m, makeTestCards(6), now)

	m.Update(keyRune('p'))
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		m.Update(CountdownTickMsg(now))
	}
	if m.Scheduler().Phase() != scheduler.PhaseIdle {
		t.Error("paused loop should never start a cycle")
	}

	m.Update(keyRune('p'))
	for i := 0; i < 3; i++ {
		now = now.Add(time.Second)
		m.Update(CountdownTickMsg(now))
	}
	if m.Scheduler().Phase() == scheduler.PhaseIdle {
		t.Error("resuming should let the countdown run again")
	}
}

func TestRefreshDeferredWhileAnimating(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	now := time.Unix(1700000000, 0)
	loadCards(m, makeTestCards(4), now)

	if !m.Scheduler().StartCycle(now) {
		t.Fatal("cycle should start")
	}

	refreshed := append(makeTestCards(4), model.Card{Outlet: "Z", Partner: "P", ImageURL: "u"})
	loadCards(m, refreshed, now.Add(100*time.Millisecond))

	if got := len(m.Scheduler().Cards()); got != 4 {
		t.Fatalf("refresh should be buffered mid-cycle, grid has %d cards", got)
	}
	if !m.Scheduler().RefreshPending() {
		t.Error("buffered refresh should be reported as pending")
	}

	// A frame far past the cycle end lands back at idle and applies the
	// buffered refresh.
	m.Update(FrameMsg(now.Add(time.Minute)))
	if got := len(m.Scheduler().Cards()); got != 5 {
		t.Fatalf("idle transition should apply the refresh, grid has %d cards", got)
	}
	if _, ok := m.entrances["z\x00p"]; !ok {
		t.Error("the arriving card should get an entrance spring")
	}
}

func TestNewCardGetsEntranceSpring(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	now := time.Unix(1700000000, 0)

	loadCards(m, makeTestCards(3), now)
	if len(m.entrances) != 0 {
		t.Fatal("first load is not an arrival wave")
	}

	loadCards(m, makeTestCards(4), now.Add(time.Second))
	if len(m.entrances) != 1 {
		t.Fatalf("one added card should yield one entrance, got %d", len(m.entrances))
	}
	if !m.frameActive {
		t.Error("a live entrance should arm the frame loop")
	}

	// Springs settle and clear the badge.
	for i := 0; i < 300 && len(m.entrances) > 0; i++ {
		m.Update(FrameMsg(now.Add(time.Duration(i) * 33 * time.Millisecond)))
	}
	if len(m.entrances) != 0 {
		t.Error("entrance spring should settle")
	}
	for _, c := range m.Scheduler().Cards() {
		if c.New {
			t.Errorf("badge for %s should be cleared once the spring settles", c.Outlet)
		}
	}
}

func TestRefreshNowKeyRespectsInFlightFetch(t *testing.T) {
	src := &fakeSource{cards: makeTestCards(2)}
	m := newTestModel(t, src)

	_, cmd := m.Update(keyRune('r'))
	if cmd == nil {
		t.Fatal("refresh key should issue a fetch")
	}
	if !m.fetchInFlight {
		t.Fatal("refresh key should mark a fetch in flight")
	}

	if _, cmd := m.Update(keyRune('r')); cmd != nil {
		t.Error("second refresh while one is in flight should be a no-op")
	}

	// Running the command completes the round trip.
	msg, ok := cmd().(feedLoadedMsg)
	if !ok {
		t.Fatalf("fetch command should produce a feedLoadedMsg, got %T", msg)
	}
	m.Update(msg)
	if m.fetchInFlight {
		t.Error("loaded message should clear the in-flight flag")
	}
	if len(m.Scheduler().Cards()) != 2 {
		t.Error("fetched cards should reach the grid")
	}
}

func TestPolicyToggleKeys(t *testing.T) {
	m := newTestModel(t, &fakeSource{})

	m.Update(keyRune('s'))
	if got := m.Scheduler().Config().Selection; got != scheduler.SelectRoundRobin {
		t.Errorf("selection after toggle = %v, want round-robin", got)
	}
	m.Update(keyRune('s'))
	if got := m.Scheduler().Config().Selection; got != scheduler.SelectRandom {
		t.Errorf("selection after second toggle = %v, want random", got)
	}

	m.Update(keyRune('m'))
	if got := m.Scheduler().Config().Merge; got != scheduler.MergeBackEvict {
		t.Errorf("merge after toggle = %v, want back-evict", got)
	}
}

func TestModalStackRouting(t *testing.T) {
	m := newTestModel(t, &fakeSource{})

	m.Update(keyRune('?'))
	if m.TopModal() == nil {
		t.Fatal("help key should push a modal")
	}

	// Keys route to the modal, not the loop.
	m.Update(keyRune('p'))
	if m.paused {
		t.Error("keys should not reach the loop while a modal is open")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.TopModal() != nil {
		t.Error("escape should pop the modal")
	}
}
