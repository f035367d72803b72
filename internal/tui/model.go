package tui

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/photoloop/photoloop/internal/model"
	"github.com/photoloop/photoloop/internal/scheduler"
)

// Config holds loop display settings.
type Config struct {
	GridRows     int // rows per column block
	GridCols     int // columns per side
	PollInterval time.Duration
	FrameRate    int // animation frames per second
	Scheduler    scheduler.Config
}

func (c Config) withDefaults() Config {
	if c.GridRows <= 0 {
		c.GridRows = model.DefaultGridRows
	}
	if c.GridCols <= 0 {
		c.GridCols = model.DefaultGridCols
	}
	if c.PollInterval <= 0 {
		c.PollInterval = model.DefaultPollInterval
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	return c
}

// FetchSample records one poll outcome for the activity chart.
type FetchSample struct {
	At     time.Time
	Count  int
	Failed bool
}

// fetchHistoryCap bounds the activity window.
const fetchHistoryCap = 48

// FeedState holds polling state and the error surfaced before the
// first successful load.
type FeedState struct {
	source        model.CardSource
	fetchInFlight bool
	everLoaded    bool
	lastError     string
	lastFetchAt   time.Time
	lastFetchOK   bool
	history       []FetchSample
}

// ModalStackState holds the modal stack; the topmost modal receives all
// input and renders full-screen.
type ModalStackState struct {
	modalStack []Modal
}

// PushModal pushes a modal unless one with the same ID is already on top.
func (s *ModalStackState) PushModal(m Modal) {
	if top := s.TopModal(); top != nil && top.ID() == m.ID() {
		return
	}
	s.modalStack = append(s.modalStack, m)
}

// PopModal removes the topmost modal.
func (s *ModalStackState) PopModal() {
	if len(s.modalStack) > 0 {
		s.modalStack = s.modalStack[:len(s.modalStack)-1]
	}
}

// TopModal returns the topmost modal or nil.
func (s *ModalStackState) TopModal() Modal {
	if len(s.modalStack) == 0 {
		return nil
	}
	return s.modalStack[len(s.modalStack)-1]
}

// captionFade tracks when caption visibility last flipped so the view
// can step the text through fade levels.
type captionFade struct {
	visible   bool
	flippedAt time.Time
}

// LoopModel is the main TUI model: the card grid, the animation
// scheduler, and the feed polling loop.
type LoopModel struct {
	FeedState
	ModalStackState

	keys  KeyMap
	cfg   Config
	sched *scheduler.Scheduler
	log   zerolog.Logger

	// One live spring per entrance-flagged card, keyed by card key.
	entrances map[string]*scheduler.Entrance

	width  int
	height int

	paused      bool
	frameActive bool // a FrameMsg loop is scheduled
	caption     captionFade
}

// CountdownTickMsg fires once per second to drive the cycle countdown.
type CountdownTickMsg time.Time

// FrameMsg drives animation frames while a cycle or entrance plays.
type FrameMsg time.Time

// FeedTickMsg fires once per poll interval.
type FeedTickMsg time.Time

// feedLoadedMsg carries one poll result back to the model.
type feedLoadedMsg struct {
	cards []model.Card
	err   error
	at    time.Time
}

// NewLoopModel creates the loop display model.
func NewLoopModel(cfg Config, source model.CardSource, log zerolog.Logger) *LoopModel {
	cfg = cfg.withDefaults()
	m := &LoopModel{
		FeedState: FeedState{source: source},
		keys:      DefaultKeyMap(),
		cfg:       cfg,
		log:       log.With().Str("component", "tui").Logger(),
		entrances: make(map[string]*scheduler.Entrance),
	}
	m.sched = scheduler.New(cfg.Scheduler, m.slotRect, model.Rect{})
	return m
}

// Scheduler exposes the underlying scheduler for status rendering.
func (m *LoopModel) Scheduler() *scheduler.Scheduler { return m.sched }

func (m *LoopModel) frameInterval() time.Duration {
	return time.Second / time.Duration(m.cfg.FrameRate)
}

// syncEntrances starts a spring for every newly flagged card and
// reports whether any entrance is still live.
func (m *LoopModel) syncEntrances() bool {
	for _, c := range m.sched.Cards() {
		if c.New {
			if _, ok := m.entrances[c.Key()]; !ok {
				m.entrances[c.Key()] = scheduler.NewEntrance(c.Key(), m.cfg.FrameRate)
			}
		}
	}
	return len(m.entrances) > 0
}

// stepEntrances advances all springs one frame, clearing badges for
// settled ones.
func (m *LoopModel) stepEntrances() {
	for key, e := range m.entrances {
		e.Step()
		if e.Done() {
			m.sched.ClearBadge(key)
			delete(m.entrances, key)
		}
	}
}

func (m *LoopModel) recordSample(s FetchSample) {
	m.history = append(m.history, s)
	if len(m.history) > fetchHistoryCap {
		m.history = m.history[len(m.history)-fetchHistoryCap:]
	}
}
