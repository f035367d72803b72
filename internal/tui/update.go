package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/photoloop/photoloop/internal/scheduler"
)

func (m *LoopModel) Init() tea.Cmd {
	// First fetch fires immediately; the poll loop takes over after.
	return tea.Batch(
		m.fetchCmd(),
		m.countdownTickCmd(),
		m.feedTickCmd(),
	)
}

func (m *LoopModel) countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return CountdownTickMsg(t)
	})
}

func (m *LoopModel) feedTickCmd() tea.Cmd {
	return tea.Tick(m.cfg.PollInterval, func(t time.Time) tea.Msg {
		return FeedTickMsg(t)
	})
}

func (m *LoopModel) frameCmd() tea.Cmd {
	return tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// fetchCmd polls the feed in the background and reports back with a
// feedLoadedMsg.
func (m *LoopModel) fetchCmd() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		cards, err := source.Fetch(context.Background())
		return feedLoadedMsg{cards: cards, err: err, at: time.Now()}
	}
}

// startFrameLoop arms the animation frame loop if it is not running.
func (m *LoopModel) startFrameLoop() tea.Cmd {
	if m.frameActive {
		return nil
	}
	m.frameActive = true
	return m.frameCmd()
}

func (m *LoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sched.SetTarget(m.centerTarget())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case CountdownTickMsg:
		var cmd tea.Cmd
		if !m.paused {
			m.sched.Tick(time.Time(msg))
			if m.sched.Animating() {
				cmd = m.startFrameLoop()
			}
		}
		return m, tea.Batch(cmd, m.countdownTickCmd())

	case FrameMsg:
		return m.handleFrame(time.Time(msg))

	case FeedTickMsg:
		// Skip this round rather than stack fetches behind a slow feed.
		if m.fetchInFlight {
			return m, m.feedTickCmd()
		}
		m.fetchInFlight = true
		return m, tea.Batch(m.fetchCmd(), m.feedTickCmd())

	case feedLoadedMsg:
		return m.handleFeedLoaded(msg)
	}

	return m, nil
}

func (m *LoopModel) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.sched.Advance(now)
	m.stepEntrances()
	// A buffered refresh applied at the idle transition can flag new
	// cards; give each a spring.
	m.syncEntrances()

	if visible := m.sched.CaptionVisible(now); visible != m.caption.visible {
		m.caption = captionFade{visible: visible, flippedAt: now}
	}

	if m.sched.Animating() || len(m.entrances) > 0 {
		return m, m.frameCmd()
	}
	m.frameActive = false
	return m, nil
}

func (m *LoopModel) handleFeedLoaded(msg feedLoadedMsg) (tea.Model, tea.Cmd) {
	m.fetchInFlight = false
	m.lastFetchAt = msg.at

	if msg.err != nil {
		m.lastFetchOK = false
		m.recordSample(FetchSample{At: msg.at, Failed: true})
		// Shown only while nothing has ever loaded; stale data keeps
		// displaying otherwise.
		if !m.everLoaded {
			m.lastError = msg.err.Error()
		}
		m.log.Warn().Err(msg.err).Bool("ever_loaded", m.everLoaded).Msg("feed poll failed")
		return m, nil
	}

	m.lastFetchOK = true
	m.lastError = ""
	m.everLoaded = true
	m.recordSample(FetchSample{At: msg.at, Count: len(msg.cards)})

	m.sched.ApplyPendingData(msg.cards, msg.at)

	var cmd tea.Cmd
	if m.syncEntrances() {
		cmd = m.startFrameLoop()
	}
	return m, cmd
}

func (m *LoopModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal on stack gets the key first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	keys := m.keys
	switch {
	case key.Matches(msg, keys.ForceQuit), key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.PushModal(newHelpModal(keys))
		return m, nil

	case key.Matches(msg, keys.Activity):
		m.PushModal(newActivityModal(m.history))
		return m, nil

	case key.Matches(msg, keys.Escape):
		m.PopModal()
		return m, nil

	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, keys.ForceCycle):
		if m.sched.StartCycle(time.Now()) {
			return m, m.startFrameLoop()
		}
		return m, nil

	case key.Matches(msg, keys.CyclePolicy):
		if m.sched.Config().Selection == scheduler.SelectRandom {
			m.sched.SetSelectionPolicy(scheduler.SelectRoundRobin)
		} else {
			m.sched.SetSelectionPolicy(scheduler.SelectRandom)
		}
		return m, nil

	case key.Matches(msg, keys.MergePolicy):
		if m.sched.Config().Merge == scheduler.MergeFront {
			m.sched.SetMergePolicy(scheduler.MergeBackEvict)
		} else {
			m.sched.SetMergePolicy(scheduler.MergeFront)
		}
		return m, nil

	case key.Matches(msg, keys.RefreshNow):
		if m.fetchInFlight {
			return m, nil
		}
		m.fetchInFlight = true
		return m, m.fetchCmd()
	}

	return m, nil
}
