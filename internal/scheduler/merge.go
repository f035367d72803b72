package scheduler

import (
	"time"

	"github.com/photoloop/photoloop/internal/model"
)

// MergePolicy controls where newly-arrived cards land in the grid.
// Both orderings exist in deployed loop displays; neither is canonical.
type MergePolicy int

const (
	// MergeFront places new cards at the front of the grid.
	MergeFront MergePolicy = iota
	// MergeBackEvict keeps feed order (new cards arrive at the back)
	// and evicts from the front once the grid capacity is exceeded.
	MergeBackEvict
)

func (p MergePolicy) String() string {
	if p == MergeBackEvict {
		return "back-evict"
	}
	return "front"
}

// ApplyPendingData replaces the visible card list. While a cycle is in
// flight the list is buffered and applied at the next idle transition,
// so the moving card's grid slot never changes under it.
func (s *Scheduler) ApplyPendingData(cards []model.Card, now time.Time) {
	if s.phase != PhaseIdle {
		s.pending = cards
		s.buffered = true
		return
	}
	s.applyNow(cards, now)
}

// RefreshPending reports whether a buffered list is waiting for idle.
func (s *Scheduler) RefreshPending() bool { return s.buffered }

// applyNow swaps in the new list, flagging cards absent from the
// previous list for one entrance animation. The very first load is not
// treated as an arrival wave: nothing is flagged.
func (s *Scheduler) applyNow(incoming []model.Card, now time.Time) {
	if len(s.cards) == 0 {
		// The feed cap and the grid capacity are configured
		// independently; keep the most recent entries, like the feed
		// trim does.
		if len(incoming) > s.cfg.Capacity {
			incoming = incoming[len(incoming)-s.cfg.Capacity:]
		}
		s.cards = append([]model.Card(nil), incoming...)
		s.rrCursor = 0
		s.lastIndex = -1
		return
	}

	known := make(map[string]bool, len(s.cards))
	for _, c := range s.cards {
		known[c.Key()] = true
	}

	var fresh, seen []model.Card
	for _, c := range incoming {
		if known[c.Key()] {
			c.New = false
			seen = append(seen, c)
			continue
		}
		c.New = true
		s.badgeExpiry[c.Key()] = now.Add(s.cfg.NewBadgeTime)
		fresh = append(fresh, c)
	}

	var next []model.Card
	switch s.cfg.Merge {
	case MergeBackEvict:
		next = append(seen, fresh...)
		if len(next) > s.cfg.Capacity {
			next = next[len(next)-s.cfg.Capacity:]
		}
	default: // MergeFront
		next = append(fresh, seen...)
		if len(next) > s.cfg.Capacity {
			next = next[:s.cfg.Capacity]
		}
	}
	s.cards = next

	// Selection state is positional; a reshuffled list invalidates it.
	if s.lastIndex >= len(s.cards) {
		s.lastIndex = -1
	}
	if len(s.cards) > 0 {
		s.rrCursor = s.rrCursor % len(s.cards)
	} else {
		s.rrCursor = 0
	}
}
