package scheduler

// SelectionPolicy decides which card animates next.
type SelectionPolicy int

const (
	// SelectRandom picks a uniform random index, retrying a bounded
	// number of times to avoid repeating the previous pick.
	SelectRandom SelectionPolicy = iota
	// SelectRoundRobin advances one index per cycle, wrapping at the end.
	SelectRoundRobin
)

func (p SelectionPolicy) String() string {
	if p == SelectRoundRobin {
		return "round-robin"
	}
	return "random"
}

// randomRetryCap bounds the no-repeat retry loop so a pathological RNG
// streak cannot stall a cycle.
const randomRetryCap = 10

// selectIndex picks the next card index without committing selection
// state; StartCycle advances the round-robin cursor only once the cycle
// actually starts, so an aborted cycle retries the same card.
func (s *Scheduler) selectIndex(n int) int {
	if s.cfg.Selection == SelectRoundRobin {
		return s.rrCursor % n
	}

	idx := s.rng.Intn(n)
	if n <= 1 {
		return idx
	}
	for attempt := 0; attempt < randomRetryCap && idx == s.lastIndex; attempt++ {
		idx = s.rng.Intn(n)
	}
	return idx
}
