package model

import "context"

// CardSource fetches the current card list from wherever cards live.
// Implemented by feed.Client; tests substitute fakes.
type CardSource interface {
	Fetch(ctx context.Context) ([]Card, error)
}
