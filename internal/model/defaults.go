package model

import "time"

// Shared defaults used by both the display client and the feed service.
const (
	DefaultCountdownPeriod = 3 * time.Second
	DefaultTravelTime      = 900 * time.Millisecond
	DefaultCaptionDelay    = 500 * time.Millisecond
	DefaultHoldTime        = 2500 * time.Millisecond
	DefaultReturnDelay     = 500 * time.Millisecond
	DefaultNewBadgeTime    = 2 * time.Second

	DefaultPollInterval = 30 * time.Second
	DefaultFeedCap      = 20

	DefaultGridRows     = 5 // rows per column block
	DefaultGridCols     = 2 // columns per side (left and right blocks)
	DefaultListenAddr   = "127.0.0.1:3000"
	DefaultFeedEndpoint = "http://127.0.0.1:3000/api/photoloop"

	PlaceholderImageURL = "about:placeholder"
)
