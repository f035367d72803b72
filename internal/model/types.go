package model

import "strings"

// Card represents a single participant card shown in the grid.
// It is the canonical type for feed decoding, scheduling, and display.
type Card struct {
	Outlet   string // outlet/shop name, first caption line
	Partner  string // business-partner name, second caption line
	ImageURL string
	New      bool // set while the card's one-time entrance animation is owed
}

// Key returns the composite identity used to match cards across feed
// refreshes. Case-insensitive so feed-side capitalization churn does not
// retrigger entrance animations.
func (c Card) Key() string {
	return strings.ToLower(strings.TrimSpace(c.Outlet)) + "\x00" +
		strings.ToLower(strings.TrimSpace(c.Partner))
}

// Rect is an on-screen bounding box in terminal cell coordinates.
// Float fields so a rect can be interpolated mid-flight; renderers round.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Mid returns the rect's midpoint.
func (r Rect) Mid() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// FeedItem is the wire form of one card in the feed response.
// Older feed deployments send retailerName instead of bpName.
type FeedItem struct {
	OutletName   string `json:"outletName"`
	BpName       string `json:"bpName,omitempty"`
	RetailerName string `json:"retailerName,omitempty"`
	ImageURL     string `json:"imageUrl"`
}

// FeedResponse is the envelope returned by the feed endpoint.
type FeedResponse struct {
	Data []FeedItem `json:"data"`
}

// Card converts a wire item to a display card, applying caption and
// image fallbacks. Missing fields are not an error.
func (it FeedItem) Card() Card {
	partner := it.BpName
	if partner == "" {
		partner = it.RetailerName
	}
	img := it.ImageURL
	if img == "" {
		img = PlaceholderImageURL
	}
	return Card{
		Outlet:   it.OutletName,
		Partner:  partner,
		ImageURL: img,
	}
}

// Cards converts a whole response, keeping at most cap entries.
// The feed returns newest-last; when trimming we keep the most recent.
func (r FeedResponse) Cards(cap int) []Card {
	items := r.Data
	if cap > 0 && len(items) > cap {
		items = items[len(items)-cap:]
	}
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, it.Card())
	}
	return cards
}
