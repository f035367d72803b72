// Package feed fetches the card list from the remote photo-loop
// endpoint. The client is synchronous; the display loop polls it from a
// background command on its own interval.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/photoloop/photoloop/internal/model"
)

// Config holds feed client settings.
type Config struct {
	Endpoint string
	// Cap bounds how many cards a fetch may return; the most recent
	// entries win. 0 means model.DefaultFeedCap.
	Cap int
	// Timeout bounds a single request. 0 means 10s.
	Timeout time.Duration
	// MinInterval floors the spacing between requests regardless of how
	// aggressively the caller polls. 0 disables the floor.
	MinInterval time.Duration
}

// Client fetches and decodes the feed.
type Client struct {
	endpoint string
	cap      int
	httpc    *http.Client
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// NewClient creates a feed client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = model.DefaultFeedEndpoint
	}
	if cfg.Cap <= 0 {
		cfg.Cap = model.DefaultFeedCap
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.MinInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	return &Client{
		endpoint: cfg.Endpoint,
		cap:      cfg.Cap,
		httpc:    &http.Client{Timeout: cfg.Timeout},
		limiter:  limiter,
		log:      log.With().Str("component", "feed").Logger(),
	}
}

// Fetch performs one GET against the endpoint and returns the decoded
// card list, trimmed to the configured cap. Malformed entries are not
// rejected; missing fields fall back at the model layer.
func (c *Client) Fetch(ctx context.Context) ([]model.Card, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("endpoint", c.endpoint).Msg("feed fetch failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("feed returned status %d", resp.StatusCode)
		c.log.Warn().Int("status", resp.StatusCode).Str("endpoint", c.endpoint).Msg("feed fetch failed")
		return nil, err
	}

	var body model.FeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn().Err(err).Msg("feed decode failed")
		return nil, fmt.Errorf("decoding feed response: %w", err)
	}

	cards := body.Cards(c.cap)
	c.log.Debug().Int("received", len(body.Data)).Int("kept", len(cards)).Msg("feed fetch ok")
	return cards, nil
}
