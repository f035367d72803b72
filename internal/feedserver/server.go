// Package feedserver exposes the photo-loop feed contract over HTTP.
// It stands in for the third-party endpoint the display polls, backed
// by an editable YAML deck file.
package feedserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/photoloop/photoloop/internal/model"
)

// Server serves the feed API.
type Server struct {
	addr      string
	deck      *Deck
	listener  net.Listener
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	log       zerolog.Logger
}

// NewServer creates a feed server on addr backed by deck.
func NewServer(addr string, deck *Deck, log zerolog.Logger) *Server {
	if addr == "" {
		addr = model.DefaultListenAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		deck:   deck,
		ctx:    ctx,
		cancel: cancel,
		log:    log.With().Str("component", "feedserver").Logger(),
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/photoloop", s.handleFeed)
	r.GET("/api/health", s.handleHealth)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.startTime = time.Now()
	s.log.Info().Str("addr", listener.Addr().String()).Msg("feed API listening")

	go s.server.Serve(listener)
	return nil
}

// Addr returns the active listen address.
// Before Start, it returns the configured address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleFeed(c *gin.Context) {
	c.JSON(http.StatusOK, model.FeedResponse{Data: s.deck.Items()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"uptime":     time.Since(s.startTime).String(),
		"card_count": len(s.deck.Items()),
	})
}
