package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/photoloop/photoloop/internal/feedserver"
	"github.com/photoloop/photoloop/internal/logging"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var listenAddr string
	var deckPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/photoloop/feed.yml)")
	flag.StringVar(&listenAddr, "addr", "", "override the listen address")
	flag.StringVar(&deckPath, "deck", "", "override the deck YAML path")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("photoloop-feed - Demo Feed Service\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadFeedConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if deckPath != "" {
		cfg.DeckPath = deckPath
	}

	if err := runFeed(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFeed(cfg feedConfig) error {
	log := logging.NewConsoleLogger(cfg.LogLevel)
	log.Info().Str("version", version).Msg("starting feed service")

	deck, err := feedserver.OpenDeck(cfg.DeckPath, log)
	if err != nil {
		return fmt.Errorf("opening deck: %w", err)
	}
	defer deck.Close()

	srv := feedserver.NewServer(cfg.ListenAddr, deck, log)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting feed server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Heartbeat so an unattended demo feed is observable from logs.
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				log.Info().Int("cards", len(deck.Items())).Msg("feed heartbeat")
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return srv.Stop()
	})

	return g.Wait()
}
