package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/photoloop/photoloop/internal/feed"
	"github.com/photoloop/photoloop/internal/logging"
	"github.com/photoloop/photoloop/internal/scheduler"
	"github.com/photoloop/photoloop/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var endpoint string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/photoloop/config.yml)")
	flag.StringVar(&endpoint, "endpoint", "", "override the feed endpoint URL")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("photoloop - Loop Display\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if endpoint != "" {
		cfg.Endpoint = endpoint
	}

	if err := runDisplay(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDisplay(cfg cliConfig) error {
	selection, err := cfg.selection()
	if err != nil {
		return err
	}
	merge, err := cfg.merge()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; runtime logs go to a file.
	log, closeLog, err := logging.NewFileLogger("photoloop", cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	client := feed.NewClient(feed.Config{
		Endpoint:    cfg.Endpoint,
		Cap:         cfg.FeedCap,
		MinInterval: cfg.PollInterval / 2,
	}, log)

	loop := tui.NewLoopModel(tui.Config{
		GridRows:     cfg.GridRows,
		GridCols:     cfg.GridCols,
		PollInterval: cfg.PollInterval,
		FrameRate:    cfg.FrameRate,
		Scheduler: scheduler.Config{
			CountdownPeriod: cfg.CountdownPeriod,
			TravelTime:      cfg.TravelTime,
			CaptionDelay:    cfg.CaptionDelay,
			HoldTime:        cfg.HoldTime,
			ReturnDelay:     cfg.ReturnDelay,
			NewBadgeTime:    cfg.NewBadgeTime,
			Selection:       selection,
			Merge:           merge,
			Capacity:        cfg.GridRows * cfg.GridCols * 2,
		},
	}, client, log)

	log.Info().Str("endpoint", cfg.Endpoint).Str("version", version).Msg("starting loop display")

	p := tea.NewProgram(loop, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("the loop display requires a real terminal")
		}
		return fmt.Errorf("error running display: %w", err)
	}

	return nil
}
