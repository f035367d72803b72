package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/photoloop/photoloop/internal/model"
	"github.com/photoloop/photoloop/internal/scheduler"
)

// cliConfig holds only display-relevant configuration.
type cliConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	PollInterval    time.Duration `mapstructure:"poll-interval"`
	FeedCap         int           `mapstructure:"feed-cap"`
	CountdownPeriod time.Duration `mapstructure:"countdown-period"`
	TravelTime      time.Duration `mapstructure:"travel-time"`
	CaptionDelay    time.Duration `mapstructure:"caption-delay"`
	HoldTime        time.Duration `mapstructure:"hold-time"`
	ReturnDelay     time.Duration `mapstructure:"return-delay"`
	NewBadgeTime    time.Duration `mapstructure:"new-badge-time"`
	GridRows        int           `mapstructure:"grid-rows"`
	GridCols        int           `mapstructure:"grid-cols"`
	FrameRate       int           `mapstructure:"frame-rate"`
	SelectionPolicy string        `mapstructure:"selection-policy"`
	MergePolicy     string        `mapstructure:"merge-policy"`
	LogLevel        string        `mapstructure:"log-level"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PHOTOLOOP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("endpoint", model.DefaultFeedEndpoint)
	v.SetDefault("poll-interval", model.DefaultPollInterval)
	v.SetDefault("feed-cap", model.DefaultFeedCap)
	v.SetDefault("countdown-period", model.DefaultCountdownPeriod)
	v.SetDefault("travel-time", model.DefaultTravelTime)
	v.SetDefault("caption-delay", model.DefaultCaptionDelay)
	v.SetDefault("hold-time", model.DefaultHoldTime)
	v.SetDefault("return-delay", model.DefaultReturnDelay)
	v.SetDefault("new-badge-time", model.DefaultNewBadgeTime)
	v.SetDefault("grid-rows", model.DefaultGridRows)
	v.SetDefault("grid-cols", model.DefaultGridCols)
	v.SetDefault("frame-rate", 30)
	v.SetDefault("selection-policy", "random")
	v.SetDefault("merge-policy", "front")
	v.SetDefault("log-level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "photoloop", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c cliConfig) selection() (scheduler.SelectionPolicy, error) {
	switch c.SelectionPolicy {
	case "", "random":
		return scheduler.SelectRandom, nil
	case "round-robin":
		return scheduler.SelectRoundRobin, nil
	}
	return 0, fmt.Errorf("unknown selection-policy %q (want random or round-robin)", c.SelectionPolicy)
}

func (c cliConfig) merge() (scheduler.MergePolicy, error) {
	switch c.MergePolicy {
	case "", "front":
		return scheduler.MergeFront, nil
	case "back-evict":
		return scheduler.MergeBackEvict, nil
	}
	return 0, fmt.Errorf("unknown merge-policy %q (want front or back-evict)", c.MergePolicy)
}
