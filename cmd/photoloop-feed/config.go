package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/photoloop/photoloop/internal/model"
)

// feedConfig is the feed service runtime configuration.
type feedConfig struct {
	ListenAddr string `mapstructure:"listen-addr"`
	DeckPath   string `mapstructure:"deck-path"`
	LogLevel   string `mapstructure:"log-level"`
}

func loadFeedConfig(configPath string) (feedConfig, error) {
	var cfg feedConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PHOTOLOOP_FEED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("listen-addr", model.DefaultListenAddr)
	v.SetDefault("deck-path", filepath.Join(home, ".config", "photoloop", "deck.yml"))
	v.SetDefault("log-level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "photoloop", "feed.yml"))
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
