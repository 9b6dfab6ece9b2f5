// Package config loads application configuration with viper.
//
// Precedence, lowest to highest: built-in defaults, an optional config file
// (explicit path, or finbro.yaml discovered in the working directory or
// $HOME/.finbro), then FINBRO_-prefixed environment variables
// (e.g. FINBRO_STORAGE_PATH, FINBRO_LOG_LEVEL).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig locates the local database.
type StorageConfig struct {
	// Path is the SQLite database file backing all persisted state.
	Path string `mapstructure:"path"`
}

// HistoryConfig tunes the undo stack.
type HistoryConfig struct {
	// Limit is the maximum number of undoable commands retained.
	Limit int `mapstructure:"limit"`
}

// LogConfig tunes logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// Load reads configuration. path may be empty, in which case the default
// search locations are tried; a missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.path", "./data/finbro.db")
	v.SetDefault("history.limit", 20)
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("finbro")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.finbro")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("FINBRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
