// Package config provides YAML-based configuration loading with environment
// overrides for go-pairs.
package config

import (
	"fmt"
	"time"

	"go-pairs/internal/gameerrors"
	"go-pairs/internal/kvstore"

	"github.com/charmbracelet/log"
)

// Config contains all runtime configuration.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	Storage       string `yaml:"storage"`         // file, sqlite or memory
	RevealDelayMS int    `yaml:"reveal_delay_ms"` // mismatched pair stays up this long
	LevelsFile    string `yaml:"levels_file"`     // empty = built-in catalog
	LogLevel      string `yaml:"log_level"`
	Seed          int64  `yaml:"seed"` // 0 = seed from the clock

	Path string `yaml:"-"` // file the values came from, empty for the embedded default
}

// RevealDelay returns the reveal delay as a duration.
func (c Config) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelayMS) * time.Millisecond
}

// Level returns the parsed log level. Validate guarantees it parses.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate reports the first invalid field as a CONFIG_INVALID error.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return gameerrors.ErrConfigInvalid("data_dir must be set")
	}
	switch c.Storage {
	case kvstore.BackendFile, kvstore.BackendSQLite, kvstore.BackendMemory:
	default:
		return gameerrors.ErrConfigInvalid(fmt.Sprintf("unknown storage %q", c.Storage))
	}
	if c.RevealDelayMS < 0 {
		return gameerrors.ErrConfigInvalid(fmt.Sprintf("reveal_delay_ms must not be negative, got %d", c.RevealDelayMS))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return gameerrors.ErrConfigInvalid(fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	return nil
}
