package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go-pairs/internal/kvstore"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "GOPAIRS_DATA_DIR"
	EnvStorage  = "GOPAIRS_STORAGE"
	EnvLogLevel = "GOPAIRS_LOG_LEVEL"
)

// Load reads the configuration, applies environment overrides, expands ~ in
// data_dir and validates the result.
// Search order: customPath -> ~/.config/go-pairs/config.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	applyEnv(&cfg)

	dir, err := kvstore.ExpandHome(cfg.DataDir)
	if err != nil {
		return cfg, err
	}
	cfg.DataDir = dir

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Path = customPath
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				cfg.Path = userCfgPath
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(DefaultYAML())
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the defaults, so absent keys keep their default.
func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "go-pairs", "config.yaml")
}

// LoadDotEnv loads variables from the given .env files (default ./.env)
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := getEnv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := getEnv(EnvStorage); v != "" {
		cfg.Storage = strings.ToLower(v)
	}
	if v := getEnv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
