package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:       "~/.go-pairs",
		Storage:       "file",
		RevealDelayMS: 1000,
		LogLevel:      "info",
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
