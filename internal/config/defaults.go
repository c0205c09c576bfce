package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			CellWidth: 2,
		},
		Speed: SpeedNormal,
		Colors: ColorConfig{
			Snake:      "olive",
			Food:       "sienna",
			Background: "charcoal",
		},
		Storage: StorageConfig{
			Path: "~/.snake/snake.db",
			Keep: 200,
		},
		SSH: SSHConfig{
			Address:     ":2222",
			HostKey:     ".ssh/snake_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
