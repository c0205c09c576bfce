// Package config provides YAML-based configuration loading and speed tiers
// for the snake game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

var (
	// ErrUnknownSpeed is returned for a speed tier that is not slow, normal or fast.
	ErrUnknownSpeed = errors.New("config: unknown speed")
	// ErrUnknownColor is returned for a color name missing from the palette.
	ErrUnknownColor = errors.New("config: unknown color")
)

// Config contains all configuration for the snake game.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Speed   Speed         `yaml:"speed"`
	Seed    int64         `yaml:"seed"` // 0 picks a time-based seed
	Colors  ColorConfig   `yaml:"colors"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the grid size and how wide each cell is drawn.
type BoardConfig struct {
	Rows      int `yaml:"rows"`    // 0 fits the terminal
	Columns   int `yaml:"columns"` // 0 fits the terminal
	CellWidth int `yaml:"cell_width"`
}

// ColorConfig names palette colors for the board entities.
type ColorConfig struct {
	Snake      string `yaml:"snake"`
	Food       string `yaml:"food"`
	Background string `yaml:"background"`
}

// StorageConfig controls where finished games are recorded.
type StorageConfig struct {
	Path     string `yaml:"path"`
	Keep     int    `yaml:"keep"` // Recordings kept after pruning, 0 keeps all
	Disabled bool   `yaml:"disabled"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty discards logs during interactive play
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Board.Rows < 0 || c.Board.Columns < 0 {
		return fmt.Errorf("config: board size must not be negative, got %dx%d", c.Board.Rows, c.Board.Columns)
	}
	if c.Board.CellWidth < 1 {
		return fmt.Errorf("config: cell_width must be at least 1, got %d", c.Board.CellWidth)
	}
	if _, err := ParseSpeed(string(c.Speed)); err != nil {
		return err
	}
	for _, name := range []string{c.Colors.Snake, c.Colors.Food, c.Colors.Background} {
		if _, err := parseColor(name); err != nil {
			return err
		}
	}
	if c.Storage.Keep < 0 {
		return fmt.Errorf("config: storage.keep must not be negative, got %d", c.Storage.Keep)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	return nil
}

// RuntimeConfig converts the configuration into engine settings. Rows and
// columns are copied as-is; callers resolve zero sizes first.
func (c Config) RuntimeConfig() (core.RuntimeConfig, error) {
	speed, err := ParseSpeed(string(c.Speed))
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	snakeColor, err := parseColor(c.Colors.Snake)
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	foodColor, err := parseColor(c.Colors.Food)
	if err != nil {
		return core.RuntimeConfig{}, err
	}

	return core.RuntimeConfig{
		Rows:       c.Board.Rows,
		Columns:    c.Board.Columns,
		Interval:   speed.Interval(),
		Seed:       c.Seed,
		SnakeColor: snakeColor,
		FoodColor:  foodColor,
	}, nil
}

// BackgroundColor returns the color of empty cells, ColorDefault when unset.
func (c Config) BackgroundColor() core.Color {
	color, err := parseColor(c.Colors.Background)
	if err != nil {
		return core.ColorDefault
	}
	return color
}

// parseColor accepts an empty name as the terminal default.
func parseColor(name string) (core.Color, error) {
	if strings.TrimSpace(name) == "" {
		return core.ColorDefault, nil
	}
	color, err := core.ParseColor(name)
	if err != nil {
		return core.ColorDefault, fmt.Errorf("%w %q", ErrUnknownColor, name)
	}
	return color, nil
}
