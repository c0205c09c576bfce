package core

import "time"

// RuntimeConfig contains configuration passed to the engine at initialization.
type RuntimeConfig struct {
	Rows     int           // Grid rows
	Columns  int           // Grid columns
	Interval time.Duration // Time between ticks
	Seed     int64         // RNG seed for deterministic gameplay (0 = time based)

	SnakeColor Color // Color of snake segments
	FoodColor  Color // Color of food items
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Rows:       30,
		Columns:    30,
		Interval:   150 * time.Millisecond,
		Seed:       0, // 0 means use current time
		SnakeColor: ColorOlive,
		FoodColor:  ColorSienna,
	}
}
