package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Embedded default differs from Default():\n%+v\n%+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Embedded default is invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("board:\n  rows: 20\n  columns: 30\nspeed: fast\nssh:\n  idle_timeout: 90s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Rows != 20 || cfg.Board.Columns != 30 {
		t.Errorf("Board = %+v, expected 20x30", cfg.Board)
	}
	if cfg.Speed != SpeedFast {
		t.Errorf("Speed = %q, expected fast", cfg.Speed)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, expected 90s", cfg.SSH.IdleTimeout)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Board.CellWidth != 2 || cfg.Colors.Snake != "olive" {
		t.Errorf("Defaults not preserved: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("speed: ludicrous\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrUnknownSpeed) {
		t.Errorf("Load() error = %v, expected ErrUnknownSpeed", err)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("speed: slow\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Speed != SpeedSlow {
		t.Errorf("Speed = %q, expected slow from the user config", cfg.Speed)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected the default configuration, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"negative rows", func(c *Config) { c.Board.Rows = -1 }, nil},
		{"zero cell width", func(c *Config) { c.Board.CellWidth = 0 }, nil},
		{"unknown speed", func(c *Config) { c.Speed = "warp" }, ErrUnknownSpeed},
		{"unknown snake color", func(c *Config) { c.Colors.Snake = "plaid" }, ErrUnknownColor},
		{"unknown background", func(c *Config) { c.Colors.Background = "mauve" }, ErrUnknownColor},
		{"negative keep", func(c *Config) { c.Storage.Keep = -5 }, nil},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()

			if tc.name == "default" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestRuntimeConfig(t *testing.T) {
	cfg := Default()
	cfg.Board.Rows, cfg.Board.Columns = 12, 18
	cfg.Speed = SpeedSlow
	cfg.Seed = 99
	cfg.Colors.Snake = "bright-green"

	rc, err := cfg.RuntimeConfig()
	if err != nil {
		t.Fatalf("RuntimeConfig() failed: %v", err)
	}
	if rc.Rows != 12 || rc.Columns != 18 || rc.Seed != 99 {
		t.Errorf("Unexpected runtime config: %+v", rc)
	}
	if rc.Interval != 300*time.Millisecond {
		t.Errorf("Interval = %v, expected 300ms", rc.Interval)
	}
	if rc.SnakeColor != core.ColorBrightGreen || rc.FoodColor != core.ColorSienna {
		t.Errorf("Colors = %v/%v", rc.SnakeColor, rc.FoodColor)
	}
	if cfg.BackgroundColor() != core.ColorCharcoal {
		t.Errorf("Background = %v, expected charcoal", cfg.BackgroundColor())
	}

	cfg.Colors.Background = ""
	if cfg.BackgroundColor() != core.ColorDefault {
		t.Error("Empty background should be the terminal default")
	}
}

func TestSpeeds(t *testing.T) {
	tests := []struct {
		name     string
		want     Speed
		interval time.Duration
	}{
		{"slow", SpeedSlow, 300 * time.Millisecond},
		{"Normal", SpeedNormal, 150 * time.Millisecond},
		{" FAST ", SpeedFast, 75 * time.Millisecond},
		{"", SpeedNormal, 150 * time.Millisecond},
	}

	for _, tc := range tests {
		got, err := ParseSpeed(tc.name)
		if err != nil {
			t.Errorf("ParseSpeed(%q) failed: %v", tc.name, err)
			continue
		}
		if got != tc.want || got.Interval() != tc.interval {
			t.Errorf("ParseSpeed(%q) = %q (%v), expected %q (%v)", tc.name, got, got.Interval(), tc.want, tc.interval)
		}
		if SpeedForInterval(got.Interval()) != got {
			t.Errorf("SpeedForInterval(%v) = %q, expected %q", got.Interval(), SpeedForInterval(got.Interval()), got)
		}
	}

	if _, err := ParseSpeed("turbo"); !errors.Is(err, ErrUnknownSpeed) {
		t.Errorf("ParseSpeed(turbo) error = %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.snake/snake.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".snake", "snake.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("Absolute paths should be unchanged, got %q", got)
	}
}
