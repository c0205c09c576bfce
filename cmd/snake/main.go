// snake is a terminal snake game with recorded, verifiable replays.
//
// Usage:
//
//	snake play               - Play in the terminal
//	snake serve              - Start SSH server for remote play
//	snake replays            - Browse recorded games
//	snake replays list       - List recorded games
//	snake replays verify <id> - Re-simulate a recording and check its outcome
//
// Global flags:
//
//	--config <path>     - Path to a config YAML (default: search order in internal/config)
//	--db <path>         - Set replay database path (default: ~/.snake/snake.db)
//	--seed <value>      - Set RNG seed for reproducible games
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake is a terminal version of the classic game. Steer the snake
around the board, eat food to grow, and avoid the walls and your own tail.

Every finished game is recorded and can be replayed or verified later.

Available commands:
  play     - Play a game in this terminal
  serve    - Start SSH server for remote play
  replays  - Browse, verify and manage recorded games

Examples:
  snake play
  snake play --speed fast --rows 20 --columns 40
  snake serve --address :2222
  snake replays verify 12`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the logger described by cfg. Output goes to cfg.File
// when set, otherwise to fallback. The returned function closes the file.
func newLogger(cfg config.LogConfig, prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	out, closeFn := fallback, func() {}
	if cfg.File != "" {
		path, err := config.ExpandHome(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		logger.SetLevel(level)
	}
	return logger, closeFn, nil
}

// openStore opens the replay database, or returns nil when recording is
// disabled or the database cannot be opened.
func openStore(cfg config.StorageConfig, logger *log.Logger) *storage.Store {
	if cfg.Disabled {
		return nil
	}
	store, err := storage.Open(cfg.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("recording disabled", "path", cfg.Path, "error", err)
		// Continue without storage - game still works
		return nil
	}
	return store
}

// renderOptions returns how boards are drawn for cfg.
func renderOptions(cfg config.Config) snake.RenderOptions {
	opts := snake.DefaultRenderOptions()
	opts.CellWidth = cfg.Board.CellWidth
	opts.Background = cfg.BackgroundColor()
	return opts
}
