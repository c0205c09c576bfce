package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagRows      int
	flagColumns   int
	flagCellWidth int
	flagSpeed     string
	flagNoRecord  bool
	flagPlayer    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game of snake.

Without --speed a menu asks for the speed first. After a game ends,
press any key to play again or Esc to return to the menu.

Controls:
  Arrows/WASD/HJKL  - Steer
  ?                 - Toggle help
  Esc               - Back to menu (after game over)
  Q/Ctrl+C          - Quit

Speed options:
  slow   - 300ms per tick
  normal - 150ms per tick
  fast   - 75ms per tick

Examples:
  snake play
  snake play --speed fast
  snake play --rows 20 --columns 30 --seed 42
  snake play --no-record`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Board rows (0 = fit the terminal)")
	playCmd.Flags().IntVar(&flagColumns, "columns", 0, "Board columns (0 = fit the terminal)")
	playCmd.Flags().IntVar(&flagCellWidth, "cell-width", 0, "Terminal columns per board cell")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed: slow, normal, fast (skips the menu)")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record finished games")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with recordings (default: $USER)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	if cmd.Flags().Changed("rows") {
		cfg.Board.Rows = flagRows
	}
	if cmd.Flags().Changed("columns") {
		cfg.Board.Columns = flagColumns
	}
	if cmd.Flags().Changed("cell-width") {
		cfg.Board.CellWidth = flagCellWidth
	}
	if flagNoRecord {
		cfg.Storage.Disabled = true
	}

	skipMenu := cmd.Flags().Changed("speed")
	if skipMenu {
		cfg.Speed = config.Speed(flagSpeed)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	speed, err := config.ParseSpeed(string(cfg.Speed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runtime, err := cfg.RuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logs would corrupt the game screen, so they only go to a file.
	logger, closeLog, err := newLogger(cfg.Log, "snake", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	store := openStore(cfg.Storage, logger)

	settings := tui.GameSettings{
		Runtime: runtime,
		Render:  renderOptions(cfg),
		Player:  player,
		Store:   store,
		Keep:    cfg.Storage.Keep,
		Logger:  logger,
	}

	runErr := tui.Run(settings, speed, skipMenu, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
