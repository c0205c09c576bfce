package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit int
	flagKeep  int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded games",
	Long: `Open the interactive replay browser.

Controls:
  Up/Down/j/k  - Select a recording
  Enter        - Watch it
  V            - Verify it
  X            - Delete it
  Esc/Q        - Quit

Examples:
  snake replays
  snake replays list --limit 5
  snake replays show 3
  snake replays verify 3
  snake replays prune --keep 50`,
	Args: cobra.NoArgs,
	Run:  runReplayBrowser,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded games, newest first",
	Args:  cobra.NoArgs,
	Run:   runReplaysList,
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recording and its final board",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysShow,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a recording and check its outcome",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysVerify,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

var replaysPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest recordings",
	Args:  cobra.NoArgs,
	Run:   runReplaysPrune,
}

func init() {
	replaysListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of recordings to list")
	replaysPruneCmd.Flags().IntVar(&flagKeep, "keep", 0, "Recordings to keep (default: storage.keep from config)")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
	replaysCmd.AddCommand(replaysPruneCmd)
}

// mustOpenStore opens the replay database or exits.
func mustOpenStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// mustLoadRecording parses id and loads the recording with its inputs.
func mustLoadRecording(store *storage.Store, arg string) snake.Recording {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", arg)
		os.Exit(1)
	}
	rec, err := store.Recording(id)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: replay %d not found\n", id)
		fmt.Fprintln(os.Stderr, "Run 'snake replays list' to see recorded games.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replay: %v\n", err)
		os.Exit(1)
	}
	return rec
}

func runReplayBrowser(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	runtime, err := cfg.RuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunReplayBrowser(store, runtime, renderOptions(cfg), width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay browser: %v\n", err)
		os.Exit(1)
	}
}

func runReplaysList(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	recs, err := store.Recordings(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(recs) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to record the first one!")
		return
	}

	printRecordings(os.Stdout, recs)
}

// printRecordings writes recordings as a table.
func printRecordings(w io.Writer, recs []snake.Recording) {
	const format = "  %-5s  %-12s  %-6s  %-6s  %-5s  %-7s  %s\n"
	fmt.Fprintf(w, format, "ID", "Player", "Score", "Ticks", "End", "Board", "Date")
	fmt.Fprintf(w, format, "--", "------", "-----", "-----", "---", "-----", "----")

	for _, r := range recs {
		row := tui.RecordingRow(r)
		fmt.Fprintf(w, format, row[0], row[1], row[2], row[3], row[4], row[5],
			r.StartedAt.Format("2006-01-02 15:04"))
	}
}

func runReplaysShow(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	rec := mustLoadRecording(store, args[0])

	runtime, err := cfg.RuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	replayer, err := snake.NewReplayer(rec, runtime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	final := replayer.Run()

	fmt.Printf("Replay %d\n", rec.ID)
	fmt.Println()
	fmt.Printf("  Player:   %s\n", rec.Player)
	fmt.Printf("  Board:    %d rows x %d columns\n", rec.Rows, rec.Columns)
	fmt.Printf("  Speed:    %s (%s)\n", config.SpeedForInterval(rec.Interval), rec.Interval)
	fmt.Printf("  Seed:     %d\n", rec.Seed)
	fmt.Printf("  Score:    %d\n", rec.Score)
	fmt.Printf("  Ticks:    %d\n", rec.Ticks)
	fmt.Printf("  End:      %s\n", rec.Reason)
	fmt.Printf("  Inputs:   %d\n", len(rec.Inputs))
	fmt.Printf("  Played:   %s (%s)\n", rec.StartedAt.Format("2006-01-02 15:04:05"), rec.Duration().Round(time.Second))
	fmt.Println()

	fmt.Print(final.DebugState())
	fmt.Println()

	// Plain text board, one character per cell, without the game over box.
	final.Playing = true
	opts := snake.RenderOptions{CellWidth: 1, Background: core.ColorDefault, Border: core.ColorDefault}
	screen := core.NewScreen(rec.Columns+2, rec.Rows+3)
	snake.Render(final, screen, opts)
	fmt.Println(screen.String())
}

func runReplaysVerify(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	rec := mustLoadRecording(store, args[0])

	final, err := snake.Verify(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay %d does NOT verify: %v\n", rec.ID, err)
		os.Exit(1)
	}
	fmt.Printf("Replay %d verified: score %d after %d ticks (%s)\n", rec.ID, final.Score, final.Tick, final.Reason)
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	rec := mustLoadRecording(store, args[0])
	if err := store.DeleteRecording(rec.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted replay %d\n", rec.ID)
}

func runReplaysPrune(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	keep := cfg.Storage.Keep
	if cmd.Flags().Changed("keep") {
		keep = flagKeep
	}
	if keep <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --keep must be greater than zero")
		os.Exit(1)
	}

	removed, err := store.Prune(keep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning replays: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %d replays, kept the newest %d\n", removed, keep)
}
