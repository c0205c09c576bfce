package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// GameSettings holds everything needed to start a game session.
type GameSettings struct {
	Runtime core.RuntimeConfig // Zero rows or columns fit the terminal
	Render  snake.RenderOptions
	Player  string
	Store   *storage.Store // Nil disables recording
	Keep    int            // Recordings kept after each save, 0 keeps all
	Logger  *log.Logger
}

// FrameMsg carries a frame published by the game loop.
type FrameMsg snake.Frame

// loopDoneMsg is sent when the loop goroutine returns.
type loopDoneMsg struct {
	err error
}

// GameModel is the Bubble Tea model for a running snake game. The board is
// driven by a snake.Loop on its own goroutine; the model only forwards
// input and draws the frames the loop publishes.
type GameModel struct {
	loop   *snake.Loop
	ctx    context.Context
	cancel context.CancelFunc

	screen *core.Screen
	render snake.RenderOptions
	frame  snake.Frame
	keys   GameKeyMap
	help   help.Model
	logger *log.Logger

	width      int
	height     int
	quitting   bool
	backToMenu bool
	err        error
}

// NewGameModel creates a board and its loop for a terminal of the given size.
// The loop stops when parent is done or the model is stopped.
func NewGameModel(parent context.Context, settings GameSettings, width, height int) (GameModel, error) {
	logger := settings.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg := settings.Runtime
	if cfg.Rows == 0 || cfg.Columns == 0 {
		rows, columns := FitBoard(width, height, settings.Render.CellWidth)
		if cfg.Rows == 0 {
			cfg.Rows = rows
		}
		if cfg.Columns == 0 {
			cfg.Columns = columns
		}
	}

	board, err := snake.NewBoard(cfg)
	if err != nil {
		return GameModel{}, err
	}

	loop := snake.NewLoop(board, snake.LoopConfig{
		Interval:   cfg.Interval,
		Player:     settings.Player,
		Logger:     logger,
		OnGameOver: recordGame(settings.Store, settings.Keep, logger),
	})

	ctx, cancel := context.WithCancel(parent)

	h := help.New()
	h.Width = width

	return GameModel{
		loop:   loop,
		ctx:    ctx,
		cancel: cancel,
		screen: core.NewScreen(width, max(height-1, 0)),
		render: settings.Render,
		frame:  snake.Frame{Snapshot: board.Snapshot()},
		keys:   DefaultGameKeyMap(),
		help:   h,
		logger: logger,
		width:  width,
		height: height,
	}, nil
}

// recordGame returns the game over callback that stores recordings.
func recordGame(store *storage.Store, keep int, logger *log.Logger) func(snake.Recording) {
	if store == nil {
		return nil
	}
	return func(rec snake.Recording) {
		id, err := store.SaveRecording(rec)
		if err != nil {
			logger.Error("could not save recording", "error", err)
			return
		}
		logger.Debug("recording saved", "id", id, "score", rec.Score)

		if keep > 0 {
			if n, err := store.Prune(keep); err != nil {
				logger.Warn("could not prune recordings", "error", err)
			} else if n > 0 {
				logger.Debug("pruned recordings", "removed", n)
			}
		}
	}
}

// Init starts the loop goroutine and waits for the first frame.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(m.runLoop(), m.waitForFrame())
}

func (m GameModel) runLoop() tea.Cmd {
	loop, ctx := m.loop, m.ctx
	return func() tea.Msg {
		return loopDoneMsg{err: loop.Run(ctx)}
	}
}

// waitForFrame blocks until the loop publishes a frame or the game stops.
func (m GameModel) waitForFrame() tea.Cmd {
	frames, ctx := m.loop.Frames(), m.ctx
	return func() tea.Msg {
		select {
		case f := <-frames:
			return FrameMsg(f)
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = snake.Frame(msg)
		return m, m.waitForFrame()

	case loopDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("game loop stopped", "error", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.Stop()
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.loop.GameOver() {
		if action == core.ActionBack {
			m.Stop()
			m.backToMenu = true
			return m, nil
		}
		// Any other key starts the next game.
		m.loop.RequestReset()
		return m, nil
	}

	if dir, ok := actionDirection(action); ok {
		m.loop.SetHeading(dir)
	}
	return m, nil
}

// Stop cancels the game loop.
func (m GameModel) Stop() {
	m.cancel()
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snake.Render(m.frame.Snapshot, m.screen, m.render)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Frame returns the most recently received frame.
func (m GameModel) Frame() snake.Frame {
	return m.frame
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that stopped the loop, if any.
func (m GameModel) Err() error {
	return m.err
}
