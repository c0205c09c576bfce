package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateGame
	stateReplays
)

// SessionModel manages the full session flow: speed menu -> game -> menu,
// with the replay browser reachable from the menu. It is the top-level
// model for both local play and SSH sessions.
type SessionModel struct {
	ctx      context.Context
	settings GameSettings
	speed    config.Speed

	state   sessionState
	menu    MenuModel
	game    *GameModel
	replays *ReplayBrowserModel

	width    int
	height   int
	quitting bool
	err      error
}

// NewSessionModel creates a session. When skipMenu is set the first game
// starts immediately at speed.
func NewSessionModel(ctx context.Context, settings GameSettings, speed config.Speed, skipMenu bool, width, height int) SessionModel {
	m := SessionModel{
		ctx:      ctx,
		settings: settings,
		speed:    speed,
		width:    width,
		height:   height,
		menu:     NewMenuModel(speed, width, height, settings.Store != nil),
	}
	if skipMenu {
		m.startGame()
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	if m.state == stateGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateReplays:
		return m.updateReplays(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsReplays() {
		browser := NewReplayBrowserModel(m.settings.Store, m.settings.Runtime, m.settings.Render, m.width, m.height)
		m.replays = &browser
		m.state = stateReplays
		return m, m.replays.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.speed = *selected
		if !m.startGame() {
			return m, tea.Quit
		}
		return m, m.game.Init()
	}

	return m, cmd
}

// startGame builds a game at the current speed and window size. It returns
// false and records the error when the board cannot be created.
func (m *SessionModel) startGame() bool {
	settings := m.settings
	settings.Runtime.Interval = m.speed.Interval()

	game, err := NewGameModel(m.ctx, settings, m.width, m.height)
	if err != nil {
		m.err = err
		m.quitting = true
		return false
	}
	m.game = &game
	m.state = stateGame
	return true
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.state = stateMenu
		m.menu = NewMenuModel(m.speed, m.width, m.height, m.settings.Store != nil)
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.err = m.game.Err()
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateReplays handles updates when browsing replays.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replays.Update(msg)
	if browser, ok := newModel.(ReplayBrowserModel); ok {
		m.replays = &browser
	}

	if m.replays.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.replays.BackToMenu() {
		m.replays = nil
		m.state = stateMenu
		m.menu = NewMenuModel(m.speed, m.width, m.height, m.settings.Store != nil)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateReplays:
		return m.replays.View()
	}
	return m.menu.View()
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// Run starts a local session in its own Bubble Tea program.
func Run(settings GameSettings, speed config.Speed, skipMenu bool, width, height int) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := NewSessionModel(ctx, settings, speed, skipMenu, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		return m.Err()
	}
	return nil
}
