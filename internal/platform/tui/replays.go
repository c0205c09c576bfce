package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxRecordings is the number of recordings loaded into the browser.
const maxRecordings = 100

// ReplayKeyMap defines the key bindings for the replay browser and player.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Verify key.Binding
	Delete key.Binding
	Pause  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Verify, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.Verify, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel lists stored recordings and plays them back.
type ReplayBrowserModel struct {
	store   *storage.Store
	base    core.RuntimeConfig // Colors for playback
	render  snake.RenderOptions
	recs    []snake.Recording
	table   table.Model
	help    help.Model
	keys    ReplayKeyMap
	status  string
	player  *ReplayModel
	width   int
	height  int
	quit    bool
	back    bool
	loadErr error

	quitOnBack bool // Standalone browsers exit instead of returning to a menu
}

// NewReplayBrowserModel creates a browser over the recordings in store.
func NewReplayBrowserModel(store *storage.Store, base core.RuntimeConfig, render snake.RenderOptions, width, height int) ReplayBrowserModel {
	h := help.New()
	h.Width = width

	m := ReplayBrowserModel{
		store:  store,
		base:   base,
		render: render,
		help:   h,
		keys:   DefaultReplayKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRecordings()
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "End", Width: 5},
		{Title: "Board", Width: 7},
		{Title: "Speed", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("100")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRecordings reloads the table rows from the store.
func (m *ReplayBrowserModel) loadRecordings() {
	m.recs, m.loadErr = nil, nil
	if m.store != nil {
		m.recs, m.loadErr = m.store.Recordings(maxRecordings)
	}

	rows := make([]table.Row, len(m.recs))
	for i, r := range m.recs {
		rows[i] = RecordingRow(r)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// RecordingRow formats a recording for the browser table.
func RecordingRow(r snake.Recording) table.Row {
	player := r.Player
	if player == "" {
		player = "-"
	}
	return table.Row{
		fmt.Sprintf("%d", r.ID),
		player,
		fmt.Sprintf("%d", r.Score),
		fmt.Sprintf("%d", r.Ticks),
		r.Reason.String(),
		fmt.Sprintf("%dx%d", r.Columns, r.Rows),
		r.Interval.String(),
		r.StartedAt.Format("Jan 02 15:04"),
	}
}

func (m ReplayBrowserModel) current() (snake.Recording, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.recs) {
		return snake.Recording{}, false
	}
	return m.recs[i], true
}

// Init initializes the browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser and the embedded player.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.help.Width = wsm.Width
		m.table = m.createTable()
		m.loadRecordings()
	}

	if m.player != nil {
		return m.updatePlayer(msg)
	}

	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			if m.quitOnBack {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Play):
			return m.openPlayer()

		case key.Matches(msg, m.keys.Verify):
			m.status = m.verifyCurrent()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.status = m.deleteCurrent()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReplayBrowserModel) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.player.Update(msg)
	if player, ok := newModel.(ReplayModel); ok {
		m.player = &player
	}

	if m.player.IsQuitting() {
		m.quit = true
		return m, tea.Quit
	}
	if m.player.BackToList() {
		m.player = nil
		return m, nil
	}
	return m, cmd
}

// openPlayer loads the selected recording with its inputs and starts playback.
func (m ReplayBrowserModel) openPlayer() (tea.Model, tea.Cmd) {
	summary, ok := m.current()
	if !ok {
		return m, nil
	}
	rec, err := m.store.Recording(summary.ID)
	if err != nil {
		m.status = fmt.Sprintf("cannot load replay %d: %v", summary.ID, err)
		return m, nil
	}

	player, err := NewReplayModel(rec, m.base, m.render, m.width, m.height)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.player = &player
	return m, m.player.Init()
}

func (m ReplayBrowserModel) verifyCurrent() string {
	summary, ok := m.current()
	if !ok {
		return ""
	}
	rec, err := m.store.Recording(summary.ID)
	if err != nil {
		return fmt.Sprintf("cannot load replay %d: %v", summary.ID, err)
	}
	if _, err := snake.Verify(rec); err != nil {
		return fmt.Sprintf("replay %d does NOT verify: %v", rec.ID, err)
	}
	return fmt.Sprintf("replay %d verified: score %d in %d ticks", rec.ID, rec.Score, rec.Ticks)
}

func (m *ReplayBrowserModel) deleteCurrent() string {
	summary, ok := m.current()
	if !ok {
		return ""
	}
	if err := m.store.DeleteRecording(summary.ID); err != nil {
		return fmt.Sprintf("cannot delete replay %d: %v", summary.ID, err)
	}
	m.loadRecordings()
	return fmt.Sprintf("replay %d deleted", summary.ID)
}

// View renders the browser or the active player.
func (m ReplayBrowserModel) View() string {
	if m.quit || m.back {
		return ""
	}
	if m.player != nil {
		return m.player.View()
	}

	var b strings.Builder

	b.WriteString(centerText(titleStyle.Render("REPLAYS"), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ReplayBrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Recording is disabled.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load replays:\n" + m.loadErr.Error())
	case len(m.recs) == 0:
		return emptyStyle.Render("No replays recorded yet.\nFinish a game to record one!")
	}
	return m.table.View()
}

// BackToMenu returns true if user pressed back.
func (m ReplayBrowserModel) BackToMenu() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quit
}

// ReplayModel plays a recording back at its recorded speed.
type ReplayModel struct {
	replayer *snake.Replayer
	interval time.Duration
	screen   *core.Screen
	render   snake.RenderOptions
	keys     ReplayKeyMap
	paused   bool
	ticking  bool // A tick command is in flight
	quit     bool
	back     bool
}

// NewReplayModel prepares playback of rec.
func NewReplayModel(rec snake.Recording, base core.RuntimeConfig, render snake.RenderOptions, width, height int) (ReplayModel, error) {
	r, err := snake.NewReplayer(rec, base)
	if err != nil {
		return ReplayModel{}, err
	}
	interval := rec.Interval
	if interval <= 0 {
		interval = snake.DefaultInterval
	}
	return ReplayModel{
		replayer: r,
		interval: interval,
		screen:   core.NewScreen(width, max(height-1, 0)),
		render:   render,
		keys:     DefaultReplayKeyMap(),
		ticking:  true,
	}, nil
}

// Init starts playback.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update advances playback and handles keys.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused && !m.ticking {
				m.ticking = true
				return m, tickCmd(m.interval)
			}
		}

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))

	case TickMsg:
		if !m.paused && !m.back && m.replayer.Step() {
			return m, tickCmd(m.interval)
		}
		m.ticking = false
	}
	return m, nil
}

// View renders the replay frame with a status line.
func (m ReplayModel) View() string {
	if m.quit || m.back {
		return ""
	}

	snap := m.replayer.Snapshot()
	snake.Render(snap, m.screen, m.render)

	rec := m.replayer.Recording()
	state := "playing"
	switch {
	case m.replayer.Done():
		state = "finished"
	case m.paused:
		state = "paused"
	}
	status := fmt.Sprintf("replay %d by %s  tick %d/%d  %s  (space: pause, esc: back)",
		rec.ID, rec.Player, snap.Tick, rec.Ticks, state)

	return RenderScreen(m.screen) + "\n" + dimStyle.Render(status)
}

// Snapshot returns the current playback state.
func (m ReplayModel) Snapshot() snake.Snapshot {
	return m.replayer.Snapshot()
}

// IsQuitting returns true if user requested to quit entirely.
func (m ReplayModel) IsQuitting() bool {
	return m.quit
}

// BackToList returns true if user requested to go back to the list.
func (m ReplayModel) BackToList() bool {
	return m.back
}

// RunReplayBrowser runs the replay browser on its own.
func RunReplayBrowser(store *storage.Store, base core.RuntimeConfig, render snake.RenderOptions, width, height int) error {
	model := NewReplayBrowserModel(store, base, render, width, height)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
