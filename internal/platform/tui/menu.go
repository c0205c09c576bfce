package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("100"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
)

// MenuModel lets the player pick a speed before a game.
type MenuModel struct {
	speeds      []config.Speed
	cursor      int
	width       int
	height      int
	withReplays bool
	quitting    bool
	replays     bool
	selected    *config.Speed
}

// NewMenuModel creates a speed menu with the cursor on initial.
// withReplays adds the shortcut to the replay browser.
func NewMenuModel(initial config.Speed, width, height int, withReplays bool) MenuModel {
	m := MenuModel{
		speeds:      config.Speeds(),
		width:       width,
		height:      height,
		withReplays: withReplays,
	}
	for i, s := range m.speeds {
		if s == initial {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.speeds)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.speeds[m.cursor]
		m.selected = &selected

	case MenuActionReplays:
		if m.withReplays {
			m.replays = true
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select speed:", m.width))
	b.WriteString("\n\n")

	for i, s := range m.speeds {
		line := fmt.Sprintf("  %-7s %s", s, dimStyle.Render(s.Description()))
		if i == m.cursor {
			line = cursorStyle.Render("> ") + fmt.Sprintf("%-7s %s", s, dimStyle.Render(s.Description()))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Q: Quit"
	if m.withReplays {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Tab: Replays  |  Q: Quit"
	}
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen speed, or nil if none selected yet.
func (m MenuModel) Selected() *config.Speed {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsReplays returns true if user asked for the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.replays
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
