package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DebugPageModel shows the session log: load notices, autosave
// confirmations, and errors, newest at the bottom.
type DebugPageModel struct {
	log      *SessionLog
	viewport viewport.Model

	width  int
	height int
	styles Styles
}

// NewDebugPageModel creates the session log page.
func NewDebugPageModel(log *SessionLog, styles Styles) DebugPageModel {
	return DebugPageModel{
		log:      log,
		viewport: viewport.New(80, 10),
		styles:   styles,
	}
}

// SetSize updates the page dimensions.
func (m *DebugPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = ContentWidth(width)
	m.viewport.Height = height - TabBarHeight - HelpHeight - 4
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
}

// Update handles messages for the debug page.
func (m DebugPageModel) Update(msg tea.Msg) (DebugPageModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the session log.
func (m DebugPageModel) View() string {
	title := m.styles.Title.Render("Session log")

	if m.log.Len() == 0 {
		return m.styles.Content.Render(title + "\n" + m.styles.Muted.Render("(nothing logged yet)"))
	}

	m.viewport.SetContent(strings.Join(m.log.Lines(), "\n"))
	m.viewport.GotoBottom()

	return m.styles.Content.Render(title + "\n" + m.viewport.View())
}

// HelpLine returns the key hints shown under the page.
func (m DebugPageModel) HelpLine() string {
	return "↑/↓: scroll • tab: pages • q: quit"
}
