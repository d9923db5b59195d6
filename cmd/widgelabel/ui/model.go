package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"widgelabel/internal/annotate"
	"widgelabel/internal/config"
	"widgelabel/internal/nav"
	"widgelabel/internal/persist"
	"widgelabel/internal/record"
)

// Tab identifies a page of the interface.
type Tab int

const (
	TabLabelling Tab = iota
	TabData
	TabDebug
)

var tabNames = []string{"Labelling", "Data", "Debug"}

// Model is the root bubbletea model: the tab bar plus the three pages.
type Model struct {
	cfg *config.Config
	log *SessionLog

	activeTab Tab
	label     LabelPageModel
	data      DataPageModel
	debug     DebugPageModel

	width  int
	height int
	styles Styles

	quitting bool
}

// NewModel assembles the interface around an already-loaded session.
func NewModel(cfg *config.Config, store *record.Store, state *annotate.State, files persist.Files, cursor *nav.Cursor, log *SessionLog) Model {
	styles := NewStyles(ThemeByName(cfg.Theme))
	return Model{
		cfg:    cfg,
		log:    log,
		label:  NewLabelPageModel(cfg, store, state, files, cursor, log, styles),
		data:   NewDataPageModel(state, store.IDColumn(), styles),
		debug:  NewDebugPageModel(log, styles),
		styles: styles,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.label.SetSize(msg.Width, msg.Height)
		m.data.SetSize(msg.Width, msg.Height)
		m.debug.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// The jump-to-id overlay owns the keyboard while it is open.
		if m.activeTab == TabLabelling && m.label.InTextEntry() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			m.activeTab = (m.activeTab + 1) % Tab(len(tabNames))
			return m, nil

		case "shift+tab":
			m.activeTab = (m.activeTab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabLabelling:
		m.label, cmd = m.label.Update(msg)
	case TabData:
		m.data, cmd = m.data.Update(msg)
	case TabDebug:
		m.debug, cmd = m.debug.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderTabBar())
	sb.WriteString("\n")

	var help string
	switch m.activeTab {
	case TabLabelling:
		sb.WriteString(m.label.View())
		help = m.label.HelpLine()
	case TabData:
		sb.WriteString(m.data.View())
		help = m.data.HelpLine()
	case TabDebug:
		sb.WriteString(m.debug.View())
		help = m.debug.HelpLine()
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(help))
	return sb.String()
}

func (m Model) renderTabBar() string {
	var parts []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			parts = append(parts, m.styles.TabActive.Render("["+name+"]"))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(" "+name+" "))
		}
	}
	return m.styles.Header.Render(strings.Join(parts, " "))
}

// ActiveTab returns the currently shown page.
func (m Model) ActiveTab() Tab { return m.activeTab }
