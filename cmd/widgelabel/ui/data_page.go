package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"widgelabel/internal/annotate"
	"widgelabel/internal/persist"
)

// DataPageModel shows the collected annotations as two read-only tables,
// most recent entries last.
type DataPageModel struct {
	state    *annotate.State
	idColumn string

	width  int
	height int
	styles Styles
}

// NewDataPageModel creates the annotation summary page.
func NewDataPageModel(state *annotate.State, idColumn string, styles Styles) DataPageModel {
	return DataPageModel{
		state:    state,
		idColumn: idColumn,
		styles:   styles,
	}
}

// SetSize updates the page dimensions.
func (m *DataPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the data page. The page is read-only, so
// only resizes matter.
func (m DataPageModel) Update(msg tea.Msg) (DataPageModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
	}
	return m, nil
}

// View renders the sentiment and tag tables side by side.
func (m DataPageModel) View() string {
	sentiments := NewSimpleTable("Sentiments", []string{m.idColumn, "sentiment"})
	sentiments.Limit = DataTableLimit
	for _, entry := range m.state.Sentiments() {
		sentiments.AddRow(entry.ID, entry.Sentiment)
	}

	tags := NewSimpleTable("Tags", []string{m.idColumn, "tags"})
	tags.Limit = DataTableLimit
	for _, entry := range m.state.Tags() {
		tags.AddRow(entry.ID, strings.Join(entry.Tags, persist.TagSeparator+" "))
	}

	tables := lipgloss.JoinHorizontal(lipgloss.Top,
		sentiments.View(m.styles),
		"    ",
		tags.View(m.styles),
	)

	summary := m.styles.Subtitle.Render(fmt.Sprintf(
		"%d labelled, %d tagged", m.state.LabelCount(), m.state.TagCount()))

	return m.styles.Content.Render(summary + "\n\n" + tables)
}

// HelpLine returns the key hints shown under the page.
func (m DataPageModel) HelpLine() string {
	return "tab: pages • q: quit"
}
