package ui

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"widgelabel/internal/annotate"
	"widgelabel/internal/config"
	"widgelabel/internal/hansard"
	"widgelabel/internal/highlight"
	"widgelabel/internal/logging"
	"widgelabel/internal/nav"
	"widgelabel/internal/persist"
	"widgelabel/internal/record"
)

// Quick-access tags bound to single keys on the labelling page.
const (
	TagReturnLater = "return_later"
	TagNotRelevant = "not_rel"
)

// LabelPageMode distinguishes normal key handling from the jump-to-id
// input overlay.
type LabelPageMode int

const (
	ModeNormal LabelPageMode = iota
	ModeGotoInput
)

// LabelPageModel is the main annotation page: one record at a time with
// sentiment options, quick tags, and keyboard navigation.
type LabelPageModel struct {
	cfg    *config.Config
	store  *record.Store
	state  *annotate.State
	files  persist.Files
	cursor *nav.Cursor
	log    *SessionLog

	highlightRe *regexp.Regexp
	viewport    viewport.Model
	gotoInput   textinput.Model
	mode        LabelPageMode

	status    string
	statusErr bool

	width  int
	height int
	styles Styles
}

// NewLabelPageModel wires the page to the session's data and state.
func NewLabelPageModel(cfg *config.Config, store *record.Store, state *annotate.State, files persist.Files, cursor *nav.Cursor, log *SessionLog, styles Styles) LabelPageModel {
	ti := textinput.New()
	ti.Placeholder = "record id"
	ti.CharLimit = 128
	ti.Width = 40

	m := LabelPageModel{
		cfg:         cfg,
		store:       store,
		state:       state,
		files:       files,
		cursor:      cursor,
		log:         log,
		highlightRe: cfg.CompileHighlight(),
		viewport:    viewport.New(80, 10),
		gotoInput:   ti,
		styles:      styles,
	}
	m.refreshText()
	return m
}

// SetSize updates the page dimensions.
func (m *LabelPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = ContentWidth(width)
	m.viewport.Height = TextViewportHeight(height)
	m.refreshText()
}

// InTextEntry reports whether the page is capturing free-form keystrokes,
// in which case global key bindings must stay out of the way.
func (m LabelPageModel) InTextEntry() bool {
	return m.mode == ModeGotoInput
}

// Update handles messages for the labelling page.
func (m LabelPageModel) Update(msg tea.Msg) (LabelPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeGotoInput {
			return m.updateGotoInput(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m LabelPageModel) updateGotoInput(msg tea.KeyMsg) (LabelPageModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id := strings.TrimSpace(m.gotoInput.Value())
		m.mode = ModeNormal
		m.gotoInput.Blur()
		if id == "" {
			return m, nil
		}
		if err := m.cursor.JumpToID(m.store, id); err != nil {
			if errors.Is(err, record.ErrNotFound) {
				m.setError("No record with id %q.", id)
			} else {
				m.setError("Jump failed: %v", err)
			}
			logging.Nav("jump to id %q failed: %v", id, err)
			return m, nil
		}
		m.setStatus("Jumped to record %s.", id)
		logging.Nav("jumped to id %q (position %d)", id, m.cursor.Current())
		m.refreshText()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.gotoInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m LabelPageModel) updateNormal(msg tea.KeyMsg) (LabelPageModel, tea.Cmd) {
	key := msg.String()

	switch key {
	case "right", "n":
		if m.cursor.AtEnd() {
			m.setStatus("Already at the last record.")
			return m, nil
		}
		m.cursor.Advance()
		m.clearStatus()
		m.refreshText()
		return m, nil

	case "left", "p":
		if m.cursor.AtStart() {
			m.setStatus("Already at the first record.")
			return m, nil
		}
		m.cursor.Retreat()
		m.clearStatus()
		m.refreshText()
		return m, nil

	case "g":
		m.mode = ModeGotoInput
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
		return m, textinput.Blink

	case "r":
		m.toggleTag(TagReturnLater)
		return m, nil

	case "v":
		m.toggleTag(TagNotRelevant)
		return m, nil

	case "x":
		rec, ok := m.store.At(m.cursor.Current())
		if !ok {
			return m, nil
		}
		if _, had := m.state.Sentiment(rec.ID); !had {
			m.setStatus("Record %s has no sentiment to clear.", rec.ID)
			return m, nil
		}
		m.state.ClearSentiment(rec.ID)
		logging.Annotate("cleared sentiment for %s", rec.ID)
		m.setStatus("Cleared sentiment for %s.", rec.ID)
		m.autoSave()
		return m, nil

	case "s":
		if err := m.files.SaveAll(m.state); err != nil {
			m.setError("Save failed: %v", err)
			logging.PersistError("manual save failed: %v", err)
			m.log.Addf("save failed: %v", err)
			return m, nil
		}
		m.setStatus("All data manually saved.")
		logging.Persist("manual save: %d labels, %d tag sets", m.state.LabelCount(), m.state.TagCount())
		m.log.Addf("All data manually saved.")
		return m, nil
	}

	// Digit keys pick a sentiment from the configured option list.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.cfg.SentimentOptions) {
			m.applySentiment(m.cfg.SentimentOptions[idx])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *LabelPageModel) applySentiment(option string) {
	rec, ok := m.store.At(m.cursor.Current())
	if !ok {
		return
	}
	m.state.SetSentiment(rec.ID, option)
	logging.Annotate("labelled %s as %q", rec.ID, option)
	m.setStatus("Labelled %s as %q.", rec.ID, option)
	m.autoSave()
}

func (m *LabelPageModel) toggleTag(tag string) {
	rec, ok := m.store.At(m.cursor.Current())
	if !ok {
		return
	}
	if m.state.HasTag(rec.ID, tag) {
		m.state.RemoveTag(rec.ID, tag)
		logging.Annotate("removed tag %q from %s", tag, rec.ID)
		m.setStatus("Removed tag %q from %s.", tag, rec.ID)
	} else {
		m.state.AddTag(rec.ID, tag)
		logging.Annotate("added tag %q to %s", tag, rec.ID)
		m.setStatus("Tagged %s with %q.", rec.ID, tag)
	}
	m.autoSave()
}

// autoSave persists the whole state after a mutation when autosave is on.
func (m *LabelPageModel) autoSave() {
	if !m.files.AutoSaveEnabled {
		return
	}
	if err := m.files.AutoSave(m.state); err != nil {
		m.setError("Auto-save failed: %v", err)
		logging.PersistError("auto-save failed: %v", err)
		m.log.Addf("auto-save failed: %v", err)
		return
	}
	m.log.Addf("Auto-saved all data.")
}

// refreshText re-renders the current record's text into the viewport,
// applying the highlight pattern, and resets the scroll position.
func (m *LabelPageModel) refreshText() {
	rec, ok := m.store.At(m.cursor.Current())
	if !ok {
		m.viewport.SetContent(m.styles.Muted.Render("No records loaded."))
		return
	}
	text := highlight.Apply(rec.Text, m.highlightRe, highlight.Styled(HighlightStyle(m.cfg.HighlightColor)))
	wrapped := lipgloss.NewStyle().Width(m.viewport.Width).Render(text)
	m.viewport.SetContent(wrapped)
	m.viewport.GotoTop()
}

func (m *LabelPageModel) setStatus(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *LabelPageModel) setError(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
}

func (m *LabelPageModel) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// View renders the labelling page.
func (m LabelPageModel) View() string {
	if m.width > 0 && (m.width < MinimumTerminalWidth || m.height < MinimumTerminalHeight) {
		return m.styles.Warning.Render(fmt.Sprintf(
			"Terminal too small (need at least %dx%d).",
			MinimumTerminalWidth, MinimumTerminalHeight))
	}

	rec, ok := m.store.At(m.cursor.Current())
	if !ok {
		return m.styles.Content.Render(
			m.styles.Muted.Render("No records loaded. Check the text file path and column names."))
	}

	var sb strings.Builder

	// Record header: position, id, and whether it already carries a label.
	header := fmt.Sprintf("Record %d/%d", m.cursor.Current()+1, m.cursor.Len())
	sb.WriteString(m.styles.Title.Render(header))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s: %s", m.store.IDColumn(), rec.ID)))
	if sentiment, has := m.state.Sentiment(rec.ID); has {
		sb.WriteString("  ")
		sb.WriteString(m.styles.Success.Render("● " + sentiment))
	}
	sb.WriteString("\n")

	if badges := m.renderBadges(rec); badges != "" {
		sb.WriteString(badges)
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.RenderDivider(m.viewport.Width))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(m.viewport.Width))
	sb.WriteString("\n")

	sb.WriteString(m.renderSentimentRow(rec))
	sb.WriteString("\n")
	sb.WriteString(m.renderToggleRow(rec))
	sb.WriteString("\n")

	if m.mode == ModeGotoInput {
		sb.WriteString(m.styles.Bold.Render("Go to id: "))
		sb.WriteString(m.gotoInput.View())
		sb.WriteString("\n")
	} else if m.status != "" {
		if m.statusErr {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Info.Render(m.status))
		}
		sb.WriteString("\n")
	}

	return m.styles.Content.Render(sb.String())
}

// renderBadges shows the configured extra columns for the current record,
// plus the government-affiliation badge in Hansard mode.
func (m LabelPageModel) renderBadges(rec record.Record) string {
	var parts []string
	for _, col := range m.store.ExtraColumns() {
		value := rec.Extra[col]
		if value == "" {
			value = "—"
		}
		parts = append(parts, m.styles.BadgeMuted.Render(col+": "+value))
	}
	if m.cfg.HansardTags {
		if hansard.IsInGov(rec.Extra[hansard.PostNameColumn]) {
			parts = append(parts, m.styles.Badge.Render("in government"))
		} else {
			parts = append(parts, m.styles.BadgeMuted.Render("not in government"))
		}
	}
	return strings.Join(parts, " ")
}

// renderSentimentRow shows the numbered sentiment options, marking the
// current record's stored sentiment.
func (m LabelPageModel) renderSentimentRow(rec record.Record) string {
	current, _ := m.state.Sentiment(rec.ID)

	var parts []string
	parts = append(parts, m.styles.Bold.Render("Sentiment:"))
	for i, option := range m.cfg.SentimentOptions {
		if i >= 9 {
			break
		}
		label := fmt.Sprintf("%d %s", i+1, option)
		if option == current {
			parts = append(parts, m.styles.Selected.Render(label))
		} else {
			parts = append(parts, m.styles.Unselected.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderToggleRow shows the quick-tag toggles and their current state.
func (m LabelPageModel) renderToggleRow(rec record.Record) string {
	toggle := func(key, tag, caption string) string {
		if m.state.HasTag(rec.ID, tag) {
			return m.styles.ToggleOn.Render("[" + key + "] ● " + caption)
		}
		return m.styles.ToggleOff.Render("[" + key + "] ○ " + caption)
	}
	return toggle("r", TagReturnLater, "return later") + "   " +
		toggle("v", TagNotRelevant, "not relevant")
}

// HelpLine returns the key hints shown under the page.
func (m LabelPageModel) HelpLine() string {
	if m.mode == ModeGotoInput {
		return "enter: jump • esc: cancel"
	}
	return "←/→ navigate • 1-9 sentiment • r/v tags • x clear • g go to id • s save • tab pages • q quit"
}
