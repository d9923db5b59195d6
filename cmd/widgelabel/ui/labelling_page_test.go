package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"widgelabel/internal/annotate"
	"widgelabel/internal/config"
	"widgelabel/internal/nav"
	"widgelabel/internal/persist"
	"widgelabel/internal/record"
)

func testSession(t *testing.T, autosave bool) (*config.Config, LabelPageModel) {
	t.Helper()

	cfg := config.Default()
	cfg.TextColumn = "text"
	cfg.SentimentOptions = []string{"positive", "negative"}

	store := record.NewStore([]record.Record{
		{ID: "a", Text: "first speech"},
		{ID: "b", Text: "second speech"},
		{ID: "c", Text: "third speech"},
	}, "id", "text", nil)

	dir := t.TempDir()
	files := persist.Files{
		IDColumn:        "id",
		LabelPath:       filepath.Join(dir, "labels.csv"),
		TagsPath:        filepath.Join(dir, "tags.csv"),
		AutoSaveEnabled: autosave,
	}

	state := annotate.NewState()
	cursor := nav.New(store.Len(), 0)
	log := NewSessionLog(0)

	m := NewLabelPageModel(cfg, store, state, files, cursor, log, DefaultStyles())
	m.SetSize(100, 40)
	return cfg, m
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestLabelPage_ArrowNavigation(t *testing.T) {
	_, m := testSession(t, false)

	if m.cursor.Current() != 0 {
		t.Fatalf("Expected cursor at 0, got %d", m.cursor.Current())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.cursor.Current() != 1 {
		t.Errorf("Expected cursor at 1 after Right, got %d", m.cursor.Current())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor.Current() != 0 {
		t.Errorf("Expected cursor at 0 after Left, got %d", m.cursor.Current())
	}
}

func TestLabelPage_NavigationClampsAtBoundaries(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor.Current() != 0 {
		t.Errorf("Expected cursor pinned at 0, got %d", m.cursor.Current())
	}
	if !strings.Contains(m.status, "first record") {
		t.Errorf("Expected boundary notice, got %q", m.status)
	}

	m, _ = m.Update(key('n'))
	m, _ = m.Update(key('n'))
	m, _ = m.Update(key('n'))
	m, _ = m.Update(key('n'))
	if m.cursor.Current() != 2 {
		t.Errorf("Expected cursor pinned at 2, got %d", m.cursor.Current())
	}
}

func TestLabelPage_DigitKeySetsSentiment(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('1'))
	if got, ok := m.state.Sentiment("a"); !ok || got != "positive" {
		t.Errorf("Expected sentiment %q for a, got %q (ok=%v)", "positive", got, ok)
	}

	// Re-label the same record with a different option.
	m, _ = m.Update(key('2'))
	if got, _ := m.state.Sentiment("a"); got != "negative" {
		t.Errorf("Expected re-label to overwrite, got %q", got)
	}

	// A digit past the option list does nothing.
	m, _ = m.Update(key('9'))
	if got, _ := m.state.Sentiment("a"); got != "negative" {
		t.Errorf("Expected out-of-range digit to be ignored, got %q", got)
	}
}

func TestLabelPage_ClearSentiment(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('1'))
	m, _ = m.Update(key('x'))
	if _, ok := m.state.Sentiment("a"); ok {
		t.Error("Expected sentiment cleared after x")
	}

	// Clearing an unlabelled record is a no-op with a notice.
	m, _ = m.Update(key('x'))
	if !strings.Contains(m.status, "no sentiment") {
		t.Errorf("Expected no-op notice, got %q", m.status)
	}
}

func TestLabelPage_TagToggles(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('r'))
	if !m.state.HasTag("a", TagReturnLater) {
		t.Error("Expected return_later tag after r")
	}

	m, _ = m.Update(key('v'))
	if !m.state.HasTag("a", TagNotRelevant) {
		t.Error("Expected not_rel tag after v")
	}

	m, _ = m.Update(key('r'))
	if m.state.HasTag("a", TagReturnLater) {
		t.Error("Expected r to toggle the tag back off")
	}
	if !m.state.HasTag("a", TagNotRelevant) {
		t.Error("Expected the other tag to survive the toggle")
	}
}

func TestLabelPage_AutoSaveWritesFiles(t *testing.T) {
	_, m := testSession(t, true)

	m, _ = m.Update(key('1'))

	st := annotate.NewState()
	if err := m.files.LoadAll(st); err != nil {
		t.Fatalf("LoadAll after autosave: %v", err)
	}
	if got, ok := st.Sentiment("a"); !ok || got != "positive" {
		t.Errorf("Expected autosaved sentiment on disk, got %q (ok=%v)", got, ok)
	}

	if m.log.Len() == 0 {
		t.Error("Expected an autosave notice in the session log")
	}
}

func TestLabelPage_ManualSave(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('2'))

	// Autosave off: nothing on disk yet.
	if err := m.files.LoadAll(annotate.NewState()); !persist.IsNotExist(err) {
		t.Fatalf("Expected no files before manual save, got %v", err)
	}

	m, _ = m.Update(key('s'))
	if !strings.Contains(m.status, "manually saved") {
		t.Errorf("Expected save confirmation, got %q", m.status)
	}

	st := annotate.NewState()
	if err := m.files.LoadAll(st); err != nil {
		t.Fatalf("LoadAll after manual save: %v", err)
	}
	if got, _ := st.Sentiment("a"); got != "negative" {
		t.Errorf("Expected saved sentiment, got %q", got)
	}
}

func TestLabelPage_GotoID(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('g'))
	if !m.InTextEntry() {
		t.Fatal("Expected goto overlay after g")
	}

	for _, r := range "c" {
		m, _ = m.Update(key(r))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.InTextEntry() {
		t.Error("Expected overlay closed after enter")
	}
	if m.cursor.Current() != 2 {
		t.Errorf("Expected cursor at 2 after jump, got %d", m.cursor.Current())
	}
}

func TestLabelPage_GotoUnknownID(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('g'))
	for _, r := range "nope" {
		m, _ = m.Update(key(r))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.cursor.Current() != 0 {
		t.Errorf("Expected cursor unchanged, got %d", m.cursor.Current())
	}
	if !m.statusErr || !strings.Contains(m.status, "nope") {
		t.Errorf("Expected an error notice naming the id, got %q", m.status)
	}
}

func TestLabelPage_GotoEscCancels(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('g'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.InTextEntry() {
		t.Error("Expected esc to close the overlay")
	}

	// Normal keys work again.
	m, _ = m.Update(key('n'))
	if m.cursor.Current() != 1 {
		t.Errorf("Expected navigation restored after esc, got %d", m.cursor.Current())
	}
}

func TestLabelPage_ViewShowsRecord(t *testing.T) {
	_, m := testSession(t, false)

	view := m.View()
	if !strings.Contains(view, "Record 1/3") {
		t.Error("View missing record position")
	}
	if !strings.Contains(view, "first speech") {
		t.Error("View missing record text")
	}
	if !strings.Contains(view, "1 positive") {
		t.Error("View missing sentiment options")
	}
}

func TestLabelPage_ViewMarksStoredSentiment(t *testing.T) {
	_, m := testSession(t, false)

	m, _ = m.Update(key('1'))
	view := m.View()
	if !strings.Contains(view, "● positive") {
		t.Error("View missing stored-sentiment indicator")
	}
}
