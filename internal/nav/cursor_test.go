package nav

import (
	"errors"
	"testing"

	"widgelabel/internal/annotate"
	"widgelabel/internal/record"
)

func testStore() *record.Store {
	return record.NewStore([]record.Record{
		{ID: "A", Text: "first"},
		{ID: "B", Text: "second"},
		{ID: "C", Text: "third"},
	}, "id", "text", nil)
}

func TestAdvanceRetreatClamp(t *testing.T) {
	c := New(3, 0)

	c.Retreat()
	if c.Current() != 0 {
		t.Errorf("Retreat at start: pos = %d, want 0", c.Current())
	}
	if !c.AtStart() {
		t.Error("AtStart should be true at position 0")
	}

	c.Advance()
	c.Advance()
	if c.Current() != 2 {
		t.Errorf("pos = %d after two advances, want 2", c.Current())
	}
	if !c.AtEnd() {
		t.Error("AtEnd should be true on the last record")
	}

	c.Advance()
	if c.Current() != 2 {
		t.Errorf("Advance at end: pos = %d, want clamped 2", c.Current())
	}
}

func TestNewClampsStart(t *testing.T) {
	if got := New(3, 99).Current(); got != 2 {
		t.Errorf("start 99 clamped to %d, want 2", got)
	}
	if got := New(3, -5).Current(); got != 0 {
		t.Errorf("start -5 clamped to %d, want 0", got)
	}
	if got := New(0, 7).Current(); got != 0 {
		t.Errorf("empty sequence: pos = %d, want 0", got)
	}
}

func TestJump(t *testing.T) {
	c := New(3, 0)
	if err := c.Jump(2); err != nil {
		t.Fatalf("Jump(2): %v", err)
	}
	if c.Current() != 2 {
		t.Errorf("pos = %d, want 2", c.Current())
	}

	if err := c.Jump(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Jump(3) = %v, want ErrOutOfRange", err)
	}
	if err := c.Jump(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Jump(-1) = %v, want ErrOutOfRange", err)
	}
	if c.Current() != 2 {
		t.Errorf("failed jump moved cursor to %d", c.Current())
	}
}

// Every record's id must jump to its own position.
func TestJumpToIDEveryRecord(t *testing.T) {
	s := testStore()
	c := New(s.Len(), 0)

	for want := 0; want < s.Len(); want++ {
		rec, _ := s.At(want)
		if err := c.JumpToID(s, rec.ID); err != nil {
			t.Fatalf("JumpToID(%q): %v", rec.ID, err)
		}
		if c.Current() != want {
			t.Errorf("JumpToID(%q): pos = %d, want %d", rec.ID, c.Current(), want)
		}
	}
}

func TestJumpToIDUnknown(t *testing.T) {
	s := testStore()
	c := New(s.Len(), 1)

	err := c.JumpToID(s, "Z")
	if !errors.Is(err, record.ErrNotFound) {
		t.Errorf("JumpToID(Z) = %v, want record.ErrNotFound", err)
	}
	if c.Current() != 1 {
		t.Errorf("failed jump moved cursor to %d", c.Current())
	}
}

func TestStartIndex(t *testing.T) {
	s := testStore()

	explicit := 1
	st := annotate.NewState()
	if got := StartIndex(&explicit, st, s); got != 1 {
		t.Errorf("explicit start: got %d, want 1", got)
	}

	// Nothing labelled yet: start at 0.
	if got := StartIndex(nil, st, s); got != 0 {
		t.Errorf("empty state: got %d, want 0", got)
	}

	// Most recently labelled record wins.
	st.SetSentiment("C", "positive")
	st.SetSentiment("B", "negative")
	if got := StartIndex(nil, st, s); got != 1 {
		t.Errorf("last labelled: got %d, want 1 (record B)", got)
	}

	// A labelled id missing from the store falls back to 0.
	st.SetSentiment("gone", "positive")
	if got := StartIndex(nil, st, s); got != 0 {
		t.Errorf("unknown last labelled id: got %d, want 0", got)
	}
}
