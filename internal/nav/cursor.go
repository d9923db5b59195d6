// Package nav tracks the current position into the record sequence.
package nav

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a jump target outside the record sequence.
var ErrOutOfRange = errors.New("nav: position out of range")

// Indexer resolves a record id to its position. *record.Store satisfies it.
type Indexer interface {
	FindIndexByID(id string) (int, error)
}

// Labelled exposes the most recently labelled uid. *annotate.State
// satisfies it.
type Labelled interface {
	LastLabelled() (string, bool)
}

// Cursor is the single navigation position over [0, n). Advance and
// Retreat clamp at the boundaries instead of running past them and failing
// on the next lookup; see DESIGN.md for the choice.
type Cursor struct {
	pos int
	n   int
}

// New returns a cursor over n records starting at start, clamped into
// range. A cursor over zero records stays pinned at 0.
func New(n, start int) *Cursor {
	c := &Cursor{n: n}
	c.pos = c.clamp(start)
	return c
}

func (c *Cursor) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= c.n {
		if c.n == 0 {
			return 0
		}
		return c.n - 1
	}
	return i
}

// Current returns the cursor position.
func (c *Cursor) Current() int { return c.pos }

// Len returns the number of records the cursor ranges over.
func (c *Cursor) Len() int { return c.n }

// Advance moves one record forward, clamping at the last record.
func (c *Cursor) Advance() { c.pos = c.clamp(c.pos + 1) }

// Retreat moves one record back, clamping at the first record.
func (c *Cursor) Retreat() { c.pos = c.clamp(c.pos - 1) }

// AtStart reports whether the cursor is on the first record.
func (c *Cursor) AtStart() bool { return c.pos == 0 }

// AtEnd reports whether the cursor is on the last record (or the sequence
// is empty).
func (c *Cursor) AtEnd() bool { return c.n == 0 || c.pos == c.n-1 }

// Jump sets the cursor to position i.
func (c *Cursor) Jump(i int) error {
	if i < 0 || i >= c.n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, c.n)
	}
	c.pos = i
	return nil
}

// JumpToID resolves id through the store and jumps there. A lookup failure
// propagates unchanged.
func (c *Cursor) JumpToID(idx Indexer, id string) error {
	i, err := idx.FindIndexByID(id)
	if err != nil {
		return err
	}
	return c.Jump(i)
}

// StartIndex resolves the initial cursor position: an explicit start index
// wins (clamped into range by New); otherwise the position of the most
// recently labelled record; otherwise 0.
func StartIndex(explicit *int, last Labelled, idx Indexer) int {
	if explicit != nil {
		return *explicit
	}
	if uid, ok := last.LastLabelled(); ok {
		if i, err := idx.FindIndexByID(uid); err == nil {
			return i
		}
	}
	return 0
}
