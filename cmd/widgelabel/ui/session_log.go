package ui

import (
	"fmt"
	"time"
)

// SessionLog collects the session's notices (load warnings, autosave
// confirmations, errors) for the debug page, mirroring the debug output
// region of the original notebook widget. Oldest lines are dropped past
// the limit.
type SessionLog struct {
	lines []string
	limit int
}

// NewSessionLog returns a log retaining at most limit lines.
func NewSessionLog(limit int) *SessionLog {
	if limit <= 0 {
		limit = DebugLogLimit
	}
	return &SessionLog{limit: limit}
}

// Addf appends a timestamped line.
func (l *SessionLog) Addf(format string, args ...interface{}) {
	line := time.Now().Format("15:04:05") + "  " + fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
}

// Lines returns all retained lines, oldest first.
func (l *SessionLog) Lines() []string {
	return l.lines
}

// Len returns the number of retained lines.
func (l *SessionLog) Len() int { return len(l.lines) }
