// Package highlight wraps regular-expression matches in emphasis markup.
package highlight

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Apply wraps every non-overlapping match of re in text using wrap. A nil
// pattern, an empty pattern, or a pattern with no matches returns text
// unchanged. The scan is a single iterative pass, so pathological inputs
// cannot exhaust the stack.
func Apply(text string, re *regexp.Regexp, wrap func(match string) string) string {
	if re == nil || re.String() == "" {
		return text
	}
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	prev := 0
	for _, m := range matches {
		if m[0] == m[1] {
			continue // zero-width match, nothing to emphasize
		}
		sb.WriteString(text[prev:m[0]])
		sb.WriteString(wrap(text[m[0]:m[1]]))
		prev = m[1]
	}
	sb.WriteString(text[prev:])
	return sb.String()
}

// Styled returns a wrapper that renders matches with the given lipgloss
// style. This is what the TUI text pane uses.
func Styled(style lipgloss.Style) func(string) string {
	return func(match string) string { return style.Render(match) }
}

// Markdown returns a wrapper producing bold emphasis, the markup the
// original notebook widget emitted for highlighted matches.
func Markdown() func(string) string {
	return func(match string) string { return "**" + match + "**" }
}
