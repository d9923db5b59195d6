package highlight

import (
	"regexp"
	"strings"
	"testing"
)

func brackets(m string) string { return "[" + m + "]" }

func TestApply(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		pattern string
		want    string
	}{
		{"single match", "the budget speech", "budget", "the [budget] speech"},
		{"multiple matches", "tax tax tax", "tax", "[tax] [tax] [tax]"},
		{"no match", "nothing here", "budget", "nothing here"},
		{"empty pattern", "left alone", "", "left alone"},
		{"match at start", "budget first", "budget", "[budget] first"},
		{"match at end", "ends with budget", "budget", "ends with [budget]"},
		{"whole string", "budget", "budget", "[budget]"},
		{"case insensitive", "The Budget and the BUDGET", "(?i)budget", "The [Budget] and the [BUDGET]"},
		{"adjacent matches", "aaaa", "aa", "[aa][aa]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var re *regexp.Regexp
			if tc.pattern != "" {
				re = regexp.MustCompile(tc.pattern)
			}
			got := Apply(tc.text, re, brackets)
			if got != tc.want {
				t.Errorf("Apply(%q, %q) = %q, want %q", tc.text, tc.pattern, got, tc.want)
			}
		})
	}
}

func TestApplyNilPattern(t *testing.T) {
	if got := Apply("unchanged", nil, brackets); got != "unchanged" {
		t.Errorf("nil pattern: got %q", got)
	}
}

// A pattern that can match zero-width must not loop or emit empty wraps.
func TestApplyZeroWidthMatches(t *testing.T) {
	re := regexp.MustCompile(`x*`)
	got := Apply("axa", re, brackets)
	if got != "a[x]a" {
		t.Errorf("zero-width pattern: got %q, want %q", got, "a[x]a")
	}
}

func TestMarkdownWrapper(t *testing.T) {
	got := Apply("the budget speech", regexp.MustCompile("budget"), Markdown())
	if got != "the **budget** speech" {
		t.Errorf("Markdown wrap: got %q", got)
	}
}

// Long inputs with many matches must complete without deep recursion; this
// guards the iterative-scan property.
func TestApplyManyMatches(t *testing.T) {
	text := strings.Repeat("ab", 50000)
	re := regexp.MustCompile("a")
	got := Apply(text, re, brackets)
	if len(got) != 50000*4 {
		t.Errorf("got length %d, want %d", len(got), 50000*4)
	}
}
