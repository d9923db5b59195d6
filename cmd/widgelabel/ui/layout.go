// Package ui layout constants for consistent spacing and dimensions.
package ui

// Layout constants for viewport and panel sizing.
const (
	// Chrome rows around the text viewport: tab bar, record header,
	// badge row, sentiment row, toggle row, divider, status line, help.
	TabBarHeight     = 2
	RecordHeaderRows = 2
	ControlRows      = 3
	StatusBarHeight  = 1
	HelpHeight       = 1

	// Horizontal padding applied by the content style.
	ContentPaddingH = 4

	// Responsive floor; below this the pages render a resize notice.
	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 16

	// Data page: rows shown per summary table before truncation.
	DataTableLimit = 12

	// Debug page: lines retained in the session log.
	DebugLogLimit = 200
)

// TextViewportHeight returns the height left for the record text once the
// labelling page's fixed chrome is accounted for.
func TextViewportHeight(totalHeight int) int {
	h := totalHeight - TabBarHeight - RecordHeaderRows - ControlRows - StatusBarHeight - HelpHeight - 2
	if h < 3 {
		h = 3
	}
	return h
}

// ContentWidth returns the usable content width for a given terminal width.
func ContentWidth(totalWidth int) int {
	w := totalWidth - ContentPaddingH
	if w < 10 {
		w = 10
	}
	return w
}
