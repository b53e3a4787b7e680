package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadRight pads s with spaces to width terminal cells.
// Wide runes such as CJK and emoji count as two cells.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// PadLeft pads s on the left with spaces to width terminal cells.
func PadLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// Truncate shortens s to at most width cells, ending in tail.
// The tail is dropped when it would not leave room for any text.
func Truncate(s string, width int, tail string) string {
	if width <= lipgloss.Width(tail) {
		tail = ""
	}
	return ansi.Truncate(s, width, tail)
}

// TruncateLeft shortens s to at most width cells by cutting its start,
// prefixed with head. File paths keep their file name this way.
func TruncateLeft(s string, width int, head string) string {
	w := lipgloss.Width(s)
	if w <= width {
		return s
	}
	if width <= lipgloss.Width(head) {
		head = ""
	}
	return ansi.TruncateLeft(s, w-width+lipgloss.Width(head), head)
}
