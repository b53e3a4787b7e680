// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the Lipgloss styles of the extract reports.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Code block listing.
	FilePath lipgloss.Style
	Location lipgloss.Style
	Language lipgloss.Style
	Code     lipgloss.Style
	Gutter   lipgloss.Style

	SummaryTitle   lipgloss.Style
	SummaryValue   lipgloss.Style
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256 palette entries used by the color styles.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorCyan   = "14"
	colorGray   = "8"
	colorSilver = "7"
	colorCode   = "252"
)

// NewStyles returns the report styles. With color disabled every style
// renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	style := func(color string, bold bool) lipgloss.Style {
		s := lipgloss.NewStyle()
		if !colorEnabled {
			return s
		}
		if color != "" {
			s = s.Foreground(lipgloss.Color(color))
		}
		return s.Bold(bold)
	}

	return &Styles{
		Error:   style(colorRed, true),
		Success: style(colorGreen, true),
		Failure: style(colorRed, true),

		FilePath: style("", true),
		Location: style(colorGray, false),
		Language: style(colorCyan, false),
		Code:     style(colorCode, false),
		Gutter:   style(colorGray, false),

		SummaryTitle:   style("", true),
		SummaryValue:   style("", false),
		TableHeader:    style(colorSilver, true),
		TableSeparator: style(colorGray, false),

		Dim:  style(colorGray, false),
		Bold: style("", true),
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never")
// for writer. Auto enables color only on a terminal without NO_COLOR set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
