package pretty

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// codeBackground is the ANSI color behind monospace runs.
// Terminals cannot switch fonts, so code is set apart by its background.
const codeBackground = "236"

// Renderer turns a styled.Text into terminal output.
type Renderer struct {
	renderer     *lipgloss.Renderer
	colorEnabled bool
}

// NewRenderer creates a renderer for w. When colorEnabled is set the
// output is colored even if w is not a terminal.
func NewRenderer(w io.Writer, colorEnabled bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if colorEnabled && r.ColorProfile() == termenv.Ascii {
		r.SetColorProfile(termenv.ANSI256)
	}
	return &Renderer{renderer: r, colorEnabled: colorEnabled}
}

// Render returns the text with each attribute run styled.
// Foreground colors map to terminal colors; monospace fonts get a
// background. Without color the plain text is returned unchanged.
func (r *Renderer) Render(text *styled.Text) string {
	if !r.colorEnabled {
		return text.String()
	}

	var builder strings.Builder
	for _, run := range text.Runs() {
		style, ok := r.styleFor(run.Attributes)
		if !ok {
			builder.WriteString(run.Text)
			continue
		}

		// lipgloss pads multi-line blocks, so lines are styled one at a time.
		for i, line := range strings.Split(run.Text, "\n") {
			if i > 0 {
				builder.WriteByte('\n')
			}
			if line != "" {
				builder.WriteString(style.Render(line))
			}
		}
	}
	return builder.String()
}

func (r *Renderer) styleFor(attrs styled.Attributes) (lipgloss.Style, bool) {
	if attrs.Foreground == "" && !attrs.Font.Monospace {
		return lipgloss.Style{}, false
	}

	style := r.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if attrs.Foreground != "" {
		style = style.Foreground(lipgloss.Color(string(attrs.Foreground)))
	}
	if attrs.Font.Monospace {
		style = style.Background(lipgloss.Color(codeBackground))
	}
	return style, true
}

// Render is a shorthand for NewRenderer(io.Discard, colorEnabled).Render(text).
func Render(text *styled.Text, colorEnabled bool) string {
	return NewRenderer(io.Discard, colorEnabled).Render(text)
}
