package highlight

import "github.com/yaklabco/mdhighlight/pkg/styled"

// Default theme values.
const (
	DefaultFontSize     = 14
	DefaultBodyFamily   = "system"
	DefaultCodeFamily   = "Monaco"
	DefaultHeadingColor = styled.Color("205")
)

// Theme holds the attributes applied by the highlighter.
type Theme struct {
	// Defaults is the baseline applied to the whole buffer on every pass.
	Defaults styled.Attributes

	// HeadingColor is the foreground color of heading blocks.
	HeadingColor styled.Color

	// CodeFont is the font of code blocks.
	CodeFont styled.Font
}

// DefaultTheme returns the built-in theme: body font in the terminal's
// default color, pink headings, monospace code.
func DefaultTheme() Theme {
	return Theme{
		Defaults: styled.Attributes{
			Font: styled.Font{Family: DefaultBodyFamily, Size: DefaultFontSize},
		},
		HeadingColor: DefaultHeadingColor,
		CodeFont: styled.Font{
			Family:    DefaultCodeFamily,
			Size:      DefaultFontSize,
			Monospace: true,
		},
	}
}
