// Package config defines core configuration types for mdhighlight.
// These types are pure data structures with no dependency on the config loader.
package config

// OutputFormat specifies how results are written.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatStyled  OutputFormat = "styled"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is supported.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// ColorMode controls terminal color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Default theme values, matching the built-in highlighter theme.
const (
	DefaultHeadingColor = "205"
	DefaultBodyFont     = "system"
	DefaultCodeFont     = "Monaco"
	DefaultFontSize     = 14
)

// ThemeConfig holds the styling applied by the highlighter.
type ThemeConfig struct {
	// HeadingColor is an ANSI color number or a #RRGGBB hex value.
	HeadingColor string `mapstructure:"heading_color" yaml:"heading_color"`

	// BodyFont is the font family of ordinary text.
	BodyFont string `mapstructure:"body_font" yaml:"body_font"`

	// CodeFont is the monospace font family of code blocks.
	CodeFont string `mapstructure:"code_font" yaml:"code_font"`

	// FontSize is the point size shared by body and code fonts.
	FontSize float64 `mapstructure:"font_size" yaml:"font_size"`
}

// Config is the root configuration structure for mdhighlight.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Theme configures heading and code block styling.
	Theme ThemeConfig `mapstructure:"theme" yaml:"theme"`

	// DetectLanguages guesses the language of code blocks without fence info.
	DetectLanguages bool `mapstructure:"detect_languages" yaml:"detect_languages"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format of the extract command.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Color controls terminal color output.
	Color ColorMode `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorCommonMark,
		Theme: ThemeConfig{
			HeadingColor: DefaultHeadingColor,
			BodyFont:     DefaultBodyFont,
			CodeFont:     DefaultCodeFont,
			FontSize:     DefaultFontSize,
		},
		DetectLanguages: false,
		Ignore:          nil,
		Format:          FormatText,
		Color:           ColorAuto,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}
