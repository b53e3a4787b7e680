package configloader

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhighlight/pkg/config"
)

// ValidationError describes one invalid setting.
type ValidationError struct {
	// Field is the dotted key of the setting, e.g. "theme.heading_color".
	Field string

	// Value is the rejected value.
	Value any

	// Message says what is wrong and what is accepted instead.
	Message string

	// FilePath is the config file the value came from, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult collects the findings of one validation pass.
type ValidationResult struct {
	// Errors prevent the configuration from loading.
	Errors []ValidationError

	// Warnings are reported but do not stop the run.
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// outputFormats lists the values accepted by --format, in help order.
var outputFormats = []config.OutputFormat{
	config.FormatText,
	config.FormatStyled,
	config.FormatTable,
	config.FormatJSON,
	config.FormatYAML,
	config.FormatSummary,
}

// maxANSIColor is the highest color number of the 256-color palette.
const maxANSIColor = 255

// Validate checks a configuration. Empty values are not errors: they mean
// "unset" and are filled from lower layers or defaults.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.Format != "" && !slices.Contains(outputFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, joinFormats())
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means one per CPU)")
	}

	theme := cfg.Theme
	if theme.HeadingColor != "" && !IsValidColor(theme.HeadingColor) {
		result.fail("theme.heading_color", theme.HeadingColor,
			"invalid color %q; use an ANSI number (0-255) or #RRGGBB", theme.HeadingColor)
	}
	if theme.FontSize < 0 {
		result.fail("theme.font_size", theme.FontSize, "font size must be > 0")
	}
	if theme.CodeFont != "" && theme.CodeFont == theme.BodyFont {
		result.warn("theme.code_font", theme.CodeFont,
			"code font matches body font; code blocks will only differ by monospacing")
	}

	for i, pattern := range cfg.Ignore {
		for segment := range strings.SplitSeq(pattern, "/") {
			if _, err := path.Match(segment, ""); err != nil {
				result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
				break
			}
		}
	}

	return result
}

// ValidateWithFile validates cfg and tags every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidColor reports whether s is an ANSI color number or a #RGB/#RRGGBB hex color.
func IsValidColor(s string) bool {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		_, err := strconv.ParseUint(hex, 16, 32)
		return err == nil
	}

	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= maxANSIColor
}

func joinFormats() string {
	names := make([]string, len(outputFormats))
	for i, f := range outputFormats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
