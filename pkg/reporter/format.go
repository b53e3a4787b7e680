package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	// FormatText lists code blocks grouped by file.
	FormatText Format = "text"
	// FormatStyled prints each document with its highlighting applied.
	FormatStyled  Format = "styled"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatSummary Format = "summary"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "styled":
		return FormatStyled, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	case "summary":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, styled, table, json, yaml, summary", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatStyled, FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return true
	default:
		return false
	}
}

// IsStructured reports whether the format is machine readable.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}
