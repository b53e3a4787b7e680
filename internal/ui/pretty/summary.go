package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhighlight/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"

	// unlabeledLanguage names code blocks without a language.
	unlabeledLanguage = "plain"
)

// LanguageLabel returns lang, or "plain" for blocks without a language.
func LanguageLabel(lang string) string {
	if lang == "" {
		return unlabeledLanguage
	}
	return lang
}

// LanguageCount is one entry of a per-language breakdown.
type LanguageCount struct {
	Language string
	Count    int
}

// SortedLanguages returns the per-language counts, most frequent first.
// Ties are broken by name.
func SortedLanguages(byLanguage map[string]int) []LanguageCount {
	counts := make([]LanguageCount, 0, len(byLanguage))
	for lang, n := range byLanguage {
		if n > 0 {
			counts = append(counts, LanguageCount{Language: LanguageLabel(lang), Count: n})
		}
	}
	slices.SortFunc(counts, func(a, b LanguageCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Language, b.Language)
	})
	return counts
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 code blocks (2 go, 1 sh) in 2 files (5 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)",
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	var msg string
	if stats.CodeBlocksTotal == 0 {
		msg = s.Success.Render("No code blocks found") + checked
	} else {
		var langParts []string
		for _, lc := range SortedLanguages(stats.CodeBlocksByLanguage) {
			langParts = append(langParts, s.Language.Render(fmt.Sprintf("%d %s", lc.Count, lc.Language)))
		}

		msg = fmt.Sprintf("%d %s", stats.CodeBlocksTotal,
			plural(stats.CodeBlocksTotal, "code block", "code blocks"))
		if len(langParts) > 0 {
			msg += " (" + strings.Join(langParts, ", ") + ")"
		}
		msg += fmt.Sprintf(" in %d %s", stats.FilesWithCode, plural(stats.FilesWithCode, wordFile, wordFiles))
		msg += checked
	}

	if stats.FilesErrored > 0 {
		msg += ", " + s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files processed:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithCode > 0 {
		builder.WriteString("  Files with code:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesWithCode)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Code blocks:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.CodeBlocksTotal)) + "\n")

	for _, lc := range SortedLanguages(stats.CodeBlocksByLanguage) {
		builder.WriteString(fmt.Sprintf("    %-16s %s\n",
			lc.Language+":", s.Language.Render(strconv.Itoa(lc.Count))))
	}

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Completed with errors"))
	} else {
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
