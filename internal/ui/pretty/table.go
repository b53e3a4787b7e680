package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdhighlight/pkg/highlight"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LOC, LANG, LINES, PREVIEW
	minFileWidth     = 20
	minLocWidth      = 9
	minLangWidth     = 8
	linesColumnWidth = 5
	minPreviewWidth  = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow represents a single code block in the table.
type TableRow struct {
	File     string
	Location string
	Language string
	Lines    int
	Preview  string
}

// TableFormatter formats code blocks as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// CodeBlockToTableRow converts a code block found in path to a table row.
func CodeBlockToTableRow(path string, block highlight.CodeBlock) TableRow {
	return TableRow{
		File:     path,
		Location: block.Start.String(),
		Language: LanguageLabel(block.Language),
		Lines:    block.LineCount(),
		Preview:  Preview(block.Text),
	}
}

// Preview returns the first non-blank line of code, with tabs expanded.
func Preview(code string) string {
	for line := range strings.SplitSeq(code, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return strings.ReplaceAll(trimmed, "\t", "    ")
		}
	}
	return ""
}

// FormatTable formats the code blocks of a run as a styled table.
// Files without code blocks are omitted.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	fileGroups := t.collectRows(result)
	if len(fileGroups) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidths(fileGroups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	isFirstGroup := true
	for _, group := range fileGroups {
		if !isFirstGroup {
			builder.WriteString(t.formatSeparator(colWidths, lightSeparator))
			builder.WriteString("\n")
		}
		isFirstGroup = false

		for _, row := range group {
			builder.WriteString(t.formatRow(row, colWidths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%d %s processed",
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
	parts = append(parts, fmt.Sprintf("%d %s",
		stats.CodeBlocksTotal, plural(stats.CodeBlocksTotal, "code block", "code blocks")))

	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// collectRows collects code block rows grouped by file.
func (t *TableFormatter) collectRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		if file.Error != nil || len(file.CodeBlocks) == 0 {
			continue
		}

		rows := make([]TableRow, 0, len(file.CodeBlocks))
		for _, block := range file.CodeBlocks {
			rows = append(rows, CodeBlockToTableRow(file.Path, block))
		}
		groups = append(groups, rows)
	}

	return groups
}

type columnWidths struct {
	file    int
	loc     int
	lang    int
	preview int
}

// calculateColumnWidths determines column widths from content, then
// shrinks the preview and file columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		lang:    minLangWidth,
		preview: minPreviewWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, lipgloss.Width(row.File))
			widths.loc = max(widths.loc, lipgloss.Width(row.Location))
			widths.lang = max(widths.lang, lipgloss.Width(row.Language))
			widths.preview = max(widths.preview, lipgloss.Width(row.Preview))
		}
	}

	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.preview = max(minPreviewWidth, widths.preview-excess)

		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.loc + widths.lang + linesColumnWidth + widths.preview +
		(tablePadding * tableColumnCount)
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %*s  %-*s ",
		widths.file, "FILE",
		widths.loc, "LOC",
		widths.lang, "LANG",
		linesColumnWidth, "LINES",
		widths.preview, "PREVIEW",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow pads each cell before styling it, so escape sequences do not
// disturb the alignment.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	cells := []string{
		t.styles.FilePath.Render(PadRight(TruncateLeft(row.File, widths.file, ellipsis), widths.file)),
		t.styles.Location.Render(PadRight(Truncate(row.Location, widths.loc, ellipsis), widths.loc)),
		t.styles.Language.Render(PadRight(Truncate(row.Language, widths.lang, ellipsis), widths.lang)),
		PadLeft(strconv.Itoa(row.Lines), linesColumnWidth),
		t.styles.Code.Render(Truncate(row.Preview, widths.preview, ellipsis)),
	}
	return " " + strings.Join(cells, "  ")
}
