package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhighlight/internal/ui/pretty"
	"github.com/yaklabco/mdhighlight/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 80
	langColWidth      = 20
	fileColWidth      = 50
	numColWidth       = 8
	maxLangLength     = 18
	maxFilePathLength = 48
)

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, fe := range report.Errors {
		fmt.Fprintf(r.out, "%s: %s\n",
			r.styles.FilePath.Render(fe.FilePath),
			r.styles.Error.Render("error: "+fe.Error),
		)
	}

	if report.Totals.CodeBlocks == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No code blocks found"))
		return nil
	}

	r.renderLanguageTable(report.ByLanguage)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderLanguageTable(langs []analysis.LanguageAnalysis) {
	if len(langs) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Languages Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("Language", langColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Blocks", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Lines", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, lang := range langs {
		name := pretty.LanguageLabel(lang.Language)
		name = pretty.Truncate(name, maxLangLength, "…")

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			r.styles.Language.Render(pretty.PadRight(name, langColWidth)),
			pretty.PadLeft(strconv.Itoa(lang.CodeBlocks), numColWidth),
			pretty.PadLeft(strconv.Itoa(lang.Lines), numColWidth),
			pretty.PadLeft(strconv.Itoa(len(lang.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("File", fileColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Blocks", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Lines", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		path = pretty.TruncateLeft(path, maxFilePathLength, "…")

		fmt.Fprintf(r.out, "%s %s %s\n",
			r.styles.FilePath.Render(pretty.PadRight(path, fileColWidth)),
			pretty.PadLeft(strconv.Itoa(file.CodeBlocks), numColWidth),
			pretty.PadLeft(strconv.Itoa(file.Lines), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	blockWord := "code blocks"
	if totals.CodeBlocks == 1 {
		blockWord = "code block"
	}
	fileWord := "files"
	if totals.FilesWithCode == 1 {
		fileWord = "file"
	}

	line := fmt.Sprintf("%d %s (%d lines) in %d %s",
		totals.CodeBlocks, blockWord, totals.Lines, totals.FilesWithCode, fileWord)
	if totals.FilesErrored > 0 {
		line += ", " + r.styles.Failure.Render(fmt.Sprintf("%d failed", totals.FilesErrored))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
