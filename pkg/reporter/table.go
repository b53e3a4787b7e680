package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/mdhighlight/internal/ui/pretty"
	"github.com/yaklabco/mdhighlight/pkg/analysis"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats code blocks as a styled table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to process."))
		}
		return 0, nil
	}

	r.reportErrors(result)

	total := countCodeBlocks(result)
	if total == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No code blocks found"))
			fmt.Fprintln(r.bw, r.styles.Dim.Render(
				fmt.Sprintf("%d files processed", result.Stats.FilesProcessed),
			))
		}
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(r.relativize(result)))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	}

	return total, nil
}

func (r *TableReporter) reportErrors(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(analysis.MakeRelativePath(file.Path, r.opts.WorkingDir)),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
	}
}

// relativize returns a copy of result whose paths are relative to WorkingDir.
func (r *TableReporter) relativize(result *runner.Result) *runner.Result {
	if r.opts.WorkingDir == "" {
		return result
	}
	files := make([]runner.FileOutcome, len(result.Files))
	for i, file := range result.Files {
		file.Path = analysis.MakeRelativePath(file.Path, r.opts.WorkingDir)
		files[i] = file
	}
	return &runner.Result{Files: files, Stats: result.Stats}
}

// countCodeBlocks counts the code blocks of every processed file.
func countCodeBlocks(result *runner.Result) int {
	var total int
	for _, file := range result.Files {
		if file.Error == nil {
			total += len(file.CodeBlocks)
		}
	}
	return total
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
