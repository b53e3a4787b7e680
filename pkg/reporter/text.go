package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdhighlight/internal/ui/pretty"
	"github.com/yaklabco/mdhighlight/pkg/analysis"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// codeGutter prefixes every line of printed code.
const codeGutter = "  │ "

// TextReporter lists code blocks grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
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

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		path := analysis.MakeRelativePath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if len(file.CodeBlocks) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.formatFileHeader(path, len(file.CodeBlocks)))
		for _, block := range file.CodeBlocks {
			fmt.Fprint(r.bw, r.formatCodeBlock(block))
			total++
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) formatFileHeader(path string, count int) string {
	word := "code blocks"
	if count == 1 {
		word = "code block"
	}
	return r.styles.FilePath.Render(path) + r.styles.Dim.Render(fmt.Sprintf(" (%d %s)", count, word))
}

// formatCodeBlock writes "  4:1-6:3  go  3 lines" followed by the code.
func (r *TextReporter) formatCodeBlock(block highlight.CodeBlock) string {
	var builder strings.Builder

	lines := block.LineCount()
	lineWord := "lines"
	if lines == 1 {
		lineWord = "line"
	}

	fmt.Fprintf(&builder, "  %s  %s  %s\n",
		r.styles.Location.Render(block.Start.String()+"-"+block.End.String()),
		r.styles.Language.Render(pretty.LanguageLabel(block.Language)),
		r.styles.Dim.Render(fmt.Sprintf("%d %s", lines, lineWord)),
	)

	if r.opts.ShowCode && block.Text != "" {
		for line := range strings.SplitSeq(strings.TrimSuffix(block.Text, "\n"), "\n") {
			builder.WriteString(r.styles.Gutter.Render(codeGutter))
			builder.WriteString(r.styles.Code.Render(line))
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}
