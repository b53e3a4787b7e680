package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdhighlight/internal/ui/pretty"
	"github.com/yaklabco/mdhighlight/pkg/analysis"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// StyledReporter prints each document with its highlighting applied.
// When more than one file is printed, each is preceded by its path.
type StyledReporter struct {
	opts     Options
	styles   *pretty.Styles
	renderer *pretty.Renderer
	bw       *bufio.Writer
}

// NewStyledReporter creates a new styled reporter.
func NewStyledReporter(opts Options) *StyledReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &StyledReporter{
		opts:     opts,
		styles:   pretty.NewStyles(colorEnabled),
		renderer: pretty.NewRenderer(opts.Writer, colorEnabled),
		bw:       bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *StyledReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	withHeaders := len(result.Files) > 1

	var total int
	for i, file := range result.Files {
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
		if file.Text == nil {
			continue
		}

		if withHeaders {
			if i > 0 {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintln(r.bw, r.styles.FilePath.Render("==> "+path+" <=="))
		}

		out := r.renderer.Render(file.Text)
		fmt.Fprint(r.bw, out)
		if out != "" && !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(r.bw)
		}
		total += len(file.CodeBlocks)
	}

	return total, nil
}
