package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdhighlight/internal/logging"
	"github.com/yaklabco/mdhighlight/pkg/config"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
	"github.com/yaklabco/mdhighlight/pkg/reporter"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// stdinPath labels input read from standard input.
const stdinPath = "<stdin>"

// ErrNoInput is returned when render has neither paths nor piped input.
var ErrNoInput = errors.New("no input: pass Markdown files or pipe a document on stdin")

type renderFlags struct {
	format  string
	compact bool
	detect  bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Print Markdown with its blocks highlighted",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(reporter.FormatStyled),
		"output format: styled, text, table, json, yaml, summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.detect, "detect-languages", false,
		"guess the language of code blocks without fence info")

	return cmd
}

const renderLongDescription = `## render

Highlights each file and prints it: headings in color, code blocks on a
shaded background. With no arguments the document is read from stdin.

` + "```sh" + `
mdhighlight render README.md
cat notes.md | mdhighlight render
mdhighlight render docs/ --format json
` + "```" + `

JSON and YAML output include every attribute run of the buffer.`

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	cli := &config.Config{DetectLanguages: flags.detect}

	sess, err := newSession(cmd, cli)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	h := sess.highlighter()

	var result *runner.Result
	if len(args) == 0 {
		result, err = renderStdin(sess.ctx, cmd.InOrStdin(), h)
	} else {
		result, err = runner.New(h).Run(sess.ctx, runner.Options{
			Paths:        args,
			WorkingDir:   sess.workDir,
			Extensions:   runner.DefaultExtensions(),
			ExcludeGlobs: sess.config.Ignore,
			Jobs:         sess.config.Jobs,
		})
	}
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(sess.config.Color),
		ShowCode:    true,
		ShowSummary: format != reporter.FormatStyled,
		Compact:     flags.compact,
		IncludeRuns: format.IsStructured(),
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	blocks, err := rep.Report(sess.ctx, result)
	if err != nil {
		sess.logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	sess.logger.Debug("render finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldCodeBlocks, blocks,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

// renderStdin highlights a document piped on standard input.
// An interactive terminal is refused rather than waited on.
func renderStdin(ctx context.Context, in io.Reader, h *highlight.Highlighter) (*runner.Result, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, ErrNoInput
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	outcome := runner.New(h).ProcessText(ctx, stdinPath, string(data))
	return runner.NewResult(outcome), nil
}
