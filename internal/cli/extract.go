package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhighlight/internal/logging"
	"github.com/yaklabco/mdhighlight/pkg/config"
	"github.com/yaklabco/mdhighlight/pkg/extract"
	"github.com/yaklabco/mdhighlight/pkg/reporter"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

type extractFlags struct {
	format    string
	out       string
	ignore    []string
	include   []string
	follow    bool
	detect    bool
	fenced    bool
	noCode    bool
	noSummary bool
	compact   bool
}

func newExtractCommand() *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "List or write out the code blocks of Markdown files",
		Long:  extractLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText),
		"output format: text, styled, table, json, yaml, summary")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write each code block to a file in this directory")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil,
		"only process files matching these glob patterns")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.detect, "detect-languages", false,
		"guess the language of code blocks without fence info")
	cmd.Flags().BoolVar(&flags.fenced, "fenced-only", false,
		"skip files without a top-level fenced code block")
	cmd.Flags().BoolVar(&flags.noCode, "no-code", false, "list code blocks without their contents")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")

	return cmd
}

const extractLongDescription = `## extract

Finds the top-level code blocks of every .md and .markdown file under the
given paths (default: the current directory) and lists them with their
position, language and size.

With *--out* each block is also written to its own file, named after the
source document and the block's position:

` + "```sh" + `
mdhighlight extract                      # list blocks below .
mdhighlight extract docs/ --format table
mdhighlight extract README.md --out snippets/
` + "```"

func runExtract(cmd *cobra.Command, args []string, flags *extractFlags) error {
	cli := &config.Config{
		Ignore:          flags.ignore,
		DetectLanguages: flags.detect,
	}
	if cmd.Flags().Changed("format") {
		cli.Format = config.OutputFormat(flags.format)
	}

	sess, err := newSession(cmd, cli)
	if err != nil {
		return err
	}
	cfg := sess.config

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     sess.workDir,
		Extensions:     runner.DefaultExtensions(),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.follow,
		FencedOnly:     flags.fenced,
		Jobs:           cfg.Jobs,
	}

	sess.logger.Debug("starting extract run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(sess.highlighter()).Run(sess.ctx, runOpts)
	if err != nil {
		return fmt.Errorf("extract run failed: %w", err)
	}
	sess.logger.Debug("extract run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowCode:    !flags.noCode,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		sess.logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if flags.out != "" {
		written, err := extract.WriteAll(sess.ctx, result, extract.Options{
			Dir:        flags.out,
			WorkingDir: sess.workDir,
		})
		for _, w := range written {
			if w.Changed {
				sess.logger.Debug("wrote code block", logging.FieldPath, w.Path)
			}
		}
		if err != nil {
			return fmt.Errorf("write code blocks: %w", err)
		}
		sess.logger.Info("extracted code blocks",
			logging.FieldOutput, flags.out,
			logging.FieldBlocksWritten, len(written),
		)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}
