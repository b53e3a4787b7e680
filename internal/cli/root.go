// Package cli provides the Cobra command structure for mdhighlight.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhighlight/internal/configloader"
	"github.com/yaklabco/mdhighlight/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Names of the persistent flags shared by every subcommand.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagColor  = "color"
	flagFlavor = "flavor"
	flagJobs   = "jobs"
)

// NewRootCommand creates the root mdhighlight command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdhighlight",
		Short: "Block-level Markdown highlighting and code block extraction",
		Long:  rootLongDescription(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if !debug {
				return
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logging.FromContext(ctx).SetLevel(log.DebugLevel)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().String(flagFlavor, "commonmark", "Markdown flavor: commonmark, gfm")
	rootCmd.PersistentFlags().Int(flagJobs, 0, "number of parallel workers (0 = auto)")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

const rootIntro = `# mdhighlight

Styles the top-level blocks of Markdown documents for the terminal and
pulls out their fenced code blocks.

Headings are colored, code blocks are set in a monospace face, and
everything else keeps the body font. The same pass reports every code
block with its language and position:

` + "```sh" + `
mdhighlight render README.md
mdhighlight extract docs/ --format table
` + "```"

// rootLongDescription appends the supported environment variables to the intro.
func rootLongDescription() string {
	var b strings.Builder
	b.WriteString(rootIntro)
	b.WriteString("\n\n## Environment\n\n")
	for _, env := range configloader.ListEnvVars() {
		fmt.Fprintf(&b, "- %s: %s\n", env.Name, env.Description)
	}
	return b.String()
}
