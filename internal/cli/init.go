package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhighlight/internal/logging"
	"github.com/yaklabco/mdhighlight/pkg/config"
	"github.com/yaklabco/mdhighlight/pkg/fsutil"
)

// defaultConfigFile is the project config name written by init.
const defaultConfigFile = ".mdhighlight.yml"

// configHeader precedes the generated settings.
const configHeader = `mdhighlight configuration.

Values here override user and system config. Flags and
MDHIGHLIGHT_* environment variables override this file.`

// ErrConfigExists is returned when init would overwrite a file without --force.
var ErrConfigExists = errors.New("configuration file already exists")

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .mdhighlight.yml with the default settings",
		Long: `Write a project configuration file holding every setting at its
default value, ready to be edited.

Examples:
  mdhighlight init                     Create .mdhighlight.yml
  mdhighlight init --force             Replace an existing file
  mdhighlight init -o docs/theme.yml   Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.NewConfig().ToYAMLWithHeader(configHeader)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
