package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhighlight/internal/configloader"
	"github.com/yaklabco/mdhighlight/internal/logging"
	"github.com/yaklabco/mdhighlight/pkg/config"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
	goldmarkparser "github.com/yaklabco/mdhighlight/pkg/parser/goldmark"
	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// session is the resolved state every highlighting command starts from.
type session struct {
	ctx     context.Context
	logger  *log.Logger
	workDir string
	config  *config.Config
}

// newSession loads and merges configuration. cli holds values from
// command-specific flags; the persistent flags are layered on here,
// but only when the user actually set them.
func newSession(cmd *cobra.Command, cli *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)
	ctx = logging.WithLogger(ctx, logger)

	if cli == nil {
		cli = &config.Config{}
	}

	flags := cmd.Flags()
	if flags.Changed(flagFlavor) {
		flavor, err := flags.GetString(flagFlavor)
		if err != nil {
			return nil, fmt.Errorf("get flavor flag: %w", err)
		}
		cli.Flavor = config.Flavor(flavor)
	}
	if flags.Changed(flagColor) {
		color, err := flags.GetString(flagColor)
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cli.Color = config.ColorMode(color)
	}
	if flags.Changed(flagJobs) {
		jobs, err := flags.GetInt(flagJobs)
		if err != nil {
			return nil, fmt.Errorf("get jobs flag: %w", err)
		}
		cli.Jobs = jobs
	}

	configPath, err := flags.GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration files", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDetectLanguages, cfg.DetectLanguages,
	)

	return &session{
		ctx:     ctx,
		logger:  logger,
		workDir: workDir,
		config:  cfg,
	}, nil
}

// highlighter builds a Highlighter for the session's flavor and theme.
func (s *session) highlighter() *highlight.Highlighter {
	return highlight.New(
		goldmarkparser.New(string(s.config.Flavor)),
		highlight.WithTheme(ThemeFromConfig(s.config.Theme)),
		highlight.WithLanguageDetection(s.config.DetectLanguages),
		highlight.WithLogger(s.logger),
	)
}

// ThemeFromConfig converts configured theme values into a highlight.Theme.
// Empty fields keep the built-in defaults.
func ThemeFromConfig(tc config.ThemeConfig) highlight.Theme {
	theme := highlight.DefaultTheme()

	if tc.HeadingColor != "" {
		theme.HeadingColor = styled.Color(tc.HeadingColor)
	}
	if tc.BodyFont != "" {
		theme.Defaults.Font.Family = tc.BodyFont
	}
	if tc.CodeFont != "" {
		theme.CodeFont.Family = tc.CodeFont
	}
	if tc.FontSize > 0 {
		theme.Defaults.Font.Size = tc.FontSize
		theme.CodeFont.Size = tc.FontSize
	}

	return theme
}
