package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhighlight/pkg/config"
)

// envVarPrefix is the prefix for all mdhighlight environment variables.
const envVarPrefix = "MDHIGHLIGHT_"

// EnvConfigPath names a config file to load when --config is not given.
const EnvConfigPath = envVarPrefix + "CONFIG"

// envSetter applies a raw environment value to the config.
type envSetter func(cfg *config.Config, value string) error

// envVar describes one supported environment variable.
type envVar struct {
	description string
	apply       envSetter
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"FLAVOR": {
		description: "Markdown flavor: commonmark or gfm",
		apply: func(cfg *config.Config, value string) error {
			cfg.Flavor = config.Flavor(value)
			return nil
		},
	},
	"FORMAT": {
		description: "Output format: text, styled, table, json, yaml, or summary",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"COLOR": {
		description: "Color output: auto, always, or never",
		apply: func(cfg *config.Config, value string) error {
			cfg.Color = config.ColorMode(value)
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"DETECT_LANGUAGES": {
		description: "Guess languages of unlabeled code blocks: true or false",
		apply: func(cfg *config.Config, value string) error {
			detect, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
			}
			cfg.DetectLanguages = detect
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
	"HEADING_COLOR": {
		description: "Heading color: ANSI number or #RRGGBB",
		apply: func(cfg *config.Config, value string) error {
			cfg.Theme.HeadingColor = value
			return nil
		},
	},
	"CODE_FONT": {
		description: "Font family of code blocks",
		apply: func(cfg *config.Config, value string) error {
			cfg.Theme.CodeFont = value
			return nil
		},
	},
	"FONT_SIZE": {
		description: "Font size in points",
		apply: func(cfg *config.Config, value string) error {
			size, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", value)
			}
			cfg.Theme.FontSize = size
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDHIGHLIGHT_ (e.g., MDHIGHLIGHT_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, env := range envVars {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}

		if err := env.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVarHelp describes a supported environment variable.
type EnvVarHelp struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVarHelp {
	list := make([]EnvVarHelp, 0, len(envVars)+1)
	list = append(list, EnvVarHelp{Name: EnvConfigPath, Description: "Config file used when --config is not given"})
	for suffix, env := range envVars {
		list = append(list, EnvVarHelp{Name: envVarPrefix + suffix, Description: env.description})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}
