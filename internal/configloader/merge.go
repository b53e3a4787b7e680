package configloader

import (
	"slices"

	"github.com/yaklabco/mdhighlight/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Only true can be layered on; a file cannot switch detection back off.
	if override.DetectLanguages {
		result.DetectLanguages = true
	}

	result.Theme = mergeTheme(base.Theme, override.Theme)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

// mergeTheme overlays the non-zero fields of override onto base.
func mergeTheme(base, override config.ThemeConfig) config.ThemeConfig {
	result := base

	if override.HeadingColor != "" {
		result.HeadingColor = override.HeadingColor
	}
	if override.BodyFont != "" {
		result.BodyFont = override.BodyFont
	}
	if override.CodeFont != "" {
		result.CodeFont = override.CodeFont
	}
	if override.FontSize != 0 {
		result.FontSize = override.FontSize
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
