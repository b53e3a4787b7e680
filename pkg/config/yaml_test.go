package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Equal(t, config.DefaultHeadingColor, cfg.Theme.HeadingColor)
	assert.Equal(t, config.DefaultCodeFont, cfg.Theme.CodeFont)
	assert.InDelta(t, float64(config.DefaultFontSize), cfg.Theme.FontSize, 0)
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{
			Ignore: []string{"*.md", "vendor/**"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "*.md", original.Ignore[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			Flavor: config.FlavorGFM,
			Theme: config.ThemeConfig{
				HeadingColor: "#ff00ff",
				BodyFont:     "Helvetica",
				CodeFont:     "Menlo",
				FontSize:     12,
			},
			DetectLanguages: true,
			Ignore:          []string{"*.bak"},
			Format:          config.FormatJSON,
			Color:           config.ColorNever,
			Jobs:            4,
		}

		assert.Equal(t, original, original.Clone())
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("serializes persisted fields only", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Flavor = config.FlavorGFM
		cfg.Format = config.FormatJSON

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: gfm")
		assert.Contains(t, string(data), "  heading_color: \"205\"")
		assert.NotContains(t, string(data), "json")
	})

	t.Run("indents nested keys", func(t *testing.T) {
		data, err := config.NewConfig().ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "theme:\n"+strings.Repeat(" ", config.YAMLIndent)+"heading_color:")
	})
}

func TestConfigToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Flavor: config.FlavorGFM}

	tests := []struct {
		name   string
		header string
		prefix string
	}{
		{"empty header", "", "flavor: gfm"},
		{"plain line", "mdhighlight", "# mdhighlight\n\nflavor: gfm"},
		{"already commented", "# mdhighlight\n", "# mdhighlight\n\nflavor: gfm"},
		{"blank line inside", "first\n\nsecond", "# first\n#\n# second\n\nflavor: gfm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := cfg.ToYAMLWithHeader(tt.header)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.prefix), "got %q", data)

			parsed, err := config.FromYAML(data)
			require.NoError(t, err)
			assert.Equal(t, config.FlavorGFM, parsed.Flavor)
		})
	}
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		data := []byte(`
flavor: gfm
detect_languages: true
theme:
  heading_color: "33"
  code_font: Menlo
  font_size: 12
ignore:
  - vendor/**
`)
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.True(t, cfg.DetectLanguages)
		assert.Equal(t, "33", cfg.Theme.HeadingColor)
		assert.Equal(t, "Menlo", cfg.Theme.CodeFont)
		assert.InDelta(t, 12.0, cfg.Theme.FontSize, 0)
		assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavor: [gfm"))
		assert.Error(t, err)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavor: gfm\ntheme:\n  heading_colour: \"33\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "heading_colour")
	})

	t.Run("rejects CLI-only keys", func(t *testing.T) {
		_, err := config.FromYAML([]byte("jobs: 4\n"))
		assert.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		for _, data := range []string{"", "# only a comment\n"} {
			cfg, err := config.FromYAML([]byte(data))
			require.NoError(t, err)
			assert.Equal(t, &config.Config{}, cfg)
		}
	})
}

func TestFlavor_IsValid(t *testing.T) {
	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("markdown-it").IsValid())
}

func TestColorMode_IsValid(t *testing.T) {
	for _, mode := range []config.ColorMode{config.ColorAuto, config.ColorAlways, config.ColorNever} {
		assert.True(t, mode.IsValid(), mode)
	}
	assert.False(t, config.ColorMode("sometimes").IsValid())
}
