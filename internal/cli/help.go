package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhighlight/internal/logging"
	"github.com/yaklabco/mdhighlight/internal/ui/pretty"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
	goldmarkparser "github.com/yaklabco/mdhighlight/pkg/parser/goldmark"
	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// minFlagGap is the run of spaces pflag puts between a flag and its usage.
const minFlagGap = 2

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Alias       lipgloss.Style

	// Dim is used for flag value types.
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles. Without color every style is plain.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	style := func(color string, bold bool) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		s := lipgloss.NewStyle().Bold(bold)
		if color != "" {
			s = s.Foreground(lipgloss.Color(color))
		}
		return s
	}

	return &HelpStyles{
		Command:     style("14", true),
		Heading:     style("11", true),
		Subcommand:  style("10", false),
		Flag:        style("12", false),
		Description: style("", false),
		Example:     style("8", false),
		Alias:       style("8", false),
		Dim:         style("8", false),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
// Long descriptions are Markdown and go through the highlighter,
// so help text gets the same heading and code block styling as render.
type HelpFormatter struct {
	styles      *HelpStyles
	highlighter *highlight.Highlighter
	renderer    *pretty.Renderer
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	colorEnabled := pretty.IsColorEnabled(colorMode, writer)
	return &HelpFormatter{
		styles: NewHelpStyles(colorEnabled),
		highlighter: highlight.New(
			goldmarkparser.New(goldmarkparser.FlavorCommonMark),
			highlight.WithLogger(logging.Default()),
		),
		renderer: pretty.NewRenderer(writer, colorEnabled),
	}
}

// RenderMarkdown highlights a Markdown description for the terminal.
// Text that fails to highlight is returned unstyled.
func (h *HelpFormatter) RenderMarkdown(markdown string) string {
	markdown = trimLineEnds(markdown)

	text := styled.NewText(markdown)
	if _, err := h.highlighter.Highlight(context.Background(), text); err != nil {
		return markdown
	}
	return h.renderer.Render(text)
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":     h.styles.Command.Render,
		"styleHeading":     h.styles.Heading.Render,
		"styleSubcommand":  h.styles.Subcommand.Render,
		"styleDescription": h.styles.Description.Render,
		"styleExample":     h.styles.Example.Render,
		"styleAlias":       h.styles.Alias.Render,
		"styleDim":         h.styles.Dim.Render,
		"styleFlagsUsage":  h.styleFlagsUsage,
		"renderMarkdown":   h.RenderMarkdown,
		"rpad":             pretty.PadRight,
		"join":             strings.Join,
	}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleAlias (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ renderMarkdown . }}

{{end}}` + usageTemplate

// styleFlagsUsage formats a pflag.FlagSet's usage lines.
func (h *HelpFormatter) styleFlagsUsage(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one line of the form "  -f, --flag type   usage".
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}

	flagPart, usage, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(line[:len(line)-len(trimmed)])
	for i, token := range strings.Fields(flagPart) {
		if i > 0 {
			b.WriteByte(' ')
		}
		if !strings.HasPrefix(token, "-") {
			b.WriteString(h.styles.Dim.Render(token))
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		b.WriteString(h.styles.Flag.Render(name))
		if comma {
			b.WriteByte(',')
		}
	}
	b.WriteString("   ")
	b.WriteString(h.styles.Description.Render(usage))

	return b.String()
}

// splitFlagLine splits at the first gap of minFlagGap or more spaces.
func splitFlagLine(line string) (string, string, bool) {
	gap := -1
	for idx, char := range line {
		switch {
		case char == ' ' && gap < 0:
			gap = idx
		case char != ' ' && gap >= 0:
			if idx-gap >= minFlagGap {
				return line[:gap], line[idx:], true
			}
			gap = -1
		}
	}
	return "", "", false
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetHelpTemplate(helpTemplate)

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// trimLineEnds drops trailing blanks from every line of s.
func trimLineEnds(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for line := range strings.Lines(s) {
		body, newline := strings.CutSuffix(line, "\n")
		b.WriteString(strings.TrimRight(body, " \t"))
		if newline {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
