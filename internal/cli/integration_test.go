package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/internal/cli"
	"github.com/yaklabco/mdhighlight/pkg/config"
)

const testDocument = "# Install\n\nRun the tool:\n\n```go\npackage main\n```\n\n```\nmake build\n```\n"

// runCLI executes the root command with an isolated config file and
// returns stdout and the command error.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".mdhighlight.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: commonmark\n"), 0644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIntegration_RenderStdin(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, testDocument, "render")
	require.NoError(t, err)

	// Without color, styled output is the document itself.
	assert.Equal(t, testDocument, out)
}

func TestIntegration_RenderStdinJSONIncludesRuns(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, testDocument, "render", "--format", "json")
	require.NoError(t, err)

	var report struct {
		CodeBlocks []struct {
			FilePath string `json:"filePath"`
			Language string `json:"language"`
			Text     string `json:"text"`
		} `json:"codeBlocks"`
		Runs []struct {
			Foreground string `json:"foreground"`
			Monospace  bool   `json:"monospace"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	require.Len(t, report.CodeBlocks, 2)
	assert.Equal(t, "<stdin>", report.CodeBlocks[0].FilePath)
	assert.Equal(t, "go", report.CodeBlocks[0].Language)
	assert.Equal(t, "package main\n", report.CodeBlocks[0].Text)
	assert.Empty(t, report.CodeBlocks[1].Language)

	var headings, code int
	for _, run := range report.Runs {
		if run.Foreground == "205" {
			headings++
		}
		if run.Monospace {
			code++
		}
	}
	assert.Equal(t, 1, headings)
	assert.Equal(t, 2, code)
}

func TestIntegration_RenderFile(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "doc.md", testDocument)

	out, err := runCLI(t, "", "render", path)
	require.NoError(t, err)
	assert.Equal(t, testDocument, out)
}

func TestIntegration_RenderMissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.md")

	_, err := runCLI(t, "", "render", missing)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_ExtractText(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "doc.md", testDocument)

	out, err := runCLI(t, "", "extract", path)
	require.NoError(t, err)

	assert.Contains(t, out, "2 code blocks")
	assert.Contains(t, out, "5:1-7:3")
	assert.Contains(t, out, "package main")
	assert.Contains(t, out, "make build")
}

func TestIntegration_ExtractNoCode(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "doc.md", testDocument)

	out, err := runCLI(t, "", "extract", "--no-code", "--no-summary", path)
	require.NoError(t, err)

	assert.Contains(t, out, "5:1-7:3")
	assert.NotContains(t, out, "package main")
	assert.NotContains(t, out, "files checked")
}

func TestIntegration_ExtractFormats(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "doc.md", testDocument)

	tests := []struct {
		format string
		want   string
	}{
		{"table", "PREVIEW"},
		{"summary", "Languages Summary"},
		{"yaml", "code_blocks:"},
		{"json", `"codeBlocks"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			out, err := runCLI(t, "", "extract", "--format", tt.format, path)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestIntegration_ExtractInvalidFormat(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "doc.md", testDocument)

	_, err := runCLI(t, "", "extract", "--format", "sarif", path)
	require.Error(t, err)
}

func TestIntegration_ExtractOut(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "doc.md", testDocument)
	outDir := filepath.Join(t.TempDir(), "snippets")

	_, err := runCLI(t, "", "extract", "--out", outDir, path)
	require.NoError(t, err)

	goFiles, err := filepath.Glob(filepath.Join(outDir, "*doc-1.go"))
	require.NoError(t, err)
	require.Len(t, goFiles, 1)

	content, err := os.ReadFile(goFiles[0])
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(content))

	plain, err := filepath.Glob(filepath.Join(outDir, "*doc-2.txt"))
	require.NoError(t, err)
	assert.Len(t, plain, 1)
}

func TestIntegration_ExtractIgnore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.md"), []byte(testDocument), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "skip.md"), []byte(testDocument), 0644))

	out, err := runCLI(t, "", "extract", "--ignore", "**/vendor", "--no-code", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "keep.md")
	assert.NotContains(t, out, "skip.md")
}

func TestIntegration_ExtractFencedOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fenced.md"), []byte(testDocument), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "indented.md"), []byte("# Notes\n\n    make test\n"), 0644))

	all, err := runCLI(t, "", "extract", "--no-code", dir)
	require.NoError(t, err)
	assert.Contains(t, all, "indented.md")

	fenced, err := runCLI(t, "", "extract", "--fenced-only", "--no-code", dir)
	require.NoError(t, err)
	assert.Contains(t, fenced, "fenced.md")
	assert.NotContains(t, fenced, "indented.md")
}

func TestIntegration_ExtractIncludeAndSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	shared := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte(testDocument), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte(testDocument), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(shared, "linked.md"), []byte(testDocument), 0644))
	if err := os.Symlink(shared, filepath.Join(dir, "shared")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	out, err := runCLI(t, "", "extract", "--no-code", "--include", "guide*.md", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "guide.md")
	assert.NotContains(t, out, "notes.md")

	out, err = runCLI(t, "", "extract", "--no-code", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "linked.md")

	out, err = runCLI(t, "", "extract", "--no-code", "--follow-symlinks", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "linked.md")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), ".mdhighlight.yml")

	_, err := runCLI(t, "", "init", "--output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# mdhighlight configuration."))

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, config.DefaultHeadingColor, cfg.Theme.HeadingColor)

	_, err = runCLI(t, "", "init", "--output", target)
	require.ErrorIs(t, err, cli.ErrConfigExists)

	_, err = runCLI(t, "", "init", "--output", target, "--force")
	require.NoError(t, err)
}

func TestIntegration_InvalidFlavor(t *testing.T) {
	t.Parallel()

	_, err := runCLI(t, "# Title\n", "render", "--flavor", "markdown-extra")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_DebugLogsReachContextLogger(t *testing.T) {
	t.Parallel()

	doc := writeDocument(t, "guide.md", testDocument)
	cfgFile := filepath.Join(t.TempDir(), ".mdhighlight.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: gfm\n"), 0644))

	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.InfoLevel)

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetContext(log.WithContext(context.Background(), logger))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", cfgFile, "--color", "never", "--debug", "extract", doc})

	require.NoError(t, cmd.Execute())

	out := logs.String()
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	assert.Contains(t, out, "extract run finished")
	assert.Contains(t, out, "files_processed=1")
	assert.Contains(t, out, "flavor=gfm")
}
