package runner_test

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// docsTree is a small documentation repository with code-bearing files,
// non-Markdown files and directories that are usually skipped.
//
//nolint:gochecknoglobals // Read-only fixture.
var docsTree = map[string]string{
	"README.md":                  "# Project\n",
	"CHANGELOG.markdown":         "## 1.0\n",
	"docs/install.md":            "```sh\nmake\n```\n",
	"docs/api/client.md":         "```go\nclient.New()\n```\n",
	"docs/drafts/next.md":        "# Soon\n",
	"vendor/lib/README.md":       "# Vendored\n",
	"node_modules/pkg/readme.md": "# Dependency\n",
	"cmd/main.go":                "package main\n",
	"notes.txt":                  "not markdown\n",
	".github/PULL_REQUEST.md":    "# Template\n",
	"docs/.wip.md":               "# Hidden\n",
}

// relative strips dir from each discovered path.
func relative(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults to working directory",
			opts: runner.Options{},
			want: []string{
				"CHANGELOG.markdown",
				"README.md",
				"docs/api/client.md",
				"docs/drafts/next.md",
				"docs/install.md",
				"node_modules/pkg/readme.md",
				"vendor/lib/README.md",
			},
		},
		{
			name: "single file",
			opts: runner.Options{Paths: []string{"docs/install.md"}},
			want: []string{"docs/install.md"},
		},
		{
			name: "single non-markdown file is ignored",
			opts: runner.Options{Paths: []string{"notes.txt"}},
			want: []string{},
		},
		{
			name: "subdirectory",
			opts: runner.Options{Paths: []string{"docs"}},
			want: []string{"docs/api/client.md", "docs/drafts/next.md", "docs/install.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".markdown"}},
			want: []string{"CHANGELOG.markdown"},
		},
		{
			name: "exclude globs",
			opts: runner.Options{
				ExcludeGlobs: []string{"vendor/**", "**/node_modules", "docs/drafts/**"},
			},
			want: []string{
				"CHANGELOG.markdown",
				"README.md",
				"docs/api/client.md",
				"docs/install.md",
			},
		},
		{
			name: "exclude by file name",
			opts: runner.Options{Paths: []string{"docs"}, ExcludeGlobs: []string{"client.md"}},
			want: []string{"docs/drafts/next.md", "docs/install.md"},
		},
		{
			name: "include globs",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api/client.md", "docs/drafts/next.md", "docs/install.md"},
		},
		{
			name: "overlapping paths are deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/install.md", "docs/api"}},
			want: []string{"docs/api/client.md", "docs/drafts/next.md", "docs/install.md"},
		},
		{
			name: "multiple paths are merged and sorted",
			opts: runner.Options{Paths: []string{"vendor", "README.md"}},
			want: []string{"README.md", "vendor/lib/README.md"},
		},
	}

	dir := t.TempDir()
	writeFiles(t, dir, docsTree)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relative(t, dir, files))
		})
	}
}

func TestDiscover_DeterministicOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, docsTree)

	opts := runner.Options{WorkingDir: dir, Jobs: 4}

	first, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)

	for range 5 {
		again, err := runner.Discover(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, docsTree)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_FileSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"real.md": "```go\nx\n```\n"})

	if err := os.Symlink(filepath.Join(dir, "real.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"link.md", "real.md"}, relative(t, dir, files))
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"real/doc.md": "# Doc\n"})

	external := t.TempDir()
	writeFiles(t, external, map[string]string{"external.md": "# External\n"})

	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	t.Run("not followed by default", func(t *testing.T) {
		t.Parallel()

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"real/doc.md"}, relative(t, dir, files))
	})

	t.Run("followed when enabled", func(t *testing.T) {
		t.Parallel()

		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:     dir,
			FollowSymlinks: true,
		})
		require.NoError(t, err)
		require.Len(t, files, 2)

		var names []string
		for _, f := range files {
			names = append(names, filepath.Base(f))
		}
		assert.ElementsMatch(t, []string{"doc.md", "external.md"}, names)
	})
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"docs/[unclosed"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, path.ErrBadPattern)
}

func TestDiscover_FencedOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"backticks.md": "# A\n\n```go\nx\n```\n",
		"tildes.md":    "~~~\ny\n~~~\n",
		"indented.md":  "   ```\nthree spaces still fence\n```\n",
		"prose.md":     "# Only words\n\nNo code here.\n",
		"deep.md":      "    ```\nfour spaces is indented code\n",
		"quoted.md":    "> ```\n> nested\n> ```\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		FencedOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"backticks.md", "indented.md", "tildes.md"}, relative(t, dir, files))
}

func TestDiscover_SymlinkCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"docs/a.md": "# A\n"})

	if err := os.Symlink(dir, filepath.Join(dir, "docs", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md"}, relative(t, dir, files))
}
