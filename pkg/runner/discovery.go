package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/mdhighlight/pkg/fsutil"
)

// maxFenceIndent is the deepest indent at which a line still opens a
// top-level fence; four spaces make an indented code block instead.
const maxFenceIndent = 3

// Discover returns the sorted, deduplicated absolute paths of the Markdown
// files selected by opts. Hidden files and directories are skipped unless
// named directly.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	w, err := newWalker(opts)
	if err != nil {
		return nil, err
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := w.add(ctx, input); err != nil {
			return nil, err
		}
	}

	return slices.Sorted(maps.Keys(w.found)), nil
}

// walker accumulates matching files across one Discover call.
type walker struct {
	workDir    string
	extensions map[string]bool
	include    globSet
	exclude    globSet
	follow     bool
	fencedOnly bool

	// visited holds the resolved directories already walked, which keeps
	// followed symlink cycles finite.
	visited map[string]bool
	found   map[string]struct{}
}

func newWalker(opts Options) (*walker, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	extensions := make(map[string]bool)
	for _, ext := range opts.effectiveExtensions() {
		extensions[strings.ToLower(ext)] = true
	}

	return &walker{
		workDir:    workDir,
		extensions: extensions,
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		fencedOnly: opts.FencedOnly,
		visited:    make(map[string]bool),
		found:      make(map[string]struct{}),
	}, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// add handles one user-supplied path, a file or a directory.
func (w *walker) add(ctx context.Context, input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(w.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if !info.IsDir() {
		w.consider(ctx, abs)
		return nil
	}
	return w.walk(ctx, abs)
}

func (w *walker) walk(ctx context.Context, root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if w.visited[real] {
			return nil
		}
		w.visited[real] = true
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}
		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(entry.Name(), ".")
		switch {
		case entry.IsDir():
			if hidden || w.exclude.match(w.relative(path)) {
				return filepath.SkipDir
			}
		case hidden:
		case entry.Type()&fs.ModeSymlink != 0:
			return w.symlink(ctx, path)
		default:
			w.consider(ctx, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink treats a link to a file like the file itself and walks a linked
// directory only when following is enabled. Broken links are ignored.
func (w *walker) symlink(ctx context.Context, link string) error {
	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if !info.IsDir() {
		w.consider(ctx, link)
		return nil
	}
	if !w.follow || w.exclude.match(w.relative(link)) {
		return nil
	}
	return w.walk(ctx, target)
}

// consider records path if it passes the extension, glob and fence filters.
func (w *walker) consider(ctx context.Context, path string) {
	if !w.extensions[strings.ToLower(filepath.Ext(path))] {
		return
	}

	rel := w.relative(path)
	if w.exclude.match(rel) {
		return
	}
	if len(w.include) > 0 && !w.include.match(rel) {
		return
	}
	if w.fencedOnly && !fileHasFence(ctx, path) {
		return
	}

	w.found[path] = struct{}{}
}

func (w *walker) relative(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// fileHasFence reports whether the file opens a top-level fenced code block.
// Unreadable files are kept so the failure is reported when they are processed.
func fileHasFence(ctx context.Context, path string) bool {
	data, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return true
	}
	return hasTopLevelFence(data)
}

func hasTopLevelFence(data []byte) bool {
	for line := range bytes.Lines(data) {
		trimmed := bytes.TrimLeft(line, " ")
		if len(line)-len(trimmed) > maxFenceIndent {
			continue
		}
		if bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~")) {
			return true
		}
	}
	return false
}
