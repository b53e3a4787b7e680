// Package extract writes the code blocks of highlighted files to disk.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhighlight/pkg/analysis"
	"github.com/yaklabco/mdhighlight/pkg/fsutil"
	"github.com/yaklabco/mdhighlight/pkg/langdetect"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// Options configures where extracted code is written.
type Options struct {
	// Dir is the output directory. It is created if missing.
	Dir string

	// WorkingDir makes output names relative to this directory,
	// so docs/README.md becomes docs_README-1.go.
	WorkingDir string

	// Mode is the permission of written files. Zero means fsutil.DefaultFileMode.
	Mode os.FileMode
}

// Written describes one extracted code block.
type Written struct {
	// Source is the Markdown file the block came from.
	Source string

	// Index is the 1-based position of the block within its file.
	Index int

	// Path is the file the code was written to.
	Path string

	// Changed is false when the file already held the same code.
	Changed bool
}

// FileName returns the output name of the index-th block of source:
// the source path without extension, path separators replaced by '_',
// then "-<index>" and an extension chosen from the block's language.
func FileName(source string, index int, language string) string {
	stem := strings.TrimSuffix(filepath.ToSlash(source), filepath.Ext(source))
	stem = strings.ReplaceAll(stem, "/", "_")
	stem = strings.TrimLeft(stem, "._")
	if stem == "" {
		stem = "block"
	}
	return stem + "-" + strconv.Itoa(index) + langdetect.Extension(language)
}

// WriteAll writes every code block of result into opts.Dir.
// Files that failed to process are skipped. Writing stops at the first error.
func WriteAll(ctx context.Context, result *runner.Result, opts Options) ([]Written, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("extract: output directory is required")
	}
	if result == nil {
		return nil, nil
	}

	var written []Written
	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}

		source := analysis.MakeRelativePath(file.Path, opts.WorkingDir)
		for i, block := range file.CodeBlocks {
			index := i + 1
			path := filepath.Join(opts.Dir, FileName(source, index, block.Language))

			changed, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(block.Text), opts.Mode)
			if err != nil {
				return written, fmt.Errorf("extract block %d of %s: %w", index, source, err)
			}

			written = append(written, Written{
				Source:  file.Path,
				Index:   index,
				Path:    path,
				Changed: changed,
			})
		}
	}

	return written, nil
}
