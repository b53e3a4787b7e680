package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/mdhighlight/pkg/highlight"
	"github.com/yaklabco/mdhighlight/pkg/mdast"
	"github.com/yaklabco/mdhighlight/pkg/runner"
	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// MakeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func MakeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	langMap       map[string]*LanguageAnalysis
	fileMap       map[string]*FileAnalysis
	langFiles     map[string]map[string]bool
	fileLanguages map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		langMap:       make(map[string]*LanguageAnalysis),
		fileMap:       make(map[string]*FileAnalysis),
		langFiles:     make(map[string]map[string]bool),
		fileLanguages: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) getOrCreateFileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileLanguages[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) getOrCreateLanguageAnalysis(lang string) *LanguageAnalysis {
	if _, ok := ctx.langMap[lang]; !ok {
		ctx.langMap[lang] = &LanguageAnalysis{Language: lang}
		ctx.langFiles[lang] = make(map[string]bool)
	}
	return ctx.langMap[lang]
}

func createCodeBlockEntry(path string, block highlight.CodeBlock) CodeBlockEntry {
	return CodeBlockEntry{
		FilePath:    path,
		Language:    block.Language,
		FenceInfo:   block.Info(),
		StartLine:   block.Start.Line,
		StartColumn: block.Start.Column,
		EndLine:     block.End.Line,
		EndColumn:   block.End.Column,
		Location:    block.Range.Location,
		Length:      block.Range.Length,
		Lines:       block.LineCount(),
		Text:        block.Text,
	}
}

func createRunEntries(path string, text *styled.Text) []RunEntry {
	runs := text.Runs()
	index := mdast.BuildLineIndex(text.String())

	entries := make([]RunEntry, 0, len(runs))
	for _, run := range runs {
		start := index.PositionAt(run.Range.Location)
		end := start
		if run.Range.Length > 0 {
			end = index.PositionAt(run.Range.Location + run.Range.Length - 1)
		}

		entries = append(entries, RunEntry{
			FilePath:    path,
			Location:    run.Range.Location,
			Length:      run.Range.Length,
			StartLine:   start.Line,
			StartColumn: start.Column,
			EndLine:     end.Line,
			EndColumn:   end.Column,
			Foreground:  string(run.Attributes.Foreground),
			FontFamily:  run.Attributes.Font.Family,
			FontSize:    run.Attributes.Font.Size,
			Monospace:   run.Attributes.Font.Monospace,
		})
	}
	return entries
}

func (ctx *analysisContext) buildByLanguage(opts Options) []LanguageAnalysis {
	result := make([]LanguageAnalysis, 0, len(ctx.langMap))
	for lang, la := range ctx.langMap {
		for f := range ctx.langFiles[lang] {
			la.Files = append(la.Files, f)
		}
		slices.Sort(la.Files)
		result = append(result, *la)
	}
	sortLanguageAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.CodeBlocks == 0 {
			continue
		}
		for lang := range ctx.fileLanguages[path] {
			fa.Languages = append(fa.Languages, lang)
		}
		slices.Sort(fa.Languages)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the code blocks to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := MakeRelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{FilePath: displayPath, Error: file.Error.Error()})
			continue
		}

		if opts.IncludeRuns && file.Text != nil {
			report.Runs = append(report.Runs, createRunEntries(displayPath, file.Text)...)
		}

		if len(file.CodeBlocks) == 0 {
			continue
		}
		report.Totals.FilesWithCode++

		fa := ctx.getOrCreateFileAnalysis(displayPath)

		for _, block := range file.CodeBlocks {
			lines := block.LineCount()
			report.Totals.CodeBlocks++
			report.Totals.Lines += lines

			fa.CodeBlocks++
			fa.Lines += lines
			if block.Language != "" {
				ctx.fileLanguages[displayPath][block.Language] = true
			}

			la := ctx.getOrCreateLanguageAnalysis(block.Language)
			la.CodeBlocks++
			la.Lines += lines
			ctx.langFiles[block.Language][displayPath] = true

			if opts.IncludeCodeBlocks {
				report.CodeBlocks = append(report.CodeBlocks, createCodeBlockEntry(displayPath, block))
			}
		}
	}

	if opts.IncludeByLanguage {
		report.ByLanguage = ctx.buildByLanguage(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

// compareCounts orders by count, then lines, honoring desc.
func compareCounts(leftCount, rightCount, leftLines, rightLines int, desc bool) int {
	result := cmp.Compare(leftCount, rightCount)
	if result == 0 {
		result = cmp.Compare(leftLines, rightLines)
	}
	if desc {
		result = -result
	}
	return result
}

func sortLanguageAnalysis(langs []LanguageAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(langs, func(left, right LanguageAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Language, right.Language)
		case SortByLines:
			result = cmp.Compare(right.Lines, left.Lines)
		default: // SortByCount
			result = compareCounts(left.CodeBlocks, right.CodeBlocks, left.Lines, right.Lines, desc)
		}
		if result == 0 {
			result = cmp.Compare(left.Language, right.Language)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortByLines:
			result = cmp.Compare(right.Lines, left.Lines)
		default: // SortByCount
			result = compareCounts(left.CodeBlocks, right.CodeBlocks, left.Lines, right.Lines, desc)
		}
		if result == 0 {
			result = cmp.Compare(left.Path, right.Path)
		}
		return result
	})
}
