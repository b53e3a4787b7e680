package runner

import (
	"github.com/yaklabco/mdhighlight/pkg/highlight"
	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// FileOutcome is the highlight result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Text is the highlighted buffer. Nil if the file could not be processed.
	Text *styled.Text

	// CodeBlocks are the file's top-level code blocks in document order.
	CodeBlocks []highlight.CodeBlock

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesWithCode is the number of files holding at least one code block.
	FilesWithCode int

	CodeBlocksTotal int

	// CodeBlocksByLanguage counts blocks per language; unlabeled blocks
	// are counted under "".
	CodeBlocksByLanguage map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasCodeBlocks reports whether any code block was found.
func (r *Result) HasCodeBlocks() bool {
	if r == nil {
		return false
	}
	return r.Stats.CodeBlocksTotal > 0
}

func newStats() Stats {
	return Stats{
		CodeBlocksByLanguage: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if len(outcome.CodeBlocks) > 0 {
		r.Stats.FilesWithCode++
	}
	r.Stats.CodeBlocksTotal += len(outcome.CodeBlocks)
	for _, block := range outcome.CodeBlocks {
		r.Stats.CodeBlocksByLanguage[block.Language]++
	}
}

// NewResult builds a Result from outcomes that were produced without
// discovery, such as a document read from standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}
