package analysis

import "time"

// Report contains pre-computed views of highlight results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// CodeBlocks is the flat list of extracted code blocks.
	CodeBlocks []CodeBlockEntry `json:"codeBlocks,omitempty" yaml:"code_blocks,omitempty"`

	// Runs lists the attribute runs of every file, in file order.
	Runs []RunEntry `json:"runs,omitempty" yaml:"runs,omitempty"`

	// Errors lists files that could not be processed.
	Errors []FileError `json:"errors,omitempty" yaml:"errors,omitempty"`

	// ByFile groups code blocks by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty" yaml:"by_file,omitempty"`

	// ByLanguage groups code blocks by language.
	ByLanguage []LanguageAnalysis `json:"byLanguage,omitempty" yaml:"by_language,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary" yaml:"summary"`

	// Version is the report format version.
	Version string `json:"version" yaml:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// CodeBlockEntry represents a single code block in the report.
type CodeBlockEntry struct {
	FilePath    string `json:"filePath" yaml:"file_path"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
	FenceInfo   string `json:"fenceInfo,omitempty" yaml:"fence_info,omitempty"`
	StartLine   int    `json:"startLine" yaml:"start_line"`
	StartColumn int    `json:"startColumn" yaml:"start_column"`
	EndLine     int    `json:"endLine" yaml:"end_line"`
	EndColumn   int    `json:"endColumn" yaml:"end_column"`
	Location    int    `json:"location" yaml:"location"`
	Length      int    `json:"length" yaml:"length"`
	Lines       int    `json:"lines" yaml:"lines"`
	Text        string `json:"text" yaml:"text"`
}

// RunEntry is a span of one file sharing the same attributes.
// StartLine/StartColumn and EndLine/EndColumn are the inclusive 1-based
// positions of the first and last rune; an empty run reports its start twice.
type RunEntry struct {
	FilePath    string  `json:"filePath" yaml:"file_path"`
	Location    int     `json:"location" yaml:"location"`
	Length      int     `json:"length" yaml:"length"`
	StartLine   int     `json:"startLine" yaml:"start_line"`
	StartColumn int     `json:"startColumn" yaml:"start_column"`
	EndLine     int     `json:"endLine" yaml:"end_line"`
	EndColumn   int     `json:"endColumn" yaml:"end_column"`
	Foreground  string  `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	FontFamily  string  `json:"fontFamily,omitempty" yaml:"font_family,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty" yaml:"font_size,omitempty"`
	Monospace   bool    `json:"monospace,omitempty" yaml:"monospace,omitempty"`
}

// FileError records a file that failed.
type FileError struct {
	FilePath string `json:"filePath" yaml:"file_path"`
	Error    string `json:"error" yaml:"error"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files         int `json:"filesChecked" yaml:"files_checked"`
	FilesWithCode int `json:"filesWithCode" yaml:"files_with_code"`
	FilesErrored  int `json:"filesErrored" yaml:"files_errored"`
	CodeBlocks    int `json:"codeBlocks" yaml:"code_blocks"`
	Lines         int `json:"lines" yaml:"lines"`
}

// HasCodeBlocks returns true if any code block was found.
func (t Totals) HasCodeBlocks() bool {
	return t.CodeBlocks > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path       string   `json:"path" yaml:"path"`
	CodeBlocks int      `json:"codeBlocks" yaml:"code_blocks"`
	Lines      int      `json:"lines" yaml:"lines"`
	Languages  []string `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// LanguageAnalysis contains aggregated data for a single language.
// Blocks without a language are grouped under "".
type LanguageAnalysis struct {
	Language   string   `json:"language" yaml:"language"`
	CodeBlocks int      `json:"codeBlocks" yaml:"code_blocks"`
	Lines      int      `json:"lines" yaml:"lines"`
	Files      []string `json:"files,omitempty" yaml:"files,omitempty"`
}
