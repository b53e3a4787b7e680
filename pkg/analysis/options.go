package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by code block count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByLines sorts by lines of code, most first.
	SortByLines SortField = "lines"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByLines:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeCodeBlocks includes the flat code block list.
	IncludeCodeBlocks bool

	// IncludeRuns includes every file's attribute runs.
	IncludeRuns bool

	// IncludeByFile includes the per-file analysis.
	IncludeByFile bool

	// IncludeByLanguage includes the per-language analysis.
	IncludeByLanguage bool

	// SortBy specifies how to sort ByFile and ByLanguage.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeCodeBlocks: true,
		IncludeByFile:     true,
		IncludeByLanguage: true,
		SortBy:            SortByCount,
		SortDesc:          true,
	}
}
