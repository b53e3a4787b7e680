package logging

// Structured logging keys shared by the CLI commands.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	FieldFlavor          = "flavor"
	FieldFormat          = "format"
	FieldJobs            = "jobs"
	FieldDetectLanguages = "detect_languages"

	FieldCodeBlocks      = "code_blocks"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldBlocksWritten   = "blocks_written"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
