package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldCount      = "count"
	FieldWorkingDir = "working_dir"

	// Fix application fields.
	FieldSARIF    = "sarif"
	FieldRun      = "run"
	FieldRule     = "rule"
	FieldTarget   = "target"
	FieldCopy     = "copy"
	FieldKind     = "kind"
	FieldTempDir  = "temp_dir"
	FieldTestRoot = "test_root"
	FieldBaseDir  = "base_dir"
	FieldApplied  = "applied"
	FieldSkipped  = "skipped"
	FieldDropped  = "dropped"
	FieldLanguage = "language"

	// Configuration fields.
	FieldConfig = "config"
	FieldFormat = "format"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
