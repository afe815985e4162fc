package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"

	// Mapper fields.
	FieldLineCount  = "line_count"
	FieldBlockCount = "block_count"
	FieldBuildTime  = "build_time"
	FieldState      = "state"
	FieldRevision   = "revision"

	// Renderer fields.
	FieldFlavor = "flavor"
	FieldBlocks = "blocks"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
