package logging

// Field name constants for structured logging.
const (
	FieldError   = "error"
	FieldPath    = "path"
	FieldTarget  = "target"
	FieldTitle   = "title"
	FieldQuery   = "query"
	FieldOffset  = "offset"
	FieldResults = "results"
	FieldWidth   = "width"

	FieldConfig = "config"
	FieldLevel  = "level"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
