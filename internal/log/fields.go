package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCategory   = "category"
	FieldKeyword    = "keyword"
	FieldRows       = "rows"
	FieldBackend    = "backend"
	FieldStorePath  = "store_path"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentSession    = "session"
	ComponentDictionary = "dictionary"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentExport     = "export"
)

// Operations defines standard operation names
const (
	OpLoad       = "load"
	OpSave       = "save"
	OpUpload     = "upload"
	OpCategorize = "categorize"
	OpLearn      = "learn"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
