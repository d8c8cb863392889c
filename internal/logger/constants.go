package logger

type ctxKey string

// Context keys
const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyAttrs     ctxKey = "log_attrs"
)

// Levels accepted by LOG_LEVEL
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Formats accepted by LOG_FORMAT
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Environments that enable source locations
var developmentEnvironments = []string{"dev", "development", "local"}

// Attribute keys added to every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
