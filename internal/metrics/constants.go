package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameSecurityRejections   = "http_security_rejections_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Production metric names
const (
	MetricNameSimulations      = "vista_production_simulations_total"
	MetricNameRuns             = "vista_production_runs_total"
	MetricNameRunDuration      = "vista_production_run_duration_seconds"
	MetricNameUnitsProduced    = "vista_units_produced_total"
	MetricNameRestocks         = "vista_restocks_total"
	MetricNameBackups          = "vista_backups_total"
	MetricNameIdempotentReplay = "vista_idempotent_replays_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextSecurityRejections   = "Requests rejected by the auth and rate limit middleware"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextSimulations      = "Total number of production simulations by feasibility"
	HelpTextRuns             = "Total number of production run attempts by outcome"
	HelpTextRunDuration      = "Time spent committing a production run"
	HelpTextUnitsProduced    = "Total finished units produced per product"
	HelpTextRestocks         = "Total number of restocks per resource kind"
	HelpTextBackups          = "Total number of snapshot backups by outcome"
	HelpTextIdempotentReplay = "Total number of execute responses served from the idempotency cache"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelFeasible = "feasible"
	LabelOutcome  = "outcome"
	LabelProduct  = "product"
	LabelKind     = "kind"
	LabelReason   = "reason"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Security rejection reasons
const (
	ReasonUnauthorized = "unauthorized"
	ReasonRateLimited  = "rate_limited"
)

// ============================================================================
// Bucket Configuration
// ============================================================================

// HTTPLatencyBuckets are the histogram buckets for HTTP latency (seconds)
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded  = "Metrics recorded for event"
	LogMsgPayloadUndecoded = "Event payload could not be decoded"
)
