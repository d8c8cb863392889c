package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	SecurityRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSecurityRejections,
			Help: HelpTextSecurityRejections,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Production Metrics
var (
	ProductionSimulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSimulations,
			Help: HelpTextSimulations,
		},
		[]string{LabelFeasible},
	)

	// ProductionRuns is labelled with "success", "error" or the failure kind
	ProductionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRuns,
			Help: HelpTextRuns,
		},
		[]string{LabelOutcome},
	)

	ProductionRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRunDuration,
			Help:    HelpTextRunDuration,
			Buckets: prometheus.DefBuckets,
		},
	)

	UnitsProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsProduced,
			Help: HelpTextUnitsProduced,
		},
		[]string{LabelProduct},
	)

	Restocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRestocks,
			Help: HelpTextRestocks,
		},
		[]string{LabelKind},
	)

	Backups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBackups,
			Help: HelpTextBackups,
		},
		[]string{LabelOutcome},
	)

	IdempotentReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameIdempotentReplay,
			Help: HelpTextIdempotentReplay,
		},
	)
)
