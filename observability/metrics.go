package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SelectionOutcomesTotal counts per-candidate selection outcomes by kind
	// (not_matched, rejected_by_constraint, rejected_by_rule,
	// attribute_mismatch, matched, resolution_failed, no_match_found)
	SelectionOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vselect_selection_outcomes_total",
			Help: "Total number of selection outcomes by kind",
		},
		[]string{"kind"},
	)

	// SelectionCallsTotal counts selection calls by terminal state
	SelectionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vselect_selection_calls_total",
			Help: "Total number of selection calls by terminal state",
		},
		[]string{"state"}, // matched, no_match_found, resolution_failed
	)

	// SelectionCandidatesExamined tracks how many candidates each selection
	// call examined before reaching a terminal state
	SelectionCandidatesExamined = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vselect_selection_candidates_examined",
			Help:    "Number of candidates examined per selection call",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512
		},
	)

	// MetadataFetchDuration tracks metadata resolution duration in seconds
	MetadataFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vselect_metadata_fetch_duration_seconds",
			Help:    "Metadata resolution duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to 16s
		},
		[]string{"status"}, // success, failure
	)

	// DescriptorCacheHitsTotal counts descriptor cache hits
	DescriptorCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vselect_descriptor_cache_hits_total",
			Help: "Total number of descriptor cache hits",
		},
	)

	// DescriptorCacheMissesTotal counts descriptor cache misses
	DescriptorCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vselect_descriptor_cache_misses_total",
			Help: "Total number of descriptor cache misses",
		},
	)

	// RuleEvaluationsTotal counts selection rule evaluations by verdict
	RuleEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vselect_rule_evaluations_total",
			Help: "Total number of selection rule evaluations by verdict",
		},
		[]string{"verdict"}, // accepted, rejected
	)
)

// MetricsHandler returns an HTTP handler for Prometheus metrics
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
