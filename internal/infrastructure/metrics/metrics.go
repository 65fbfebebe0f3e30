package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GroupingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scentmatch_grouping_duration_seconds",
			Help:    "Duration of a variant grouping run in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	GroupingInputSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scentmatch_grouping_input_variants",
			Help:    "Number of variants handed to a grouping run",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200},
		},
	)

	GroupsProduced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scentmatch_groups_produced_total",
			Help: "Total number of variant groups emitted",
		},
	)

	ClusterFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scentmatch_cluster_failures_total",
			Help: "Clusters that failed and were emitted as singleton groups",
		},
	)

	MalformedInputs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentmatch_malformed_inputs_total",
			Help: "Input variants accepted with a degraded field",
		},
		[]string{"field"},
	)

	EngineFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scentmatch_engine_fallbacks_total",
			Help: "Requests answered with the ungrouped list after an engine failure",
		},
	)

	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentmatch_catalog_requests_total",
			Help: "Catalog backend requests by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentmatch_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentmatch_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scentmatch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
