package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics holds Prometheus metrics for the normalization and query
// pipeline.
type PipelineMetrics struct {
	// Normalization
	RecordsNormalized *prometheus.CounterVec
	RecordsDropped    *prometheus.CounterVec

	// Reconciliation
	StoreMerges prometheus.Counter

	// Query pipeline
	CatalogQueries *prometheus.CounterVec
	QueryDuration  prometheus.Histogram

	// Upstream
	UpstreamErrors *prometheus.CounterVec

	// Presets
	PresetLoads *prometheus.CounterVec
}

// NewPipelineMetrics creates and registers all pipeline metrics.
func NewPipelineMetrics(namespace string) *PipelineMetrics {
	if namespace == "" {
		namespace = "vitryna"
	}

	subsystem := "pipeline"

	return &PipelineMetrics{
		RecordsNormalized: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "records_normalized_total",
				Help:      "Total upstream records successfully normalized",
			},
			[]string{"kind"}, // kind: product, store
		),
		RecordsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "records_dropped_total",
				Help:      "Total upstream records dropped for missing identity",
			},
			[]string{"kind"},
		),
		StoreMerges: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_merges_total",
				Help:      "Total store association merge operations",
			},
		),
		CatalogQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_queries_total",
				Help:      "Total catalog queries by pagination source",
			},
			[]string{"source"}, // source: local, server, superseded
		),
		QueryDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "End-to-end catalog query duration including the upstream fetch",
				Buckets:   prometheus.DefBuckets,
			},
		),
		UpstreamErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_errors_total",
				Help:      "Total failed upstream fetches",
			},
			[]string{"endpoint"}, // endpoint: catalog, detail, stores, categories
		),
		PresetLoads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "preset_loads_total",
				Help:      "Total filter preset loads",
			},
			[]string{"result"}, // result: hit, miss
		),
	}
}
