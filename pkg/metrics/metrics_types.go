package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a clustering run
type Registry struct {
	// Input Metrics
	PeptidesTotal *prometheus.CounterVec

	// Graph Metrics
	GraphsBuiltTotal prometheus.Counter
	GraphNodes       prometheus.Histogram
	GraphEdges       prometheus.Histogram

	// Clustering Metrics
	PartitionDuration     *prometheus.HistogramVec
	PartitionErrorsTotal  *prometheus.CounterVec
	ClustersCreatedTotal  *prometheus.CounterVec
	ClustersMergedTotal   prometheus.Counter
	ClustersRemovedTotal  prometheus.Counter
	ClustersCurrent       prometheus.Gauge
	ClusterSize           prometheus.Histogram
	Modularity            prometheus.Histogram

	// Pipeline Metrics
	StageDuration *prometheus.HistogramVec
	RunsTotal     *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initInputMetrics()
	r.initGraphMetrics()
	r.initClusteringMetrics()
	r.initPipelineMetrics()

	return r
}
