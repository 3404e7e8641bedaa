package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initClusteringMetrics() {
	r.PartitionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pepnets_partition_duration_seconds",
			Help:    "Time spent partitioning one protein graph",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"algorithm"},
	)

	r.PartitionErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pepnets_partition_errors_total",
			Help: "Partitioner calls that failed",
		},
		[]string{"algorithm"},
	)

	r.ClustersCreatedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pepnets_clusters_created_total",
			Help: "Clusters materialized from partitions",
		},
		[]string{"algorithm"},
	)

	r.ClustersMergedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pepnets_clusters_merged_total",
			Help: "Cluster pairs merged by endpoint proximity",
		},
	)

	r.ClustersRemovedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pepnets_clusters_removed_total",
			Help: "Clusters pruned for being smaller than the size threshold",
		},
	)

	r.ClustersCurrent = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pepnets_clusters",
			Help: "Clusters in the final collection",
		},
	)

	r.ClusterSize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pepnets_cluster_size",
			Help:    "Peptides per cluster in the final collection",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100},
		},
	)

	r.Modularity = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pepnets_modularity",
			Help:    "Modularity of each protein partition",
			Buckets: []float64{-0.5, 0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		},
	)
}

func (r *Registry) initPipelineMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pepnets_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0, 600.0},
		},
		[]string{"stage"},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pepnets_runs_total",
			Help: "Clustering runs, by outcome",
		},
		[]string{"status"},
	)
}
