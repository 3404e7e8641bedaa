package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric methods accept a nil receiver so packages can run without metrics.

// RecordPeptides records how many records were resolved and excluded
func (r *Registry) RecordPeptides(resolved, unresolved int) {
	if r == nil {
		return
	}
	r.PeptidesTotal.WithLabelValues("resolved").Add(float64(resolved))
	r.PeptidesTotal.WithLabelValues("unresolved").Add(float64(unresolved))
}

// RecordGraph records a built protein graph
func (r *Registry) RecordGraph(nodes, edges int) {
	if r == nil {
		return
	}
	r.GraphsBuiltTotal.Inc()
	r.GraphNodes.Observe(float64(nodes))
	r.GraphEdges.Observe(float64(edges))
}

// RecordPartition records one partitioner call
func (r *Registry) RecordPartition(algorithm string, duration time.Duration, clusters int, err error) {
	if r == nil {
		return
	}
	r.PartitionDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	if err != nil {
		r.PartitionErrorsTotal.WithLabelValues(algorithm).Inc()
		return
	}
	r.ClustersCreatedTotal.WithLabelValues(algorithm).Add(float64(clusters))
}

// RecordModularity records the modularity of one protein partition
func (r *Registry) RecordModularity(q float64) {
	if r == nil {
		return
	}
	r.Modularity.Observe(q)
}

// RecordMerges records merged cluster pairs
func (r *Registry) RecordMerges(n int) {
	if r == nil {
		return
	}
	r.ClustersMergedTotal.Add(float64(n))
}

// RecordRemoved records pruned clusters
func (r *Registry) RecordRemoved(n int) {
	if r == nil {
		return
	}
	r.ClustersRemovedTotal.Add(float64(n))
}

// RecordCollection records the final cluster sizes
func (r *Registry) RecordCollection(sizes []int) {
	if r == nil {
		return
	}
	r.ClustersCurrent.Set(float64(len(sizes)))
	for _, n := range sizes {
		r.ClusterSize.Observe(float64(n))
	}
}

// RecordStage records the duration of a pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records the outcome of a run
func (r *Registry) RecordRun(err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.RunsTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format to path
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
