package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInputMetrics() {
	r.PeptidesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pepnets_peptides_total",
			Help: "Peptide records read, by resolution status",
		},
		[]string{"status"},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphsBuiltTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pepnets_graphs_built_total",
			Help: "Total number of protein graphs built",
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pepnets_graph_nodes",
			Help:    "Number of peptides per protein graph",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pepnets_graph_edges",
			Help:    "Number of edges per protein graph",
			Buckets: []float64{0, 10, 100, 1000, 10000, 100000},
		},
	)
}
