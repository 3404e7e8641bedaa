package network

import (
	"context"
	"fmt"
	"sort"

	"github.com/dd0wney/pepnets/pkg/distance"
	"github.com/dd0wney/pepnets/pkg/logging"
	"github.com/dd0wney/pepnets/pkg/metrics"
	"github.com/dd0wney/pepnets/pkg/parallel"
	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Options configures graph construction
type Options struct {
	Metric  distance.Metric
	Cutoff  float64
	Divisor distance.Divisor
	Workers int
}

// DefaultOptions returns the inverse overlap metric with a cutoff of 4
func DefaultOptions() Options {
	return Options{
		Metric:  distance.MetricOverlap,
		Cutoff:  4,
		Divisor: distance.TotalLength,
	}
}

// Builder turns the peptides of each protein into a ProteinGraph
type Builder struct {
	opts    Options
	pool    *parallel.WorkerPool
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewBuilder validates opts and creates a Builder. logger and m may be nil.
func NewBuilder(opts Options, logger logging.Logger, m *metrics.Registry) (*Builder, error) {
	if opts.Metric == "" {
		opts.Metric = distance.MetricOverlap
	}
	if _, err := distance.ParseMetric(string(opts.Metric)); err != nil {
		return nil, err
	}
	divisor, err := distance.ParseDivisor(string(opts.Divisor))
	if err != nil {
		return nil, err
	}
	opts.Divisor = divisor

	pool, err := parallel.NewWorkerPool(opts.Workers)
	if err != nil {
		return nil, err
	}

	return &Builder{
		opts:    opts,
		pool:    pool,
		logger:  logging.OrNop(logger).With(logging.Component("network")),
		metrics: m,
	}, nil
}

// Options returns the effective builder options
func (b *Builder) Options() Options {
	return b.opts
}

// Build creates the graph of one protein. Every peptide becomes a node;
// pairs with different sequences that overlap at all are linked when their
// distance is within the cutoff.
func (b *Builder) Build(protein string, peptides []*peptide.Peptide) (*ProteinGraph, error) {
	g := NewProteinGraph(protein)
	for _, p := range peptides {
		if _, dup := g.Node(p.ID); dup {
			return nil, fmt.Errorf("protein %s: duplicate peptide id %d", protein, p.ID)
		}
		g.AddNode(Node{ID: p.ID, Sequence: p.Sequence, Start: p.Start, End: p.End})
	}

	for i, from := range peptides {
		for j := 0; j <= i; j++ {
			to := peptides[j]
			if from.Sequence == to.Sequence {
				continue
			}
			if distance.OverlapPercentage(from, to, distance.TotalLength) == 0 {
				continue
			}

			d := b.opts.Metric.Distance(from, to, b.opts.Divisor)
			if d > b.opts.Cutoff {
				continue
			}
			d += distance.Epsilon
			if err := g.AddEdge(Edge{From: from.ID, To: to.ID, Weight: d, InverseWeight: 1 / d}); err != nil {
				return nil, fmt.Errorf("protein %s: %w", protein, err)
			}
		}
	}

	b.metrics.RecordGraph(g.NumNodes(), g.NumEdges())
	b.logger.Debug("protein graph built",
		logging.Protein(protein),
		logging.Int("nodes", g.NumNodes()),
		logging.Int("edges", g.NumEdges()))

	return g, nil
}

// BuildAll builds the graph of every protein on the worker pool
func (b *Builder) BuildAll(ctx context.Context, peptidesByProtein map[string][]*peptide.Peptide) (map[string]*ProteinGraph, error) {
	proteins := make([]string, 0, len(peptidesByProtein))
	for protein := range peptidesByProtein {
		proteins = append(proteins, protein)
	}
	sort.Strings(proteins)

	graphs, err := parallel.Map(ctx, b.pool, proteins, func(_ context.Context, protein string) (*ProteinGraph, error) {
		return b.Build(protein, peptidesByProtein[protein])
	})
	if err != nil {
		return nil, fmt.Errorf("build protein graphs: %w", err)
	}

	out := make(map[string]*ProteinGraph, len(graphs))
	for _, g := range graphs {
		out[g.Protein] = g
	}
	return out, nil
}
