package algorithms

import (
	"context"
	"math/rand/v2"

	"github.com/dd0wney/pepnets/pkg/clustering"
	"github.com/dd0wney/pepnets/pkg/network"
	"gonum.org/v1/gonum/graph/community"
)

// Louvain partitions by modularity optimisation at the configured resolution
type Louvain struct{}

// Name returns "louvain"
func (Louvain) Name() string { return AlgorithmLouvain }

// Partition runs gonum's Louvain implementation on the weighted graph.
// A seed makes the result reproducible. Graphs without edges yield singletons.
func (Louvain) Partition(ctx context.Context, g *network.ProteinGraph, opts clustering.PartitionOptions) (map[int]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.NumEdges() == 0 {
		return singletons(g), nil
	}

	var src rand.Source
	if opts.Seed != nil {
		src = rand.NewPCG(uint64(*opts.Seed), 0)
	}

	wg := g.ToGonum(opts.Weight)
	done := make(chan community.ReducedGraph, 1)
	go func() {
		done <- community.Modularize(wg, opts.Resolution, src)
	}()

	var reduced community.ReducedGraph
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case reduced = <-done:
	}

	labels := make(map[int]int, g.NumNodes())
	for i, members := range reduced.Communities() {
		for _, n := range members {
			labels[int(n.ID())] = i
		}
	}
	return canonical(g, labels), nil
}
