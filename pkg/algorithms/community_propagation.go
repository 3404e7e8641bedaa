package algorithms

import (
	"context"
	"math/rand/v2"

	"github.com/dd0wney/pepnets/pkg/clustering"
	"github.com/dd0wney/pepnets/pkg/network"
)

// DefaultLabelPropagationIterations bounds label propagation when MaxIterations is unset
const DefaultLabelPropagationIterations = 20

// LabelPropagation performs weighted label propagation.
// Fast, scalable algorithm for large graphs; resolution is ignored.
type LabelPropagation struct {
	MaxIterations int
}

// Name returns "label_propagation"
func (LabelPropagation) Name() string { return AlgorithmLabelPropagation }

// Partition starts every node with its own label and repeatedly adopts the
// label with the largest summed edge weight among neighbors, ties going to
// the smallest label. With a seed the visit order is shuffled each round;
// without one nodes are visited in graph order.
func (lp LabelPropagation) Partition(ctx context.Context, g *network.ProteinGraph, opts clustering.PartitionOptions) (map[int]int, error) {
	maxIterations := lp.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultLabelPropagationIterations
	}

	nodes := g.Nodes()
	order := make([]int, len(nodes))
	labels := make(map[int]int, len(nodes))
	for i, n := range nodes {
		order[i] = n.ID
		labels[n.ID] = i
	}

	var rng *rand.Rand
	if opts.Seed != nil {
		rng = rand.New(rand.NewPCG(uint64(*opts.Seed), 0))
	}

	// Iterate until convergence or max iterations
	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rng != nil {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		changed := false
		for _, nodeID := range order {
			// Sum neighbor weights per label
			votes := make(map[int]float64)
			for _, neighbor := range g.Neighbors(nodeID) {
				w, _ := g.EdgeWeight(nodeID, neighbor, opts.Weight)
				votes[labels[neighbor]] += w
			}
			if len(votes) == 0 {
				continue
			}

			best, bestWeight := labels[nodeID], -1.0
			for label, w := range votes {
				if w > bestWeight || (w == bestWeight && label < best) {
					best, bestWeight = label, w
				}
			}

			if best != labels[nodeID] {
				labels[nodeID] = best
				changed = true
			}
		}

		if !changed {
			break // Converged
		}
	}

	return canonical(g, labels), nil
}
