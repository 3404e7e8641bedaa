package clustering

import (
	"context"
	"fmt"
	"sort"

	"github.com/dd0wney/pepnets/pkg/cluster"
	"github.com/dd0wney/pepnets/pkg/network"
	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Partitioner splits a protein graph into communities, returning a community
// index per node id. Implementations must be deterministic for a fixed seed.
type Partitioner interface {
	Partition(ctx context.Context, g *network.ProteinGraph, opts PartitionOptions) (map[int]int, error)
}

// Named is implemented by partitioners that report an algorithm name
type Named interface {
	Name() string
}

// PartitionOptions are passed to every Partition call
type PartitionOptions struct {
	Resolution float64
	Seed       *int64
	Weight     network.WeightKind
}

// DefaultPartitionOptions returns resolution 0.8, no seed and inverse weights
func DefaultPartitionOptions() PartitionOptions {
	return PartitionOptions{Resolution: 0.8, Weight: network.WeightInverse}
}

// AlgorithmName returns p's name, or its type when it has none
func AlgorithmName(p Partitioner) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

// FromPartition groups the graph nodes by community and creates one cluster
// "{protein}_{community}" per group, in ascending community order with
// members in node order. When peptidesByID is nil the peptides are rebuilt
// from node attributes.
func FromPartition(g *network.ProteinGraph, assignment map[int]int, peptidesByID map[int]*peptide.Peptide) ([]*cluster.Cluster, error) {
	if peptidesByID == nil {
		peps, err := g.Peptides()
		if err != nil {
			return nil, err
		}
		peptidesByID = make(map[int]*peptide.Peptide, len(peps))
		for _, p := range peps {
			peptidesByID[p.ID] = p
		}
	}

	groups := make(map[int][]*peptide.Peptide)
	for _, n := range g.Nodes() {
		community, ok := assignment[n.ID]
		if !ok {
			return nil, fmt.Errorf("protein %s: node %d has no community", g.Protein, n.ID)
		}
		p, ok := peptidesByID[n.ID]
		if !ok {
			return nil, fmt.Errorf("protein %s: no peptide for node %d", g.Protein, n.ID)
		}
		groups[community] = append(groups[community], p)
	}

	communities := make([]int, 0, len(groups))
	for community := range groups {
		communities = append(communities, community)
	}
	sort.Ints(communities)

	clusters := make([]*cluster.Cluster, 0, len(communities))
	for _, community := range communities {
		id := fmt.Sprintf("%s_%d", g.Protein, community)
		clusters = append(clusters, cluster.New(id, g.Protein, groups[community]))
	}
	return clusters, nil
}
