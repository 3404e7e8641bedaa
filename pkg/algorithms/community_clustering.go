package algorithms

import (
	"context"

	"github.com/dd0wney/pepnets/pkg/clustering"
	"github.com/dd0wney/pepnets/pkg/network"
)

// ClusteringCoefficient computes local clustering coefficient for all nodes
// Measures how close a node's neighbors are to being a complete graph
func ClusteringCoefficient(g *network.ProteinGraph) map[int]float64 {
	coefficients := make(map[int]float64, g.NumNodes())

	// Pre-build neighbor sets to check pairs with O(1) lookups
	neighborSets := make(map[int]map[int]bool, g.NumNodes())
	for _, n := range g.Nodes() {
		set := make(map[int]bool)
		for _, neighbor := range g.Neighbors(n.ID) {
			set[neighbor] = true
		}
		neighborSets[n.ID] = set
	}

	for _, n := range g.Nodes() {
		neighbors := g.Neighbors(n.ID)
		k := len(neighbors)
		if k < 2 {
			coefficients[n.ID] = 0.0
			continue
		}

		triangles := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if neighborSets[neighbors[i]][neighbors[j]] {
					triangles++
				}
			}
		}

		// Clustering coefficient = actual triangles / possible triangles
		coefficients[n.ID] = float64(triangles) / float64(k*(k-1)/2)
	}

	return coefficients
}

// AverageClusteringCoefficient computes the average clustering coefficient
func AverageClusteringCoefficient(g *network.ProteinGraph) float64 {
	coefficients := ClusteringCoefficient(g)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}
	return sum / float64(len(coefficients))
}

// GraphStats summarizes the shape of one protein graph
type GraphStats struct {
	Protein           string
	Nodes             int
	Edges             int
	Components        int
	Density           float64
	AverageClustering float64
}

// Stats computes GraphStats for g
func Stats(g *network.ProteinGraph) GraphStats {
	stats := GraphStats{
		Protein:           g.Protein,
		Nodes:             g.NumNodes(),
		Edges:             g.NumEdges(),
		AverageClustering: AverageClusteringCoefficient(g),
	}
	if stats.Nodes > 1 {
		stats.Density = float64(stats.Edges) / float64(stats.Nodes*(stats.Nodes-1)/2)
	}

	components, _ := ConnectedComponents{}.Partition(context.Background(), g, clustering.PartitionOptions{})
	seen := make(map[int]struct{})
	for _, c := range components {
		seen[c] = struct{}{}
	}
	stats.Components = len(seen)
	return stats
}
