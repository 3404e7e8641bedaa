package algorithms

import (
	"sort"

	"github.com/dd0wney/pepnets/pkg/network"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"
)

// Modularity returns the modularity Q of assignment over g. Nodes without a
// community count as singletons. A graph without edges scores 0.
func Modularity(g *network.ProteinGraph, assignment map[int]int, resolution float64, weight network.WeightKind) float64 {
	if g.NumEdges() == 0 {
		return 0
	}

	groups := make(map[int][]graph.Node)
	var unassigned [][]graph.Node
	for _, n := range g.Nodes() {
		node := simple.Node(int64(n.ID))
		c, ok := assignment[n.ID]
		if !ok {
			unassigned = append(unassigned, []graph.Node{node})
			continue
		}
		groups[c] = append(groups[c], node)
	}

	labels := make([]int, 0, len(groups))
	for c := range groups {
		labels = append(labels, c)
	}
	sort.Ints(labels)

	communities := make([][]graph.Node, 0, len(groups)+len(unassigned))
	for _, c := range labels {
		communities = append(communities, groups[c])
	}
	communities = append(communities, unassigned...)

	return community.Q(g.ToGonum(weight), communities, resolution)
}
