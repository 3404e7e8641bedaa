package algorithms

import (
	"sort"

	"github.com/dd0wney/pepnets/pkg/network"
)

// Community represents a detected community
type Community struct {
	ID      int
	Nodes   []int
	Size    int
	Density float64 // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community
	Modularity    float64     // Quality measure of the partitioning
	NodeCommunity map[int]int // Node ID -> Community ID
}

// Summarize describes a partition of g: members and internal edge density per
// community, plus the modularity at the given resolution
func Summarize(g *network.ProteinGraph, assignment map[int]int, resolution float64, weight network.WeightKind) *CommunityDetectionResult {
	members := make(map[int][]int)
	for _, n := range g.Nodes() {
		if c, ok := assignment[n.ID]; ok {
			members[c] = append(members[c], n.ID)
		}
	}

	internal := make(map[int]int)
	for _, e := range g.Edges() {
		cf, okf := assignment[e.From]
		ct, okt := assignment[e.To]
		if okf && okt && cf == ct {
			internal[cf]++
		}
	}

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	communities := make([]*Community, 0, len(ids))
	for _, id := range ids {
		nodes := members[id]
		community := &Community{ID: id, Nodes: nodes, Size: len(nodes)}
		if community.Size > 1 {
			possible := community.Size * (community.Size - 1) / 2
			community.Density = float64(internal[id]) / float64(possible)
		}
		communities = append(communities, community)
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		Modularity:    Modularity(g, assignment, resolution, weight),
		NodeCommunity: assignment,
	}
}

// canonical renumbers communities 0..k-1 in order of each community's smallest node id
func canonical(g *network.ProteinGraph, labels map[int]int) map[int]int {
	ids := make([]int, 0, g.NumNodes())
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	sort.Ints(ids)

	renumber := make(map[int]int)
	out := make(map[int]int, len(ids))
	for _, id := range ids {
		label, ok := labels[id]
		if !ok {
			continue
		}
		idx, seen := renumber[label]
		if !seen {
			idx = len(renumber)
			renumber[label] = idx
		}
		out[id] = idx
	}
	return out
}

// singletons places every node in its own community
func singletons(g *network.ProteinGraph) map[int]int {
	labels := make(map[int]int, g.NumNodes())
	for _, n := range g.Nodes() {
		labels[n.ID] = n.ID
	}
	return canonical(g, labels)
}
