package network

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dd0wney/pepnets/pkg/peptide"
	"gonum.org/v1/gonum/graph/simple"
)

var (
	// ErrUnknownNode is returned when an edge references a node that was never added
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned when an edge connects a node to itself
	ErrSelfLoop = errors.New("self loop")
)

// WeightKind selects which edge attribute a partitioner reads
type WeightKind string

const (
	// WeightInverse is 1/(d+ε): close peptides get heavy edges
	WeightInverse WeightKind = "inverse"
	// WeightDistance is the raw distance d+ε
	WeightDistance WeightKind = "distance"
)

// ParseWeightKind converts a config value to a WeightKind. Empty means inverse.
func ParseWeightKind(s string) (WeightKind, error) {
	switch WeightKind(s) {
	case WeightInverse, "":
		return WeightInverse, nil
	case WeightDistance:
		return WeightDistance, nil
	}
	return "", fmt.Errorf("unknown edge weight %q", s)
}

// Node is a peptide in a protein graph
type Node struct {
	ID       int    `json:"id"`
	Sequence string `json:"sequence"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Edge connects two peptides whose distance passed the cutoff
type Edge struct {
	From          int     `json:"from"`
	To            int     `json:"to"`
	Weight        float64 `json:"weight"`
	InverseWeight float64 `json:"inverse_weight"`
}

// WeightOf returns the edge attribute selected by kind
func (e Edge) WeightOf(kind WeightKind) float64 {
	if kind == WeightDistance {
		return e.Weight
	}
	return e.InverseWeight
}

// ProteinGraph is the undirected peptide graph of a single protein.
// Nodes keep insertion order; at most one edge exists per node pair.
type ProteinGraph struct {
	Protein string

	nodes     []Node
	index     map[int]int
	edges     []Edge
	adjacency map[int]map[int]int // node -> neighbor -> edge index
}

// NewProteinGraph creates an empty graph for protein
func NewProteinGraph(protein string) *ProteinGraph {
	return &ProteinGraph{
		Protein:   protein,
		index:     make(map[int]int),
		adjacency: make(map[int]map[int]int),
	}
}

// AddNode adds a node, replacing the attributes of an existing node with the same id
func (g *ProteinGraph) AddNode(n Node) {
	if pos, ok := g.index[n.ID]; ok {
		g.nodes[pos] = n
		return
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.adjacency[n.ID] = make(map[int]int)
}

// AddEdge adds an undirected edge. An existing edge between the same pair is overwritten.
func (g *ProteinGraph) AddEdge(e Edge) error {
	if e.From == e.To {
		return fmt.Errorf("edge %d-%d: %w", e.From, e.To, ErrSelfLoop)
	}
	if _, ok := g.index[e.From]; !ok {
		return fmt.Errorf("edge %d-%d: node %d: %w", e.From, e.To, e.From, ErrUnknownNode)
	}
	if _, ok := g.index[e.To]; !ok {
		return fmt.Errorf("edge %d-%d: node %d: %w", e.From, e.To, e.To, ErrUnknownNode)
	}

	if idx, ok := g.adjacency[e.From][e.To]; ok {
		g.edges[idx] = e
		return nil
	}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.adjacency[e.From][e.To] = idx
	g.adjacency[e.To][e.From] = idx
	return nil
}

// Nodes returns the nodes in insertion order
func (g *ProteinGraph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the edges in insertion order
func (g *ProteinGraph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Node returns the node with the given id
func (g *ProteinGraph) Node(id int) (Node, bool) {
	pos, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[pos], true
}

// Neighbors returns the ids adjacent to id in ascending order
func (g *ProteinGraph) Neighbors(id int) []int {
	adj := g.adjacency[id]
	out := make([]int, 0, len(adj))
	for n := range adj {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// EdgeWeight returns the weight of the edge between a and b
func (g *ProteinGraph) EdgeWeight(a, b int, kind WeightKind) (float64, bool) {
	idx, ok := g.adjacency[a][b]
	if !ok {
		return 0, false
	}
	return g.edges[idx].WeightOf(kind), true
}

// NumNodes returns the number of nodes
func (g *ProteinGraph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of edges
func (g *ProteinGraph) NumEdges() int { return len(g.edges) }

// Peptides rebuilds the peptides held by the graph nodes, in node order
func (g *ProteinGraph) Peptides() ([]*peptide.Peptide, error) {
	out := make([]*peptide.Peptide, 0, len(g.nodes))
	for _, n := range g.nodes {
		p, err := peptide.New(n.Sequence, n.Start, g.Protein, n.ID)
		if err != nil {
			return nil, fmt.Errorf("node %d of %s: %w", n.ID, g.Protein, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ToGonum converts the graph to a gonum weighted undirected graph.
// Node ids are kept; edge weights follow kind.
func (g *ProteinGraph) ToGonum(kind WeightKind) *simple.WeightedUndirectedGraph {
	wg := simple.NewWeightedUndirectedGraph(0, 0)
	for _, n := range g.nodes {
		wg.AddNode(simple.Node(int64(n.ID)))
	}
	for _, e := range g.edges {
		wg.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(int64(e.From)),
			T: simple.Node(int64(e.To)),
			W: e.WeightOf(kind),
		})
	}
	return wg
}
