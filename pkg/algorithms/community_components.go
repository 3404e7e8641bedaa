package algorithms

import (
	"container/list"
	"context"

	"github.com/dd0wney/pepnets/pkg/clustering"
	"github.com/dd0wney/pepnets/pkg/network"
)

// ConnectedComponents assigns every connected component its own community.
// Resolution and weights are ignored.
type ConnectedComponents struct{}

// Name returns "components"
func (ConnectedComponents) Name() string { return AlgorithmComponents }

// Partition finds the components with a BFS from each unvisited node
func (ConnectedComponents) Partition(ctx context.Context, g *network.ProteinGraph, _ clustering.PartitionOptions) (map[int]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	visited := make(map[int]bool)
	labels := make(map[int]int)
	componentID := 0

	// BFS to find each component
	for _, start := range g.Nodes() {
		if visited[start.ID] {
			continue
		}

		queue := list.New()
		queue.PushBack(start.ID)
		visited[start.ID] = true

		for queue.Len() > 0 {
			nodeID, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			labels[nodeID] = componentID

			for _, neighbor := range g.Neighbors(nodeID) {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue.PushBack(neighbor)
				}
			}
		}
		componentID++
	}

	return canonical(g, labels), nil
}
