package clustering

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/pepnets/pkg/cluster"
	"github.com/dd0wney/pepnets/pkg/logging"
	"github.com/dd0wney/pepnets/pkg/metrics"
	"github.com/dd0wney/pepnets/pkg/network"
	"github.com/dd0wney/pepnets/pkg/parallel"
	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Engine runs a Partitioner over every protein graph
type Engine struct {
	Partitioner Partitioner
	Options     PartitionOptions
	Workers     int
	// Timeout bounds each Partition call; zero means no limit
	Timeout time.Duration
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Partitioned is the outcome of clustering one protein
type Partitioned struct {
	Protein    string
	Assignment map[int]int
	Clusters   []*cluster.Cluster
}

// Cluster partitions every graph concurrently. peptidesByProtein supplies the
// peptide instances for each graph; proteins missing from it are rebuilt from
// node attributes. The collection lists clusters in sorted protein order.
func (e *Engine) Cluster(ctx context.Context, graphs map[string]*network.ProteinGraph, peptidesByProtein map[string][]*peptide.Peptide) (*cluster.Collection, []Partitioned, error) {
	if e.Partitioner == nil {
		return nil, nil, fmt.Errorf("clustering engine: no partitioner")
	}
	pool, err := parallel.NewWorkerPool(e.Workers)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.OrNop(e.Logger).With(logging.Component("clustering"))
	algorithm := AlgorithmName(e.Partitioner)
	proteins := sortedKeys(graphs)

	results, err := parallel.Map(ctx, pool, proteins, func(ctx context.Context, protein string) (Partitioned, error) {
		g := graphs[protein]

		var byID map[int]*peptide.Peptide
		if peps, ok := peptidesByProtein[protein]; ok {
			byID = make(map[int]*peptide.Peptide, len(peps))
			for _, p := range peps {
				byID[p.ID] = p
			}
		}

		assignment, err := e.partition(ctx, g)
		if err != nil {
			return Partitioned{}, fmt.Errorf("partition %s: %w", protein, err)
		}

		clusters, err := FromPartition(g, assignment, byID)
		if err != nil {
			return Partitioned{}, err
		}

		logger.Debug("protein partitioned",
			logging.Protein(protein),
			logging.Algorithm(algorithm),
			logging.Count(len(clusters)))

		return Partitioned{Protein: protein, Assignment: assignment, Clusters: clusters}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	perProtein := make([][]*cluster.Cluster, len(results))
	for i, r := range results {
		perProtein[i] = r.Clusters
	}
	col, err := collect(perProtein)
	if err != nil {
		return nil, nil, err
	}
	return col, results, nil
}

func (e *Engine) partition(ctx context.Context, g *network.ProteinGraph) (map[int]int, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	start := time.Now()
	assignment, err := e.Partitioner.Partition(ctx, g, e.Options)
	e.Metrics.RecordPartition(AlgorithmName(e.Partitioner), time.Since(start), countCommunities(assignment), err)
	return assignment, err
}

func countCommunities(assignment map[int]int) int {
	seen := make(map[int]struct{}, len(assignment))
	for _, c := range assignment {
		seen[c] = struct{}{}
	}
	return len(seen)
}
