package clustering

import (
	"context"
	"fmt"
	"sort"

	"github.com/dd0wney/pepnets/pkg/cluster"
	"github.com/dd0wney/pepnets/pkg/distance"
	"github.com/dd0wney/pepnets/pkg/parallel"
	"github.com/dd0wney/pepnets/pkg/peptide"
)

// DeterministicClusterer groups peptides by first-fit overlap, longest peptides first
type DeterministicClusterer struct {
	Threshold float64
	Divisor   distance.Divisor
	Workers   int
}

// ClusterProtein clusters the peptides of one protein. Peptides are visited
// by length, longest first (stable). Each joins the first cluster, in creation
// order, holding a member it overlaps by more than Threshold; otherwise it
// starts a new cluster. A peptide that overlaps no member at all always
// starts a new cluster.
func (d *DeterministicClusterer) ClusterProtein(protein string, peptides []*peptide.Peptide) []*cluster.Cluster {
	if len(peptides) == 0 {
		return nil
	}

	divisor := d.Divisor
	if divisor == "" {
		divisor = distance.TotalLength
	}

	sorted := append([]*peptide.Peptide(nil), peptides...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})

	groups := [][]*peptide.Peptide{{sorted[0]}}
	for _, p := range sorted[1:] {
		placed := false
		for gi, members := range groups {
			best := 0.0
			for _, m := range members {
				best = max(best, distance.OverlapPercentage(p, m, divisor))
			}
			if best > 0 && best > d.Threshold {
				groups[gi] = append(members, p)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*peptide.Peptide{p})
		}
	}

	clusters := make([]*cluster.Cluster, len(groups))
	for i, members := range groups {
		clusters[i] = cluster.New(fmt.Sprintf("%s_%d", protein, i), protein, members)
	}
	return clusters
}

// Cluster clusters every protein on a worker pool and returns the clusters
// in sorted protein order
func (d *DeterministicClusterer) Cluster(ctx context.Context, peptidesByProtein map[string][]*peptide.Peptide) (*cluster.Collection, error) {
	pool, err := parallel.NewWorkerPool(d.Workers)
	if err != nil {
		return nil, err
	}

	proteins := sortedKeys(peptidesByProtein)
	results, err := parallel.Map(ctx, pool, proteins, func(_ context.Context, protein string) ([]*cluster.Cluster, error) {
		return d.ClusterProtein(protein, peptidesByProtein[protein]), nil
	})
	if err != nil {
		return nil, err
	}
	return collect(results)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func collect(perProtein [][]*cluster.Cluster) (*cluster.Collection, error) {
	all := make([]*cluster.Cluster, 0)
	for _, clusters := range perProtein {
		all = append(all, clusters...)
	}
	return cluster.NewCollection(all...)
}
