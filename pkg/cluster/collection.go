package cluster

import (
	"container/list"
	"fmt"
	"sort"
	"sync"
)

// Collection holds clusters keyed by id, in insertion order.
//
// Concurrent Safety:
// 1. All public methods use RWMutex for thread-safe access
// 2. Clusters returned by lookups must not be mutated concurrently with the collection
type Collection struct {
	clusters *list.List               // *Cluster in collection order
	byID     map[string]*list.Element // id -> element of clusters
	mu       sync.RWMutex
}

// NewCollection creates a collection holding clusters in the given order
func NewCollection(clusters ...*Cluster) (*Collection, error) {
	col := &Collection{
		clusters: list.New(),
		byID:     make(map[string]*list.Element, len(clusters)),
	}
	for _, c := range clusters {
		if err := col.add(c); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// AddCluster appends c to the collection
func (col *Collection) AddCluster(c *Cluster) error {
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.add(c)
}

func (col *Collection) add(c *Cluster) error {
	if _, exists := col.byID[c.id]; exists {
		return &ClusterError{Op: "AddCluster", ClusterID: c.id, Cause: ErrDuplicateID}
	}
	col.byID[c.id] = col.clusters.PushBack(c)
	return nil
}

// RemoveCluster removes the cluster with the given id
func (col *Collection) RemoveCluster(id string) error {
	col.mu.Lock()
	defer col.mu.Unlock()

	e, ok := col.byID[id]
	if !ok {
		return &ClusterError{Op: "RemoveCluster", ClusterID: id, Cause: ErrNotFound}
	}
	col.clusters.Remove(e)
	delete(col.byID, id)
	return nil
}

// Len returns the number of clusters
func (col *Collection) Len() int {
	col.mu.RLock()
	defer col.mu.RUnlock()
	return col.clusters.Len()
}

// Clusters returns the clusters in collection order
func (col *Collection) Clusters() []*Cluster {
	col.mu.RLock()
	defer col.mu.RUnlock()
	return col.ordered()
}

// ordered returns the clusters in collection order
func (col *Collection) ordered() []*Cluster {
	out := make([]*Cluster, 0, col.clusters.Len())
	for e := col.clusters.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Cluster))
	}
	return out
}

// Sizes returns the peptide count of every cluster in collection order
func (col *Collection) Sizes() []int {
	col.mu.RLock()
	defer col.mu.RUnlock()

	sizes := make([]int, 0, col.clusters.Len())
	for _, c := range col.ordered() {
		sizes = append(sizes, c.NPeptides())
	}
	return sizes
}

// Proteins returns the sorted unique protein names
func (col *Collection) Proteins() []string {
	col.mu.RLock()
	defer col.mu.RUnlock()
	return col.proteins()
}

func (col *Collection) proteins() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range col.ordered() {
		if _, ok := seen[c.protein]; ok {
			continue
		}
		seen[c.protein] = struct{}{}
		out = append(out, c.protein)
	}
	sort.Strings(out)
	return out
}

// GetClusterByID returns the cluster with the given id
func (col *Collection) GetClusterByID(id string) (*Cluster, error) {
	col.mu.RLock()
	defer col.mu.RUnlock()

	e, ok := col.byID[id]
	if !ok {
		return nil, &ClusterError{Op: "GetClusterByID", ClusterID: id, Cause: ErrNotFound}
	}
	return e.Value.(*Cluster), nil
}

// GetCluster returns the first cluster of protein containing sequence
func (col *Collection) GetCluster(sequence, protein string) (*Cluster, error) {
	col.mu.RLock()
	defer col.mu.RUnlock()

	for _, c := range col.ordered() {
		if c.protein != protein {
			continue
		}
		for _, s := range c.sequences {
			if s == sequence {
				return c, nil
			}
		}
	}
	return nil, &ClusterError{Op: "GetCluster", Protein: protein, Sequence: sequence, Cause: ErrNotFound}
}

// RemoveSmallClusters removes clusters holding fewer than threshold peptides
// and returns how many were removed
func (col *Collection) RemoveSmallClusters(threshold int) int {
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.removeIf(func(c *Cluster) bool { return c.NPeptides() < threshold })
}

// NBiggest returns the n clusters with the most peptides. Ties keep collection order.
func (col *Collection) NBiggest(n int) []*Cluster {
	col.mu.RLock()
	sorted := col.ordered()
	col.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NPeptides() > sorted[j].NPeptides()
	})
	n = max(0, min(n, len(sorted)))
	return sorted[:n]
}

// Reindex renames clusters "{protein}_{rank}" with ranks ordered by start
// within each protein. Collection order is unchanged.
func (col *Collection) Reindex() {
	col.mu.Lock()
	defer col.mu.Unlock()

	all := col.ordered()
	byProtein := make(map[string][]*Cluster)
	for _, c := range all {
		byProtein[c.protein] = append(byProtein[c.protein], c)
	}
	for protein, clusters := range byProtein {
		sort.SliceStable(clusters, func(i, j int) bool {
			return clusters[i].start < clusters[j].start
		})
		for rank, c := range clusters {
			c.id = fmt.Sprintf("%s_%d", protein, rank)
		}
	}

	col.byID = make(map[string]*list.Element, len(all))
	for e := col.clusters.Front(); e != nil; e = e.Next() {
		col.byID[e.Value.(*Cluster).id] = e
	}
}

// removeIf drops every cluster matching drop and returns the count
func (col *Collection) removeIf(drop func(*Cluster) bool) int {
	removed := 0
	for e := col.clusters.Front(); e != nil; {
		next := e.Next()
		if c := e.Value.(*Cluster); drop(c) {
			col.clusters.Remove(e)
			delete(col.byID, c.id)
			removed++
		}
		e = next
	}
	return removed
}
