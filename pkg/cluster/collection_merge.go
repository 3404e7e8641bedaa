package cluster

// MergeNearbyClusters makes a single pass over ordered pairs of distinct
// clusters of the same protein. When both endpoints of the second cluster lie
// within wiggle of the first cluster's endpoints, as they were when the first
// cluster's turn began, all peptides of the second move into the first and
// empty clusters are pruned. Clusters emptied earlier in the pass are
// skipped. Returns the number of merges.
func (col *Collection) MergeNearbyClusters(wiggle int) int {
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.mergePass(wiggle)
}

// MergeUntilStable repeats MergeNearbyClusters until a pass merges nothing
// and returns the total number of merges.
func (col *Collection) MergeUntilStable(wiggle int) int {
	col.mu.Lock()
	defer col.mu.Unlock()

	total := 0
	for {
		n := col.mergePass(wiggle)
		if n == 0 {
			return total
		}
		total += n
	}
}

func (col *Collection) mergePass(wiggle int) int {
	merges := 0
	order := col.ordered()

	for _, first := range order {
		if !col.contains(first) {
			continue
		}
		start, end := first.start, first.end

		candidates := make([]*Cluster, 0)
		for _, c := range col.ordered() {
			if c.protein == first.protein {
				candidates = append(candidates, c)
			}
		}

		for _, second := range candidates {
			if second == first || !col.contains(second) {
				continue
			}
			if abs(start-second.start) > wiggle || abs(end-second.end) > wiggle {
				continue
			}
			first.absorb(second)
			col.removeIf(func(c *Cluster) bool { return c.IsEmpty() })
			merges++
			if !col.contains(first) {
				break
			}
		}
	}
	return merges
}

func (col *Collection) contains(c *Cluster) bool {
	e, ok := col.byID[c.id]
	return ok && e.Value.(*Cluster) == c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
