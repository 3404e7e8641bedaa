package cluster

import "github.com/dd0wney/pepnets/pkg/peptide"

// endpoints returns the cluster interval. When every start (end) is distinct
// the widest value wins; otherwise the most frequent one, ties going to the
// smallest start and the largest end. An empty cluster spans (0, 0).
func endpoints(peptides []*peptide.Peptide) (start, end int) {
	if len(peptides) == 0 {
		return 0, 0
	}

	starts := make(map[int]int, len(peptides))
	ends := make(map[int]int, len(peptides))
	for _, p := range peptides {
		starts[p.Start]++
		ends[p.End]++
	}

	return mode(starts, func(a, b int) bool { return a < b }),
		mode(ends, func(a, b int) bool { return a > b })
}

// mode returns the most frequent value, preferring by better on ties.
// With all counts at 1 this is simply the best value.
func mode(counts map[int]int, better func(a, b int) bool) int {
	best, bestCount := 0, 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && better(v, best)) {
			best, bestCount = v, n
		}
	}
	return best
}
