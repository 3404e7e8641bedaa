// Package distance implements the pairwise peptide similarity and distance
// measures used to build protein graphs.
package distance

import (
	"fmt"

	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Divisor selects how the overlap of two peptides is normalized
type Divisor string

const (
	TotalLength Divisor = "total_length"
	Longest     Divisor = "longest"
	Shortest    Divisor = "shortest"
	// None returns the raw non-overlapping span instead of a ratio
	None Divisor = "none"
)

// ParseDivisor converts a configuration string to a Divisor
func ParseDivisor(s string) (Divisor, error) {
	switch s {
	case "total_length", "":
		return TotalLength, nil
	case "longest", "longest_peptide":
		return Longest, nil
	case "shortest", "shortest_peptide":
		return Shortest, nil
	case "none":
		return None, nil
	default:
		return "", fmt.Errorf("unknown overlap divisor %q", s)
	}
}

// ordered returns the pair with the smaller start first. Equal starts put the
// longer peptide first so containment is detected regardless of argument order.
func ordered(a, b *peptide.Peptide) (*peptide.Peptide, *peptide.Peptide) {
	if a.Start > b.Start || (a.Start == b.Start && a.Length < b.Length) {
		return b, a
	}
	return a, b
}

// OverlapAmount returns the number of shared positions of a and b.
// contained reports that one peptide lies entirely within the other.
func OverlapAmount(a, b *peptide.Peptide) (amount int, contained bool) {
	a, b = ordered(a, b)

	if a.End < b.Start {
		return 0, false
	}
	if b.Start >= a.Start && b.End <= a.End {
		return b.Length, true
	}
	return a.End - b.Start, false
}

// OverlapPercentage returns the overlap of a and b normalized by divisor.
// Full containment always yields 1. With None the raw span
// total_length - overlap is returned.
func OverlapPercentage(a, b *peptide.Peptide, divisor Divisor) float64 {
	a, b = ordered(a, b)

	if a.End < b.Start {
		return 0
	}
	if b.Start >= a.Start && b.End <= a.End {
		return 1
	}

	overlap := float64(a.End - b.Start)
	totalLength := float64(a.Length+b.Length) - overlap

	switch divisor {
	case Longest:
		return overlap / float64(max(a.Length, b.Length))
	case Shortest:
		return overlap / float64(min(a.Length, b.Length))
	case None:
		return totalLength - overlap
	default:
		return overlap / totalLength
	}
}
