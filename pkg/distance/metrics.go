package distance

import (
	"math"

	"github.com/agnivade/levenshtein"

	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Epsilon keeps inverse overlaps finite and edge weights non-zero
const Epsilon = 1e-8

// CenterDistance is the absolute distance between the peptide centers
func CenterDistance(a, b *peptide.Peptide) float64 {
	return math.Abs(a.Center - b.Center)
}

// LengthRatio is the ratio of the longer to the shorter length (always >= 1)
func LengthRatio(a, b *peptide.Peptide) float64 {
	la, lb := float64(a.Length), float64(b.Length)
	return math.Max(la/lb, lb/la)
}

// LengthDifference is the absolute length difference
func LengthDifference(a, b *peptide.Peptide) float64 {
	return math.Abs(float64(a.Length - b.Length))
}

// EndpointsDistance sums the start and end offsets
func EndpointsDistance(a, b *peptide.Peptide) float64 {
	return math.Abs(float64(a.Start-b.Start)) + math.Abs(float64(a.End-b.End))
}

// EditDistance is the Levenshtein distance between the two sequences
func EditDistance(a, b *peptide.Peptide) float64 {
	return float64(levenshtein.ComputeDistance(a.Sequence, b.Sequence))
}

// InverseOverlap turns an overlap percentage into a distance
func InverseOverlap(a, b *peptide.Peptide, divisor Divisor) float64 {
	return 1 / (OverlapPercentage(a, b, divisor) + Epsilon)
}

// TotalDistance combines length ratio, inverse overlap and center distance.
// Callers exclude non-overlapping pairs before using it.
func TotalDistance(a, b *peptide.Peptide, divisor Divisor) float64 {
	return (LengthRatio(a, b) + InverseOverlap(a, b, divisor) + CenterDistance(a, b)) / 2
}
