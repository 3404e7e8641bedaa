package distance

import (
	"fmt"

	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Metric names a distance function usable for graph construction
type Metric string

const (
	MetricOverlap     Metric = "overlap"
	MetricCenter      Metric = "center"
	MetricEndpoints   Metric = "endpoints"
	MetricLengthDiff  Metric = "length_diff"
	MetricLevenshtein Metric = "levenshtein"
	MetricTotal       Metric = "total"
)

// Metrics lists every supported metric
var Metrics = []Metric{
	MetricOverlap,
	MetricCenter,
	MetricEndpoints,
	MetricLengthDiff,
	MetricLevenshtein,
	MetricTotal,
}

// ParseMetric converts a configuration string to a Metric
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown distance metric %q", s)
}

// Distance evaluates the metric for the pair (a, b)
func (m Metric) Distance(a, b *peptide.Peptide, divisor Divisor) float64 {
	switch m {
	case MetricCenter:
		return CenterDistance(a, b)
	case MetricEndpoints:
		return EndpointsDistance(a, b)
	case MetricLengthDiff:
		return LengthDifference(a, b)
	case MetricLevenshtein:
		return EditDistance(a, b)
	case MetricTotal:
		return TotalDistance(a, b, divisor)
	default:
		return InverseOverlap(a, b, divisor)
	}
}
