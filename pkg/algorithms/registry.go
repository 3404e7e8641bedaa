package algorithms

import (
	"errors"
	"fmt"

	"github.com/dd0wney/pepnets/pkg/clustering"
)

// Algorithm names accepted by ByName
const (
	AlgorithmLouvain          = "louvain"
	AlgorithmLabelPropagation = "label_propagation"
	AlgorithmComponents       = "components"
)

// ErrUnknownAlgorithm is returned by ByName for unsupported names
var ErrUnknownAlgorithm = errors.New("unknown clustering algorithm")

// Options tunes the partitioners returned by ByName
type Options struct {
	LabelPropagationIterations int
}

// Names returns the supported partitioner names
func Names() []string {
	return []string{AlgorithmLouvain, AlgorithmLabelPropagation, AlgorithmComponents}
}

// ByName returns the partitioner registered under name
func ByName(name string, opts Options) (clustering.Partitioner, error) {
	switch name {
	case AlgorithmLouvain:
		return Louvain{}, nil
	case AlgorithmLabelPropagation:
		return LabelPropagation{MaxIterations: opts.LabelPropagationIterations}, nil
	case AlgorithmComponents:
		return ConnectedComponents{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
