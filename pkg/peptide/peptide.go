// Package peptide holds the immutable peptide entity and the logic that
// places detected sequences onto their parent protein.
package peptide

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval is returned when a peptide would describe a degenerate interval
var ErrInvalidInterval = errors.New("invalid peptide interval")

// Peptide is a detected sequence fragment located on a protein.
// The interval [Start, End) is half-open and zero-indexed.
type Peptide struct {
	ID       int
	Sequence string
	Protein  string
	Start    int
	End      int
	Length   int
	Center   float64
}

// New creates a peptide at start on protein. Fails for an empty sequence or a
// negative start.
func New(sequence string, start int, protein string, id int) (*Peptide, error) {
	if sequence == "" {
		return nil, fmt.Errorf("%w: empty sequence (protein %s, id %d)", ErrInvalidInterval, protein, id)
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: negative start %d for %s (protein %s)", ErrInvalidInterval, start, sequence, protein)
	}

	length := len(sequence)
	return &Peptide{
		ID:       id,
		Sequence: sequence,
		Protein:  protein,
		Start:    start,
		End:      start + length,
		Length:   length,
		Center:   float64(start) + float64(length)/2,
	}, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(sequence string, start int, protein string, id int) *Peptide {
	p, err := New(sequence, start, protein, id)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns a short human readable description
func (p *Peptide) String() string {
	return fmt.Sprintf("%s (%s), start: %d, end: %d", p.Sequence, p.Protein, p.Start, p.End)
}
