package cluster

import (
	"fmt"
	"math"

	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Cluster is a group of peptides of one protein. Derived values are
// recomputed on every mutation.
type Cluster struct {
	id       string
	protein  string
	peptides []*peptide.Peptide

	sequences []string
	start     int
	end       int
	distance  float64
}

// New creates a cluster holding peptides
func New(id, protein string, peptides []*peptide.Peptide) *Cluster {
	c := &Cluster{
		id:       id,
		protein:  protein,
		peptides: append([]*peptide.Peptide(nil), peptides...),
	}
	c.recompute()
	return c
}

// ID returns the cluster id
func (c *Cluster) ID() string { return c.id }

// Protein returns the protein the cluster belongs to
func (c *Cluster) Protein() string { return c.protein }

// AddPeptide appends p to the cluster
func (c *Cluster) AddPeptide(p *peptide.Peptide) {
	c.peptides = append(c.peptides, p)
	c.recompute()
}

// RemovePeptide removes every member sharing p's sequence and returns how many were removed
func (c *Cluster) RemovePeptide(p *peptide.Peptide) int {
	kept := c.peptides[:0]
	for _, member := range c.peptides {
		if member.Sequence != p.Sequence {
			kept = append(kept, member)
		}
	}
	removed := len(c.peptides) - len(kept)
	clear(c.peptides[len(kept):])
	c.peptides = kept
	c.recompute()
	return removed
}

// RemoveOne removes only the given peptide instance
func (c *Cluster) RemoveOne(p *peptide.Peptide) bool {
	for i, member := range c.peptides {
		if member == p {
			c.peptides = append(c.peptides[:i], c.peptides[i+1:]...)
			c.recompute()
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cluster has no members
func (c *Cluster) IsEmpty() bool { return len(c.peptides) == 0 }

// Peptides returns the members in insertion order
func (c *Cluster) Peptides() []*peptide.Peptide {
	return append([]*peptide.Peptide(nil), c.peptides...)
}

// UniqueSequences returns the distinct member sequences in first-appearance order
func (c *Cluster) UniqueSequences() []string {
	return append([]string(nil), c.sequences...)
}

// Start returns the cluster start
func (c *Cluster) Start() int { return c.start }

// End returns the cluster end
func (c *Cluster) End() int { return c.end }

// NPeptides returns the number of members, duplicates included
func (c *Cluster) NPeptides() int { return len(c.peptides) }

// InterClusterDistance is the mean absolute center distance over all
// ordered member pairs, self-pairs included
func (c *Cluster) InterClusterDistance() float64 { return c.distance }

// Longest returns the longest unique sequence, the first one seen on ties
func (c *Cluster) Longest() string {
	longest := ""
	for _, s := range c.sequences {
		if len(s) > len(longest) {
			longest = s
		}
	}
	return longest
}

// Label renders the cluster as "{id}: ({start}-{end})"
func (c *Cluster) Label() string {
	return fmt.Sprintf("%s: (%d-%d)", c.id, c.start, c.end)
}

func (c *Cluster) String() string {
	return fmt.Sprintf("%s, proteins: (%s), #peptides: %d", c.id, c.protein, len(c.peptides))
}

// absorb moves every member of other into c
func (c *Cluster) absorb(other *Cluster) {
	c.peptides = append(c.peptides, other.peptides...)
	other.peptides = nil
	c.recompute()
	other.recompute()
}

func (c *Cluster) recompute() {
	seen := make(map[string]struct{}, len(c.peptides))
	c.sequences = c.sequences[:0]
	for _, p := range c.peptides {
		if _, ok := seen[p.Sequence]; ok {
			continue
		}
		seen[p.Sequence] = struct{}{}
		c.sequences = append(c.sequences, p.Sequence)
	}

	c.start, c.end = endpoints(c.peptides)

	c.distance = 0
	n := len(c.peptides)
	if n == 0 {
		return
	}
	var sum float64
	for _, a := range c.peptides {
		for _, b := range c.peptides {
			sum += math.Abs(a.Center - b.Center)
		}
	}
	c.distance = sum / float64(n*n)
}
