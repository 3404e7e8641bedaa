package cluster

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ResidueSource looks up single residues of protein sequences
type ResidueSource interface {
	Residue(protein string, index int) (string, bool)
}

// Row is one peptide membership line
type Row struct {
	Cluster   string
	Protein   string
	Peptide   string
	Start     int
	End       int
	NPeptides int
}

// WriteEdgeList writes the peptide → cluster → protein edges, one pair of
// rows per unique sequence of each cluster
func (col *Collection) WriteEdgeList(w io.Writer) error {
	col.mu.RLock()
	defer col.mu.RUnlock()

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "from\tto\n")
	for _, c := range col.ordered() {
		label := c.Label()
		for _, seq := range c.sequences {
			fmt.Fprintf(bw, "%s\t%s\n", seq, label)
			fmt.Fprintf(bw, "%s\t%s\n", label, c.protein)
		}
	}
	return bw.Flush()
}

// WriteFeatureEdgeList writes the per-cluster feature → cluster → protein edges
func (col *Collection) WriteFeatureEdgeList(w io.Writer) error {
	col.mu.RLock()
	defer col.mu.RUnlock()

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "from\tto\n")
	for _, c := range col.ordered() {
		label := c.Label()
		fmt.Fprintf(bw, "%s_n_peptides\t%s\n", c.id, label)
		fmt.Fprintf(bw, "%s_intensity\t%s\n", c.id, label)
		fmt.Fprintf(bw, "%s\t%s\n", label, c.protein)
	}
	return bw.Flush()
}

// WriteSummary writes one line per cluster with its flanking residues.
// Flanks outside the protein sequence, or of proteins db does not know, are empty.
func (col *Collection) WriteSummary(w io.Writer, db ResidueSource) error {
	col.mu.RLock()
	defer col.mu.RUnlock()

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "ID\tProtein\tStart\tEnd\tPeptides\tNp1\tNp1p\tCp1\tCp1p\tLongest\n")
	for _, c := range col.ordered() {
		flank := func(index int) string {
			if db == nil {
				return ""
			}
			r, _ := db.Residue(c.protein, index)
			return r
		}
		fmt.Fprintf(bw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.id, c.protein, c.start, c.end,
			sequenceList(c.sequences),
			flank(c.start-1), flank(c.start), flank(c.end-1), flank(c.end),
			c.Longest())
	}
	return bw.Flush()
}

// sequenceList renders sequences as ['A', 'B']
func sequenceList(sequences []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range sequences {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(s)
		sb.WriteByte('\'')
	}
	sb.WriteByte(']')
	return sb.String()
}

// Rows returns one row per member peptide in collection order
func (col *Collection) Rows() []Row {
	col.mu.RLock()
	defer col.mu.RUnlock()

	rows := make([]Row, 0)
	for _, c := range col.ordered() {
		for _, p := range c.peptides {
			rows = append(rows, Row{
				Cluster:   c.id,
				Protein:   p.Protein,
				Peptide:   p.Sequence,
				Start:     p.Start,
				End:       p.End,
				NPeptides: len(c.peptides),
			})
		}
	}
	return rows
}

// WriteMembership writes Rows as a tab separated table
func (col *Collection) WriteMembership(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "cluster\tprotein\tpeptide\tstart\tend\tn_peptides\n")
	for _, r := range col.Rows() {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%d\t%d\t%d\n", r.Cluster, r.Protein, r.Peptide, r.Start, r.End, r.NPeptides)
	}
	return bw.Flush()
}
