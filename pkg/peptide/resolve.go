package peptide

import (
	"sort"
	"strings"
)

// ResolveStart returns the offset of the first occurrence of sequence within
// proteinSequence. The second return value is false when there is no match.
func ResolveStart(proteinSequence, sequence string) (int, bool) {
	if sequence == "" {
		return 0, false
	}
	idx := strings.Index(proteinSequence, sequence)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// Record is a single peptide detection as read from an input table
type Record struct {
	Protein  string
	Sequence string
	Start    *int
}

// SequenceSource looks up full protein sequences by name
type SequenceSource interface {
	Sequence(protein string) (string, bool)
}

// Reason explains why a record could not be placed on its protein
type Reason string

const (
	ReasonUnknownProtein  Reason = "protein not in database"
	ReasonNotFound        Reason = "sequence not found in protein"
	ReasonMissingStart    Reason = "no start and no protein database"
	ReasonInvalidInterval Reason = "invalid interval"
)

// Unresolved describes a record that was excluded from clustering
type Unresolved struct {
	Index  int
	Record Record
	Reason Reason
}

// Resolver turns detection records into peptides.
// When Database is nil the start column of each record is used.
type Resolver struct {
	Database SequenceSource
}

// Resolve creates one peptide per resolvable record. Peptide ids are the
// record indices so they stay stable for a given input.
func (r *Resolver) Resolve(records []Record) ([]*Peptide, []Unresolved) {
	peptides := make([]*Peptide, 0, len(records))
	var unresolved []Unresolved

	for i, rec := range records {
		start, reason := r.start(rec)
		if reason != "" {
			unresolved = append(unresolved, Unresolved{Index: i, Record: rec, Reason: reason})
			continue
		}

		p, err := New(rec.Sequence, start, rec.Protein, i)
		if err != nil {
			unresolved = append(unresolved, Unresolved{Index: i, Record: rec, Reason: ReasonInvalidInterval})
			continue
		}
		peptides = append(peptides, p)
	}

	return peptides, unresolved
}

func (r *Resolver) start(rec Record) (int, Reason) {
	if r.Database == nil {
		if rec.Start == nil {
			return 0, ReasonMissingStart
		}
		return *rec.Start, ""
	}

	proteinSeq, ok := r.Database.Sequence(rec.Protein)
	if !ok {
		return 0, ReasonUnknownProtein
	}
	start, ok := ResolveStart(proteinSeq, rec.Sequence)
	if !ok {
		return 0, ReasonNotFound
	}
	return start, ""
}

// GroupByProtein buckets peptides by protein, keeping input order within each bucket
func GroupByProtein(peptides []*Peptide) map[string][]*Peptide {
	groups := make(map[string][]*Peptide)
	for _, p := range peptides {
		groups[p.Protein] = append(groups[p.Protein], p)
	}
	return groups
}

// Proteins returns the sorted unique protein names of peptides
func Proteins(peptides []*Peptide) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, p := range peptides {
		if _, ok := seen[p.Protein]; ok {
			continue
		}
		seen[p.Protein] = struct{}{}
		names = append(names, p.Protein)
	}
	sort.Strings(names)
	return names
}
