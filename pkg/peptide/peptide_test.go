package peptide

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	p, err := New("PEPTIDEK", 3, "P1", 7)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if p.Length != 8 {
		t.Errorf("Length = %d, want 8", p.Length)
	}
	if p.End != 11 {
		t.Errorf("End = %d, want 11", p.End)
	}
	if p.Center != 7.0 {
		t.Errorf("Center = %v, want 7.0", p.Center)
	}
	if p.ID != 7 || p.Protein != "P1" {
		t.Errorf("unexpected identity: %+v", p)
	}
}

func TestNew_OddLengthCenter(t *testing.T) {
	p := MustNew("ABC", 0, "P1", 0)
	if p.Center != 1.5 {
		t.Errorf("Center = %v, want 1.5", p.Center)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		start    int
	}{
		{"empty sequence", "", 0},
		{"negative start", "AAA", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sequence, tt.start, "P1", 0)
			if !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("expected ErrInvalidInterval, got %v", err)
			}
		})
	}
}

func TestResolveStart(t *testing.T) {
	tests := []struct {
		name    string
		protein string
		seq     string
		want    int
		wantOK  bool
	}{
		{"first occurrence", "AAKBBKAAK", "AAK", 0, true},
		{"middle", "MKVLAAGIK", "LAAG", 3, true},
		{"missing", "MKVLAAGIK", "WWW", 0, false},
		{"empty", "MKVLAAGIK", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveStart(tt.protein, tt.seq)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveStart() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

type mapSource map[string]string

func (m mapSource) Sequence(protein string) (string, bool) {
	s, ok := m[protein]
	return s, ok
}

func TestResolver_WithDatabase(t *testing.T) {
	start := 99
	records := []Record{
		{Protein: "P1", Sequence: "VLAAG"},
		{Protein: "P1", Sequence: "WWW"},
		{Protein: "P2", Sequence: "AAA"},
		{Protein: "P1", Sequence: "GIK", Start: &start},
	}
	r := &Resolver{Database: mapSource{"P1": "MKVLAAGIK"}}

	peptides, unresolved := r.Resolve(records)

	if len(peptides) != 2 {
		t.Fatalf("expected 2 peptides, got %d", len(peptides))
	}
	if peptides[0].Start != 2 || peptides[0].ID != 0 {
		t.Errorf("unexpected first peptide: %+v", peptides[0])
	}
	// The database wins over the record start
	if peptides[1].Start != 6 || peptides[1].ID != 3 {
		t.Errorf("unexpected second peptide: %+v", peptides[1])
	}

	if len(unresolved) != 2 {
		t.Fatalf("expected 2 unresolved, got %d", len(unresolved))
	}
	if unresolved[0].Reason != ReasonNotFound || unresolved[0].Index != 1 {
		t.Errorf("unexpected unresolved[0]: %+v", unresolved[0])
	}
	if unresolved[1].Reason != ReasonUnknownProtein || unresolved[1].Index != 2 {
		t.Errorf("unexpected unresolved[1]: %+v", unresolved[1])
	}
}

func TestResolver_WithoutDatabase(t *testing.T) {
	start := 4
	records := []Record{
		{Protein: "P1", Sequence: "AAA", Start: &start},
		{Protein: "P1", Sequence: "CCC"},
	}
	r := &Resolver{}

	peptides, unresolved := r.Resolve(records)

	if len(peptides) != 1 || peptides[0].Start != 4 {
		t.Fatalf("unexpected peptides: %v", peptides)
	}
	if len(unresolved) != 1 || unresolved[0].Reason != ReasonMissingStart {
		t.Fatalf("unexpected unresolved: %v", unresolved)
	}
}

func TestGroupByProteinAndProteins(t *testing.T) {
	peptides := []*Peptide{
		MustNew("AAA", 0, "P2", 0),
		MustNew("CCC", 0, "P1", 1),
		MustNew("DDD", 5, "P2", 2),
	}

	groups := GroupByProtein(peptides)
	if len(groups["P2"]) != 2 || groups["P2"][0].ID != 0 || groups["P2"][1].ID != 2 {
		t.Errorf("unexpected P2 group: %v", groups["P2"])
	}

	proteins := Proteins(peptides)
	if len(proteins) != 2 || proteins[0] != "P1" || proteins[1] != "P2" {
		t.Errorf("Proteins() = %v, want [P1 P2]", proteins)
	}
}
