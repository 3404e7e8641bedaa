// Package records reads peptide detection tables.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Column names, matched case-insensitively
const (
	ColumnProtein = "protein"
	ColumnPeptide = "peptide"
	ColumnStart   = "start"
)

// ErrMissingColumn is returned when a required header column is absent
var ErrMissingColumn = errors.New("missing column")

// Read parses a tab separated table with Protein and Peptide columns and an
// optional Start column. Blank starts are left unset. Extra columns are ignored.
func Read(r io.Reader) ([]peptide.Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("records: empty input")
		}
		return nil, fmt.Errorf("records header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	proteinIdx, ok := col[ColumnProtein]
	if !ok {
		return nil, fmt.Errorf("records: %w %q", ErrMissingColumn, "Protein")
	}
	peptideIdx, ok := col[ColumnPeptide]
	if !ok {
		return nil, fmt.Errorf("records: %w %q", ErrMissingColumn, "Peptide")
	}
	startIdx, hasStart := col[ColumnStart]

	recs := make([]peptide.Record, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("records: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if proteinIdx >= len(row) || peptideIdx >= len(row) {
			return nil, fmt.Errorf("records line %d: expected %d columns, got %d", line, len(header), len(row))
		}
		rec := peptide.Record{
			Protein:  strings.TrimSpace(row[proteinIdx]),
			Sequence: strings.TrimSpace(row[peptideIdx]),
		}

		if hasStart && startIdx < len(row) {
			if s := strings.TrimSpace(row[startIdx]); s != "" {
				start, err := strconv.Atoi(s)
				if err != nil {
					return nil, fmt.Errorf("records line %d: start %q: %w", line, s, err)
				}
				rec.Start = &start
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ReadFile reads records from path
func ReadFile(path string) ([]peptide.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, nil
}
