package proteindb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Column names of a UniProt tab separated export
const (
	ColumnEntryName = "Entry Name"
	ColumnEntry     = "Entry"
	ColumnSequence  = "Sequence"
)

// LoadTSV reads a tab separated table with "Entry Name" and "Sequence"
// columns. An "Entry" column, when present, registers accessions as aliases.
func LoadTSV(r io.Reader) (*Database, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("protein table: missing header")
		}
		return nil, fmt.Errorf("protein table header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nameIdx, ok := col[strings.ToLower(ColumnEntryName)]
	if !ok {
		return nil, fmt.Errorf("protein table: missing %q column", ColumnEntryName)
	}
	seqIdx, ok := col[strings.ToLower(ColumnSequence)]
	if !ok {
		return nil, fmt.Errorf("protein table: missing %q column", ColumnSequence)
	}
	entryIdx, hasEntry := col[strings.ToLower(ColumnEntry)]

	db := New()
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("protein table line %d: %w", line, err)
		}
		if nameIdx >= len(record) || seqIdx >= len(record) {
			return nil, fmt.Errorf("protein table line %d: expected %d columns, got %d", line, len(header), len(record))
		}

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}
		db.Add(name, strings.TrimSpace(record[seqIdx]))
		if hasEntry && entryIdx < len(record) {
			if accession := strings.TrimSpace(record[entryIdx]); accession != "" {
				db.AddAlias(accession, name)
			}
		}
	}
	return db, nil
}

// Load reads a protein database, choosing the format from the file extension.
// .tsv, .tab and .txt are tables; everything else is read as FASTA.
func Load(path string) (*Database, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz")))
	switch ext {
	case ".tsv", ".tab", ".txt":
		if strings.HasSuffix(path, ".gz") {
			return nil, fmt.Errorf("load protein database %s: compressed tables are not supported", path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("load protein database %s: %w", path, err)
		}
		defer f.Close()
		db, err := LoadTSV(f)
		if err != nil {
			return nil, fmt.Errorf("load protein database %s: %w", path, err)
		}
		return db, nil
	}

	db, err := LoadFASTA(path)
	if err != nil {
		return nil, fmt.Errorf("load protein database %s: %w", path, err)
	}
	return db, nil
}
