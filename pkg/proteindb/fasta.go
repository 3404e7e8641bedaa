package proteindb

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TuftsBCB/io/fasta"
	"golang.org/x/exp/mmap"
)

// LoadFASTA reads a FASTA file. Plain files are memory mapped; files ending
// in .gz are decompressed on the fly.
func LoadFASTA(path string) (*Database, error) {
	if strings.HasSuffix(path, ".gz") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		defer gz.Close()
		return ReadFASTA(gz)
	}

	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadFASTA(io.NewSectionReader(r, 0, int64(r.Len())))
}

// ReadFASTA reads FASTA records. UniProt headers "db|ACCESSION|ENTRY_NAME ..."
// register the entry name, with the accession as an alias; other headers
// register their first word.
func ReadFASTA(r io.Reader) (*Database, error) {
	db := New()
	reader := fasta.NewReader(r)
	for {
		sequence, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read fasta: %w", err)
		}

		name, accession := parseHeader(sequence.Name)
		if name == "" {
			continue
		}
		db.Add(name, string(sequence.Bytes()))
		if accession != "" {
			db.AddAlias(accession, name)
		}
	}
	return db, nil
}

// parseHeader splits a FASTA header into entry name and optional accession
func parseHeader(header string) (name, accession string) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return "", ""
	}
	id := fields[0]
	parts := strings.Split(id, "|")
	if len(parts) == 3 && parts[2] != "" {
		return parts[2], parts[1]
	}
	return id, ""
}
