// Package proteindb holds protein sequences keyed by UniProt entry name.
package proteindb

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProtein is returned when a protein is not in the database
var ErrUnknownProtein = errors.New("unknown protein")

// Database maps protein names to full sequences. Accessions registered as
// aliases resolve to the same sequence but are not listed by Names.
type Database struct {
	sequences map[string]string
	entries   map[string]struct{}
}

// New creates an empty database
func New() *Database {
	return &Database{
		sequences: make(map[string]string),
		entries:   make(map[string]struct{}),
	}
}

// Add registers sequence under name. A later entry with the same name replaces the earlier one.
func (db *Database) Add(name, sequence string) {
	db.sequences[name] = sequence
	db.entries[name] = struct{}{}
}

// AddAlias makes alias resolve to the sequence of name
func (db *Database) AddAlias(alias, name string) {
	if seq, ok := db.sequences[name]; ok {
		if _, isEntry := db.entries[alias]; !isEntry {
			db.sequences[alias] = seq
		}
	}
}

// Sequence returns the sequence of name
func (db *Database) Sequence(name string) (string, bool) {
	if db == nil {
		return "", false
	}
	seq, ok := db.sequences[name]
	return seq, ok
}

// Lookup returns the sequence of name or ErrUnknownProtein
func (db *Database) Lookup(name string) (string, error) {
	seq, ok := db.Sequence(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProtein, name)
	}
	return seq, nil
}

// Residue returns the residue at index of name's sequence
func (db *Database) Residue(name string, index int) (string, bool) {
	seq, ok := db.Sequence(name)
	if !ok || index < 0 || index >= len(seq) {
		return "", false
	}
	return seq[index : index+1], true
}

// Has reports whether name resolves to a sequence
func (db *Database) Has(name string) bool {
	_, ok := db.Sequence(name)
	return ok
}

// Len returns the number of entries, aliases excluded
func (db *Database) Len() int {
	if db == nil {
		return 0
	}
	return len(db.entries)
}

// Names returns the sorted entry names
func (db *Database) Names() []string {
	if db == nil {
		return nil
	}
	names := make([]string, 0, len(db.entries))
	for name := range db.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
