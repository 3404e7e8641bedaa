package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/golang/snappy"
)

const (
	snapshotMagic   = "PEPNET1\n"
	snapshotVersion = 1
	filePermissions = 0o644
)

// ErrBadSnapshot is returned when a network snapshot cannot be decoded
var ErrBadSnapshot = errors.New("bad network snapshot")

type snapshot struct {
	Version int             `json:"version"`
	Graphs  []graphSnapshot `json:"graphs"`
}

type graphSnapshot struct {
	Protein string `json:"protein"`
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
}

// Save writes graphs as a snappy-compressed JSON document, proteins sorted
func Save(w io.Writer, graphs map[string]*ProteinGraph) error {
	proteins := make([]string, 0, len(graphs))
	for protein := range graphs {
		proteins = append(proteins, protein)
	}
	sort.Strings(proteins)

	snap := snapshot{Version: snapshotVersion, Graphs: make([]graphSnapshot, 0, len(proteins))}
	for _, protein := range proteins {
		g := graphs[protein]
		snap.Graphs = append(snap.Graphs, graphSnapshot{
			Protein: protein,
			Nodes:   g.Nodes(),
			Edges:   g.Edges(),
		})
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if _, err := io.WriteString(w, snapshotMagic); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	if _, err := w.Write(snappy.Encode(nil, data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads graphs written by Save
func Load(r io.Reader) (map[string]*ProteinGraph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if !bytes.HasPrefix(data, []byte(snapshotMagic)) {
		return nil, fmt.Errorf("%w: missing header", ErrBadSnapshot)
	}

	decompressed, err := snappy.Decode(nil, data[len(snapshotMagic):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	var snap snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, snap.Version)
	}

	graphs := make(map[string]*ProteinGraph, len(snap.Graphs))
	for _, gs := range snap.Graphs {
		g := NewProteinGraph(gs.Protein)
		for _, n := range gs.Nodes {
			g.AddNode(n)
		}
		for _, e := range gs.Edges {
			if err := g.AddEdge(e); err != nil {
				return nil, fmt.Errorf("%w: protein %s: %v", ErrBadSnapshot, gs.Protein, err)
			}
		}
		graphs[gs.Protein] = g
	}
	return graphs, nil
}

// SaveFile writes a snapshot to path through a temporary file and rename
func SaveFile(path string, graphs map[string]*ProteinGraph) error {
	var buf bytes.Buffer
	if err := Save(&buf, graphs); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}
	return nil
}

// LoadFile reads a snapshot from path
func LoadFile(path string) (map[string]*ProteinGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	graphs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return graphs, nil
}
