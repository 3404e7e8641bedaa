package proteindb

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uniprotFASTA = `>sp|P02768|ALBU_HUMAN Albumin OS=Homo sapiens OX=9606 GN=ALB
MKWVTFISLLFLFSSAYS
RGVFRRDAHKSEVAHRFK
>sp|P01308|INS_HUMAN Insulin OS=Homo sapiens
MALWMRLLPLLALLALWGPDPAAA
>CUSTOM1 some description
PEPTIDEK
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFASTA(t *testing.T) {
	db, err := ReadFASTA(strings.NewReader(uniprotFASTA))
	require.NoError(t, err)

	assert.Equal(t, 3, db.Len())
	assert.Equal(t, []string{"ALBU_HUMAN", "CUSTOM1", "INS_HUMAN"}, db.Names())

	seq, ok := db.Sequence("ALBU_HUMAN")
	require.True(t, ok)
	assert.Equal(t, "MKWVTFISLLFLFSSAYSRGVFRRDAHKSEVAHRFK", seq)

	alias, ok := db.Sequence("P02768")
	require.True(t, ok, "accession resolves as an alias")
	assert.Equal(t, seq, alias)

	assert.True(t, db.Has("CUSTOM1"))
	assert.False(t, db.Has("some"))
}

func TestResidue(t *testing.T) {
	db := New()
	db.Add("P1", "ABCDE")

	r, ok := db.Residue("P1", 0)
	assert.True(t, ok)
	assert.Equal(t, "A", r)

	r, ok = db.Residue("P1", 4)
	assert.True(t, ok)
	assert.Equal(t, "E", r)

	for _, idx := range []int{-1, 5} {
		_, ok = db.Residue("P1", idx)
		assert.False(t, ok, "index %d", idx)
	}
	_, ok = db.Residue("P2", 0)
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	db := New()
	db.Add("P1", "ABC")

	seq, err := db.Lookup("P1")
	require.NoError(t, err)
	assert.Equal(t, "ABC", seq)

	_, err = db.Lookup("P9")
	assert.True(t, errors.Is(err, ErrUnknownProtein))
}

func TestNilDatabase(t *testing.T) {
	var db *Database
	assert.False(t, db.Has("P1"))
	assert.Zero(t, db.Len())
	assert.Empty(t, db.Names())
}

func TestAliasDoesNotShadowEntry(t *testing.T) {
	db := New()
	db.Add("A", "AAA")
	db.Add("B", "BBB")
	db.AddAlias("A", "B")

	seq, _ := db.Sequence("A")
	assert.Equal(t, "AAA", seq)
	assert.Equal(t, 2, db.Len())
}

func TestLoadFASTA(t *testing.T) {
	path := writeFile(t, "proteins.fasta", uniprotFASTA)

	db, err := LoadFASTA(path)
	require.NoError(t, err)
	assert.Equal(t, 3, db.Len())
}

func TestLoadFASTA_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proteins.fasta.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(uniprotFASTA))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	db, err := Load(path)
	require.NoError(t, err)
	seq, ok := db.Sequence("INS_HUMAN")
	require.True(t, ok)
	assert.Equal(t, "MALWMRLLPLLALLALWGPDPAAA", seq)
}

func TestLoadTSV(t *testing.T) {
	table := "Entry\tEntry Name\tProtein names\tSequence\n" +
		"P02768\tALBU_HUMAN\tAlbumin\tMKWVTFISLLFLFSSAYS\n" +
		"P01308\tINS_HUMAN\tInsulin\tMALWMRLLPLL\n"

	db, err := LoadTSV(strings.NewReader(table))
	require.NoError(t, err)
	assert.Equal(t, []string{"ALBU_HUMAN", "INS_HUMAN"}, db.Names())

	seq, ok := db.Sequence("P01308")
	require.True(t, ok)
	assert.Equal(t, "MALWMRLLPLL", seq)
}

func TestLoadTSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing name column", "Entry\tSequence\nP1\tAAA\n"},
		{"missing sequence column", "Entry Name\tLength\nP1\t3\n"},
		{"short row", "Entry Name\tSequence\nP1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Dispatch(t *testing.T) {
	tsv := writeFile(t, "db.tsv", "Entry Name\tSequence\nP1\tACDEFG\n")
	db, err := Load(tsv)
	require.NoError(t, err)
	assert.True(t, db.Has("P1"))

	fa := writeFile(t, "db.fa", ">P2\nKLMN\n")
	db, err = Load(fa)
	require.NoError(t, err)
	assert.True(t, db.Has("P2"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.fasta"))
	assert.Error(t, err)
}
