package cluster

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dd0wney/pepnets/pkg/peptide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(clusters []*Cluster) []string {
	out := make([]string, len(clusters))
	for i, c := range clusters {
		out[i] = c.ID()
	}
	return out
}

func newTestCollection(t *testing.T, clusters ...*Cluster) *Collection {
	t.Helper()
	col, err := NewCollection(clusters...)
	require.NoError(t, err)
	return col
}

func TestCollection_AddRemove(t *testing.T) {
	col := newTestCollection(t,
		New("P2_0", "P2", []*peptide.Peptide{pep("AAAA", 0, "P2")}),
		New("P1_0", "P1", []*peptide.Peptide{pep("CCCC", 0, "P1")}),
	)
	assert.Equal(t, 2, col.Len())
	assert.Equal(t, []string{"P1", "P2"}, col.Proteins())

	err := col.AddCluster(New("P1_0", "P1", nil))
	assert.ErrorIs(t, err, ErrDuplicateID)

	require.NoError(t, col.AddCluster(New("P1_1", "P1", nil)))
	assert.Equal(t, []string{"P2_0", "P1_0", "P1_1"}, ids(col.Clusters()))

	require.NoError(t, col.RemoveCluster("P2_0"))
	assert.ErrorIs(t, col.RemoveCluster("P2_0"), ErrNotFound)
	assert.Equal(t, []string{"P1"}, col.Proteins())
	assert.Equal(t, []string{"P1_0", "P1_1"}, ids(col.Clusters()))
}

func TestNewCollection_Duplicate(t *testing.T) {
	_, err := NewCollection(New("P1_0", "P1", nil), New("P1_0", "P1", nil))
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestCollection_Lookups(t *testing.T) {
	shared := "AAAAAA"
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{pep("CCCC", 0, "P1")}),
		New("P1_1", "P1", []*peptide.Peptide{pep(shared, 4, "P1")}),
		New("P2_0", "P2", []*peptide.Peptide{pep(shared, 0, "P2")}),
	)

	c, err := col.GetClusterByID("P1_1")
	require.NoError(t, err)
	assert.Equal(t, "P1", c.Protein())

	_, err = col.GetClusterByID("P9_0")
	assert.ErrorIs(t, err, ErrNotFound)

	c, err = col.GetCluster(shared, "P2")
	require.NoError(t, err)
	assert.Equal(t, "P2_0", c.ID())

	_, err = col.GetCluster("CCCC", "P2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_MergeNearbyClusters(t *testing.T) {
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{pep("AAAAAAAAAA", 0, "P1")}),
		New("P1_1", "P1", []*peptide.Peptide{pep("CCCCCCCCCCCC", 2, "P1")}),
		New("P1_2", "P1", []*peptide.Peptide{pep("DDDDD", 50, "P1")}),
		New("P2_0", "P2", []*peptide.Peptide{pep("EEEEEEEEEE", 1, "P2")}),
	)

	merged := col.MergeNearbyClusters(5)
	assert.Equal(t, 1, merged)
	assert.Equal(t, []string{"P1_0", "P1_2", "P2_0"}, ids(col.Clusters()))

	c, err := col.GetClusterByID("P1_0")
	require.NoError(t, err)
	assert.Equal(t, 2, c.NPeptides())
	assert.Equal(t, 0, c.Start())
	assert.Equal(t, 14, c.End())
}

func TestCollection_MergeNegativeWiggleIsNoop(t *testing.T) {
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{pep("AAAA", 0, "P1")}),
		New("P1_1", "P1", []*peptide.Peptide{pep("CCCC", 0, "P1")}),
	)
	assert.Zero(t, col.MergeNearbyClusters(-1))
	assert.Equal(t, 2, col.Len())
}

func TestCollection_MergeUntilStable(t *testing.T) {
	// a chain of clusters 3 residues apart
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{pep("AAAAAAAAAA", 0, "P1")}),
		New("P1_1", "P1", []*peptide.Peptide{pep("CCCCCCCCCC", 3, "P1")}),
		New("P1_2", "P1", []*peptide.Peptide{pep("DDDDDDDDDD", 6, "P1")}),
		New("P1_3", "P1", []*peptide.Peptide{pep("EEEEEEEEEE", 9, "P1")}),
	)

	total := col.MergeUntilStable(3)
	assert.GreaterOrEqual(t, total, 1)
	assert.Zero(t, col.MergeNearbyClusters(3), "fixed point reached")

	peptides := 0
	for _, c := range col.Clusters() {
		peptides += c.NPeptides()
	}
	assert.Equal(t, 4, peptides)
}

func TestCollection_RemoveSmallClusters(t *testing.T) {
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{pep("AAAA", 0, "P1")}),
		New("P1_1", "P1", []*peptide.Peptide{pep("CCCC", 5, "P1"), pep("CCCC", 5, "P1")}),
		New("P1_2", "P1", nil),
		New("P2_0", "P2", []*peptide.Peptide{pep("DDDD", 0, "P2"), pep("EEEE", 2, "P2"), pep("FFFF", 3, "P2")}),
	)

	assert.Equal(t, 2, col.RemoveSmallClusters(2))
	assert.Equal(t, []string{"P1_1", "P2_0"}, ids(col.Clusters()))

	assert.Zero(t, col.RemoveSmallClusters(0))
	assert.Equal(t, 1, col.RemoveSmallClusters(3))
	assert.Equal(t, []string{"P2_0"}, ids(col.Clusters()))
}

func TestCollection_NBiggest(t *testing.T) {
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{pep("AAAA", 0, "P1")}),
		New("P1_1", "P1", []*peptide.Peptide{pep("CCCC", 5, "P1"), pep("DDDD", 6, "P1")}),
		New("P1_2", "P1", []*peptide.Peptide{pep("EEEE", 9, "P1")}),
	)

	assert.Equal(t, []string{"P1_1", "P1_0"}, ids(col.NBiggest(2)))
	assert.Equal(t, []string{"P1_1", "P1_0", "P1_2"}, ids(col.NBiggest(10)))
	assert.Empty(t, col.NBiggest(0))
	assert.Empty(t, col.NBiggest(-1))
}

func TestCollection_Reindex(t *testing.T) {
	col := newTestCollection(t,
		New("x", "P1", []*peptide.Peptide{pep("AAAA", 40, "P1")}),
		New("y", "P2", []*peptide.Peptide{pep("CCCC", 7, "P2")}),
		New("z", "P1", []*peptide.Peptide{pep("DDDD", 3, "P1")}),
	)

	col.Reindex()
	assert.Equal(t, []string{"P1_1", "P2_0", "P1_0"}, ids(col.Clusters()), "collection order is kept")

	c, err := col.GetClusterByID("P1_0")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Start())

	_, err = col.GetClusterByID("x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_Exports(t *testing.T) {
	a := pep("AAAAAAAAAA", 0, "P1")
	b := pep("CCCCCCCCCC", 5, "P1")
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{a, b, pep("AAAAAAAAAA", 0, "P1")}),
	)

	t.Run("edge list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, col.WriteEdgeList(&buf))
		want := "from\tto\n" +
			"AAAAAAAAAA\tP1_0: (0-10)\n" +
			"P1_0: (0-10)\tP1\n" +
			"CCCCCCCCCC\tP1_0: (0-10)\n" +
			"P1_0: (0-10)\tP1\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("feature edge list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, col.WriteFeatureEdgeList(&buf))
		want := "from\tto\n" +
			"P1_0_n_peptides\tP1_0: (0-10)\n" +
			"P1_0_intensity\tP1_0: (0-10)\n" +
			"P1_0: (0-10)\tP1\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("membership", func(t *testing.T) {
		rows := col.Rows()
		require.Len(t, rows, 3)
		assert.Equal(t, Row{Cluster: "P1_0", Protein: "P1", Peptide: "CCCCCCCCCC", Start: 5, End: 15, NPeptides: 3}, rows[1])

		var buf bytes.Buffer
		require.NoError(t, col.WriteMembership(&buf))
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 4)
		assert.Equal(t, "cluster\tprotein\tpeptide\tstart\tend\tn_peptides", string(lines[0]))
		assert.Equal(t, "P1_0\tP1\tAAAAAAAAAA\t0\t10\t3", string(lines[1]))
	})
}

type residues map[string]string

func (r residues) Residue(protein string, index int) (string, bool) {
	seq, ok := r[protein]
	if !ok || index < 0 || index >= len(seq) {
		return "", false
	}
	return seq[index : index+1], true
}

func TestCollection_WriteSummary(t *testing.T) {
	col := newTestCollection(t,
		New("P1_0", "P1", []*peptide.Peptide{pep("LMNO", 2, "P1"), pep("LMNOPQ", 2, "P1"), pep("LMNOPQ", 2, "P1")}),
		New("P1_1", "P1", []*peptide.Peptide{pep("ABC", 0, "P1")}),
		New("P9_0", "P9", []*peptide.Peptide{pep("ZZZ", 4, "P9")}),
	)
	db := residues{"P1": "ABLMNOPQRS"}

	var buf bytes.Buffer
	require.NoError(t, col.WriteSummary(&buf, db))

	want := "ID\tProtein\tStart\tEnd\tPeptides\tNp1\tNp1p\tCp1\tCp1p\tLongest\n" +
		"P1_0\tP1\t2\t8\t['LMNO', 'LMNOPQ']\tB\tL\tQ\tR\tLMNOPQ\n" +
		"P1_1\tP1\t0\t3\t['ABC']\t\tA\tL\tM\tABC\n" +
		"P9_0\tP9\t4\t7\t['ZZZ']\t\t\t\t\tZZZ\n"
	assert.Equal(t, want, buf.String())
}
