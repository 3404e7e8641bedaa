package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/pepnets/pkg/config"
	"github.com/dd0wney/pepnets/pkg/metrics"
	"github.com/dd0wney/pepnets/pkg/network"
)

const recordsTSV = "Protein\tPeptide\tStart\n" +
	"P1\tAAAAAAAAAA\t0\n" +
	"P1\tAAAAAAAAAC\t1\n" +
	"P1\tGGGGGGGGGG\t100\n" +
	"P2\tKKKK\t3\n"

func parseFlags(t *testing.T, args ...string) (*flag.FlagSet, *runFlags, *overrides) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	rf := &runFlags{}
	o := &overrides{}
	registerRunFlags(fs, rf)
	registerOverrides(fs, o)
	require.NoError(t, fs.Parse(args))
	return fs, rf, o
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: components\ndistance_cutoff: 2\nwiggle_room: 3\n"), 0o644))

	fs, rf, o := parseFlags(t, "--config", path, "--cutoff", "6", "--seed", "7", "--timeout", "2s")
	cfg, err := loadConfig(fs, rf.ConfigPath, o)
	require.NoError(t, err)

	assert.Equal(t, "components", cfg.Algorithm, "unset flags keep file values")
	assert.Equal(t, 6.0, cfg.DistanceCutoff)
	assert.Equal(t, 3, cfg.WiggleRoom)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(7), *cfg.Seed)
	assert.Equal(t, 2*time.Second, cfg.PartitionTimeout)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	fs, rf, o := parseFlags(t)
	cfg, err := loadConfig(fs, rf.ConfigPath, o)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	fs, rf, o := parseFlags(t, "--algorithm", "kmeans")
	_, err := loadConfig(fs, rf.ConfigPath, o)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadConfig_ThresholdAboveOne(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	fs, rf, o := parseFlags(t, "--algorithm", "deterministic", "--threshold", "1.1")
	cfg, err := loadConfig(fs, rf.ConfigPath, o)
	require.NoError(t, err)
	assert.Equal(t, 1.1, cfg.SimilarityThreshold)
}

func TestRunPipeline_WritesTables(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "")

	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "peptides.tsv")
	require.NoError(t, os.WriteFile(recordsPath, []byte(recordsTSV), 0o644))

	cfg := config.Default()
	cfg.Algorithm = "components"
	cfg.ApplyEnv()

	rf := &runFlags{
		Records:     recordsPath,
		OutDir:      filepath.Join(dir, "out"),
		SnapshotOut: filepath.Join(dir, "graphs.pepnet"),
		MetricsFile: filepath.Join(dir, "metrics.prom"),
	}
	reg := metrics.NewRegistry()

	res, err := runPipeline(context.Background(), cfg, rf, reg)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Collection.Len())

	for _, name := range []string{clustersFile, edgeListFile, featureEdgeListFile, membershipFile} {
		data, err := os.ReadFile(filepath.Join(rf.OutDir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	membership, err := os.ReadFile(filepath.Join(rf.OutDir, membershipFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(membership)), "\n")
	assert.Len(t, lines, 5, "header plus one line per peptide")

	graphs, err := network.LoadFile(rf.SnapshotOut)
	require.NoError(t, err)
	assert.Len(t, graphs, 2)

	summary := renderSummary(cfg, res)
	assert.Contains(t, summary, res.RunID)
	assert.Contains(t, summary, "P1_0")
	assert.Contains(t, summary, "Density")
	require.Contains(t, res.Communities, "P1")
	for _, c := range res.Collection.Clusters() {
		d := clusterDensity(res, c)
		assert.GreaterOrEqual(t, d, 0.0, c.ID())
		assert.LessOrEqual(t, d, 1.0, c.ID())
	}
}

func TestRunPipeline_FromSnapshot(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "peptides.tsv")
	require.NoError(t, os.WriteFile(recordsPath, []byte(recordsTSV), 0o644))
	snapshot := filepath.Join(dir, "graphs.pepnet")

	cfg := config.Default()
	cfg.ApplyEnv()

	_, err := runPipeline(context.Background(), cfg, &runFlags{
		Records: recordsPath, OutDir: filepath.Join(dir, "a"), SnapshotOut: snapshot,
	}, nil)
	require.NoError(t, err)

	cfg.Algorithm = "label_propagation"
	res, err := runPipeline(context.Background(), cfg, &runFlags{
		SnapshotIn: snapshot, OutDir: filepath.Join(dir, "b"),
	}, nil)
	require.NoError(t, err)
	assert.Len(t, res.Peptides, 4)
}

func TestRunPipeline_MissingRecords(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"
	_, err := runPipeline(context.Background(), cfg, &runFlags{
		Records: filepath.Join(t.TempDir(), "missing.tsv"),
		OutDir:  t.TempDir(),
	}, nil)
	assert.Error(t, err)
}
