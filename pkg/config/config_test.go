package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/pepnets/pkg/distance"
	"github.com/dd0wney/pepnets/pkg/logging"
	"github.com/dd0wney/pepnets/pkg/network"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, distance.MetricOverlap, cfg.Metric())
	assert.Equal(t, distance.TotalLength, cfg.Divisor())
	assert.Equal(t, 4.0, cfg.DistanceCutoff)
	assert.Equal(t, "louvain", cfg.Algorithm)
	assert.Equal(t, 0.8, cfg.Resolution)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, 0.5, cfg.SimilarityThreshold)
	assert.Equal(t, 5, cfg.WiggleRoom)
	assert.False(t, cfg.MergeUntilStable)
	assert.Zero(t, cfg.MinClusterSize)
	assert.Zero(t, cfg.Workers)
	assert.Equal(t, 20, cfg.LabelPropagationIterations)
	assert.True(t, cfg.MergeEnabled())
	assert.False(t, cfg.Deterministic())

	opts := cfg.PartitionOptions()
	assert.Equal(t, network.WeightInverse, opts.Weight)
	assert.Equal(t, 0.8, opts.Resolution)
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	path := writeFile(t, "run.yaml", `
distance_metric: total
distance_cutoff: 2.5
overlap_divisor: shortest
algorithm: label_propagation
seed: 42
wiggle_room: -1
partition_timeout: 30s
log_format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, distance.MetricTotal, cfg.Metric())
	assert.Equal(t, distance.Shortest, cfg.Divisor())
	assert.Equal(t, 2.5, cfg.DistanceCutoff)
	assert.Equal(t, "label_propagation", cfg.Algorithm)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.False(t, cfg.MergeEnabled())
	assert.Equal(t, 30*time.Second, cfg.PartitionTimeout)
	assert.Equal(t, "text", cfg.LogFormat)

	// untouched keys keep their defaults
	assert.Equal(t, 0.8, cfg.Resolution)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadTOML(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	path := writeFile(t, "run.toml", `
algorithm = "deterministic"
similarity_threshold = -0.5
merge_until_stable = true
min_cluster_size = 3
workers = 4
weight = "distance"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Deterministic())
	assert.Equal(t, -0.5, cfg.SimilarityThreshold)
	assert.True(t, cfg.MergeUntilStable)
	assert.Equal(t, 3, cfg.MinClusterSize)
	assert.Equal(t, 4, cfg.NetworkOptions().Workers)
	assert.Equal(t, network.WeightDistance, cfg.PartitionOptions().Weight)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load(writeFile(t, "run.yml", "log_level: error\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, logging.DebugLevel, cfg.Logger().GetLevel())
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.yaml", "distance_cutoff: [1, 2\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "algorithm = \n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "invalid.yaml", "algorithm: kmeans\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown metric", func(c *Config) { c.DistanceMetric = "hamming" }},
		{"empty metric", func(c *Config) { c.DistanceMetric = "" }},
		{"negative cutoff", func(c *Config) { c.DistanceCutoff = -1 }},
		{"unknown divisor", func(c *Config) { c.OverlapDivisor = "median" }},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "kmeans" }},
		{"zero resolution", func(c *Config) { c.Resolution = 0 }},
		{"negative min size", func(c *Config) { c.MinClusterSize = -2 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"unknown weight", func(c *Config) { c.Weight = "squared" }},
		{"zero iterations", func(c *Config) { c.LabelPropagationIterations = 0 }},
		{"negative timeout", func(c *Config) { c.PartitionTimeout = -time.Second }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error %v should wrap ErrInvalidConfig", err)
		})
	}
}

func TestAlgorithms(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"louvain", "label_propagation", "components", "deterministic"},
		Algorithms())
}

func TestValidate_ThresholdUnbounded(t *testing.T) {
	for _, threshold := range []float64{1.1, -2, 3, 50} {
		cfg := Default()
		cfg.Algorithm = AlgorithmDeterministic
		cfg.OverlapDivisor = "none"
		cfg.SimilarityThreshold = threshold
		assert.NoError(t, cfg.Validate(), "threshold %v", threshold)
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Resolution = -1
	cfg.Workers = -4
	cfg.LabelPropagationIterations = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	for _, field := range []string{"resolution", "workers", "label_propagation_iterations"} {
		assert.Contains(t, err.Error(), field)
	}
}
