// Package config loads and validates the settings of a clustering run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/pepnets/pkg/algorithms"
	"github.com/dd0wney/pepnets/pkg/clustering"
	"github.com/dd0wney/pepnets/pkg/distance"
	"github.com/dd0wney/pepnets/pkg/logging"
	"github.com/dd0wney/pepnets/pkg/network"
	"github.com/dd0wney/pepnets/pkg/validation"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// AlgorithmDeterministic selects the first-fit clusterer instead of a graph partitioner
const AlgorithmDeterministic = "deterministic"

// Default configuration values
const (
	DefaultDistanceMetric             = "overlap"
	DefaultDistanceCutoff             = 4.0
	DefaultOverlapDivisor             = "total_length"
	DefaultAlgorithm                  = algorithms.AlgorithmLouvain
	DefaultResolution                 = 0.8
	DefaultSimilarityThreshold        = 0.5
	DefaultWiggleRoom                 = 5
	DefaultWeight                     = "inverse"
	DefaultLabelPropagationIterations = 20
	DefaultLogLevel                   = "info"
	DefaultLogFormat                  = "json"
)

// Config holds every tunable of a run
type Config struct {
	// DistanceMetric decides how far apart two peptides are (overlap, center, ...)
	DistanceMetric string `yaml:"distance_metric" toml:"distance_metric"`

	// DistanceCutoff is the largest distance that still produces an edge
	DistanceCutoff float64 `yaml:"distance_cutoff" toml:"distance_cutoff"`

	// OverlapDivisor normalizes overlap lengths (total_length, longest, shortest, none)
	OverlapDivisor string `yaml:"overlap_divisor" toml:"overlap_divisor"`

	// Algorithm is a partitioner name or "deterministic"
	Algorithm string `yaml:"algorithm" toml:"algorithm"`

	// Resolution is the modularity resolution used by Louvain
	Resolution float64 `yaml:"resolution" toml:"resolution"`

	// Seed makes randomized partitioners reproducible when set
	Seed *int64 `yaml:"seed,omitempty" toml:"seed,omitempty"`

	// SimilarityThreshold is the overlap a peptide must exceed to join a
	// cluster in deterministic mode. Unbounded: above 1 keeps every peptide
	// a singleton, negative joins every peptide to the first cluster.
	SimilarityThreshold float64 `yaml:"similarity_threshold" toml:"similarity_threshold"`

	// WiggleRoom is the endpoint tolerance for merging; negative disables merging
	WiggleRoom int `yaml:"wiggle_room" toml:"wiggle_room"`

	// MergeUntilStable repeats merge passes until nothing changes
	MergeUntilStable bool `yaml:"merge_until_stable" toml:"merge_until_stable"`

	// MinClusterSize drops clusters with fewer peptides; 0 keeps everything
	MinClusterSize int `yaml:"min_cluster_size" toml:"min_cluster_size"`

	// Workers bounds per-protein concurrency; 0 uses every CPU
	Workers int `yaml:"workers" toml:"workers"`

	// Weight selects which edge weight partitioners see (inverse, distance)
	Weight string `yaml:"weight" toml:"weight" validate:"oneof=inverse distance"`

	LabelPropagationIterations int `yaml:"label_propagation_iterations" toml:"label_propagation_iterations"`

	// PartitionTimeout limits one partitioner call; 0 means no limit
	PartitionTimeout time.Duration `yaml:"partition_timeout" toml:"partition_timeout"`

	LogLevel  string `yaml:"log_level" toml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `yaml:"log_format" toml:"log_format" validate:"oneof=json text"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		DistanceMetric:             DefaultDistanceMetric,
		DistanceCutoff:             DefaultDistanceCutoff,
		OverlapDivisor:             DefaultOverlapDivisor,
		Algorithm:                  DefaultAlgorithm,
		Resolution:                 DefaultResolution,
		SimilarityThreshold:        DefaultSimilarityThreshold,
		WiggleRoom:                 DefaultWiggleRoom,
		Weight:                     DefaultWeight,
		LabelPropagationIterations: DefaultLabelPropagationIterations,
		LogLevel:                   DefaultLogLevel,
		LogFormat:                  DefaultLogFormat,
	}
}

// Load reads a YAML or TOML file over the defaults. The format is chosen by
// extension; anything other than .toml is parsed as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv lets LOG_LEVEL and LOG_FORMAT override the file values
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
}

// Algorithms lists every accepted value of Algorithm
func Algorithms() []string {
	return append(algorithms.Names(), AlgorithmDeterministic)
}

// Deterministic reports whether the first-fit clusterer is selected
func (c *Config) Deterministic() bool {
	return c.Algorithm == AlgorithmDeterministic
}

// Validate checks the struct tags, the numeric ranges and the cross-package names
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cv := validation.NewConfigValidator("config").
		Required("distance_metric", c.DistanceMetric).
		Required("algorithm", c.Algorithm).
		NonNegativeFloat("distance_cutoff", c.DistanceCutoff).
		PositiveFloat("resolution", c.Resolution).
		NonNegative("min_cluster_size", c.MinClusterSize).
		NonNegative("workers", c.Workers).
		Positive("label_propagation_iterations", c.LabelPropagationIterations).
		Custom("distance_metric", func() error {
			_, err := distance.ParseMetric(c.DistanceMetric)
			return err
		}).
		Custom("overlap_divisor", func() error {
			_, err := distance.ParseDivisor(c.OverlapDivisor)
			return err
		}).
		OneOf("algorithm", c.Algorithm, Algorithms()).
		NonNegativeDuration("partition_timeout", c.PartitionTimeout)

	if err := cv.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Metric returns the parsed distance metric
func (c *Config) Metric() distance.Metric {
	m, _ := distance.ParseMetric(c.DistanceMetric)
	return m
}

// Divisor returns the parsed overlap divisor
func (c *Config) Divisor() distance.Divisor {
	d, _ := distance.ParseDivisor(c.OverlapDivisor)
	return d
}

// NetworkOptions converts the graph settings for network.NewBuilder
func (c *Config) NetworkOptions() network.Options {
	return network.Options{
		Metric:  c.Metric(),
		Cutoff:  c.DistanceCutoff,
		Divisor: c.Divisor(),
		Workers: c.Workers,
	}
}

// PartitionOptions converts the partitioner settings
func (c *Config) PartitionOptions() clustering.PartitionOptions {
	return clustering.PartitionOptions{
		Resolution: c.Resolution,
		Seed:       c.Seed,
		Weight:     network.WeightKind(c.Weight),
	}
}

// Logger builds the logger described by LogLevel and LogFormat
func (c *Config) Logger() logging.Logger {
	return logging.New(os.Stderr, logging.ParseLevel(c.LogLevel), logging.ParseFormat(c.LogFormat))
}

// MergeEnabled reports whether nearby clusters are merged at all
func (c *Config) MergeEnabled() bool {
	return c.WiggleRoom >= 0
}
