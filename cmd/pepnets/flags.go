package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/dd0wney/pepnets/pkg/config"
)

// runFlags are the input/output flags shared by the subcommands
type runFlags struct {
	ConfigPath  string
	Records     string
	Database    string
	OutDir      string
	SnapshotIn  string
	SnapshotOut string
	MetricsFile string
}

// overrides holds the flag values that replace configuration file settings
type overrides struct {
	algorithm   string
	metric      string
	cutoff      float64
	divisor     string
	resolution  float64
	seed        int64
	threshold   float64
	wiggle      int
	untilStable bool
	minSize     int
	workers     int
	weight      string
	iterations  int
	timeout     time.Duration
	logLevel    string
	logFormat   string
}

func registerRunFlags(fs *flag.FlagSet, rf *runFlags) {
	fs.StringVar(&rf.ConfigPath, "config", "", "YAML or TOML configuration file")
	fs.StringVar(&rf.Records, "records", "", "Tab separated peptide table (Protein, Peptide, optional Start)")
	fs.StringVar(&rf.Database, "db", "", "Protein database (FASTA, optionally gzipped, or UniProt TSV)")
	fs.StringVar(&rf.MetricsFile, "metrics", "", "Write Prometheus metrics to this file when the run ends")
}

func registerOverrides(fs *flag.FlagSet, o *overrides) {
	fs.StringVar(&o.algorithm, "algorithm", config.DefaultAlgorithm, "Clustering algorithm (louvain, label_propagation, components, deterministic)")
	fs.StringVar(&o.metric, "metric", config.DefaultDistanceMetric, "Distance metric (overlap, center, endpoints, length_diff, levenshtein, total)")
	fs.Float64Var(&o.cutoff, "cutoff", config.DefaultDistanceCutoff, "Largest distance that still links two peptides")
	fs.StringVar(&o.divisor, "divisor", config.DefaultOverlapDivisor, "Overlap divisor (total_length, longest, shortest, none)")
	fs.Float64Var(&o.resolution, "resolution", config.DefaultResolution, "Louvain resolution")
	fs.Int64Var(&o.seed, "seed", 0, "Random seed for reproducible partitions")
	fs.Float64Var(&o.threshold, "threshold", config.DefaultSimilarityThreshold, "Overlap needed to join a cluster in deterministic mode")
	fs.IntVar(&o.wiggle, "wiggle", config.DefaultWiggleRoom, "Endpoint tolerance for merging clusters; negative disables merging")
	fs.BoolVar(&o.untilStable, "until-stable", false, "Repeat merge passes until nothing changes")
	fs.IntVar(&o.minSize, "min-size", 0, "Drop clusters with fewer peptides")
	fs.IntVar(&o.workers, "workers", 0, "Concurrent proteins (default: number of CPUs)")
	fs.StringVar(&o.weight, "weight", config.DefaultWeight, "Edge weight seen by partitioners (inverse, distance)")
	fs.IntVar(&o.iterations, "iterations", config.DefaultLabelPropagationIterations, "Label propagation iterations")
	fs.DurationVar(&o.timeout, "timeout", 0, "Time limit for partitioning one protein (0 = none)")
	fs.StringVar(&o.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&o.logFormat, "log-format", config.DefaultLogFormat, "Log format (json, text)")
}

// loadConfig reads the configuration file, if any, and applies every flag
// that was set explicitly on the command line
func loadConfig(fs *flag.FlagSet, path string, o *overrides) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	} else {
		cfg.ApplyEnv()
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "algorithm":
			cfg.Algorithm = o.algorithm
		case "metric":
			cfg.DistanceMetric = o.metric
		case "cutoff":
			cfg.DistanceCutoff = o.cutoff
		case "divisor":
			cfg.OverlapDivisor = o.divisor
		case "resolution":
			cfg.Resolution = o.resolution
		case "seed":
			seed := o.seed
			cfg.Seed = &seed
		case "threshold":
			cfg.SimilarityThreshold = o.threshold
		case "wiggle":
			cfg.WiggleRoom = o.wiggle
		case "until-stable":
			cfg.MergeUntilStable = o.untilStable
		case "min-size":
			cfg.MinClusterSize = o.minSize
		case "workers":
			cfg.Workers = o.workers
		case "weight":
			cfg.Weight = o.weight
		case "iterations":
			cfg.LabelPropagationIterations = o.iterations
		case "timeout":
			cfg.PartitionTimeout = o.timeout
		case "log-level":
			cfg.LogLevel = o.logLevel
		case "log-format":
			cfg.LogFormat = o.logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
