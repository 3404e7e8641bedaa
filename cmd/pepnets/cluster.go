package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dd0wney/pepnets/pkg/cluster"
	"github.com/dd0wney/pepnets/pkg/config"
	"github.com/dd0wney/pepnets/pkg/logging"
	"github.com/dd0wney/pepnets/pkg/metrics"
	"github.com/dd0wney/pepnets/pkg/network"
	"github.com/dd0wney/pepnets/pkg/peptide"
	"github.com/dd0wney/pepnets/pkg/pipeline"
	"github.com/dd0wney/pepnets/pkg/proteindb"
	"github.com/dd0wney/pepnets/pkg/records"
)

// Output file names written by the cluster command
const (
	clustersFile        = "clusters.tsv"
	edgeListFile        = "edgelist.tsv"
	featureEdgeListFile = "feature_edgelist.tsv"
	membershipFile      = "membership.tsv"
)

// handleClusterCommand runs the full pipeline and writes the cluster tables
func handleClusterCommand(args []string) error {
	fs := flag.NewFlagSet("cluster", flag.ExitOnError)
	var rf runFlags
	var o overrides
	registerRunFlags(fs, &rf)
	registerOverrides(fs, &o)
	fs.StringVar(&rf.OutDir, "out", ".", "Directory for the output tables")
	fs.StringVar(&rf.SnapshotIn, "snapshot-in", "", "Cluster graphs from a snapshot instead of building them")
	fs.StringVar(&rf.SnapshotOut, "snapshot-out", "", "Save the protein graphs to this snapshot file")
	quiet := fs.Bool("quiet", false, "Do not print the run summary")

	fs.Parse(args)

	if rf.Records == "" && rf.SnapshotIn == "" {
		return errors.New("cluster: --records or --snapshot-in is required")
	}

	cfg, err := loadConfig(fs, rf.ConfigPath, &o)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	res, err := runPipeline(ctx, cfg, &rf, reg)
	if rf.MetricsFile != "" {
		if merr := reg.WriteTextfile(rf.MetricsFile); merr != nil && err == nil {
			err = fmt.Errorf("write metrics: %w", merr)
		}
	}
	if err != nil {
		return err
	}

	if !*quiet {
		fmt.Println(renderSummary(cfg, res))
	}
	return nil
}

// runPipeline loads the inputs named by rf, runs the pipeline and writes
// every output
func runPipeline(ctx context.Context, cfg *config.Config, rf *runFlags, reg *metrics.Registry) (*pipeline.Result, error) {
	logger := cfg.Logger()

	var (
		recs []peptide.Record
		db   *proteindb.Database
		deps = pipeline.Deps{Logger: logger, Metrics: reg}
		err  error
	)

	if rf.Database != "" {
		timer := logging.StartTimer(logger, "protein database loaded", logging.Path(rf.Database))
		if db, err = proteindb.Load(rf.Database); err != nil {
			return nil, fmt.Errorf("load protein database %s: %w", rf.Database, err)
		}
		timer.End(logging.Count(db.Len()))
	}

	if rf.SnapshotIn != "" {
		if deps.Graphs, err = network.LoadFile(rf.SnapshotIn); err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", rf.SnapshotIn, err)
		}
	} else if recs, err = records.ReadFile(rf.Records); err != nil {
		return nil, err
	}

	var source peptide.SequenceSource
	if db != nil {
		source = db
	}

	res, err := pipeline.Run(ctx, cfg, recs, source, deps)
	if err != nil {
		return nil, err
	}

	if rf.SnapshotOut != "" {
		if err := network.SaveFile(rf.SnapshotOut, res.Graphs); err != nil {
			return nil, fmt.Errorf("save snapshot %s: %w", rf.SnapshotOut, err)
		}
		logger.Info("snapshot saved", logging.Path(rf.SnapshotOut), logging.Int("proteins", len(res.Graphs)))
	}

	if err := writeTables(rf.OutDir, res.Collection, db); err != nil {
		return nil, err
	}
	logger.Info("tables written", logging.Path(rf.OutDir))
	return res, nil
}

// writeTables writes the four cluster tables into dir
func writeTables(dir string, col *cluster.Collection, db *proteindb.Database) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tables := []struct {
		name  string
		write func(io.Writer) error
	}{
		{clustersFile, func(w io.Writer) error { return col.WriteSummary(w, db) }},
		{edgeListFile, col.WriteEdgeList},
		{featureEdgeListFile, col.WriteFeatureEdgeList},
		{membershipFile, col.WriteMembership},
	}

	for _, t := range tables {
		if err := writeFile(filepath.Join(dir, t.name), t.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
