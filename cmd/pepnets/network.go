package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/dd0wney/pepnets/pkg/algorithms"
	"github.com/dd0wney/pepnets/pkg/logging"
	"github.com/dd0wney/pepnets/pkg/metrics"
	"github.com/dd0wney/pepnets/pkg/network"
	"github.com/dd0wney/pepnets/pkg/peptide"
	"github.com/dd0wney/pepnets/pkg/proteindb"
	"github.com/dd0wney/pepnets/pkg/records"
)

// handleNetworkCommand builds the protein graphs, reports their shape and
// optionally saves them as a snapshot
func handleNetworkCommand(args []string) error {
	fs := flag.NewFlagSet("network", flag.ExitOnError)
	var rf runFlags
	var o overrides
	registerRunFlags(fs, &rf)
	registerOverrides(fs, &o)
	fs.StringVar(&rf.SnapshotOut, "snapshot", "", "Save the protein graphs to this snapshot file")
	top := fs.Int("top", 20, "Show statistics for at most this many proteins, largest first")

	fs.Parse(args)

	if rf.Records == "" {
		return errors.New("network: --records is required")
	}

	cfg, err := loadConfig(fs, rf.ConfigPath, &o)
	if err != nil {
		return err
	}
	logger := cfg.Logger()
	reg := metrics.NewRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recs, err := records.ReadFile(rf.Records)
	if err != nil {
		return err
	}

	resolver := &peptide.Resolver{}
	if rf.Database != "" {
		db, err := proteindb.Load(rf.Database)
		if err != nil {
			return fmt.Errorf("load protein database %s: %w", rf.Database, err)
		}
		resolver.Database = db
	}

	peps, unresolved := resolver.Resolve(recs)
	for _, u := range unresolved {
		logger.Warn("peptide excluded",
			logging.Protein(u.Record.Protein),
			logging.Sequence(u.Record.Sequence),
			logging.String("reason", string(u.Reason)))
	}
	reg.RecordPeptides(len(peps), len(unresolved))

	builder, err := network.NewBuilder(cfg.NetworkOptions(), logger, reg)
	if err != nil {
		return err
	}
	graphs, err := builder.BuildAll(ctx, peptide.GroupByProtein(peps))
	if err != nil {
		return err
	}

	if rf.SnapshotOut != "" {
		if err := network.SaveFile(rf.SnapshotOut, graphs); err != nil {
			return fmt.Errorf("save snapshot %s: %w", rf.SnapshotOut, err)
		}
		logger.Info("snapshot saved", logging.Path(rf.SnapshotOut), logging.Int("proteins", len(graphs)))
	}

	if rf.MetricsFile != "" {
		if err := reg.WriteTextfile(rf.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	stats := make([]algorithms.GraphStats, 0, len(graphs))
	for _, g := range graphs {
		stats = append(stats, algorithms.Stats(g))
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Nodes != stats[j].Nodes {
			return stats[i].Nodes > stats[j].Nodes
		}
		return stats[i].Protein < stats[j].Protein
	})
	if *top >= 0 && len(stats) > *top {
		stats = stats[:*top]
	}

	fmt.Println(renderGraphStats(stats, len(peps), len(unresolved)))
	return nil
}
