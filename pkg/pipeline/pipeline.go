// Package pipeline runs a complete clustering job: resolve detection records,
// build one graph per protein, partition, merge, prune and reindex.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/pepnets/pkg/algorithms"
	"github.com/dd0wney/pepnets/pkg/cluster"
	"github.com/dd0wney/pepnets/pkg/clustering"
	"github.com/dd0wney/pepnets/pkg/config"
	"github.com/dd0wney/pepnets/pkg/logging"
	"github.com/dd0wney/pepnets/pkg/metrics"
	"github.com/dd0wney/pepnets/pkg/network"
	"github.com/dd0wney/pepnets/pkg/peptide"
)

// Stage names used in logs and metrics
const (
	StageResolve = "resolve"
	StageBuild   = "build"
	StageCluster = "cluster"
	StageMerge   = "merge"
	StagePrune   = "prune"
	StageScore   = "score"
)

// ErrNoPeptides is returned when nothing could be resolved
var ErrNoPeptides = errors.New("no resolvable peptides")

// Deps are the optional collaborators of a run
type Deps struct {
	Logger  logging.Logger
	Metrics *metrics.Registry

	// Graphs replaces graph construction with previously built graphs. The
	// records are then ignored and peptides come from the graph nodes.
	Graphs map[string]*network.ProteinGraph

	// Partitioner overrides the partitioner named by the configuration
	Partitioner clustering.Partitioner
}

// Result is everything a run produced
type Result struct {
	RunID      string
	Peptides   []*peptide.Peptide
	Unresolved []peptide.Unresolved
	Graphs     map[string]*network.ProteinGraph
	Collection *cluster.Collection
	// Modularity of the final clusters per protein graph
	Modularity map[string]float64
	// Communities describes the final clusters of each protein graph
	Communities map[string]*algorithms.CommunityDetectionResult
	Merged     int
	Removed    int
}

// Run executes one clustering job. db may be nil when every record carries
// its start position.
func Run(ctx context.Context, cfg *config.Config, records []peptide.Record, db peptide.SequenceSource, deps Deps) (res *Result, err error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		cfg:     cfg,
		deps:    deps,
		metrics: deps.Metrics,
		result: &Result{
			RunID:       uuid.NewString(),
			Modularity:  make(map[string]float64),
			Communities: make(map[string]*algorithms.CommunityDetectionResult),
		},
	}
	r.logger = logging.OrNop(deps.Logger).With(logging.RunID(r.result.RunID))

	defer func() { r.metrics.RecordRun(err) }()

	r.logger.Info("run started",
		logging.Algorithm(cfg.Algorithm),
		logging.String("distance_metric", cfg.DistanceMetric),
		logging.Float64("distance_cutoff", cfg.DistanceCutoff),
		logging.Count(len(records)))

	var byProtein map[string][]*peptide.Peptide
	if deps.Graphs != nil {
		byProtein, err = r.fromGraphs()
	} else {
		byProtein, err = r.resolveAndBuild(ctx, records, db)
	}
	if err != nil {
		return nil, err
	}

	if err := r.stage(StageCluster, func() error { return r.cluster(ctx, byProtein) }); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	col := r.result.Collection
	if cfg.MergeEnabled() {
		_ = r.stage(StageMerge, func() error {
			if cfg.MergeUntilStable {
				r.result.Merged = col.MergeUntilStable(cfg.WiggleRoom)
			} else {
				r.result.Merged = col.MergeNearbyClusters(cfg.WiggleRoom)
			}
			r.metrics.RecordMerges(r.result.Merged)
			return nil
		})
	}

	_ = r.stage(StagePrune, func() error {
		if cfg.MinClusterSize > 0 {
			r.result.Removed = col.RemoveSmallClusters(cfg.MinClusterSize)
			r.metrics.RecordRemoved(r.result.Removed)
		}
		col.Reindex()
		return nil
	})

	_ = r.stage(StageScore, func() error {
		r.score()
		return nil
	})

	r.metrics.RecordCollection(col.Sizes())
	r.logger.Info("run finished",
		logging.Int("clusters", col.Len()),
		logging.Int("merged", r.result.Merged),
		logging.Int("removed", r.result.Removed),
		logging.Int("unresolved", len(r.result.Unresolved)))

	return r.result, nil
}

type run struct {
	cfg     *config.Config
	deps    Deps
	logger  logging.Logger
	metrics *metrics.Registry
	result  *Result
}

// stage times fn, logs its duration and records it
func (r *run) stage(name string, fn func() error) error {
	timer := logging.StartTimer(r.logger, "stage finished", logging.Stage(name))
	err := fn()
	var elapsed time.Duration
	if err != nil {
		elapsed = timer.EndError(err)
	} else {
		elapsed = timer.End()
	}
	r.metrics.RecordStage(name, elapsed)
	return err
}

func (r *run) resolveAndBuild(ctx context.Context, records []peptide.Record, db peptide.SequenceSource) (map[string][]*peptide.Peptide, error) {
	err := r.stage(StageResolve, func() error {
		resolver := &peptide.Resolver{Database: db}
		peps, unresolved := resolver.Resolve(records)
		for _, u := range unresolved {
			r.logger.Warn("peptide excluded",
				logging.Protein(u.Record.Protein),
				logging.Sequence(u.Record.Sequence),
				logging.Int("record", u.Index),
				logging.String("reason", string(u.Reason)))
		}
		r.metrics.RecordPeptides(len(peps), len(unresolved))
		r.result.Peptides = peps
		r.result.Unresolved = unresolved
		if len(peps) == 0 {
			return ErrNoPeptides
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	byProtein := peptide.GroupByProtein(r.result.Peptides)

	err = r.stage(StageBuild, func() error {
		builder, err := network.NewBuilder(r.cfg.NetworkOptions(), r.logger, r.metrics)
		if err != nil {
			return err
		}
		r.result.Graphs, err = builder.BuildAll(ctx, byProtein)
		return err
	})
	if err != nil {
		return nil, err
	}
	return byProtein, nil
}

func (r *run) fromGraphs() (map[string][]*peptide.Peptide, error) {
	r.result.Graphs = r.deps.Graphs
	byProtein := make(map[string][]*peptide.Peptide, len(r.deps.Graphs))
	for _, protein := range sortedProteins(r.deps.Graphs) {
		peps, err := r.deps.Graphs[protein].Peptides()
		if err != nil {
			return nil, fmt.Errorf("protein %s: %w", protein, err)
		}
		byProtein[protein] = peps
		r.result.Peptides = append(r.result.Peptides, peps...)
	}
	r.logger.Info("using prebuilt graphs", logging.Int("proteins", len(byProtein)))
	if len(r.result.Peptides) == 0 {
		return nil, ErrNoPeptides
	}
	return byProtein, nil
}

func (r *run) cluster(ctx context.Context, byProtein map[string][]*peptide.Peptide) error {
	if r.cfg.Deterministic() && r.deps.Partitioner == nil {
		d := &clustering.DeterministicClusterer{
			Threshold: r.cfg.SimilarityThreshold,
			Divisor:   r.cfg.Divisor(),
			Workers:   r.cfg.Workers,
		}
		col, err := d.Cluster(ctx, byProtein)
		if err != nil {
			return err
		}
		r.result.Collection = col
		return nil
	}

	p := r.deps.Partitioner
	if p == nil {
		var err error
		p, err = algorithms.ByName(r.cfg.Algorithm, algorithms.Options{
			LabelPropagationIterations: r.cfg.LabelPropagationIterations,
		})
		if err != nil {
			return err
		}
	}

	engine := &clustering.Engine{
		Partitioner: p,
		Options:     r.cfg.PartitionOptions(),
		Workers:     r.cfg.Workers,
		Timeout:     r.cfg.PartitionTimeout,
		Logger:      r.logger,
		Metrics:     r.metrics,
	}
	col, _, err := engine.Cluster(ctx, r.result.Graphs, byProtein)
	if err != nil {
		return err
	}
	r.result.Collection = col
	return nil
}

// score summarizes the final clusters on each protein graph. Peptides dropped
// by pruning belong to no community and count as singletons in modularity.
func (r *run) score() {
	assignments := make(map[string]map[int]int)
	for i, c := range r.result.Collection.Clusters() {
		a, ok := assignments[c.Protein()]
		if !ok {
			a = make(map[int]int)
			assignments[c.Protein()] = a
		}
		for _, p := range c.Peptides() {
			a[p.ID] = i
		}
	}

	weight := network.WeightKind(r.cfg.Weight)
	for _, protein := range sortedProteins(r.result.Graphs) {
		g := r.result.Graphs[protein]
		summary := algorithms.Summarize(g, assignments[protein], r.cfg.Resolution, weight)
		r.result.Communities[protein] = summary
		r.result.Modularity[protein] = summary.Modularity
		r.metrics.RecordModularity(summary.Modularity)
		r.logger.Debug("partition scored",
			logging.Protein(protein),
			logging.Float64("modularity", summary.Modularity),
			logging.Int("communities", len(summary.Communities)))
	}
}

func sortedProteins(graphs map[string]*network.ProteinGraph) []string {
	proteins := make([]string, 0, len(graphs))
	for p := range graphs {
		proteins = append(proteins, p)
	}
	sort.Strings(proteins)
	return proteins
}
