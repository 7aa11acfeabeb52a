package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/golsh"
	"github.com/hupe1980/golsh/distance"
	"github.com/hupe1980/golsh/hyperplane"
	"github.com/hupe1980/golsh/testutil"
)

// Report summarizes one index configuration.
type Report struct {
	Tables         int     `yaml:"tables"`
	Bits           int     `yaml:"bits"`
	Recall         float64 `yaml:"recall"`
	EmptyQueries   int     `yaml:"empty_queries"`
	MeanCandidates float64 `yaml:"mean_candidates"`
	MeanLatency    string  `yaml:"mean_latency"`
	BuildTime      string  `yaml:"build_time"`
	MemoryBytes    int64   `yaml:"memory_bytes"`
	MaxBucket      int     `yaml:"max_bucket"`
}

// RunResult is the outcome of a full run over every table count.
type RunResult struct {
	RunID   string   `yaml:"run_id"`
	Host    Host     `yaml:"host"`
	Config  Config   `yaml:"config"`
	Reports []Report `yaml:"reports"`
}

type dataset struct {
	points   [][]float64
	payloads []uuid.UUID
	queries  [][]float64
	truth    [][]testutil.SearchResult
}

func makeDataset(cfg Config) (*dataset, error) {
	rng := testutil.NewRNG(cfg.Seed)
	points := rng.ClusteredVectors(cfg.Points, cfg.Dimension, cfg.Clusters, cfg.Spread)

	// Payload IDs derive from the seed so repeated runs label points identically.
	ids := rand.New(rand.NewSource(cfg.Seed))
	payloads := make([]uuid.UUID, len(points))
	for i := range payloads {
		id, err := uuid.NewRandomFromReader(ids)
		if err != nil {
			return nil, err
		}
		payloads[i] = id
	}

	queries := make([][]float64, cfg.Queries)
	for i := range queries {
		queries[i] = rng.Perturb(points[rng.Intn(len(points))], cfg.Noise)
	}

	truth := make([][]testutil.SearchResult, len(queries))
	for i, q := range queries {
		truth[i] = testutil.ExactTopK(q, points, cfg.K, distance.SquaredL2)
	}

	return &dataset{points: points, payloads: payloads, queries: queries, truth: truth}, nil
}

// Run builds one index per table count over the same dataset and seed and
// measures recall@k against brute force. prom may be nil.
func Run(ctx context.Context, cfg Config, logger *golsh.Logger, prom *PromMetrics) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dist, err := hyperplane.ParseDistribution(cfg.Distribution)
	if err != nil {
		return nil, err
	}

	ds, err := makeDataset(cfg)
	if err != nil {
		return nil, err
	}

	out := &RunResult{RunID: uuid.NewString(), Host: CurrentHost(), Config: cfg}
	for _, tables := range cfg.Tables {
		r, err := runOne(ctx, cfg, tables, dist, ds, logger, prom)
		if err != nil {
			return nil, fmt.Errorf("tables=%d: %w", tables, err)
		}
		out.Reports = append(out.Reports, r)
	}
	return out, nil
}

func runOne(ctx context.Context, cfg Config, tables int, dist hyperplane.Distribution, ds *dataset, logger *golsh.Logger, prom *PromMetrics) (Report, error) {
	mc := &golsh.BasicMetricsCollector{}
	var collector golsh.MetricsCollector = mc
	if prom != nil {
		collector = teeCollector{mc, prom.Collector(tables)}
	}

	idx, err := golsh.New[uuid.UUID](cfg.Dimension,
		golsh.WithTables(tables),
		golsh.WithBitsPerTable(cfg.Bits),
		golsh.WithSeed(cfg.Seed),
		golsh.WithDistribution(dist),
		golsh.WithLogger(logger),
		golsh.WithMetricsCollector(collector),
	)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	if _, err := idx.BatchInsert(ctx, ds.points, ds.payloads); err != nil {
		return Report{}, err
	}
	buildTime := time.Since(start)

	recalls := make([]float64, len(ds.queries))
	candidates := make([]int, len(ds.queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.QPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.QPS), 1)
	}

	var mu sync.Mutex
	empty := 0

	for i, q := range ds.queries {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			n, err := idx.Candidates(q)
			if err != nil {
				return err
			}
			res, err := idx.Query(gctx, q, cfg.K)
			if err != nil {
				return err
			}

			approx := make([]testutil.SearchResult, len(res))
			for j, r := range res {
				approx[j] = testutil.SearchResult{ID: r.ID, Distance: r.Distance}
			}
			recalls[i] = testutil.ComputeRecall(ds.truth[i], approx)
			candidates[i] = n

			if res == nil {
				mu.Lock()
				empty++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	stats := idx.Stats()
	maxBucket := 0
	for _, ts := range stats.Tables {
		maxBucket = max(maxBucket, ts.MaxBucket)
	}

	return Report{
		Tables:         tables,
		Bits:           cfg.Bits,
		Recall:         mean(recalls),
		EmptyQueries:   empty,
		MeanCandidates: meanInt(candidates),
		MeanLatency:    time.Duration(mc.GetStats().QueryAvgNanos).String(),
		BuildTime:      buildTime.String(),
		MemoryBytes:    stats.MemoryBytes,
		MaxBucket:      maxBucket,
	}, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func meanInt(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}
