package golsh

import (
	"math/rand"

	"github.com/hupe1980/golsh/distance"
	"github.com/hupe1980/golsh/hyperplane"
	"github.com/hupe1980/golsh/index/lsh"
)

type options struct {
	lsh              []func(*lsh.Options)
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Index construction.
type Option func(*options)

func (o *options) with(fn func(*lsh.Options)) {
	o.lsh = append(o.lsh, fn)
}

// WithTables sets L, the number of hash tables (default 4).
// More tables raise recall; each table stores its own copy of every vector.
func WithTables(n int) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.NumTables = n })
	}
}

// WithBitsPerTable sets M, the number of signature bits per table key (default 8, at most 64).
// More bits give smaller, more selective buckets.
func WithBitsPerTable(m int) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.BitsPerTable = m })
	}
}

// WithSeed makes hyperplane generation reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.RandomSeed = &seed })
	}
}

// WithRand sets the randomness source used to draw hyperplanes.
// It takes precedence over WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.Rand = rng })
	}
}

// WithDistribution selects how hyperplane coefficients are drawn.
func WithDistribution(d hyperplane.Distribution) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.Distribution = d })
	}
}

// WithHyperplanes uses a fixed hyperplane set instead of random generation.
// The set must hold tables*bits rows of the index dimension.
func WithHyperplanes(set *hyperplane.Set) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.Hyperplanes = set })
	}
}

// WithMetric sets the distance used to rank candidates (default squared L2).
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.Metric = m })
	}
}

// WithKeyCache caches the bucket keys of up to size recent query vectors.
func WithKeyCache(size int) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.KeyCacheSize = size })
	}
}

// WithMemoryLimit caps the bytes charged for stored points.
// Inserts beyond the limit fail with ErrMemoryLimitExceeded.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.with(func(lo *lsh.Options) { lo.MemoryLimitBytes = bytes })
	}
}

// WithMetricsCollector sets a custom metrics collector for monitoring operations.
// If not set, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger sets a structured logger.
// If not set, NoopLogger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
