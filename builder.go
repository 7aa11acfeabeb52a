package golsh

import (
	"github.com/hupe1980/golsh/distance"
	"github.com/hupe1980/golsh/hyperplane"
	"github.com/hupe1980/golsh/index/lsh"
)

// Cosine creates a new cosine LSH index builder with the specified dimension.
//
// The builder is immutable - each method returns a new builder with the updated configuration.
// This ensures thread-safety and prevents accidental state sharing.
//
// Example:
//
//	idx, err := golsh.Cosine[string](128).
//	    Tables(8).
//	    Bits(12).
//	    Seed(42).
//	    Build()
func Cosine[T any](dimension int) CosineBuilder[T] {
	return CosineBuilder[T]{
		dimension:    dimension,
		numTables:    lsh.DefaultOptions.NumTables,
		bitsPerTable: lsh.DefaultOptions.BitsPerTable,
		distribution: lsh.DefaultOptions.Distribution,
		metric:       lsh.DefaultOptions.Metric,
	}
}

// CosineBuilder is an immutable fluent builder for cosine LSH indexes.
// Each method returns a new builder with the updated configuration.
type CosineBuilder[T any] struct {
	dimension    int
	numTables    int
	bitsPerTable int
	distribution hyperplane.Distribution
	metric       distance.Metric
	randomSeed   *int64
	hyperplanes  *hyperplane.Set
	keyCacheSize int
	memoryLimit  int64
	logger       *Logger
	metrics      MetricsCollector
}

// Tables sets L, the number of hash tables.
// Default: 4.
func (b CosineBuilder[T]) Tables(n int) CosineBuilder[T] {
	b.numTables = n
	return b
}

// Bits sets M, the number of signature bits per table key.
// Default: 8. Must be in [1, 64].
func (b CosineBuilder[T]) Bits(m int) CosineBuilder[T] {
	b.bitsPerTable = m
	return b
}

// Seed sets the seed for deterministic hyperplane generation.
// If not set, a random seed (time-based) is used.
func (b CosineBuilder[T]) Seed(seed int64) CosineBuilder[T] {
	b.randomSeed = &seed
	return b
}

// Gaussian draws hyperplane coefficients from the standard normal distribution
// instead of the default uniform [0, 1).
func (b CosineBuilder[T]) Gaussian() CosineBuilder[T] {
	b.distribution = hyperplane.DistributionGaussian
	return b
}

// Hyperplanes uses a fixed hyperplane set instead of random generation.
func (b CosineBuilder[T]) Hyperplanes(set *hyperplane.Set) CosineBuilder[T] {
	b.hyperplanes = set
	return b
}

// L2 ranks candidates by Euclidean instead of squared Euclidean distance.
func (b CosineBuilder[T]) L2() CosineBuilder[T] {
	b.metric = distance.MetricL2
	return b
}

// Angle ranks candidates by the angle between query and point.
func (b CosineBuilder[T]) Angle() CosineBuilder[T] {
	b.metric = distance.MetricAngle
	return b
}

// KeyCache caches the bucket keys of up to size recent query vectors.
func (b CosineBuilder[T]) KeyCache(size int) CosineBuilder[T] {
	b.keyCacheSize = size
	return b
}

// MemoryLimit caps the bytes charged for stored points.
func (b CosineBuilder[T]) MemoryLimit(bytes int64) CosineBuilder[T] {
	b.memoryLimit = bytes
	return b
}

// Logger sets the structured logger for operation tracing.
func (b CosineBuilder[T]) Logger(l *Logger) CosineBuilder[T] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b CosineBuilder[T]) Metrics(mc MetricsCollector) CosineBuilder[T] {
	b.metrics = mc
	return b
}

// Build creates the index.
func (b CosineBuilder[T]) Build() (*Index[T], error) {
	opts := []Option{
		WithTables(b.numTables),
		WithBitsPerTable(b.bitsPerTable),
		WithDistribution(b.distribution),
		WithMetric(b.metric),
	}
	if b.randomSeed != nil {
		opts = append(opts, WithSeed(*b.randomSeed))
	}
	if b.hyperplanes != nil {
		opts = append(opts, WithHyperplanes(b.hyperplanes))
	}
	if b.keyCacheSize > 0 {
		opts = append(opts, WithKeyCache(b.keyCacheSize))
	}
	if b.memoryLimit > 0 {
		opts = append(opts, WithMemoryLimit(b.memoryLimit))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return New[T](b.dimension, opts...)
}

// MustBuild is like Build but panics on error.
func (b CosineBuilder[T]) MustBuild() *Index[T] {
	idx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return idx
}
