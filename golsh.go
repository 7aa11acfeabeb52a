package golsh

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/golsh/hashkey"
	"github.com/hupe1980/golsh/hyperplane"
	"github.com/hupe1980/golsh/index"
	"github.com/hupe1980/golsh/index/lsh"
)

// Result is a ranked query match. Its Distance is measured with the
// metric chosen by WithMetric, squared L2 unless configured otherwise.
type Result[T any] = index.Result[T]

// Point is a stored vector with its ID and payload.
type Point[T any] = index.Point[T]

// Key is a per-table bucket key.
type Key = hashkey.Key

// Stats describes the shape and memory use of an index.
type Stats = lsh.Stats

// Index is a concurrency-safe LSH index holding payloads of type T.
type Index[T any] struct {
	mu      sync.RWMutex
	idx     *lsh.Index[T]
	logger  *Logger
	metrics MetricsCollector
}

// New creates an index for vectors of the given dimension.
func New[T any](dimension int, optFns ...Option) (*Index[T], error) {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}

	lshOpts := append([]func(*lsh.Options){func(lo *lsh.Options) {
		lo.Dimension = dimension
	}}, o.lsh...)

	idx, err := lsh.New[T](lshOpts...)
	if err != nil {
		return nil, translateError(err)
	}

	o.logger.LogCreate(context.Background(), idx.Dimension(), idx.NumTables(), idx.BitsPerTable())

	return &Index[T]{
		idx:     idx,
		logger:  o.logger.WithDimension(idx.Dimension()),
		metrics: o.metricsCollector,
	}, nil
}

// Dimension returns the fixed vector dimensionality.
func (x *Index[T]) Dimension() int { return x.idx.Dimension() }

// NumTables returns L.
func (x *Index[T]) NumTables() int { return x.idx.NumTables() }

// BitsPerTable returns M.
func (x *Index[T]) BitsPerTable() int { return x.idx.BitsPerTable() }

// Hyperplanes returns the immutable hyperplane set.
func (x *Index[T]) Hyperplanes() *hyperplane.Set { return x.idx.Hyperplanes() }

// Len returns the number of inserted points.
func (x *Index[T]) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.idx.Len()
}

// Insert stores a copy of vector in every table and returns its ID.
// IDs start at 1 and increase with every insert.
func (x *Index[T]) Insert(ctx context.Context, vector []float64, payload T) (uint64, error) {
	start := time.Now()

	var (
		id  uint64
		err error
	)
	if err = ctx.Err(); err == nil {
		x.mu.Lock()
		id, err = x.idx.Insert(vector, payload)
		x.mu.Unlock()
	}

	err = translateError(err)
	x.metrics.RecordInsert(time.Since(start), err)
	x.logger.LogInsert(ctx, id, len(vector), err)
	return id, err
}

// BatchInsert inserts vectors with their payloads and returns the IDs in
// input order. Either every vector is stored or none is.
func (x *Index[T]) BatchInsert(ctx context.Context, vectors [][]float64, payloads []T) ([]uint64, error) {
	start := time.Now()

	x.mu.Lock()
	ids, err := x.idx.BatchInsert(ctx, vectors, payloads)
	x.mu.Unlock()

	err = translateError(err)
	failed := 0
	if err != nil {
		failed = len(vectors)
	}
	x.metrics.RecordBatchInsert(len(vectors), failed, time.Since(start))
	x.logger.LogBatchInsert(ctx, len(vectors), err)
	return ids, err
}

// Query returns the distinct points colliding with q in at least one table,
// nearest first. maxResults > 0 caps the result count; 0 means no limit.
//
// A nil slice with a nil error means no point collided with q.
func (x *Index[T]) Query(ctx context.Context, q []float64, maxResults int) ([]Result[T], error) {
	start := time.Now()

	var (
		results []Result[T]
		err     error
	)
	if err = ctx.Err(); err == nil {
		x.mu.RLock()
		results, err = x.idx.Query(q, maxResults)
		x.mu.RUnlock()
	}

	err = translateError(err)
	x.metrics.RecordQuery(maxResults, len(results), time.Since(start), err)
	x.logger.LogQuery(ctx, maxResults, len(results), err)
	return results, err
}

// Candidates returns how many distinct points collide with q before ranking.
func (x *Index[T]) Candidates(q []float64) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	n, err := x.idx.Candidates(q)
	return n, translateError(err)
}

// Keys returns the bucket keys of v, one per table.
func (x *Index[T]) Keys(v []float64) ([]Key, error) {
	keys, err := x.idx.Keys(v)
	return keys, translateError(err)
}

// Lookup returns a copy of the bucket stored under key in table t, or nil
// if the bucket is empty.
func (x *Index[T]) Lookup(t int, key Key) ([]Point[T], error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	bucket, err := x.idx.Lookup(t, key)
	if err != nil {
		return nil, translateError(err)
	}
	if len(bucket) == 0 {
		return nil, nil
	}

	out := make([]Point[T], len(bucket))
	for i, p := range bucket {
		out[i] = Point[T]{ID: p.ID, Vector: append([]float64(nil), p.Vector...), Payload: p.Payload}
	}
	return out, nil
}

// Stats returns a snapshot of the index shape and memory use.
func (x *Index[T]) Stats() Stats {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.idx.Stats()
}
