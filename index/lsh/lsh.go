// Package lsh provides a multi-table random-hyperplane LSH index.
package lsh

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/golsh/distance"
	"github.com/hupe1980/golsh/hashkey"
	"github.com/hupe1980/golsh/hyperplane"
	"github.com/hupe1980/golsh/index"
	"github.com/hupe1980/golsh/internal/cache"
	"github.com/hupe1980/golsh/internal/resource"
	"github.com/hupe1980/golsh/internal/searcher"
	"github.com/hupe1980/golsh/internal/table"
	"github.com/hupe1980/golsh/signature"
	"golang.org/x/sync/errgroup"
)

// Options contains configuration options for the LSH index.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all inserts and queries.
	Dimension int

	// NumTables is L, the number of independent hash tables.
	NumTables int

	// BitsPerTable is M, the number of signature bits folded into one bucket key.
	// More bits give smaller, more selective buckets.
	BitsPerTable int

	// Distribution selects how hyperplane coefficients are drawn.
	Distribution hyperplane.Distribution

	// RandomSeed makes hyperplane generation reproducible.
	// If nil and Rand is nil, a time-based seed is used.
	RandomSeed *int64

	// Rand is the randomness source for hyperplane generation.
	// It takes precedence over RandomSeed.
	Rand *rand.Rand

	// Hyperplanes replaces random generation with a fixed set.
	// It must have NumTables*BitsPerTable rows of length Dimension.
	Hyperplanes *hyperplane.Set

	// Metric ranks candidates. Defaults to squared Euclidean distance.
	Metric distance.Metric

	// KeyCacheSize enables an LRU of query bucket keys holding that many vectors.
	// 0 disables the cache.
	KeyCacheSize int

	// MemoryLimitBytes caps the memory charged for stored points.
	// 0 means unlimited.
	MemoryLimitBytes int64
}

// DefaultOptions contains the default configuration options for the LSH index.
var DefaultOptions = Options{
	Dimension:    0,
	NumTables:    4,
	BitsPerTable: 8,
	Distribution: hyperplane.DistributionUniform,
	Metric:       distance.MetricSquaredL2,
}

// Index is a multi-table cosine LSH index.
//
// Each point is hashed once into L*M signature bits; chunk i of M bits picks
// its bucket in table i. A query unions the buckets it hashes to in every
// table and ranks the distinct candidates exactly.
//
// Index is not safe for concurrent mutation. Concurrent calls to read-only
// methods (Query, Lookup, Keys, Stats) are safe when no Insert runs.
type Index[T any] struct {
	opts   Options
	planes *hyperplane.Set
	tables []*table.Table[T]
	nextID uint64

	distanceFunc distance.Func
	keyCache     *cache.KeyCache
	rc           *resource.Controller
	pointCost    int64

	searcherPool sync.Pool
}

// New creates a new LSH index.
// Dimension is required; NumTables and BitsPerTable default to DefaultOptions.
func New[T any](optFns ...func(o *Options)) (*Index[T], error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := index.ValidateParams(opts.Dimension, opts.NumTables, opts.BitsPerTable); err != nil {
		return nil, err
	}

	distanceFunc, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	planes, err := buildHyperplanes(opts)
	if err != nil {
		return nil, err
	}

	idx := &Index[T]{
		opts:         opts,
		planes:       planes,
		tables:       make([]*table.Table[T], opts.NumTables),
		distanceFunc: distanceFunc,
		rc:           resource.NewController(resource.Config{MemoryLimitBytes: opts.MemoryLimitBytes}),
		pointCost:    resource.PointCost(opts.Dimension, opts.NumTables),
	}
	for i := range idx.tables {
		idx.tables[i] = table.New[T]()
	}

	if opts.KeyCacheSize > 0 {
		idx.keyCache, err = cache.NewKeyCache(opts.KeyCacheSize)
		if err != nil {
			return nil, err
		}
	}

	idx.searcherPool.New = func() any { return searcher.New[T]() }

	return idx, nil
}

func buildHyperplanes(opts Options) (*hyperplane.Set, error) {
	rows := opts.NumTables * opts.BitsPerTable

	if opts.Hyperplanes != nil {
		if opts.Hyperplanes.Rows() != rows {
			return nil, fmt.Errorf("lsh: hyperplane set has %d rows, want %d", opts.Hyperplanes.Rows(), rows)
		}
		if opts.Hyperplanes.Dimension() != opts.Dimension {
			return nil, &index.ErrDimensionMismatch{Expected: opts.Dimension, Actual: opts.Hyperplanes.Dimension()}
		}
		return opts.Hyperplanes, nil
	}

	rng := opts.Rand
	if rng == nil {
		if opts.RandomSeed != nil {
			rng = rand.New(rand.NewSource(*opts.RandomSeed))
		} else {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}

	return hyperplane.New(rows, opts.Dimension, rng, opts.Distribution)
}

// Dimension returns the vector dimensionality.
func (idx *Index[T]) Dimension() int { return idx.opts.Dimension }

// NumTables returns L.
func (idx *Index[T]) NumTables() int { return idx.opts.NumTables }

// BitsPerTable returns M.
func (idx *Index[T]) BitsPerTable() int { return idx.opts.BitsPerTable }

// Hyperplanes returns the immutable hyperplane set.
func (idx *Index[T]) Hyperplanes() *hyperplane.Set { return idx.planes }

// Len returns the number of inserted points.
func (idx *Index[T]) Len() int { return int(idx.nextID) }

// Signature returns the full L*M bit signature of v.
func (idx *Index[T]) Signature(v []float64) (signature.Signature, error) {
	return signature.Compute(idx.planes, v)
}

// Keys returns the L bucket keys of v; key i addresses table i.
func (idx *Index[T]) Keys(v []float64) ([]hashkey.Key, error) {
	sig, err := signature.Compute(idx.planes, v)
	if err != nil {
		return nil, err
	}
	return hashkey.Compose(sig, idx.opts.NumTables, idx.opts.BitsPerTable)
}

// queryKeys is Keys behind the optional key cache.
func (idx *Index[T]) queryKeys(q []float64) ([]hashkey.Key, error) {
	if idx.keyCache == nil {
		return idx.Keys(q)
	}
	if keys, ok := idx.keyCache.Get(q); ok {
		return keys, nil
	}
	keys, err := idx.Keys(q)
	if err != nil {
		return nil, err
	}
	idx.keyCache.Add(q, keys)
	return keys, nil
}

// Insert hashes v once, assigns it the next ID and appends a copy of the
// point to its bucket in every table. It returns the assigned ID.
func (idx *Index[T]) Insert(v []float64, payload T) (uint64, error) {
	keys, err := idx.Keys(v)
	if err != nil {
		return 0, err
	}

	if err := idx.rc.AcquireMemory(idx.pointCost); err != nil {
		return 0, err
	}

	return idx.insertKeys(v, keys, payload), nil
}

// insertKeys stores v under precomputed keys. Memory must already be charged.
func (idx *Index[T]) insertKeys(v []float64, keys []hashkey.Key, payload T) uint64 {
	idx.nextID++
	id := idx.nextID

	for i, t := range idx.tables {
		t.Append(keys[i], index.Point[T]{
			ID:      id,
			Vector:  slices.Clone(v),
			Payload: payload,
		})
	}
	return id
}

// BatchInsert inserts vectors with their payloads and returns the assigned
// IDs in input order.
//
// Signatures are computed concurrently; points are then appended in input
// order. The batch is all-or-nothing: on a dimension mismatch, a memory limit
// or a canceled context no point is stored.
func (idx *Index[T]) BatchInsert(ctx context.Context, vectors [][]float64, payloads []T) ([]uint64, error) {
	if len(vectors) != len(payloads) {
		return nil, fmt.Errorf("lsh: %d vectors but %d payloads", len(vectors), len(payloads))
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	for _, v := range vectors {
		if err := index.CheckDimension(v, idx.opts.Dimension); err != nil {
			return nil, err
		}
	}

	keys := make([][]hashkey.Key, len(vectors))

	g, gctx := errgroup.WithContext(ctx)
	workers := min(runtime.GOMAXPROCS(0), len(vectors))
	chunk := (len(vectors) + workers - 1) / workers

	for start := 0; start < len(vectors); start += chunk {
		end := min(start+chunk, len(vectors))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				k, err := idx.Keys(vectors[i])
				if err != nil {
					return err
				}
				keys[i] = k
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := idx.rc.AcquireMemory(idx.pointCost * int64(len(vectors))); err != nil {
		return nil, err
	}

	ids := make([]uint64, len(vectors))
	for i, v := range vectors {
		ids[i] = idx.insertKeys(v, keys[i], payloads[i])
	}
	return ids, nil
}

// Lookup returns the bucket stored under key in table t, or nil if the key
// is absent. The returned points are shared with the index and must not be
// modified.
func (idx *Index[T]) Lookup(t int, key hashkey.Key) ([]index.Point[T], error) {
	if t < 0 || t >= len(idx.tables) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", index.ErrTableOutOfRange, t, len(idx.tables))
	}
	return idx.tables[t].Get(key), nil
}

// Query returns the distinct points sharing at least one bucket with q,
// ranked by ascending distance (ties by ascending ID). If maxResults > 0 at
// most maxResults results are returned; 0 means no limit.
//
// A nil slice with a nil error means no table produced a collision.
func (idx *Index[T]) Query(q []float64, maxResults int) ([]index.Result[T], error) {
	if maxResults < 0 {
		return nil, index.ErrInvalidMaxResults
	}

	s, err := idx.collect(q)
	if err != nil {
		return nil, err
	}
	defer idx.release(s)

	return s.Rank(q, idx.distanceFunc, maxResults), nil
}

// Candidates returns the number of distinct points sharing at least one
// bucket with q.
func (idx *Index[T]) Candidates(q []float64) (int, error) {
	s, err := idx.collect(q)
	if err != nil {
		return 0, err
	}
	defer idx.release(s)

	return s.Len(), nil
}

func (idx *Index[T]) collect(q []float64) (*searcher.Searcher[T], error) {
	keys, err := idx.queryKeys(q)
	if err != nil {
		return nil, err
	}

	s := idx.searcherPool.Get().(*searcher.Searcher[T])
	for i, t := range idx.tables {
		s.Collect(t.Get(keys[i]))
	}
	return s, nil
}

func (idx *Index[T]) release(s *searcher.Searcher[T]) {
	s.Reset()
	idx.searcherPool.Put(s)
}
