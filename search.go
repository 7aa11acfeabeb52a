package golsh

import (
	"context"
	"iter"

	"github.com/hupe1980/golsh/index"
)

// Search creates a new fluent search builder for the given query vector.
// By default every colliding point is returned.
//
// Example:
//
//	results, err := idx.Search(query).
//	    Limit(10).
//	    Execute(ctx)
//
//	// Or with streaming:
//	for result, err := range idx.Search(query).Stream(ctx) {
//	    if err != nil { break }
//	    if result.Distance > threshold { break }
//	    process(result)
//	}
func (x *Index[T]) Search(query []float64) *SearchBuilder[T] {
	return &SearchBuilder[T]{
		x:     x,
		query: query,
	}
}

// SearchBuilder is a fluent builder for constructing queries.
type SearchBuilder[T any] struct {
	x     *Index[T]
	query []float64
	limit int

	filterFunc  func(id uint64, payload T) bool
	maxDistance *float64
}

// Limit caps the number of results. 0 means no limit.
func (sb *SearchBuilder[T]) Limit(n int) *SearchBuilder[T] {
	sb.limit = n
	return sb
}

// Filter keeps only candidates for which fn returns true.
// Filtering happens before the limit is applied.
func (sb *SearchBuilder[T]) Filter(fn func(id uint64, payload T) bool) *SearchBuilder[T] {
	sb.filterFunc = fn
	return sb
}

// MaxDistance drops results farther than d from the query.
func (sb *SearchBuilder[T]) MaxDistance(d float64) *SearchBuilder[T] {
	sb.maxDistance = &d
	return sb
}

// Execute runs the search and returns the results, nearest first.
// A nil slice with a nil error means nothing matched.
func (sb *SearchBuilder[T]) Execute(ctx context.Context) ([]Result[T], error) {
	if sb.filterFunc == nil && sb.maxDistance == nil {
		return sb.x.Query(ctx, sb.query, sb.limit)
	}

	if sb.limit < 0 {
		return sb.x.Query(ctx, sb.query, sb.limit)
	}

	all, err := sb.x.Query(ctx, sb.query, 0)
	if err != nil {
		return nil, err
	}

	var out []Result[T]
	for _, r := range all {
		// NaN fails the comparison and sorts last, so it ends the scan.
		if sb.maxDistance != nil && !(r.Distance <= *sb.maxDistance) {
			break
		}
		if sb.filterFunc != nil && !sb.filterFunc(r.ID, r.Payload) {
			continue
		}
		out = append(out, r)
		if sb.limit > 0 && len(out) == sb.limit {
			break
		}
	}
	return out, nil
}

// MustExecute runs the search, panicking on error.
// Use this only in tests or when you're certain the query is valid.
func (sb *SearchBuilder[T]) MustExecute(ctx context.Context) []Result[T] {
	results, err := sb.Execute(ctx)
	if err != nil {
		panic(err)
	}
	return results
}

// Stream returns an iterator over search results, nearest first.
// The query runs when Stream is called; the iterator supports early
// termination by breaking from the loop.
//
// Example:
//
//	for result, err := range idx.Search(query).Stream(ctx) {
//	    if err != nil { break }
//	    if result.Distance > 100.0 { break } // Early termination
//	    process(result)
//	}
func (sb *SearchBuilder[T]) Stream(ctx context.Context) iter.Seq2[Result[T], error] {
	results, err := sb.Execute(ctx)
	if err != nil {
		return index.ErrorStream[T](err)
	}
	return index.SliceToStream(ctx, results)
}

// First returns only the nearest result, or ErrNoResults if nothing matched.
// The builder's own limit is left untouched.
func (sb *SearchBuilder[T]) First(ctx context.Context) (Result[T], error) {
	results, err := sb.withLimit(1).Execute(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	if len(results) == 0 {
		return Result[T]{}, ErrNoResults
	}
	return results[0], nil
}

// Count executes the search and returns the number of results.
func (sb *SearchBuilder[T]) Count(ctx context.Context) (int, error) {
	results, err := sb.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Exists reports whether at least one point matches the search.
func (sb *SearchBuilder[T]) Exists(ctx context.Context) (bool, error) {
	results, err := sb.withLimit(1).Execute(ctx)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}

// withLimit returns a shallow copy of sb with the given limit.
func (sb *SearchBuilder[T]) withLimit(n int) *SearchBuilder[T] {
	c := *sb
	c.limit = n
	return &c
}
