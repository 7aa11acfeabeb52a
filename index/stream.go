package index

import (
	"context"
	"iter"
)

// SliceToStream converts ranked results to an iterator. Iteration stops with
// the context error once ctx is done.
func SliceToStream[T any](ctx context.Context, results []Result[T]) iter.Seq2[Result[T], error] {
	return func(yield func(Result[T], error) bool) {
		for _, res := range results {
			if err := ctx.Err(); err != nil {
				yield(Result[T]{}, err)
				return
			}
			if !yield(res, nil) {
				return
			}
		}
	}
}

// ErrorStream returns an iterator yielding err once.
func ErrorStream[T any](err error) iter.Seq2[Result[T], error] {
	return func(yield func(Result[T], error) bool) {
		yield(Result[T]{}, err)
	}
}
