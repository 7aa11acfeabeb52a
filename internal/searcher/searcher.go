package searcher

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/golsh/distance"
	"github.com/hupe1980/golsh/index"
)

// Searcher is a reusable execution context for one query.
//
// Searcher is NOT thread-safe. It is intended to be owned by a single goroutine
// during a query.
type Searcher[T any] struct {
	// Visited holds the IDs of every candidate collected so far.
	Visited *roaring64.Bitmap

	// Candidates holds the distinct candidate points in first-seen order.
	Candidates []index.Point[T]

	// Heap keeps the best results when the result count is bounded.
	Heap *ResultHeap
}

// New creates a new Searcher.
func New[T any]() *Searcher[T] {
	return &Searcher[T]{
		Visited: roaring64.New(),
		Heap:    &ResultHeap{},
	}
}

// Reset clears the searcher for reuse.
func (s *Searcher[T]) Reset() {
	s.Visited.Clear()
	clear(s.Candidates)
	s.Candidates = s.Candidates[:0]
	s.Heap.Reset()
}

// Collect adds every point of bucket whose ID has not been collected yet.
// Later encounters of an ID are ignored.
func (s *Searcher[T]) Collect(bucket []index.Point[T]) {
	for _, p := range bucket {
		if s.Visited.CheckedAdd(p.ID) {
			s.Candidates = append(s.Candidates, p)
		}
	}
}

// Len returns the number of distinct candidates collected.
func (s *Searcher[T]) Len() int {
	return len(s.Candidates)
}

// Rank scores every candidate against q with dist and returns them sorted
// ascending by distance, ties broken by ascending ID. If maxResults > 0 at
// most maxResults results are returned. Returns nil when no candidate was
// collected.
//
// Result vectors are copies; they stay valid after the searcher is reset.
func (s *Searcher[T]) Rank(q []float64, dist distance.Func, maxResults int) []index.Result[T] {
	n := len(s.Candidates)
	if n == 0 {
		return nil
	}

	k := n
	if maxResults > 0 && maxResults < n {
		k = maxResults
	}

	var order []Item
	if k < n {
		// Bounded: keep the k best in a max-heap.
		for i, p := range s.Candidates {
			s.Heap.Offer(Item{Index: i, ID: p.ID, Distance: dist(q, p.Vector)}, k)
		}
		order = s.Heap.Drain()
	} else {
		order = make([]Item, n)
		for i, p := range s.Candidates {
			order[i] = Item{Index: i, ID: p.ID, Distance: dist(q, p.Vector)}
		}
		slices.SortFunc(order, compareItems)
	}

	results := make([]index.Result[T], len(order))
	for i, it := range order {
		p := s.Candidates[it.Index]
		results[i] = index.Result[T]{
			ID:       p.ID,
			Distance: it.Distance,
			Vector:   slices.Clone(p.Vector),
			Payload:  p.Payload,
		}
	}
	return results
}
