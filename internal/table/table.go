// Package table implements a single LSH hash table: bucket keys mapped to
// the points that hashed to them.
package table

import (
	"iter"
	"maps"
	"slices"

	"github.com/hupe1980/golsh/hashkey"
	"github.com/hupe1980/golsh/index"
)

// Table maps bucket keys to buckets. Buckets only grow; there is no eviction.
type Table[T any] struct {
	buckets map[hashkey.Key][]index.Point[T]
	points  int
}

// New returns an empty table.
func New[T any]() *Table[T] {
	return &Table[T]{buckets: make(map[hashkey.Key][]index.Point[T])}
}

// Append adds p to the bucket for key. The table takes ownership of p.Vector.
func (t *Table[T]) Append(key hashkey.Key, p index.Point[T]) {
	t.buckets[key] = append(t.buckets[key], p)
	t.points++
}

// Get returns the bucket for key in insertion order, or nil if the key is absent.
// The returned slice is shared with the table and must not be modified.
func (t *Table[T]) Get(key hashkey.Key) []index.Point[T] {
	b := t.buckets[key]
	return b[:len(b):len(b)]
}

// Len returns the number of points stored in the table.
func (t *Table[T]) Len() int { return t.points }

// NumBuckets returns the number of non-empty buckets.
func (t *Table[T]) NumBuckets() int { return len(t.buckets) }

// MaxBucket returns the size of the largest bucket.
func (t *Table[T]) MaxBucket() int {
	largest := 0
	for _, b := range t.buckets {
		largest = max(largest, len(b))
	}
	return largest
}

// Keys returns an iterator over the bucket keys in ascending order.
func (t *Table[T]) Keys() iter.Seq[hashkey.Key] {
	return slices.Values(slices.Sorted(maps.Keys(t.buckets)))
}
