package searcher

import (
	"cmp"
	"math"
	"slices"
)

// Item is a scored candidate. Index points into Searcher.Candidates.
type Item struct {
	Index    int
	ID       uint64
	Distance float64
}

// compareItems orders by ascending distance, then ascending ID. A NaN
// distance ranks after every number.
func compareItems(a, b Item) int {
	if c := compareDistance(a.Distance, b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func compareDistance(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	return cmp.Compare(a, b)
}

// ResultHeap is a value-based max-heap of Items: the root is the worst
// result kept so far.
type ResultHeap struct {
	items []Item
}

// Len returns the number of items in the heap.
func (h *ResultHeap) Len() int { return len(h.items) }

// Reset empties the heap, keeping its capacity.
func (h *ResultHeap) Reset() { h.items = h.items[:0] }

// Top returns the worst item kept so far.
func (h *ResultHeap) Top() (Item, bool) {
	if len(h.items) == 0 {
		return Item{}, false
	}
	return h.items[0], true
}

// Offer keeps it if the heap holds fewer than k items or it beats the
// current worst item.
func (h *ResultHeap) Offer(it Item, k int) {
	if len(h.items) < k {
		h.items = append(h.items, it)
		h.siftUp(len(h.items) - 1)
		return
	}
	if compareItems(it, h.items[0]) >= 0 {
		return
	}
	h.items[0] = it
	h.siftDown(0)
}

// Drain empties the heap and returns its items sorted best first.
func (h *ResultHeap) Drain() []Item {
	out := slices.Clone(h.items)
	slices.SortFunc(out, compareItems)
	h.Reset()
	return out
}

func (h *ResultHeap) less(i, j int) bool {
	return compareItems(h.items[i], h.items[j]) > 0
}

func (h *ResultHeap) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *ResultHeap) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
