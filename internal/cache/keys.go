package cache

import (
	"encoding/binary"
	"math"
	"slices"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/golsh/hashkey"
	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	vector []float64
	keys   []hashkey.Key
}

// KeyCache is a thread-safe LRU from vectors to their bucket keys.
type KeyCache struct {
	lru *lru.Cache[uint64, entry]

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   int64
	Misses int64
	Len    int
}

// NewKeyCache creates a cache holding up to size vectors.
func NewKeyCache(size int) (*KeyCache, error) {
	c, err := lru.New[uint64, entry](size)
	if err != nil {
		return nil, err
	}
	return &KeyCache{lru: c}, nil
}

// Get returns the cached keys for v. The returned slice must not be modified.
func (c *KeyCache) Get(v []float64) ([]hashkey.Key, bool) {
	if e, ok := c.lru.Get(Sum(v)); ok && slices.Equal(e.vector, v) {
		c.hits.Add(1)
		return e.keys, true
	}
	c.misses.Add(1)
	return nil, false
}

// Add caches keys for v. Both slices are copied.
func (c *KeyCache) Add(v []float64, keys []hashkey.Key) {
	c.lru.Add(Sum(v), entry{vector: slices.Clone(v), keys: slices.Clone(keys)})
}

// Stats returns the current counters.
func (c *KeyCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Len:    c.lru.Len(),
	}
}

// Sum returns the xxhash of the IEEE 754 bits of v.
func Sum(v []float64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, f := range v {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
