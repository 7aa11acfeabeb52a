// Package cache provides an LRU cache of query bucket keys.
//
// Hyperplanes never change after construction, so the bucket keys of a
// vector are a pure function of the vector. KeyCache memoizes them for
// repeated queries, skipping the L*M projections. Entries are addressed by
// the xxhash of the vector's bits and verified against the stored vector,
// so a hash collision is a miss rather than a wrong answer.
package cache
