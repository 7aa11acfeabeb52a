// Package golsh provides an in-memory approximate nearest-neighbor index
// based on random-hyperplane locality-sensitive hashing.
//
// Every vector is projected onto L*M random hyperplanes. The resulting sign
// bits are split into L chunks of M bits and each chunk selects a bucket in
// one of L hash tables. A query gathers every point that shares at least one
// bucket with it and ranks those candidates by exact distance.
//
// # Quick Start
//
//	idx, _ := golsh.New[string](128,
//	    golsh.WithTables(8),
//	    golsh.WithBitsPerTable(12),
//	    golsh.WithSeed(42),
//	)
//
//	id, _ := idx.Insert(ctx, vector, "doc-1")
//
//	results, _ := idx.Search(query).Limit(10).Execute(ctx)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Distance, r.Payload)
//	}
//
// Or with the fluent builder:
//
//	idx, _ := golsh.Cosine[string](128).Tables(8).Bits(12).Seed(42).Build()
//
// # Choosing L and M
//
// Two vectors at angle θ share a bucket in one table with probability
// p = (1-θ/π)^M and share at least one bucket across all tables with
// probability 1-(1-p)^L. More bits per table shrink buckets and speed up
// queries; more tables raise recall at the cost of memory, since each table
// stores its own copy of every vector.
//
// # Thread Safety
//
// Index is safe for concurrent use. Inserts take an exclusive lock; queries
// and lookups share a read lock.
//
// # Error Handling
//
// Errors can be matched with errors.Is and errors.As:
//
//	var dm *golsh.ErrDimensionMismatch
//	if errors.As(err, &dm) {
//	    log.Printf("expected %d dimensions, got %d", dm.Expected, dm.Actual)
//	}
//	if errors.Is(err, golsh.ErrMemoryLimitExceeded) {
//	    // shed load
//	}
package golsh
