// Package index provides the shared contracts of the LSH index.
//
// The engine itself lives in the lsh subpackage. This package holds what the
// building blocks (hyperplane, signature, hashkey) and the engine agree on:
//
//   - Point: a stored vector with its ID and payload
//   - Result: a ranked query hit (distance under the index metric)
//   - Typed errors: ErrDimensionMismatch, ErrInvalidParameter
//   - Sentinels: ErrInvalidMaxResults, ErrTableOutOfRange, ErrMemoryLimitExceeded
//
// # Parameters
//
// An index is described by three integers:
//
//   - dimension: length of every vector (>= 1)
//   - L (number of tables): independent hash tables (>= 1)
//   - M (bits per table): signature bits folded into one bucket key (1..64)
//
// The index draws L*M random hyperplanes in total.
//
// # Subpackages
//
//   - lsh: multi-table cosine LSH index
package index
