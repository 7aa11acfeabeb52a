// Package searcher aggregates and ranks LSH query candidates.
//
// A Searcher owns the scratch state of one query:
//   - a roaring64 bitmap of point IDs already collected (dedup across tables)
//   - the candidate points in first-seen order
//   - a bounded max-heap used to keep the best k results
//
// Searchers are pooled by the index and reused across queries.
package searcher
