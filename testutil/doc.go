// Package testutil provides testing utilities for golsh.
//
// This package is intended for use in tests, benchmarks and the lshbench
// tool. It provides helpers for generating seeded random vectors, computing
// exact nearest neighbors, and measuring recall.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	data := rng.GaussianVectors(1000, 64)
//	data := rng.ClusteredVectors(1000, 64, 10, 0.1)
//
// # Exact Search (Ground Truth)
//
//	truth := testutil.ExactTopK(query, data, k, distance.SquaredL2)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(truth, approx)
package testutil
