package lsh_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/golsh/index/lsh"
	"github.com/hupe1980/golsh/testutil"
)

func newBenchIndex(b *testing.B, dim, tables, bits int) *lsh.Index[int] {
	b.Helper()
	idx, err := lsh.New[int](func(o *lsh.Options) {
		seed := int64(1)
		o.Dimension = dim
		o.NumTables = tables
		o.BitsPerTable = bits
		o.RandomSeed = &seed
	})
	if err != nil {
		b.Fatal(err)
	}
	return idx
}

// Benchmark single-threaded insert
func BenchmarkInsert(b *testing.B) {
	for _, dim := range []int{32, 128, 768} {
		b.Run(fmt.Sprintf("dim=%d", dim), func(b *testing.B) {
			idx := newBenchIndex(b, dim, 8, 12)
			rng := testutil.NewRNG(0)
			vectors := rng.GaussianVectors(1024, dim)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; b.Loop(); i++ {
				if _, err := idx.Insert(vectors[i%len(vectors)], i); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Benchmark batch insert
func BenchmarkBatchInsert(b *testing.B) {
	dim := 128

	for _, batchSize := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("batch=%d", batchSize), func(b *testing.B) {
			ctx := context.Background()
			rng := testutil.NewRNG(0)

			vectors := rng.GaussianVectors(batchSize, dim)
			payloads := make([]int, batchSize)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				b.StopTimer()
				idx := newBenchIndex(b, dim, 8, 12)
				b.StartTimer()

				if _, err := idx.BatchInsert(ctx, vectors, payloads); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Benchmark queries against a populated index for several table counts
func BenchmarkQuery(b *testing.B) {
	dim := 64
	rng := testutil.NewRNG(0)
	data := rng.ClusteredVectors(10000, dim, 50, 0.1)
	queries := rng.ClusteredVectors(256, dim, 50, 0.1)

	for _, tables := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("L=%d", tables), func(b *testing.B) {
			idx := newBenchIndex(b, dim, tables, 10)
			if _, err := idx.BatchInsert(context.Background(), data, make([]int, len(data))); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; b.Loop(); i++ {
				if _, err := idx.Query(queries[i%len(queries)], 10); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
