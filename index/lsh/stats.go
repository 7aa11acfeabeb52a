package lsh

import "github.com/hupe1980/golsh/internal/cache"

// TableStats describes the bucket distribution of one table.
type TableStats struct {
	Buckets    int
	MaxBucket  int
	MeanBucket float64
}

// Stats is a snapshot of index statistics.
type Stats struct {
	Dimension    int
	NumTables    int
	BitsPerTable int
	Points       int
	MemoryBytes  int64
	MemoryLimit  int64
	Tables       []TableStats

	// KeyCache is nil when the key cache is disabled.
	KeyCache *cache.Stats
}

// Stats returns statistics about the index.
func (idx *Index[T]) Stats() Stats {
	st := Stats{
		Dimension:    idx.opts.Dimension,
		NumTables:    idx.opts.NumTables,
		BitsPerTable: idx.opts.BitsPerTable,
		Points:       idx.Len(),
		MemoryBytes:  idx.rc.MemoryUsage(),
		MemoryLimit:  idx.rc.MemoryLimit(),
		Tables:       make([]TableStats, len(idx.tables)),
	}

	for i, t := range idx.tables {
		ts := TableStats{Buckets: t.NumBuckets(), MaxBucket: t.MaxBucket()}
		if ts.Buckets > 0 {
			ts.MeanBucket = float64(t.Len()) / float64(ts.Buckets)
		}
		st.Tables[i] = ts
	}

	if idx.keyCache != nil {
		cs := idx.keyCache.Stats()
		st.KeyCache = &cs
	}

	return st
}
