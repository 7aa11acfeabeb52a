package golsh_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/golsh"
	"github.com/hupe1980/golsh/hyperplane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineBuilder(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		idx, err := golsh.Cosine[string](16).Tables(6).Bits(10).Seed(42).Build()
		require.NoError(t, err)
		assert.Equal(t, 16, idx.Dimension())
		assert.Equal(t, 6, idx.NumTables())
		assert.Equal(t, 10, idx.BitsPerTable())
	})

	t.Run("Immutable", func(t *testing.T) {
		base := golsh.Cosine[string](8).Seed(1)
		wide := base.Tables(12)

		a := base.MustBuild()
		b := wide.MustBuild()
		assert.Equal(t, 4, a.NumTables())
		assert.Equal(t, 12, b.NumTables())
	})

	t.Run("SeedIsReproducible", func(t *testing.T) {
		a := golsh.Cosine[int](8).Gaussian().Seed(7).MustBuild()
		b := golsh.Cosine[int](8).Gaussian().Seed(7).MustBuild()
		assert.Equal(t, a.Hyperplanes().Clone(), b.Hyperplanes().Clone())

		v := []float64{0.3, -1, 2, 0, 0.5, -0.25, 1, 1}
		ka, err := a.Keys(v)
		require.NoError(t, err)
		kb, err := b.Keys(v)
		require.NoError(t, err)
		assert.Equal(t, ka, kb)
	})

	t.Run("FullOptions", func(t *testing.T) {
		planes, err := hyperplane.FromRows([][]float64{{1, 1, 0}, {0, 0, 1}})
		require.NoError(t, err)

		mc := &golsh.BasicMetricsCollector{}
		idx, err := golsh.Cosine[string](3).
			Tables(1).
			Bits(2).
			Hyperplanes(planes).
			L2().
			KeyCache(8).
			MemoryLimit(1 << 20).
			Logger(golsh.NoopLogger()).
			Metrics(mc).
			Build()
		require.NoError(t, err)

		ctx := context.Background()
		_, err = idx.Insert(ctx, []float64{1, 2, 3}, "a")
		require.NoError(t, err)

		res, err := idx.Query(ctx, []float64{1, 2, 5}, 1)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.InDelta(t, 2.0, res[0].Distance, 1e-12)
		assert.Equal(t, int64(1), mc.GetStats().QueryCount)
		assert.NotNil(t, idx.Stats().KeyCache)
	})

	t.Run("Angle", func(t *testing.T) {
		planes, err := hyperplane.FromRows([][]float64{{1, 1}})
		require.NoError(t, err)
		idx := golsh.Cosine[string](2).Tables(1).Bits(1).Hyperplanes(planes).Angle().MustBuild()

		ctx := context.Background()
		_, err = idx.Insert(ctx, []float64{1, 0}, "x")
		require.NoError(t, err)

		res, err := idx.Query(ctx, []float64{0, 5}, 0)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.InDelta(t, 1.5707963267948966, res[0].Distance, 1e-9)
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() { golsh.Cosine[string](0).MustBuild() })
	})

	t.Run("InvalidBits", func(t *testing.T) {
		_, err := golsh.Cosine[string](4).Bits(100).Build()
		var ip *golsh.ErrInvalidParameter
		assert.True(t, errors.As(err, &ip))
	})
}
