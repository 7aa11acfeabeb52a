package golsh_test

import (
	"context"
	"math"
	"testing"

	"github.com/hupe1980/golsh"
	"github.com/hupe1980/golsh/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// populated returns an index whose points all land in bucket 3 except the last.
func populated(t *testing.T) *golsh.Index[string] {
	t.Helper()
	idx := twoAxis(t)
	_, err := idx.BatchInsert(context.Background(),
		[][]float64{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}, {-1, -1, 1}},
		[]string{"a", "b", "c", "d", "e"},
	)
	require.NoError(t, err)
	return idx
}

func TestSearchBuilder(t *testing.T) {
	ctx := context.Background()
	idx := populated(t)
	q := []float64{1, 1, 1}

	t.Run("Unlimited", func(t *testing.T) {
		res, err := idx.Search(q).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, res, 4)
		assert.Equal(t, []string{"a", "b", "c", "d"}, payloads(res))
	})

	t.Run("Limit", func(t *testing.T) {
		res := idx.Search(q).Limit(2).MustExecute(ctx)
		assert.Equal(t, []string{"a", "b"}, payloads(res))
	})

	t.Run("Filter", func(t *testing.T) {
		res, err := idx.Search(q).
			Filter(func(id uint64, _ string) bool { return id%2 == 0 }).
			Limit(1).
			Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, payloads(res))
	})

	t.Run("MaxDistance", func(t *testing.T) {
		// distances are 0, 3, 12, 27
		res, err := idx.Search(q).MaxDistance(12).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, payloads(res))
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		_, err := idx.Search(q).Limit(-1).MaxDistance(1).Execute(ctx)
		assert.ErrorIs(t, err, golsh.ErrInvalidMaxResults)
		assert.Panics(t, func() { idx.Search(q).Limit(-1).MustExecute(ctx) })
	})

	t.Run("First", func(t *testing.T) {
		r, err := idx.Search([]float64{4, 4, 4}).First(ctx)
		require.NoError(t, err)
		assert.Equal(t, "d", r.Payload)

		_, err = idx.Search([]float64{-1, -1, -1}).First(ctx)
		assert.ErrorIs(t, err, golsh.ErrNoResults)
	})

	t.Run("CountAndExists", func(t *testing.T) {
		n, err := idx.Search(q).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		ok, err := idx.Search([]float64{-1, -1, -1}).Exists(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ReuseAfterFirstAndExists", func(t *testing.T) {
		sb := idx.Search(q).Limit(3)

		r, err := sb.First(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a", r.Payload)

		ok, err := sb.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, ok)

		res, err := sb.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, payloads(res))

		n, err := idx.Search(q).Count(ctx)
		require.NoError(t, err)
		unlimited := idx.Search(q)
		_, err = unlimited.First(ctx)
		require.NoError(t, err)
		m, err := unlimited.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, n, m)
	})
}

func TestSearchAngleZeroVector(t *testing.T) {
	ctx := context.Background()
	idx := twoAxis(t, golsh.WithMetric(distance.MetricAngle))

	// All land in bucket 3; the zero vector has no angle to anything.
	_, err := idx.BatchInsert(ctx,
		[][]float64{{0, 0, 0}, {2, 2, 1}, {1, 1, 1}},
		[]string{"zero", "near", "same"},
	)
	require.NoError(t, err)
	q := []float64{1, 1, 1}

	r, err := idx.Search(q).First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "same", r.Payload)

	res, err := idx.Search(q).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"same", "near", "zero"}, payloads(res))
	assert.True(t, math.IsNaN(res[2].Distance))

	res, err = idx.Search(q).MaxDistance(math.Pi).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"same", "near"}, payloads(res))

	res, err = idx.Search(q).
		MaxDistance(math.Pi).
		Filter(func(_ uint64, p string) bool { return p != "same" }).
		Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"near"}, payloads(res))
}

func TestSearchStream(t *testing.T) {
	ctx := context.Background()
	idx := populated(t)

	var got []string
	for r, err := range idx.Search([]float64{1, 1, 1}).Stream(ctx) {
		require.NoError(t, err)
		if r.Distance > 5 {
			break
		}
		got = append(got, r.Payload)
	}
	assert.Equal(t, []string{"a", "b"}, got)

	var errs int
	for _, err := range idx.Search([]float64{1}).Stream(ctx) {
		assert.Error(t, err)
		errs++
	}
	assert.Equal(t, 1, errs)
}

func payloads(res []golsh.Result[string]) []string {
	out := make([]string, 0, len(res))
	for _, r := range res {
		out = append(out, r.Payload)
	}
	return out
}
