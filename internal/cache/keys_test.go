package cache

import (
	"testing"

	"github.com/hupe1980/golsh/hashkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCache(t *testing.T) {
	c, err := NewKeyCache(2)
	require.NoError(t, err)

	_, ok := c.Get([]float64{1, 2})
	assert.False(t, ok)

	v := []float64{1, 2}
	keys := []hashkey.Key{3, 1}
	c.Add(v, keys)

	// Inputs are copied.
	v[0] = 9
	keys[0] = 9

	got, ok := c.Get([]float64{1, 2})
	require.True(t, ok)
	assert.Equal(t, []hashkey.Key{3, 1}, got)

	st := c.Stats()
	assert.Equal(t, int64(1), st.Hits)
	assert.Equal(t, int64(1), st.Misses)
	assert.Equal(t, 1, st.Len)
}

func TestKeyCacheEviction(t *testing.T) {
	c, err := NewKeyCache(2)
	require.NoError(t, err)

	c.Add([]float64{1}, []hashkey.Key{1})
	c.Add([]float64{2}, []hashkey.Key{2})
	_, _ = c.Get([]float64{1}) // 1 is now most recent
	c.Add([]float64{3}, []hashkey.Key{3})

	_, ok := c.Get([]float64{2})
	assert.False(t, ok)
	_, ok = c.Get([]float64{1})
	assert.True(t, ok)
	assert.Equal(t, 2, c.Stats().Len)
}

func TestNewKeyCacheInvalidSize(t *testing.T) {
	_, err := NewKeyCache(0)
	assert.Error(t, err)
}

func TestSum(t *testing.T) {
	assert.Equal(t, Sum([]float64{1, 2, 3}), Sum([]float64{1, 2, 3}))
	assert.NotEqual(t, Sum([]float64{1, 2, 3}), Sum([]float64{3, 2, 1}))
	assert.NotEqual(t, Sum([]float64{0}), Sum([]float64{}))
}
