package signature

import (
	"math"
	"math/rand"
	"testing"

	"github.com/hupe1980/golsh/hyperplane"
	"github.com/hupe1980/golsh/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSet(t *testing.T, rows [][]float64) *hyperplane.Set {
	t.Helper()
	s, err := hyperplane.FromRows(rows)
	require.NoError(t, err)
	return s
}

func TestCompute(t *testing.T) {
	t.Run("SignBits", func(t *testing.T) {
		set := fixedSet(t, [][]float64{
			{1, 0, 0},
			{-1, 0, 0},
			{0, 1, 0},
			{0, 0, -1},
		})

		sig, err := Compute(set, []float64{2, -3, 0})
		require.NoError(t, err)
		require.Equal(t, 4, sig.Len())

		assert.True(t, sig.Test(0))  // 2 >= 0
		assert.False(t, sig.Test(1)) // -2 < 0
		assert.False(t, sig.Test(2)) // -3 < 0
		assert.True(t, sig.Test(3))  // -0 >= 0
		assert.Equal(t, "1001", sig.String())
		assert.Equal(t, 2, sig.Count())
	})

	t.Run("ZeroDotProductSetsBit", func(t *testing.T) {
		set := fixedSet(t, [][]float64{{1, 1}})
		sig, err := Compute(set, []float64{1, -1})
		require.NoError(t, err)
		assert.True(t, sig.Test(0))
	})

	t.Run("Deterministic", func(t *testing.T) {
		set, err := hyperplane.New(64, 16, rand.New(rand.NewSource(3)), hyperplane.DistributionGaussian)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(4))
		for range 20 {
			v := make([]float64, 16)
			for i := range v {
				v[i] = rng.NormFloat64()
			}
			a, err := Compute(set, v)
			require.NoError(t, err)
			b, err := Compute(set, v)
			require.NoError(t, err)
			assert.True(t, a.Equal(b))
		}
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		set := fixedSet(t, [][]float64{{1, 0, 0}})
		_, err := Compute(set, []float64{1, 0})
		assert.IsType(t, &index.ErrDimensionMismatch{}, err)
	})
}

func TestSignatureBits(t *testing.T) {
	s := New(5)
	s.Set(1, true)
	s.Set(4, true)
	s.Set(9, true) // ignored
	assert.Equal(t, "01001", s.String())

	s.Set(4, false)
	assert.Equal(t, "01000", s.String())
	assert.False(t, s.Test(-1))
	assert.False(t, s.Test(5))

	var zero Signature
	assert.Equal(t, 0, zero.Len())
	assert.Equal(t, 0, zero.Count())
	assert.True(t, zero.Equal(Signature{}))
}

func TestHamming(t *testing.T) {
	a, b := New(8), New(8)
	a.Set(0, true)
	a.Set(3, true)
	b.Set(3, true)
	b.Set(7, true)

	assert.Equal(t, 2, Hamming(a, b))
	assert.Equal(t, 0, Hamming(a, a))
	assert.Equal(t, -1, Hamming(a, New(4)))
	assert.False(t, a.Equal(b))
}

func TestEstimateCosine(t *testing.T) {
	a, b := New(4), New(4)
	assert.InDelta(t, 1.0, EstimateCosine(a, b), 1e-9)

	for i := range 4 {
		b.Set(i, true)
	}
	assert.InDelta(t, -1.0, EstimateCosine(a, b), 1e-9)

	b.Set(0, false)
	b.Set(1, false)
	assert.InDelta(t, math.Pi/2, EstimateAngle(a, b), 1e-9)
	assert.InDelta(t, 0.0, EstimateCosine(a, b), 1e-9)

	assert.True(t, math.IsNaN(EstimateCosine(a, New(3))))
}

func TestEstimateTracksTrueAngle(t *testing.T) {
	set, err := hyperplane.New(4096, 8, rand.New(rand.NewSource(11)), hyperplane.DistributionGaussian)
	require.NoError(t, err)

	x := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	y := []float64{1, 1, 0, 0, 0, 0, 0, 0} // 45 degrees

	sx, err := Compute(set, x)
	require.NoError(t, err)
	sy, err := Compute(set, y)
	require.NoError(t, err)

	assert.InDelta(t, math.Pi/4, EstimateAngle(sx, sy), 0.1)
}
