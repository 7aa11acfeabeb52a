package testutil

import (
	"math"
	"testing"

	"github.com/hupe1980/golsh/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	for _, vec := range v {
		for _, x := range vec {
			assert.GreaterOrEqual(t, x, 0.0)
			assert.Less(t, x, 1.0)
		}
	}
}

func TestUniformRangeVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformRangeVectors(8, 32)

	assert.Equal(t, 8, len(v))
	for _, vec := range v {
		for _, x := range vec {
			assert.GreaterOrEqual(t, x, -1.0)
			assert.Less(t, x, 1.0)
		}
	}
}

func TestUnitVectors(t *testing.T) {
	rng := NewRNG(4711)

	for _, vec := range rng.UnitVectors(8, 32) {
		assert.InDelta(t, 1.0, math.Sqrt(distance.Dot(vec, vec)), 1e-9)
	}
}

func TestClusteredVectors(t *testing.T) {
	rng := NewRNG(1)
	v := rng.ClusteredVectors(20, 16, 4, 0.01)
	require.Len(t, v, 20)

	// Points of the same cluster are much closer than points of different clusters.
	same := distance.SquaredL2(v[0], v[4])
	other := distance.SquaredL2(v[0], v[1])
	assert.Less(t, same, other)
}

func TestReproducible(t *testing.T) {
	a := NewRNG(99).GaussianVectors(4, 4)
	b := NewRNG(99).GaussianVectors(4, 4)
	assert.Equal(t, a, b)

	rng := NewRNG(99)
	first := rng.Float64()
	rng.Reset()
	assert.Equal(t, first, rng.Float64())
	assert.Equal(t, int64(99), rng.Seed())
}

func TestPerturb(t *testing.T) {
	rng := NewRNG(3)
	v := []float64{1, 2, 3}
	p := rng.Perturb(v, 0.001)
	assert.Equal(t, []float64{1, 2, 3}, v)
	assert.InDelta(t, 0, distance.SquaredL2(v, p), 1e-3)
}

func TestExactTopK(t *testing.T) {
	data := [][]float64{{3}, {1}, {2}, {1}}

	got := ExactTopK([]float64{0}, data, 3, distance.SquaredL2)
	require.Len(t, got, 3)
	assert.Equal(t, []SearchResult{{ID: 2, Distance: 1}, {ID: 4, Distance: 1}, {ID: 3, Distance: 4}}, got)

	assert.Len(t, ExactTopK([]float64{0}, data, 0, distance.SquaredL2), 4)
}

func TestComputeRecall(t *testing.T) {
	truth := []SearchResult{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	assert.Equal(t, 1.0, ComputeRecall(truth, truth))
	assert.Equal(t, 0.5, ComputeRecall(truth, []SearchResult{{ID: 2}, {ID: 4}, {ID: 9}}))
	assert.Equal(t, 0.0, ComputeRecall(truth, nil))
	assert.Equal(t, 1.0, ComputeRecall(nil, nil))
}
