// Package hyperplane generates the random hyperplanes used by cosine LSH.
//
// A Set is an immutable rows × dim matrix. Each row is the normal vector of
// one hyperplane through the origin; the side of that hyperplane a vector
// falls on yields one signature bit.
package hyperplane

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/hupe1980/golsh/index"
)

// Distribution selects how hyperplane coefficients are drawn.
type Distribution int

const (
	// DistributionUniform draws every coefficient from rand.Float64, i.e. [0, 1).
	DistributionUniform Distribution = iota

	// DistributionGaussian draws every coefficient from rand.NormFloat64.
	// The resulting normals are uniformly oriented on the unit sphere, so
	// bit agreement tracks the angle between vectors for mixed-sign data.
	DistributionGaussian
)

// String returns a string representation of the Distribution.
func (d Distribution) String() string {
	switch d {
	case DistributionUniform:
		return "Uniform"
	case DistributionGaussian:
		return "Gaussian"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// ParseDistribution parses a distribution name, case-insensitively.
func ParseDistribution(s string) (Distribution, error) {
	switch strings.ToLower(s) {
	case "uniform", "":
		return DistributionUniform, nil
	case "gaussian", "normal":
		return DistributionGaussian, nil
	default:
		return 0, fmt.Errorf("unknown hyperplane distribution %q", s)
	}
}

// Set is an immutable matrix of hyperplane normals stored row-major.
type Set struct {
	rows int
	dim  int
	data []float64
}

// New draws a rows × dim hyperplane set from rng.
//
// Coefficients are drawn row by row, so two sets generated from equally
// seeded sources share their common prefix of rows.
func New(rows, dim int, rng *rand.Rand, dist Distribution) (*Set, error) {
	if rows < 1 {
		return nil, &index.ErrInvalidParameter{Name: "hyperplane rows", Value: rows, Limit: ">= 1"}
	}
	if dim < 1 {
		return nil, &index.ErrInvalidParameter{Name: "dimension", Value: dim, Limit: ">= 1"}
	}
	if rng == nil {
		return nil, fmt.Errorf("hyperplane: nil random source")
	}

	var draw func() float64
	switch dist {
	case DistributionUniform:
		draw = rng.Float64
	case DistributionGaussian:
		draw = rng.NormFloat64
	default:
		return nil, fmt.Errorf("hyperplane: unsupported distribution %v", dist)
	}

	data := make([]float64, rows*dim)
	for i := range data {
		data[i] = draw()
	}

	return &Set{rows: rows, dim: dim, data: data}, nil
}

// FromRows builds a set from explicit coefficients.
// All rows must be non-empty and of equal length. The input is copied.
func FromRows(rows [][]float64) (*Set, error) {
	if len(rows) == 0 {
		return nil, &index.ErrInvalidParameter{Name: "hyperplane rows", Value: 0, Limit: ">= 1"}
	}

	dim := len(rows[0])
	if dim == 0 {
		return nil, &index.ErrInvalidParameter{Name: "dimension", Value: 0, Limit: ">= 1"}
	}

	data := make([]float64, 0, len(rows)*dim)
	for _, r := range rows {
		if len(r) != dim {
			return nil, &index.ErrDimensionMismatch{Expected: dim, Actual: len(r)}
		}
		data = append(data, r...)
	}

	return &Set{rows: len(rows), dim: dim, data: data}, nil
}

// Rows returns the number of hyperplanes.
func (s *Set) Rows() int { return s.rows }

// Dimension returns the length of each hyperplane normal.
func (s *Set) Dimension() int { return s.dim }

// Row returns a read-only view of hyperplane i. Callers must not modify it.
func (s *Set) Row(i int) []float64 {
	off := i * s.dim
	return s.data[off : off+s.dim : off+s.dim]
}

// Prefix returns a set holding the first n hyperplanes of s.
func (s *Set) Prefix(n int) (*Set, error) {
	if n < 1 || n > s.rows {
		return nil, &index.ErrInvalidParameter{Name: "hyperplane rows", Value: n, Limit: fmt.Sprintf("in [1, %d]", s.rows)}
	}
	return &Set{rows: n, dim: s.dim, data: s.data[: n*s.dim : n*s.dim]}, nil
}

// Clone returns the coefficients as a freshly allocated slice of rows.
func (s *Set) Clone() [][]float64 {
	out := make([][]float64, s.rows)
	for i := range out {
		out[i] = slices.Clone(s.Row(i))
	}
	return out
}
