// Package distance provides public API for vector distance calculations.
// Dot products are delegated to gonum's floats package, which uses
// assembly kernels where the platform has them.
package distance

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Only the first min(len(a), len(b)) components are compared.
func SquaredL2(a, b []float64) float64 {
	n := min(len(a), len(b))
	a, b = a[:n], b[:n]

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2 calculates the Euclidean distance between two vectors of equal length.
func L2(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Angle returns the angle in radians between a and b.
// Returns NaN if either vector has zero norm.
func Angle(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return math.NaN()
	}
	c := floats.Dot(a, b) / (na * nb)
	return math.Acos(max(-1, min(1, c)))
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float64) bool {
	if len(v) == 0 {
		return false
	}
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return false
	}
	floats.Scale(1/norm, v)
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float64) ([]float64, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}

// Metric represents the distance metric used for ranking candidates.
type Metric int

const (
	MetricSquaredL2 Metric = iota
	MetricL2
	MetricAngle
)

func (m Metric) String() string {
	switch m {
	case MetricSquaredL2:
		return "SquaredL2"
	case MetricL2:
		return "L2"
	case MetricAngle:
		return "Angle"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricSquaredL2:
		return SquaredL2, nil
	case MetricL2:
		return L2, nil
	case MetricAngle:
		return Angle, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
