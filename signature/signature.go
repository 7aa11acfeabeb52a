// Package signature computes random-hyperplane LSH signatures.
//
// Bit i of a signature is set when the vector lies on the non-negative side
// of hyperplane i. Two vectors at angle θ agree on a bit with probability
// 1 - θ/π, so the fraction of agreeing bits estimates their cosine similarity.
package signature

import (
	"math"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/golsh/distance"
	"github.com/hupe1980/golsh/hyperplane"
	"github.com/hupe1980/golsh/index"
)

// Signature is a fixed-length bit vector, one bit per hyperplane.
// The zero value is an empty signature.
type Signature struct {
	bits *bitset.BitSet
	n    int
}

// New returns a signature of n cleared bits.
func New(n int) Signature {
	return Signature{bits: bitset.New(uint(n)), n: n}
}

// Compute projects v onto every hyperplane of set and returns the sign bits
// in row order.
func Compute(set *hyperplane.Set, v []float64) (Signature, error) {
	if err := index.CheckDimension(v, set.Dimension()); err != nil {
		return Signature{}, err
	}

	sig := New(set.Rows())
	for i := range set.Rows() {
		if distance.Dot(set.Row(i), v) >= 0 {
			sig.bits.Set(uint(i))
		}
	}
	return sig, nil
}

// Len returns the number of bits.
func (s Signature) Len() int { return s.n }

// Test reports whether bit i is set. Out-of-range bits read as unset.
func (s Signature) Test(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.bits.Test(uint(i))
}

// Set sets bit i to value. Out-of-range indices are ignored.
func (s Signature) Set(i int, value bool) {
	if i < 0 || i >= s.n {
		return
	}
	s.bits.SetTo(uint(i), value)
}

// Count returns the number of set bits.
func (s Signature) Count() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// Equal reports whether both signatures have the same length and bits.
func (s Signature) Equal(other Signature) bool {
	if s.n != other.n {
		return false
	}
	if s.n == 0 {
		return true
	}
	return s.bits.Equal(other.bits)
}

// String renders the signature as a string of '0' and '1', bit 0 first.
func (s Signature) String() string {
	var sb strings.Builder
	sb.Grow(s.n)
	for i := range s.n {
		if s.bits.Test(uint(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Hamming counts the bits in which a and b differ.
// Returns -1 if the signatures have different lengths.
func Hamming(a, b Signature) int {
	if a.n != b.n {
		return -1
	}
	if a.n == 0 {
		return 0
	}
	return int(a.bits.SymmetricDifferenceCardinality(b.bits))
}

// EstimateAngle estimates the angle in radians between the vectors that
// produced a and b, using θ ≈ π·h/n. Returns NaN for mismatched or empty
// signatures.
func EstimateAngle(a, b Signature) float64 {
	h := Hamming(a, b)
	if h < 0 || a.n == 0 {
		return math.NaN()
	}
	return math.Pi * float64(h) / float64(a.n)
}

// EstimateCosine estimates the cosine similarity between the vectors that
// produced a and b. Returns NaN for mismatched or empty signatures.
func EstimateCosine(a, b Signature) float64 {
	return math.Cos(EstimateAngle(a, b))
}
