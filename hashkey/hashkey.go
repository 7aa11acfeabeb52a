// Package hashkey folds LSH signatures into per-table bucket keys.
package hashkey

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/golsh/index"
	"github.com/hupe1980/golsh/signature"
)

// ErrSignatureLength is returned when a signature does not hold exactly L*M bits.
var ErrSignatureLength = errors.New("signature length does not match tables × bits per table")

// Key is a bucket key built from the M bits of one table's signature chunk.
type Key uint64

// String returns the key as a binary literal without leading zeros.
func (k Key) String() string {
	return fmt.Sprintf("%#b", uint64(k))
}

// Compose splits sig into l contiguous chunks of m bits and reads each chunk
// as a base-2 numeral, most significant bit first: bit j of chunk i
// contributes 1 << (m-1-j). Key i belongs to table i.
func Compose(sig signature.Signature, l, m int) ([]Key, error) {
	keys := make([]Key, l)
	if err := ComposeInto(keys, sig, l, m); err != nil {
		return nil, err
	}
	return keys, nil
}

// ComposeInto is like Compose but writes into dst, which must have length l.
func ComposeInto(dst []Key, sig signature.Signature, l, m int) error {
	if l < 1 {
		return &index.ErrInvalidParameter{Name: "number of tables", Value: l, Limit: ">= 1"}
	}
	if m < 1 || m > index.MaxBitsPerTable {
		return &index.ErrInvalidParameter{Name: "bits per table", Value: m, Limit: fmt.Sprintf("in [1, %d]", index.MaxBitsPerTable)}
	}
	if sig.Len() != l*m {
		return fmt.Errorf("%w: got %d bits, want %d", ErrSignatureLength, sig.Len(), l*m)
	}
	if len(dst) != l {
		return fmt.Errorf("hashkey: destination holds %d keys, want %d", len(dst), l)
	}

	for i := range l {
		var k Key
		base := i * m
		for j := range m {
			k <<= 1
			if sig.Test(base + j) {
				k |= 1
			}
		}
		dst[i] = k
	}
	return nil
}

// CollisionProbability returns the probability that two vectors at angle
// theta (radians) land in the same bucket of one table with m bits,
// (1 - θ/π)^m, assuming uniformly oriented hyperplanes.
func CollisionProbability(theta float64, m int) float64 {
	p := 1 - theta/math.Pi
	return math.Pow(max(0, min(1, p)), float64(m))
}

// RecallProbability returns the probability that two vectors at angle theta
// collide in at least one of l tables of m bits, 1 - (1 - p)^l.
func RecallProbability(theta float64, l, m int) float64 {
	p := CollisionProbability(theta, m)
	return 1 - math.Pow(1-p, float64(l))
}
