package index

import (
	"errors"
	"fmt"
)

// MaxBitsPerTable is the largest number of signature bits a single table key can hold.
const MaxBitsPerTable = 64

var (
	// ErrInvalidMaxResults is returned when a negative result limit is passed to a query.
	ErrInvalidMaxResults = errors.New("max results must not be negative")

	// ErrTableOutOfRange is returned when a table index is outside [0, L).
	ErrTableOutOfRange = errors.New("table index out of range")

	// ErrMemoryLimitExceeded is returned when an insert would exceed the configured memory limit.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
)

// ErrDimensionMismatch is a named error type for dimension mismatch
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidParameter reports a construction parameter outside its valid range.
type ErrInvalidParameter struct {
	Name  string
	Value int
	Limit string
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("invalid %s: %d (must be %s)", e.Name, e.Value, e.Limit)
}

// Point is a vector stored in a hash table bucket.
type Point[T any] struct {
	// ID is assigned by the index at insertion time and is shared by every
	// table the point is stored in.
	ID uint64

	// Vector is the stored vector. Each table owns its own copy.
	Vector []float64

	// Payload is the caller data attached at insertion time.
	Payload T
}

// Result represents a query result.
type Result[T any] struct {
	// ID is the identifier of the matched point.
	ID uint64

	// Distance is the distance between the query and Vector under the
	// index's metric: squared Euclidean by default, Euclidean or angle in
	// radians when configured. Angle is NaN when either vector has zero
	// norm; such results rank last.
	Distance float64

	// Vector is a copy of the matched point's vector.
	Vector []float64

	// Payload is the matched point's payload.
	Payload T
}

// ValidateParams checks the dimension, table count and bits-per-table
// parameters shared by every component of the index.
func ValidateParams(dimension, numTables, bitsPerTable int) error {
	if dimension < 1 {
		return &ErrInvalidParameter{Name: "dimension", Value: dimension, Limit: ">= 1"}
	}
	if numTables < 1 {
		return &ErrInvalidParameter{Name: "number of tables", Value: numTables, Limit: ">= 1"}
	}
	if bitsPerTable < 1 || bitsPerTable > MaxBitsPerTable {
		return &ErrInvalidParameter{Name: "bits per table", Value: bitsPerTable, Limit: fmt.Sprintf("in [1, %d]", MaxBitsPerTable)}
	}
	return nil
}

// CheckDimension returns an *ErrDimensionMismatch if len(v) != dimension.
func CheckDimension(v []float64, dimension int) error {
	if len(v) != dimension {
		return &ErrDimensionMismatch{Expected: dimension, Actual: len(v)}
	}
	return nil
}
