package golsh

import (
	"errors"
	"fmt"

	"github.com/hupe1980/golsh/hashkey"
	"github.com/hupe1980/golsh/index"
)

var (
	// ErrInvalidMaxResults is returned when a query asks for a negative number of results.
	ErrInvalidMaxResults = errors.New("max results must not be negative")

	// ErrMemoryLimitExceeded is returned when an insert would exceed the configured memory limit.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

	// ErrTableOutOfRange is returned by Lookup for a table index outside [0, L).
	ErrTableOutOfRange = errors.New("table index out of range")

	// ErrNoResults is returned by SearchBuilder.First when no point collides with the query.
	ErrNoResults = errors.New("no results")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidParameter indicates a construction parameter outside its valid range.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidParameter struct {
	Name  string
	Value int
	cause error
}

func (e *ErrInvalidParameter) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("invalid %s: %d", e.Name, e.Value)
}

func (e *ErrInvalidParameter) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var ip *index.ErrInvalidParameter
	if errors.As(err, &ip) {
		return &ErrInvalidParameter{Name: ip.Name, Value: ip.Value, cause: err}
	}

	if errors.Is(err, index.ErrInvalidMaxResults) {
		return fmt.Errorf("%w: %w", ErrInvalidMaxResults, err)
	}
	if errors.Is(err, index.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}
	if errors.Is(err, index.ErrTableOutOfRange) {
		return fmt.Errorf("%w: %w", ErrTableOutOfRange, err)
	}
	if errors.Is(err, hashkey.ErrSignatureLength) {
		return fmt.Errorf("golsh: internal hashing error: %w", err)
	}

	return err
}
