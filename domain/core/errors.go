package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInvalidInput reports fill preconditions that failed before any
	// histogram state was mutated: no coordinate arrays, or coordinate,
	// weight, seed or selected arrays of unequal length.
	ErrInvalidInput = errors.New("invalid fill input")

	// ErrShapeMismatch reports an algebraic combination of histograms with
	// incompatible binning or replica counts.
	ErrShapeMismatch = errors.New("histogram shape mismatch")
)

// Error constructors with context
func NewInvalidInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

func NewLengthMismatchError(name string, got, want int) error {
	return fmt.Errorf("%w: %s array has length %d, want %d", ErrInvalidInput, name, got, want)
}

func NewShapeMismatchError(reason string) error {
	return fmt.Errorf("%w: %s", ErrShapeMismatch, reason)
}

// Error checking helpers
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsShapeMismatchError(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}
