package lfu

import "fmt"

type constError string

const (
	// ErrInvalidCapacity may be returned from [New], [NewMap], and [NewSharded].
	ErrInvalidCapacity = constError("invalid capacity")
	// ErrInvariantViolation is wrapped by panics raised
	// when the cache's internal bookkeeping is found inconsistent.
	// It indicates a bug, not a recoverable condition.
	ErrInvariantViolation = constError("invariant violation")
)

func (errStr constError) Error() string { return string(errStr) }

func minCapacityError(capacity, minimum int) error {
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidCapacity, minimum, capacity)
}

func emptyLowestError(lowest, length int) error {
	return fmt.Errorf(
		"%w: eviction from empty frequency bucket %d with %d resident entries",
		ErrInvariantViolation, lowest, length)
}
