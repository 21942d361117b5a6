package lfu

import (
	"errors"
	"testing"
)

func TestEvictEmptyLowest(t *testing.T) {
	t.Parallel()
	const capacity = 2
	cache, err := New[int, int](capacity)
	if err != nil {
		t.Fatal(err)
	}
	cache.Set(1, 1)
	cache.Set(2, 2)
	// Both entries are at frequency 0; bucket 1 is empty.
	cache.lowest = 1
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("expected eviction from an empty bucket to panic")
		}
		err, ok := recovered.(error)
		if !ok {
			t.Fatalf("expected panic value to be an error, got %T: %v",
				recovered, recovered)
		}
		if !errors.Is(err, ErrInvariantViolation) {
			t.Fatalf("expected error to wrap %q, got: %v",
				ErrInvariantViolation, err)
		}
	}()
	cache.Add(3, 3)
}
