package lfu_test

import (
	"fmt"
	"testing"

	"github.com/djdv/go-lfu"
	"golang.org/x/sync/errgroup"
)

func TestMap(t *testing.T) {
	t.Run("concurrent access", concurrentAccess)
	t.Run("keys snapshot", keysSnapshot)
	t.Run("stats", mapStats)
	t.Run("load keeps resident value", loadRace)
}

func concurrentAccess(t *testing.T) {
	t.Parallel()
	const (
		capacity = 64
		workers  = 8
		rounds   = 2048
		universe = capacity * 4
	)
	var (
		cache = newMapT[int, int](t, capacity)
		group errgroup.Group
	)
	for worker := range workers {
		group.Go(func() error {
			for round := range rounds {
				key := (worker*rounds + round*7) % universe
				switch round % 5 {
				case 0:
					cache.Set(key, key)
				case 1:
					cache.Find(key)
				case 2:
					if value, ok := cache.Get(key); ok && value != key {
						return fmt.Errorf("key %d held value %d", key, value)
					}
				case 3:
					cache.Remove(key)
				case 4:
					if rank := cache.Frequency(key); rank > capacity {
						return fmt.Errorf("rank %d exceeds capacity", rank)
					}
				}
				if length := cache.Len(); length > capacity {
					return fmt.Errorf("length %d exceeds capacity %d",
						length, capacity)
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatal(err)
	}
	var keys int
	for key := range cache.Keys() {
		if !cache.Contains(key) {
			t.Fatalf("snapshot key %d is not resident", key)
		}
		keys++
	}
	checkSize[int, int](t, cache, keys, "after concurrent access")
}

func keysSnapshot(t *testing.T) {
	t.Parallel()
	const capacity = 4
	cache := newMapT[int, int](t, capacity)
	addIncrementingInts(cache, capacity)
	// Mutating while ranging must not deadlock
	// since the snapshot is taken up front.
	for key := range cache.Keys() {
		cache.Remove(key)
	}
	checkSize[int, int](t, cache, 0, "after removing snapshot keys")
}

func mapStats(t *testing.T) {
	t.Parallel()
	const capacity = 2
	cache := newMapT[int, int](t, capacity)
	addIncrementingInts(cache, capacity+1)
	cache.Find(3)
	cache.Get(3)
	cache.Find(1) // Evicted.
	cache.Get(1)
	var (
		got  = cache.Stats()
		want = lfu.Stats{
			Hits:      2,
			Misses:    2,
			Evictions: 1,
			HitRatio:  0.5,
		}
	)
	if got != want {
		t.Fatalf(
			"unexpected stats"+
				"\n\tgot: %+v"+
				"\n\twant: %+v",
			got, want)
	}
	cache.ResetStats()
	if got := cache.Stats(); got != (lfu.Stats{}) {
		t.Fatalf("expected zero stats after reset, got: %+v", got)
	}
}

func loadRace(t *testing.T) {
	t.Parallel()
	const (
		capacity = 2
		key      = "key"
	)
	cache := newMapT[string, string](t, capacity)
	got, err := cache.Load(key, func() (string, error) {
		// Another writer wins while the fetch is in flight.
		cache.Set(key, "resident")
		return "fetched", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "resident" {
		t.Fatalf("expected resident value to win, got %q", got)
	}
	checkGet[string, string](t, cache, key, "resident", "after racing load")
	// The initial miss and the hit on the resident value.
	want := lfu.Stats{Hits: 1, Misses: 1, HitRatio: 0.5}
	if got := cache.Stats(); got != want {
		t.Fatalf(
			"unexpected stats after racing load"+
				"\n\tgot: %+v"+
				"\n\twant: %+v",
			got, want)
	}
}

func newMapT[
	Key comparable, Value any,
](tb testing.TB, capacity int) *lfu.Map[Key, Value] {
	tb.Helper()
	cache, err := lfu.NewMap[Key, Value](capacity)
	if err != nil {
		tb.Fatal(err)
	}
	return cache
}
