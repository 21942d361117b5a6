package lfu

import (
	"hash/maphash"
	"iter"

	"github.com/cespare/xxhash/v2"
)

// Sharded spreads keys over independent [Map] shards
// to reduce lock contention. Each shard evicts its own
// least frequently found entry, so eviction is exact
// within a shard but only approximate across the whole cache.
// Constructed by [NewSharded].
type Sharded[Key comparable, Value any] struct {
	hasher    func(Key) uint64
	shards    []*Map[Key, Value]
	shardMask uint64
	capacity  int
}

// NewSharded creates a [Sharded] cache holding at most
// capacity entries in total. Capacity is divided between
// the shards and must be at least the shard count (see [WithShards]).
func NewSharded[Key comparable, Value any](capacity int, options ...Option[Key, Value]) (*Sharded[Key, Value], error) {
	var (
		cfg   = newConfig(options)
		count = cfg.shards
	)
	if capacity < count {
		return nil, minCapacityError(capacity, count)
	}
	hasher := cfg.hasher
	if hasher == nil {
		hasher = defaultHasher[Key]()
	}
	var (
		shards    = make([]*Map[Key, Value], count)
		base      = capacity / count
		remainder = capacity % count
	)
	for i := range shards {
		shardCapacity := base
		if i < remainder {
			shardCapacity++
		}
		shards[i] = newMap(shardCapacity, cfg)
	}
	return &Sharded[Key, Value]{
		hasher:    hasher,
		shards:    shards,
		shardMask: uint64(count - 1),
		capacity:  capacity,
	}, nil
}

func defaultHasher[Key comparable]() func(Key) uint64 {
	var zero Key
	if _, ok := any(zero).(string); ok {
		return func(key Key) uint64 {
			return xxhash.Sum64String(any(key).(string))
		}
	}
	seed := maphash.MakeSeed()
	return func(key Key) uint64 {
		return maphash.Comparable(seed, key)
	}
}

func (s *Sharded[Key, Value]) shard(key Key) *Map[Key, Value] {
	return s.shards[s.hasher(key)&s.shardMask]
}

// Load behaves like [Map.Load] on the key's shard.
func (s *Sharded[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	return s.shard(key).Load(key, fetch)
}

// Add behaves like [Map.Add] on the key's shard.
// The evicted value (if any) came from the same shard.
func (s *Sharded[Key, Value]) Add(key Key, value Value) (evicted Value, didEvict bool) {
	return s.shard(key).Add(key, value)
}

// Set behaves like [Map.Set] on the key's shard.
func (s *Sharded[Key, Value]) Set(key Key, value Value) {
	s.shard(key).Set(key, value)
}

// AddAll adds each pair in the order the sequence yields them.
// Unlike [Map.AddAll], each pair is locked individually.
func (s *Sharded[Key, Value]) AddAll(entries iter.Seq2[Key, Value]) {
	for key, value := range entries {
		s.shard(key).Add(key, value)
	}
}

// Find behaves like [Map.Find] on the key's shard.
func (s *Sharded[Key, Value]) Find(key Key) (Value, bool) {
	return s.shard(key).Find(key)
}

// Get behaves like [Map.Get] on the key's shard.
func (s *Sharded[Key, Value]) Get(key Key) (Value, bool) {
	return s.shard(key).Get(key)
}

// Contains behaves like [Map.Contains] on the key's shard.
func (s *Sharded[Key, _]) Contains(key Key) bool {
	return s.shard(key).Contains(key)
}

// Remove behaves like [Map.Remove] on the key's shard.
func (s *Sharded[Key, Value]) Remove(key Key) (Value, bool) {
	return s.shard(key).Remove(key)
}

// Frequency behaves like [Map.Frequency] on the key's shard.
// Ranks saturate at the shard's capacity, not the total.
func (s *Sharded[Key, _]) Frequency(key Key) int {
	return s.shard(key).Frequency(key)
}

// Clear clears each shard in turn.
// It is not atomic across shards.
func (s *Sharded[_, _]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

// Len returns the sum of the shard lengths.
func (s *Sharded[_, _]) Len() int {
	var length int
	for _, shard := range s.shards {
		length += shard.Len()
	}
	return length
}

// IsEmpty reports whether every shard is empty.
func (s *Sharded[_, _]) IsEmpty() bool {
	for _, shard := range s.shards {
		if !shard.IsEmpty() {
			return false
		}
	}
	return true
}

// Capacity returns the total capacity across all shards.
func (s *Sharded[_, _]) Capacity() int { return s.capacity }

// Shards returns the number of shards.
func (s *Sharded[_, _]) Shards() int { return len(s.shards) }

// Keys returns an iterator over the (unordered) resident keys.
// Each shard is snapshotted when iteration reaches it.
func (s *Sharded[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for _, shard := range s.shards {
			for key := range shard.Keys() {
				if !yield(key) {
					return
				}
			}
		}
	}
}

// Stats returns the sum of the shards' access counters.
func (s *Sharded[_, _]) Stats() Stats {
	var hits, misses, evictions int64
	for _, shard := range s.shards {
		stats := shard.Stats()
		hits += stats.Hits
		misses += stats.Misses
		evictions += stats.Evictions
	}
	return newStats(hits, misses, evictions)
}

// ResetStats zeroes every shard's access counters.
func (s *Sharded[_, _]) ResetStats() {
	for _, shard := range s.shards {
		shard.ResetStats()
	}
}
