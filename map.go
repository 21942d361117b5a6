package lfu

import (
	"iter"
	"slices"
	"sync"
)

// Map is a [Cache] that is safe for concurrent use.
// Operations that only read take a shared lock.
// Operations that mutate, including [Map.Find]
// (which re-buckets the entry it finds), take an exclusive lock.
// Constructed by [NewMap].
type Map[Key comparable, Value any] struct {
	cache    *Cache[Key, Value]
	counters counters
	mu       sync.RWMutex
}

// NewMap creates a [Map] with the given capacity.
func NewMap[Key comparable, Value any](capacity int, options ...Option[Key, Value]) (*Map[Key, Value], error) {
	if capacity < MinimumCapacity {
		return nil, minCapacityError(capacity, MinimumCapacity)
	}
	return newMap(capacity, newConfig(options)), nil
}

func newMap[Key comparable, Value any](capacity int, cfg *config[Key, Value]) *Map[Key, Value] {
	var (
		m       = new(Map[Key, Value])
		handler = cfg.onEvict
	)
	m.cache = newCache(capacity, &config[Key, Value]{
		onEvict: func(key Key, value Value) {
			m.counters.evictions.Add(1)
			if handler != nil {
				handler(key, value)
			}
		},
	})
	return m
}

// Load behaves like [Cache.Load], but fetch is called without
// holding the lock. If another caller inserted key in the meantime,
// the resident value is kept and returned instead of the fetched one.
func (m *Map[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	if value, found := m.Find(key); found {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if resident, found := m.cache.Find(key); found {
		m.counters.record(found)
		return resident, nil
	}
	m.cache.Add(key, value)
	return value, nil
}

// Add behaves like [Cache.Add].
func (m *Map[Key, Value]) Add(key Key, value Value) (evicted Value, didEvict bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Add(key, value)
}

// Set behaves like [Cache.Set].
func (m *Map[Key, Value]) Set(key Key, value Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Set(key, value)
}

// AddAll behaves like [Cache.AddAll].
// The whole batch is applied under one exclusive lock,
// so entries must not be produced by reading from m.
func (m *Map[Key, Value]) AddAll(entries iter.Seq2[Key, Value]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.AddAll(entries)
}

// Find behaves like [Cache.Find].
func (m *Map[Key, Value]) Find(key Key) (Value, bool) {
	m.mu.Lock()
	value, found := m.cache.Find(key)
	m.mu.Unlock()
	m.counters.record(found)
	return value, found
}

// Get behaves like [Cache.Get].
func (m *Map[Key, Value]) Get(key Key) (Value, bool) {
	m.mu.RLock()
	value, found := m.cache.Get(key)
	m.mu.RUnlock()
	m.counters.record(found)
	return value, found
}

// Contains behaves like [Cache.Contains].
func (m *Map[Key, _]) Contains(key Key) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.Contains(key)
}

// Remove behaves like [Cache.Remove].
func (m *Map[Key, Value]) Remove(key Key) (Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Remove(key)
}

// Clear behaves like [Cache.Clear].
func (m *Map[_, _]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Clear()
}

// Frequency behaves like [Cache.Frequency].
func (m *Map[Key, _]) Frequency(key Key) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.Frequency(key)
}

// Len behaves like [Cache.Len].
func (m *Map[_, _]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.Len()
}

// IsEmpty behaves like [Cache.IsEmpty].
func (m *Map[_, _]) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.IsEmpty()
}

// Capacity behaves like [Cache.Capacity].
func (m *Map[_, _]) Capacity() int {
	return m.cache.Capacity() // Immutable.
}

// Keys returns an iterator over a snapshot of the
// (unordered) resident keys, taken when Keys is called.
func (m *Map[Key, _]) Keys() iter.Seq[Key] {
	m.mu.RLock()
	keys := slices.Collect(m.cache.Keys())
	m.mu.RUnlock()
	return slices.Values(keys)
}

// Stats returns a snapshot of the access counters.
func (m *Map[_, _]) Stats() Stats { return m.counters.snapshot() }

// ResetStats zeroes the access counters.
func (m *Map[_, _]) ResetStats() { m.counters.reset() }
