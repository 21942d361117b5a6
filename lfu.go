package lfu

import (
	"iter"

	"github.com/djdv/go-lfu/internal/bucket"
)

type (
	entry[Key comparable, Value any] = bucket.Entry[Key, Value]
	metadata[Key comparable]         = bucket.Metadata[Key]
	// Cache evicts the least frequently found entry when full.
	// Ties are broken by age within a frequency bucket.
	// Concurrent access must be guarded by the caller (see [Map]).
	// Constructed by [New].
	Cache[Key comparable, Value any] struct {
		index   map[Key]*entry[Key, Value]
		buckets []bucket.Bucket[Key, Value]
		onEvict func(Key, Value)
		lowest  int
	}
)

// MinimumCapacity defines the lowest value supported by [New].
const MinimumCapacity = 1

// New creates a [Cache] with the given capacity.
// Capacity is fixed for the lifetime of the cache
// and also bounds the frequency an entry may reach.
func New[Key comparable, Value any](capacity int, options ...Option[Key, Value]) (*Cache[Key, Value], error) {
	if capacity < MinimumCapacity {
		return nil, minCapacityError(capacity, MinimumCapacity)
	}
	cfg := newConfig(options)
	return newCache(capacity, cfg), nil
}

func newCache[Key comparable, Value any](capacity int, cfg *config[Key, Value]) *Cache[Key, Value] {
	return &Cache[Key, Value]{
		index:   make(map[Key]*entry[Key, Value], capacity),
		buckets: make([]bucket.Bucket[Key, Value], capacity),
		onEvict: cfg.onEvict,
	}
}

// Load returns the cached value for key (if resident),
// counting it as found. Otherwise, it calls fetch,
// inserts and returns the value on success.
// If fetch returns an error, the value is not cached.
func (c *Cache[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	if value, found := c.Find(key); found {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	c.Add(key, value)
	return value, nil
}

// Add inserts or updates key with value.
// Updating a resident key replaces its value
// but leaves its frequency untouched.
// If a new key is added to a full cache, the least frequently
// found entry is evicted first and its value returned.
func (c *Cache[Key, Value]) Add(key Key, value Value) (evicted Value, didEvict bool) {
	if node, ok := c.index[key]; ok {
		node.Value = value
		return evicted, false
	}
	if c.atCapacity() {
		evicted, didEvict = c.evict(), true
	}
	c.addNew(key, value)
	return evicted, didEvict
}

// Set is [Cache.Add] without results.
// Evictions are still reported to the
// [WithEvictionHandler] function, if any.
func (c *Cache[Key, Value]) Set(key Key, value Value) { c.Add(key, value) }

// AddAll adds each pair in the order the sequence yields them.
// When the batch overflows capacity, which entries are evicted
// depends on that order; ranging over a Go map is not ordered.
func (c *Cache[Key, Value]) AddAll(entries iter.Seq2[Key, Value]) {
	for key, value := range entries {
		c.Add(key, value)
	}
}

// Find returns the Value for key if it is resident
// and counts the access towards its frequency;
// otherwise it returns the zero value and false.
func (c *Cache[Key, Value]) Find(key Key) (Value, bool) {
	node, ok := c.index[key]
	if !ok {
		var zero Value
		return zero, false
	}
	c.promote(node)
	return node.Value, true
}

// Get returns the Value for key if it is resident
// without counting the access.
func (c *Cache[Key, Value]) Get(key Key) (Value, bool) {
	if node, ok := c.index[key]; ok {
		return node.Value, true
	}
	var zero Value
	return zero, false
}

// Contains reports whether key is resident,
// without counting the access.
func (c *Cache[Key, _]) Contains(key Key) bool {
	_, ok := c.index[key]
	return ok
}

// Remove deletes key, returning its value if it was resident.
func (c *Cache[Key, Value]) Remove(key Key) (Value, bool) {
	node, ok := c.index[key]
	if !ok {
		var zero Value
		return zero, false
	}
	delete(c.index, key)
	level := node.Frequency
	c.buckets[level].Remove(node)
	if level == c.lowest &&
		c.buckets[level].Len() == 0 {
		c.sweepLowest()
	}
	if debugging {
		c.checkLowest()
	}
	return node.Value, true
}

// Clear removes all entries.
func (c *Cache[_, _]) Clear() {
	for level := range c.buckets {
		c.buckets[level].Init()
	}
	clear(c.index)
	c.lowest = 0
}

// Frequency returns the rank of key: 0 if it is not resident,
// otherwise one more than the number of counted finds,
// saturating at [Cache.Capacity].
func (c *Cache[Key, _]) Frequency(key Key) int {
	if node, ok := c.index[key]; ok {
		return node.Frequency + 1
	}
	return 0
}

// Len returns the number of resident entries.
func (c *Cache[_, _]) Len() int { return len(c.index) }

// IsEmpty reports whether no entries are resident.
func (c *Cache[_, _]) IsEmpty() bool { return len(c.index) == 0 }

// Capacity returns the maximum number of resident entries.
func (c *Cache[_, _]) Capacity() int { return len(c.buckets) }

// Keys returns an iterator over the (unordered) keys of resident entries.
func (c *Cache[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for key := range c.index {
			if !yield(key) {
				return
			}
		}
	}
}

func (c *Cache[_, _]) atCapacity() bool {
	return len(c.index) == len(c.buckets)
}

func (c *Cache[_, _]) maxFrequency() int {
	return len(c.buckets) - 1
}

func (c *Cache[Key, Value]) addNew(key Key, value Value) {
	node := &entry[Key, Value]{
		Metadata: metadata[Key]{Key: key},
		Value:    value,
	}
	c.index[key] = node
	c.buckets[0].PushNewest(node)
	c.lowest = 0 // A new entry is always a minimum.
}

// promote moves the node to the next frequency bucket.
// Saturated nodes are instead moved to the newest
// end of their bucket, so the least recently found
// of them is evicted first.
func (c *Cache[Key, Value]) promote(node *entry[Key, Value]) {
	from := node.Frequency
	if debugging {
		assert(from >= c.lowest,
			"found node below the lowest frequency")
	}
	if from == c.maxFrequency() {
		c.buckets[from].MoveToNewest(node)
		return
	}
	to := from + 1
	c.buckets[from].Remove(node)
	node.Frequency = to
	c.buckets[to].PushNewest(node)
	if from == c.lowest &&
		c.buckets[from].Len() == 0 {
		c.lowest = to
	}
	if debugging {
		c.checkLowest()
	}
}

// evict removes the oldest node of the lowest frequency bucket.
// The caller is expected to reset the lowest frequency afterwards.
func (c *Cache[Key, Value]) evict() Value {
	node := c.buckets[c.lowest].PopOldest()
	if node == nil {
		panic(emptyLowestError(c.lowest, len(c.index)))
	}
	delete(c.index, node.Key)
	if c.onEvict != nil {
		c.onEvict(node.Key, node.Value)
	}
	return node.Value
}

// sweepLowest scans forward for the next non-empty bucket.
// Frequencies only increase, so nothing below the
// current lowest can have become occupied.
func (c *Cache[_, _]) sweepLowest() {
	for level := c.lowest; level < len(c.buckets); level++ {
		if c.buckets[level].Len() != 0 {
			c.lowest = level
			return
		}
	}
	c.lowest = 0
}

func (c *Cache[_, _]) checkLowest() {
	if len(c.index) == 0 {
		assert(c.lowest == 0,
			"empty cache with non-zero lowest frequency")
		return
	}
	assert(c.buckets[c.lowest].Len() != 0,
		"lowest frequency bucket is empty")
	for level := range c.lowest {
		assert(c.buckets[level].Len() == 0,
			"occupied bucket below the lowest frequency")
	}
}
