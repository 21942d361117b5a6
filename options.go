package lfu

type (
	// Option configures a [Cache], [Map], or [Sharded]
	// at construction time.
	Option[Key comparable, Value any] func(*config[Key, Value])

	config[Key comparable, Value any] struct {
		onEvict func(Key, Value)
		hasher  func(Key) uint64
		shards  int
	}
)

// DefaultShards is the shard count used by [NewSharded]
// unless [WithShards] is provided.
const DefaultShards = 16

func newConfig[Key comparable, Value any](options []Option[Key, Value]) *config[Key, Value] {
	cfg := &config[Key, Value]{
		shards: DefaultShards,
	}
	for _, apply := range options {
		apply(cfg)
	}
	return cfg
}

// WithEvictionHandler sets a function to be called
// with every entry evicted to make room for a new key.
// It is not called for explicit removals or clears.
//
// When used with [Map] or [Sharded], the handler runs
// while the write lock is held; it must not call back
// into the same instance.
func WithEvictionHandler[Key comparable, Value any](fn func(Key, Value)) Option[Key, Value] {
	return func(c *config[Key, Value]) {
		c.onEvict = fn
	}
}

// WithHasher sets the function used by [Sharded]
// to select a key's shard.
// The default uses xxhash for string keys
// and [maphash.Comparable] for everything else.
//
// [maphash.Comparable]: https://pkg.go.dev/hash/maphash#Comparable
func WithHasher[Key comparable, Value any](fn func(Key) uint64) Option[Key, Value] {
	return func(c *config[Key, Value]) {
		c.hasher = fn
	}
}

// WithShards sets the number of shards used by [Sharded].
// The count is rounded up to the next power of 2.
// Values <= 0 select [DefaultShards].
func WithShards[Key comparable, Value any](n int) Option[Key, Value] {
	return func(c *config[Key, Value]) {
		if n <= 0 {
			n = DefaultShards
		}
		c.shards = nextPow2(n)
	}
}

func nextPow2(x int) int {
	n := 1
	for n < x {
		n <<= 1
	}
	return n
}
