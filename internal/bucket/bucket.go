// Package bucket is a specialized adaption of `container/list` for use in LFU.
// Each [Bucket] holds the entries sharing a single access frequency,
// ordered from oldest to newest.
package bucket

import "iter"

type (
	// An Entry is an element of a [Bucket].
	// Entries are intrusive; an Entry may be a member of
	// at most one Bucket at a time.
	Entry[Key comparable, Value any] struct {
		next, prev *Entry[Key, Value]
		Value      Value
		Metadata[Key]
	}
	// Metadata stores the LFU state of a cache entry.
	Metadata[Key comparable] struct {
		// Key is the identifier of the value this metadata is bound to.
		Key Key
		// Frequency is the index of the bucket
		// the entry currently belongs to.
		Frequency int
	}
	// Bucket is an insertion-ordered set of entries.
	// The zero value is an empty bucket ready to use.
	//
	// The bucket is circular around a sentinel root:
	// root.next is the oldest member and root.prev the newest.
	Bucket[Key comparable, Value any] struct {
		root   Entry[Key, Value]
		length int
	}
)

// Init empties the bucket.
// Former members are abandoned, not unlinked.
func (b *Bucket[Key, Value]) Init() *Bucket[Key, Value] {
	b.root.next = &b.root
	b.root.prev = &b.root
	b.length = 0
	return b
}

func (b *Bucket[Key, Value]) lazyInit() {
	if b.root.next == nil {
		b.Init()
	}
}

// Len returns the number of members.
func (b *Bucket[Key, Value]) Len() int { return b.length }

// Oldest returns the member that has been in
// the bucket the longest, or nil if the bucket is empty.
func (b *Bucket[Key, Value]) Oldest() *Entry[Key, Value] {
	if b.length == 0 {
		return nil
	}
	return b.root.next
}

// Newest returns the member most recently pushed or moved
// into the bucket, or nil if the bucket is empty.
func (b *Bucket[Key, Value]) Newest() *Entry[Key, Value] {
	if b.length == 0 {
		return nil
	}
	return b.root.prev
}

// PushNewest links e as the newest member.
// e must not be a member of any bucket.
func (b *Bucket[Key, Value]) PushNewest(e *Entry[Key, Value]) {
	b.lazyInit()
	b.link(b.root.prev, e)
}

// Remove unlinks e. e must be a member of b.
func (b *Bucket[Key, Value]) Remove(e *Entry[Key, Value]) {
	b.unlink(e)
}

// MoveToNewest re-positions e as the newest member.
// e must be a member of b.
func (b *Bucket[Key, Value]) MoveToNewest(e *Entry[Key, Value]) {
	if b.root.prev == e {
		return
	}
	b.unlink(e)
	b.link(b.root.prev, e)
}

// PopOldest unlinks and returns the oldest member,
// or nil if the bucket is empty.
func (b *Bucket[Key, Value]) PopOldest() *Entry[Key, Value] {
	e := b.Oldest()
	if e == nil {
		return nil
	}
	b.unlink(e)
	return e
}

// link inserts e after at.
func (b *Bucket[Key, Value]) link(at, e *Entry[Key, Value]) {
	next := at.next
	// Note: Cannot use multiple assignment because
	// evaluation order of LHS is not specified.
	at.next = e
	e.prev = at
	e.next = next
	next.prev = e
	b.length++
}

func (b *Bucket[Key, Value]) unlink(e *Entry[Key, Value]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil // Avoid retaining neighbours.
	e.prev = nil
	b.length--
}

// All returns an iterator over the members, oldest first.
// The behavior of All is undefined if the bucket
// is modified during iteration.
func (b *Bucket[Key, Value]) All() iter.Seq[*Entry[Key, Value]] {
	return func(yield func(*Entry[Key, Value]) bool) {
		if b.length == 0 {
			return
		}
		for e := b.root.next; e != &b.root; e = e.next {
			if !yield(e) {
				return
			}
		}
	}
}
