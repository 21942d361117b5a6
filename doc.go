// Package lfu implements a [Cache] using a least frequently used (LFU)
// replacement policy with constant time operations, sometimes
// called a "forgetting map".
//
// Only lookups made with Find (and Load) count as accesses.
// When a new key is added to a full cache, the entry found the fewest
// times is evicted. Ties are broken by age: the entry that has been
// at its frequency the longest without being found goes first.
//
// The following is a summary (intended for maintainers)
// of the structure, which follows the bucket-per-frequency
// layout described in the [O(1) LFU paper].
//
// Glossary and invariants:
//
//   - Bucket
//
//     An insertion-ordered list of entries sharing one frequency.
//     There is one bucket per frequency level, indexed 0 through capacity-1.
//
//   - Frequency
//
//     The number of counted lookups of an entry, starting at 0 on insert.
//     Every resident entry is a member of exactly the bucket at its frequency.
//
//   - Lowest
//
//     The index of the first non-empty bucket, or 0 when the cache is empty.
//
//   - Saturation
//
//     Frequency never exceeds capacity-1, which is the most that can
//     distinguish capacity entries from each other.
//     Finding a saturated entry moves it to the newest end of the top bucket
//     instead, so saturated entries are evicted least recently found first.
//
// Operations:
//
//   - Promotion
//
//     A found entry moves from the newest end of bucket f to bucket f+1.
//     If bucket f was the lowest and is now empty, lowest becomes f+1.
//
//   - Eviction
//
//     The oldest member of the lowest bucket is discarded.
//     The new entry then enters bucket 0, which becomes the lowest.
//
//   - Removal
//
//     If the entry's bucket was the lowest and becomes empty,
//     lowest is found by scanning forward; frequencies never
//     decrease, so no lower bucket can have become occupied.
//
// [Cache] is not safe for concurrent use. [Map] guards a Cache with a
// read/write lock, and [Sharded] partitions keys over several Maps.
//
// [O(1) LFU paper]: http://dhruvbird.com/lfu.pdf
package lfu
