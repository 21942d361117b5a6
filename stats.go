package lfu

import "sync/atomic"

type (
	// Stats is a point-in-time snapshot of access counters.
	Stats struct {
		Hits      int64   // Finds and gets of resident keys.
		Misses    int64   // Finds and gets of absent keys.
		Evictions int64   // Entries evicted to make room.
		HitRatio  float64 // Hits / (Hits + Misses).
	}
	counters struct {
		hits, misses, evictions atomic.Int64
	}
)

func (m *counters) record(found bool) {
	if found {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
}

func (m *counters) snapshot() Stats {
	return newStats(
		m.hits.Load(),
		m.misses.Load(),
		m.evictions.Load(),
	)
}

func (m *counters) reset() {
	m.hits.Store(0)
	m.misses.Store(0)
	m.evictions.Store(0)
}

func newStats(hits, misses, evictions int64) Stats {
	var ratio float64
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return Stats{
		Hits:      hits,
		Misses:    misses,
		Evictions: evictions,
		HitRatio:  ratio,
	}
}
