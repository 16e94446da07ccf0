// Package stats implements the per-term request-timing tracker of spec.md
// §4.2: aggregate counters updated by one writer (a Tracker Loop worker) and
// read concurrently by HTTP handlers.
//
// Uses atomic counters for the aggregate fields and a bounded ring for
// recent latencies, grounded on
// original_source/crates/webreg/src/types.rs's StatTracker (a VecDeque
// capped at 2000 entries).
package stats

import (
	"sync"
	"sync/atomic"
)

// maxRecentLatencies bounds the recent-latencies ring so memory stays flat
// across a long-running tracker. Matches the original StatTracker's cap.
const maxRecentLatencies = 2000

// Tracker accumulates request counts, cumulative time spent, and a bounded
// window of recent per-request latencies for one term.
type Tracker struct {
	numRequests  uint64
	totalTimeMs  uint64
	mu           sync.Mutex
	recentLat    []int64
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{recentLat: make([]int64, 0, maxRecentLatencies)}
}

// Record registers one completed request of the given latency in
// milliseconds: the aggregate counters are bumped atomically, and
// recentLat has latencyMs appended after evicting from the front until its
// length is under the cap.
func (t *Tracker) Record(latencyMs int64) {
	atomic.AddUint64(&t.numRequests, 1)
	atomic.AddUint64(&t.totalTimeMs, uint64(latencyMs))

	t.mu.Lock()
	for len(t.recentLat) >= maxRecentLatencies {
		t.recentLat = t.recentLat[1:]
	}
	t.recentLat = append(t.recentLat, latencyMs)
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the counters and the recent
// latencies. Callers must not retain the backing storage assumption beyond
// treating the returned slice as their own copy — it already is one.
func (t *Tracker) Snapshot() (numRequests, totalTimeMs uint64, latencies []int64) {
	t.mu.Lock()
	latCopy := make([]int64, len(t.recentLat))
	copy(latCopy, t.recentLat)
	t.mu.Unlock()

	return atomic.LoadUint64(&t.numRequests), atomic.LoadUint64(&t.totalTimeMs), latCopy
}
