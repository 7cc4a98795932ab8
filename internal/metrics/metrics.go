// Package metrics implements the process-wide, opt-in counter set (spec
// §4.8, §6.4): files_processed, parse_time_total, nodes_allocated_total,
// and parse_errors, gated by a single enable flag so a caller that never
// opts in pays no atomic-increment cost beyond one bool check. Modeled
// on the teacher's lock-free counters in internal/cache/metrics_cache.go
// (plain int64 fields updated via sync/atomic, no mutex).
package metrics

import (
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

var (
	filesProcessed     int64
	parseTimeTotalNs   int64
	nodesAllocatedTotal int64
	parseErrors        int64
)

// Enable turns on process-wide metrics collection.
func Enable() { enabled.Store(true) }

// Disable turns off process-wide metrics collection. Counters are left
// as-is; call Reset separately to zero them.
func Disable() { enabled.Store(false) }

// Enabled reports whether metrics collection is currently on.
func Enabled() bool { return enabled.Load() }

// RecordFileProcessed increments files_processed and adds elapsed to
// parse_time_total. A no-op when metrics are disabled.
func RecordFileProcessed(elapsed time.Duration) {
	if !enabled.Load() {
		return
	}
	atomic.AddInt64(&filesProcessed, 1)
	atomic.AddInt64(&parseTimeTotalNs, int64(elapsed))
}

// RecordNodesAllocated adds n to nodes_allocated_total. A no-op when
// metrics are disabled.
func RecordNodesAllocated(n int) {
	if !enabled.Load() {
		return
	}
	atomic.AddInt64(&nodesAllocatedTotal, int64(n))
}

// RecordParseError increments parse_errors. A no-op when metrics are
// disabled.
func RecordParseError() {
	if !enabled.Load() {
		return
	}
	atomic.AddInt64(&parseErrors, 1)
}

// Snapshot is an immutable read of the counter set at a point in time.
type Snapshot struct {
	FilesProcessed      int64
	ParseTimeTotal      time.Duration
	NodesAllocatedTotal int64
	ParseErrors         int64
}

// Take returns the current counter values. Safe to call whether or
// not metrics are enabled; an always-disabled process simply reads all
// zeros.
func Take() Snapshot {
	return Snapshot{
		FilesProcessed:      atomic.LoadInt64(&filesProcessed),
		ParseTimeTotal:      time.Duration(atomic.LoadInt64(&parseTimeTotalNs)),
		NodesAllocatedTotal: atomic.LoadInt64(&nodesAllocatedTotal),
		ParseErrors:         atomic.LoadInt64(&parseErrors),
	}
}

// Reset zeroes all counters without changing the enable flag.
func Reset() {
	atomic.StoreInt64(&filesProcessed, 0)
	atomic.StoreInt64(&parseTimeTotalNs, 0)
	atomic.StoreInt64(&nodesAllocatedTotal, 0)
	atomic.StoreInt64(&parseErrors, 0)
}
