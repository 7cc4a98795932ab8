// Package alloc provides a generic, pool-backed slab allocator for the
// short-lived slices the parser creates constantly: each production's
// post-order child-id stack (spec §9.1) lives for the duration of one
// rule and is otherwise a fresh heap allocation every time.
package alloc

import (
	"sync"
	"sync/atomic"
)

// SlabAllocator hands out slices from size-tiered sync.Pools to reduce
// GC pressure on short-lived, small-capacity slices.
type SlabAllocator[T any] struct {
	pools []*poolTier[T]
	stats atomic.Value // *AllocatorStats
}

type poolTier[T any] struct {
	capacity int
	pool     sync.Pool
}

// AllocatorStats tracks allocation behavior for diagnostics.
type AllocatorStats struct {
	Allocations   int64
	Reuses        int64
	PoolHits      int64
	PoolMisses    int64
	TotalCapacity int64
}

// SlabTierConfig defines one size tier.
type SlabTierConfig struct {
	Capacity int
}

// ChildStackTierConfigs is sized for the parser's child-id stacks:
// most productions (statements, expressions, parameters) hold a
// handful of children; only large argument lists or class bodies need
// the upper tiers.
var ChildStackTierConfigs = []SlabTierConfig{
	{Capacity: 4},
	{Capacity: 8},
	{Capacity: 16},
	{Capacity: 32},
	{Capacity: 64},
}

// NewSlabAllocator creates an allocator with the given tier configuration.
func NewSlabAllocator[T any](configs []SlabTierConfig) *SlabAllocator[T] {
	sa := &SlabAllocator[T]{
		pools: make([]*poolTier[T], len(configs)),
	}
	for i, config := range configs {
		capacity := config.Capacity
		sa.pools[i] = &poolTier[T]{
			capacity: capacity,
			pool: sync.Pool{
				New: func() any {
					return make([]T, 0, capacity)
				},
			},
		}
	}
	sa.stats.Store(&AllocatorStats{})
	return sa
}

// NewChildStackAllocator creates a slab allocator tuned for parser
// child-id stacks.
func NewChildStackAllocator[T any]() *SlabAllocator[T] {
	return NewSlabAllocator[T](ChildStackTierConfigs)
}

// Get returns a slice with length 0 and capacity >= requested.
func (sa *SlabAllocator[T]) Get(capacity int) []T {
	if capacity <= 0 {
		return make([]T, 0)
	}

	for _, tier := range sa.pools {
		if tier.capacity >= capacity {
			return sa.getFromPool(tier)
		}
	}

	sa.updateStats(func(stats *AllocatorStats) {
		stats.Allocations++
		stats.PoolMisses++
		stats.TotalCapacity += int64(capacity)
	})
	return make([]T, 0, capacity)
}

// Put returns slice to its tier for reuse. Slices larger than the
// largest tier, or whose capacity doesn't match a tier exactly (grown
// past their original tier via append), are discarded.
func (sa *SlabAllocator[T]) Put(slice []T) {
	if slice == nil || cap(slice) == 0 {
		return
	}

	capacity := cap(slice)
	for _, tier := range sa.pools {
		if tier.capacity == capacity {
			slice = slice[:0]
			tier.pool.Put(slice)
			sa.updateStats(func(stats *AllocatorStats) {
				stats.Reuses++
				stats.PoolHits++
			})
			return
		}
	}

	sa.updateStats(func(stats *AllocatorStats) {
		stats.PoolMisses++
	})
}

// GetStats returns a snapshot of allocation statistics.
func (sa *SlabAllocator[T]) GetStats() AllocatorStats {
	return *sa.stats.Load().(*AllocatorStats)
}

// ResetStats zeroes all statistics.
func (sa *SlabAllocator[T]) ResetStats() {
	sa.stats.Store(&AllocatorStats{})
}

func (sa *SlabAllocator[T]) getFromPool(tier *poolTier[T]) []T {
	if slice := tier.pool.Get(); slice != nil {
		sa.updateStats(func(stats *AllocatorStats) {
			stats.Reuses++
			stats.PoolHits++
			stats.TotalCapacity += int64(tier.capacity)
		})
		return slice.([]T)
	}

	sa.updateStats(func(stats *AllocatorStats) {
		stats.Allocations++
		stats.PoolMisses++
		stats.TotalCapacity += int64(tier.capacity)
	})
	return make([]T, 0, tier.capacity)
}

func (sa *SlabAllocator[T]) updateStats(update func(*AllocatorStats)) {
	current := sa.stats.Load().(*AllocatorStats)
	newStats := *current
	update(&newStats)
	sa.stats.Store(&newStats)
}
