package alloc

import "testing"

func TestNewSlabAllocator(t *testing.T) {
	configs := []SlabTierConfig{{Capacity: 4}, {Capacity: 8}}
	sa := NewSlabAllocator[int](configs)

	if sa == nil {
		t.Fatal("expected non-nil allocator")
	}
	if len(sa.pools) != 2 {
		t.Fatalf("expected 2 pools, got %d", len(sa.pools))
	}
	if sa.pools[0].capacity != 4 || sa.pools[1].capacity != 8 {
		t.Fatalf("unexpected pool capacities: %d, %d", sa.pools[0].capacity, sa.pools[1].capacity)
	}
}

func TestNewChildStackAllocator(t *testing.T) {
	sa := NewChildStackAllocator[int32]()
	if len(sa.pools) != len(ChildStackTierConfigs) {
		t.Fatalf("expected %d pools, got %d", len(ChildStackTierConfigs), len(sa.pools))
	}
}

func TestSlabAllocator_GetReturnsRequestedCapacity(t *testing.T) {
	sa := NewChildStackAllocator[int32]()
	s := sa.Get(3)
	if len(s) != 0 {
		t.Fatalf("expected length 0, got %d", len(s))
	}
	if cap(s) < 3 {
		t.Fatalf("expected capacity >= 3, got %d", cap(s))
	}
}

func TestSlabAllocator_GetZeroOrNegative(t *testing.T) {
	sa := NewChildStackAllocator[int32]()
	s := sa.Get(0)
	if s == nil || len(s) != 0 || cap(s) != 0 {
		t.Fatalf("expected empty zero-cap slice, got len=%d cap=%d", len(s), cap(s))
	}
}

func TestSlabAllocator_PutReusesExactTier(t *testing.T) {
	sa := NewChildStackAllocator[int32]()
	s := sa.Get(4)
	s = append(s, 1, 2)
	sa.Put(s)

	stats := sa.GetStats()
	if stats.Reuses == 0 {
		t.Fatal("expected at least one reuse recorded from Get")
	}

	reused := sa.Get(4)
	if len(reused) != 0 {
		t.Fatalf("expected reused slice to have length 0, got %d", len(reused))
	}
}

func TestSlabAllocator_GetLargerThanAllTiersAllocatesDirectly(t *testing.T) {
	sa := NewChildStackAllocator[int32]()
	s := sa.Get(1000)
	if cap(s) < 1000 {
		t.Fatalf("expected capacity >= 1000, got %d", cap(s))
	}
	stats := sa.GetStats()
	if stats.PoolMisses == 0 {
		t.Fatal("expected a pool miss for an oversized request")
	}
}

func TestSlabAllocator_PutNilOrZeroCapIsNoop(t *testing.T) {
	sa := NewChildStackAllocator[int32]()
	sa.Put(nil)
	sa.Put(make([]int32, 0, 0))
	stats := sa.GetStats()
	if stats.Reuses != 0 {
		t.Fatalf("expected no reuses recorded, got %d", stats.Reuses)
	}
}

func TestSlabAllocator_ResetStats(t *testing.T) {
	sa := NewChildStackAllocator[int32]()
	_ = sa.Get(4)
	sa.ResetStats()
	stats := sa.GetStats()
	if stats.Allocations != 0 || stats.Reuses != 0 || stats.PoolHits != 0 || stats.PoolMisses != 0 {
		t.Fatalf("expected zeroed stats after reset, got %+v", stats)
	}
}
