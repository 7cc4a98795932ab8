package parser

import "testing"

func TestPool_GetReturnsResetArena(t *testing.T) {
	p := NewPool()
	a := p.Get(100)
	if a.Len() != 0 {
		t.Fatalf("fresh arena should be empty, got Len=%d", a.Len())
	}
	if _, err := a.Allocate(1, 0, 1); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	p.Put(a)

	reused := p.Get(100)
	if reused.Len() != 0 {
		t.Fatalf("pooled arena should be reset before reuse, got Len=%d", reused.Len())
	}
}

func TestPool_TierRoundsUp(t *testing.T) {
	p := NewPool()
	if got := p.tierFor(100); got != 256 {
		t.Fatalf("tierFor(100) = %d, want 256", got)
	}
	if got := p.tierFor(1000); got != 1024 {
		t.Fatalf("tierFor(1000) = %d, want 1024", got)
	}
}

func TestEstimatedCapacity_FloorsSmallInputs(t *testing.T) {
	if got := EstimatedCapacity(10); got != 64 {
		t.Fatalf("EstimatedCapacity(10) = %d, want floor 64", got)
	}
	if got := EstimatedCapacity(10000); got != 5000 {
		t.Fatalf("EstimatedCapacity(10000) = %d, want 5000", got)
	}
}
