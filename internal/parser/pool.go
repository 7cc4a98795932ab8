package parser

import (
	"sync"

	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/types"
)

// Pool recycles Arenas across parses of the same capacity class,
// avoiding repeated large backing-slice allocations for programs that
// parse many files in sequence (spec §5, §9.2: arena reuse). Grounded
// on the teacher's per-language sync.Pool pattern, adapted here to a
// single pool keyed by capacity tier rather than by source language.
type Pool struct {
	tiers map[int]*sync.Pool
	mu    sync.Mutex
}

// NewPool creates an empty Arena pool.
func NewPool() *Pool {
	return &Pool{tiers: make(map[int]*sync.Pool)}
}

// Get returns an Arena with at least the given capacity, either reused
// from the pool (reset and ready to write) or newly allocated.
func (p *Pool) Get(capacity int) *arena.Arena {
	tier := p.tierFor(capacity)
	pool := p.poolFor(tier)
	if a, ok := pool.Get().(*arena.Arena); ok {
		a.Reset()
		return a
	}
	return arena.New(tier)
}

// Put returns an Arena to the pool keyed by its own capacity.
func (p *Pool) Put(a *arena.Arena) {
	if a == nil {
		return
	}
	pool := p.poolFor(a.Capacity())
	pool.Put(a)
}

func (p *Pool) poolFor(tier int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.tiers[tier]
	if !ok {
		pool = &sync.Pool{}
		p.tiers[tier] = pool
	}
	return pool
}

// tierFor rounds capacity up to the nearest power-of-two-ish bucket so
// a handful of pools serve most requests instead of one pool per exact
// capacity value.
func (p *Pool) tierFor(capacity int) int {
	if capacity < 256 {
		return 256
	}
	tier := 256
	for tier < capacity {
		tier *= 2
	}
	return tier
}

// DefaultPool is the package-level Arena pool shared by facade.Scope
// when the caller does not supply its own Pool.
var DefaultPool = NewPool()

// EstimatedCapacity applies spec §4.3's default arena-capacity-factor
// heuristic: roughly one node per two bytes of input, floored at a
// small constant so trivial inputs still get a usable arena.
func EstimatedCapacity(inputLen int) int {
	capacity := int(float64(inputLen) * types.DefaultArenaCapacityFactor)
	if capacity < 64 {
		capacity = 64
	}
	return capacity
}
