package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/langver"
)

type fakeCtx struct {
	token string
}

type fakeStrategy struct {
	match       string
	priority    int
	description string
	calls       *int
}

func (f *fakeStrategy) CanHandle(phase langver.Phase, ctx fakeCtx) bool {
	return ctx.token == f.match
}

func (f *fakeStrategy) Parse(ctx fakeCtx) error {
	if f.calls != nil {
		*f.calls++
	}
	return nil
}

func (f *fakeStrategy) Priority() int       { return f.priority }
func (f *fakeStrategy) Description() string { return f.description }

func TestRegistry_LookupExactVersion(t *testing.T) {
	r := NewRegistry[fakeCtx]()
	r.Register(langver.V25, langver.ConstructorBody, &fakeStrategy{match: "this", priority: 10, description: "flexible-ctor-prologue"})

	s, ok := r.Lookup(langver.V25, langver.ConstructorBody, fakeCtx{token: "this"})
	require.True(t, ok)
	assert.Equal(t, "flexible-ctor-prologue", s.Description())
}

func TestRegistry_NoMatchReturnsFalse(t *testing.T) {
	r := NewRegistry[fakeCtx]()
	r.Register(langver.V25, langver.ConstructorBody, &fakeStrategy{match: "this", priority: 10, description: "flexible-ctor-prologue"})

	_, ok := r.Lookup(langver.V25, langver.ConstructorBody, fakeCtx{token: "super"})
	assert.False(t, ok)
}

func TestRegistry_VersionFallback(t *testing.T) {
	r := NewRegistry[fakeCtx]()
	r.Register(langver.V17, langver.Pattern, &fakeStrategy{match: "_", priority: 5, description: "unnamed-pattern-v17"})

	// Requesting a later version than anything registered still finds
	// the v17 strategy via descending fallback.
	s, ok := r.Lookup(langver.V25, langver.Pattern, fakeCtx{token: "_"})
	require.True(t, ok)
	assert.Equal(t, "unnamed-pattern-v17", s.Description())
}

func TestRegistry_NeverFallsForward(t *testing.T) {
	r := NewRegistry[fakeCtx]()
	r.Register(langver.V25, langver.ConstructorBody, &fakeStrategy{match: "this", priority: 10, description: "v25-only"})

	_, ok := r.Lookup(langver.V17, langver.ConstructorBody, fakeCtx{token: "this"})
	assert.False(t, ok, "a v25-only strategy must not be visible to an earlier requested version")
}

func TestRegistry_PriorityOrdering(t *testing.T) {
	r := NewRegistry[fakeCtx]()
	lowCalls, highCalls := 0, 0
	r.Register(langver.V25, langver.Expression, &fakeStrategy{match: "x", priority: 1, description: "low", calls: &lowCalls})
	r.Register(langver.V25, langver.Expression, &fakeStrategy{match: "x", priority: 100, description: "high", calls: &highCalls})

	s, ok := r.Lookup(langver.V25, langver.Expression, fakeCtx{token: "x"})
	require.True(t, ok)
	assert.Equal(t, "high", s.Description())
}

func TestRegistry_Describe(t *testing.T) {
	r := NewRegistry[fakeCtx]()
	r.Register(langver.V25, langver.Pattern, &fakeStrategy{match: "_", priority: 1, description: "a"})
	r.Register(langver.V21, langver.Pattern, &fakeStrategy{match: "x", priority: 1, description: "b"})

	descriptions := r.Describe()
	assert.Len(t, descriptions, 2)
	assert.Contains(t, descriptions, "a")
	assert.Contains(t, descriptions, "b")
}
