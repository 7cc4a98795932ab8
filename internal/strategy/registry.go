// Package strategy implements the version-gated Strategy Registry (spec
// §4.2): a versioned map from (version, phase, current token) to the
// specialized sub-parser that recognizes a piece of evolving syntax,
// falling back to the default production for that phase when no
// strategy matches. Modeled on the teacher's CommunityParserRegistry
// (internal/parser/community_parser.go), a name-keyed adapter registry
// with lookup-by-capability; here the capability is CanHandle rather
// than a file extension, and lookup additionally searches older
// versions when the requested version has nothing registered.
package strategy

import "github.com/standardbeagle/jparse/internal/langver"

// Strategy is a specialized sub-parser for one version-gated syntax
// feature. C is the parser's own cursor/context type; the registry is
// generic over it so this package never imports the parser package
// (strategy.Registry is instantiated by parser, not the reverse).
type Strategy[C any] interface {
	// CanHandle reports whether this strategy recognizes the syntax at
	// the current position of ctx, for the given phase.
	CanHandle(phase langver.Phase, ctx C) bool

	// Parse consumes and builds the node(s) this strategy owns.
	Parse(ctx C) error

	// Priority orders strategies within a version; the registry tries
	// strategies highest-priority first (spec §4.2).
	Priority() int

	// Description names the strategy for diagnostics and registry
	// listings (e.g. "flexible-constructor-prologue").
	Description() string
}

type entry[C any] struct {
	version  langver.Version
	phase    langver.Phase
	strategy Strategy[C]
}

// Registry holds strategies grouped by (version, phase), sorted by
// descending priority within each group, and performs version-fallback
// lookup (spec §4.2: "if no strategy matches for the requested version,
// the registry searches earlier versions in descending order").
type Registry[C any] struct {
	byVersionPhase map[versionPhaseKey][]Strategy[C]
	versions       []langver.Version // distinct registered versions, ascending
}

type versionPhaseKey struct {
	version langver.Version
	phase   langver.Phase
}

// NewRegistry creates an empty strategy registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{
		byVersionPhase: make(map[versionPhaseKey][]Strategy[C]),
	}
}

// Register adds s for the given version and phase. Registration order
// is the tiebreak among strategies of equal priority (spec §9.2
// resolved: "Strategy dispatch tiebreak: registration order").
func (r *Registry[C]) Register(version langver.Version, phase langver.Phase, s Strategy[C]) {
	key := versionPhaseKey{version: version, phase: phase}
	r.byVersionPhase[key] = insertByPriority(r.byVersionPhase[key], s)
	r.noteVersion(version)
}

func insertByPriority[C any](strategies []Strategy[C], s Strategy[C]) []Strategy[C] {
	i := 0
	for ; i < len(strategies); i++ {
		if strategies[i].Priority() < s.Priority() {
			break
		}
	}
	strategies = append(strategies, nil)
	copy(strategies[i+1:], strategies[i:])
	strategies[i] = s
	return strategies
}

func (r *Registry[C]) noteVersion(v langver.Version) {
	for _, existing := range r.versions {
		if existing == v {
			return
		}
	}
	r.versions = append(r.versions, v)
	for i := len(r.versions) - 1; i > 0 && r.versions[i-1] > r.versions[i]; i-- {
		r.versions[i-1], r.versions[i] = r.versions[i], r.versions[i-1]
	}
}

// Lookup returns the highest-priority strategy registered for version
// (or, failing that, the highest registered version below it) and
// phase whose CanHandle reports true for ctx. ok is false when no
// strategy anywhere at or below version matches; the caller falls back
// to its own default production for that phase.
func (r *Registry[C]) Lookup(version langver.Version, phase langver.Phase, ctx C) (s Strategy[C], ok bool) {
	for i := len(r.versions) - 1; i >= 0; i-- {
		v := r.versions[i]
		if v > version {
			continue
		}
		key := versionPhaseKey{version: v, phase: phase}
		for _, candidate := range r.byVersionPhase[key] {
			if candidate.CanHandle(phase, ctx) {
				return candidate, true
			}
		}
	}
	return nil, false
}

// Describe lists every registered strategy's description, grouped by
// version, for diagnostics and tooling (e.g. `jparse strategies`).
func (r *Registry[C]) Describe() []string {
	var out []string
	for _, v := range r.versions {
		for key, strategies := range r.byVersionPhase {
			if key.version != v {
				continue
			}
			for _, s := range strategies {
				out = append(out, s.Description())
			}
		}
	}
	return out
}
