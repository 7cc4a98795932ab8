// Package facade implements the Public Facade (spec §4.7): a scoped
// object that owns a source buffer, its token array, and its arena for
// exactly one parse. Every exit path — a clean Success, a Failure, or
// an early validation rejection — leaves the caller with a single
// Release call that frees everything at once (spec §5: "the parser
// scope exclusively owns... all of these are released as one on scope
// exit").
package facade

import (
	"time"

	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/diag"
	"github.com/standardbeagle/jparse/internal/escape"
	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/metrics"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/parser"
	"github.com/standardbeagle/jparse/internal/perr"
	"github.com/standardbeagle/jparse/internal/result"
	"github.com/standardbeagle/jparse/internal/source"
	"github.com/standardbeagle/jparse/internal/strategy"
	"github.com/standardbeagle/jparse/internal/types"
)

// Options configures a Scope beyond the defaults (spec §4.3, §6.3,
// §6.4).
type Options struct {
	// Version selects the target language version the parser accepts
	// (defaults to langver.Latest).
	Version langver.Version

	// MaxInputBytes overrides the default input-size ceiling (spec
	// §6.3; defaults to types.DefaultMaxInputBytes).
	MaxInputBytes int

	// ArenaCapacity overrides the node-count capacity passed to the
	// arena (defaults to parser.EstimatedCapacity(len(text))).
	ArenaCapacity int

	// Registry supplies version-gated strategies (spec §4.5). A nil
	// Registry is replaced with parser.DefaultRegistry(), which
	// preloads the standard language subset's strategies via
	// register_defaults; pass an empty strategy.NewRegistry[*parser.Parser]()
	// explicitly to disable every version-gated special case instead.
	Registry *strategy.Registry[*parser.Parser]

	// Pool, if non-nil, is used to borrow and return the scope's
	// Arena instead of allocating one directly.
	Pool *parser.Pool
}

// Scope owns the buffer, tokens, and arena for one parse (spec §4.7).
// It is not safe for concurrent use; each Scope is thread-confined
// (spec §5). Callers MUST call Release when done, typically via defer.
type Scope struct {
	buf     *source.Buffer
	tokens  []lexer.Token
	arena   *arena.Arena
	pool    *parser.Pool
	result  result.ParseResult
	parsed  bool
}

// Open validates text (spec §6.3), lexes it, and returns a Scope ready
// for Parse. The returned error, when non-nil, is always a
// *perr.ValidationError and no resources were allocated.
func Open(text []byte, opts Options) (*Scope, error) {
	if err := validate(text, opts); err != nil {
		return nil, err
	}

	if opts.Version == langver.Unknown {
		opts.Version = langver.Latest
	}

	buf := source.New(text)

	escapes, escDiags := escape.Preprocess(buf)
	escMap := escape.NewMap(escapes)

	lx := lexer.New(buf, escMap)
	tokens, lexDiags := lx.Lex()

	capacity := opts.ArenaCapacity
	if capacity == 0 {
		capacity = parser.EstimatedCapacity(len(text))
	}

	var ar *arena.Arena
	pool := opts.Pool
	if pool != nil {
		ar = pool.Get(capacity)
	} else {
		ar = arena.New(capacity)
	}

	s := &Scope{buf: buf, tokens: tokens, arena: ar, pool: pool}

	if len(escDiags) > 0 || len(lexDiags) > 0 {
		all := make(diag.List, 0, len(escDiags)+len(lexDiags))
		all = append(all, escDiags...)
		all = append(all, lexDiags...)
		s.result = result.Failure(all)
		s.parsed = true
	}

	return s, nil
}

// validate applies spec §6.3's pre-parse rejections before any
// allocation happens.
func validate(text []byte, opts Options) error {
	if len(text) == 0 {
		return perr.NewValidationError("empty input")
	}
	if isWhitespaceOnly(text) {
		return perr.NewValidationError("no tokens")
	}
	maxBytes := opts.MaxInputBytes
	if maxBytes == 0 {
		maxBytes = types.DefaultMaxInputBytes
	}
	if len(text) > maxBytes {
		return perr.NewValidationError("input too large")
	}
	return nil
}

func isWhitespaceOnly(text []byte) bool {
	for _, b := range text {
		switch b {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			continue
		default:
			return false
		}
	}
	return true
}

// Parse runs the parser to completion (unless lexing already produced
// a Failure) and caches the result. Calling Parse more than once
// returns the cached result without reparsing.
func (s *Scope) Parse(opts Options) result.ParseResult {
	if s.parsed {
		return s.result
	}
	s.parsed = true

	if opts.Version == langver.Unknown {
		opts.Version = langver.Latest
	}

	start := time.Now()
	p := parser.New(s.buf, s.tokens, s.arena, opts.Version, opts.Registry)
	s.result = p.Parse()

	if metrics.Enabled() {
		metrics.RecordFileProcessed(time.Since(start))
		metrics.RecordNodesAllocated(s.arena.Len())
		if !s.result.IsSuccess() {
			metrics.RecordParseError()
		}
	}
	return s.result
}

// Result returns the last Parse result, or a zero-value ParseResult if
// Parse was never called (IsSuccess reports false in that case).
func (s *Scope) Result() result.ParseResult { return s.result }

// Root returns the COMPILATION_UNIT arena id, if the parse succeeded.
func (s *Scope) Root() (types.NodeID, bool) { return s.result.Root() }

// Node returns the arena's read view of id (spec §4.7 "arena
// accessor").
func (s *Scope) Node(id types.NodeID) (arena.Node, error) { return s.arena.Node(id) }

// ArenaLen returns the number of nodes allocated for this parse.
func (s *Scope) ArenaLen() int { return s.arena.Len() }

// TextOf returns the exact source substring spanning id (spec P4: text
// round-trip).
func (s *Scope) TextOf(id types.NodeID) (string, error) {
	n, err := s.arena.Node(id)
	if err != nil {
		return "", err
	}
	return s.buf.Slice(n.Start, n.End), nil
}

// TokenAt returns the original lexical token whose span matches
// [start, end), for callers that need the pre-decode spelling rather
// than decoded text (spec §4.7 "token_at").
func (s *Scope) TokenAt(start, end int) (lexer.Token, bool) {
	for _, t := range s.tokens {
		if t.Start == start && t.End == end {
			return t, true
		}
	}
	return lexer.Token{}, false
}

// PackageAttr returns the PACKAGE_DECLARATION attribute at id.
func (s *Scope) PackageAttr(id types.NodeID) (arena.PackageAttribute, bool) {
	return s.arena.PackageAttr(id)
}

// ImportAttr returns the IMPORT_DECLARATION/STATIC_IMPORT_DECLARATION
// attribute at id.
func (s *Scope) ImportAttr(id types.NodeID) (arena.ImportAttribute, bool) {
	return s.arena.ImportAttr(id)
}

// TypeDeclarationAttr returns the declared-type attribute at id.
func (s *Scope) TypeDeclarationAttr(id types.NodeID) (arena.TypeDeclarationAttribute, bool) {
	return s.arena.TypeDeclarationAttr(id)
}

// ParameterAttr returns the parameter attribute at id.
func (s *Scope) ParameterAttr(id types.NodeID) (arena.ParameterAttribute, bool) {
	return s.arena.ParameterAttr(id)
}

// Kind returns the node kind at id, or nodekind.Invalid if id does not
// exist (a convenience wrapper so callers needn't unpack Node for the
// common case of a kind switch).
func (s *Scope) Kind(id types.NodeID) nodekind.Kind {
	n, err := s.arena.Node(id)
	if err != nil {
		return nodekind.Invalid
	}
	return n.Kind
}

// Release returns the Scope's Arena to its pool, if it came from one.
// After Release, the Scope and every id it produced must not be used
// (spec §5: "the Parse Result... must not outlive the parser scope").
func (s *Scope) Release() {
	if s.pool != nil && s.arena != nil {
		s.pool.Put(s.arena)
		s.arena = nil
	}
}
