// Package parser implements the hand-written recursive-descent Parser
// Core (spec §4.4): a token cursor, a recursion-depth guard, a
// diagnostic sink, and an arena write target, consulting the Strategy
// Registry for version-gated syntax. Every production allocates its
// children before itself (post-order discipline, spec §9.1): a
// production parses its children first, collecting their ids on a
// local stack obtained from a child-id slab allocator, then allocates
// itself and calls arena.SetParent on each child before
// arena.AttachChildren.
package parser

import (
	"fmt"

	"github.com/standardbeagle/jparse/internal/alloc"
	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/diag"
	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/perr"
	"github.com/standardbeagle/jparse/internal/result"
	"github.com/standardbeagle/jparse/internal/source"
	"github.com/standardbeagle/jparse/internal/strategy"
	"github.com/standardbeagle/jparse/internal/types"
)

// Parser is the recursive-descent driver for one parse. It is not
// safe for concurrent use; each parser scope is thread-confined (spec
// §5).
type Parser struct {
	buf         *source.Buffer
	tokens      []lexer.Token
	pos         int
	depth       int
	fatal       error
	sink        diag.Sink
	arena       *arena.Arena
	version     langver.Version
	registry    *strategy.Registry[*Parser]
	childStacks *alloc.SlabAllocator[types.NodeID]

	// strategyNode carries a successfully-matched strategy's result
	// node id from its Parse call back to the tryStrategy caller
	// (spec §4.5: Strategy.Parse returns only an error, no node id, so
	// the registered strategies in strategies.go write here).
	strategyNode types.NodeID

	// pendingMods carries already-parsed modifiers/annotations across
	// a tryStrategy call for the one strategy (compact source files)
	// whose production needs them.
	pendingMods modifiers

	// typeNameStack tracks the simple name of each enclosing type
	// declaration, innermost last, so member parsing can recognize a
	// constructor (`Name(...)`  with no return type) versus a method.
	typeNameStack []string
}

// New creates a Parser over tokens, writing nodes into ar, gated by
// version, consulting registry for version-scoped strategies. A nil
// registry is replaced with DefaultRegistry() rather than left unset,
// so every Parser always dispatches through the Strategy Registry for
// its covered special cases (spec §4.5); callers that want to disable
// version-gated syntax entirely can pass strategy.NewRegistry[*Parser]()
// (empty) instead of nil.
func New(buf *source.Buffer, tokens []lexer.Token, ar *arena.Arena, version langver.Version, registry *strategy.Registry[*Parser]) *Parser {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Parser{
		buf:          buf,
		tokens:       tokens,
		arena:        ar,
		version:      version,
		registry:     registry,
		strategyNode: types.InvalidNodeID,
		childStacks:  alloc.NewChildStackAllocator[types.NodeID](),
	}
}

// Parse runs the parser to completion and returns a ParseResult (spec
// §4.4, §6.1). It never panics for syntactic errors; fatal resource
// errors return Failure immediately.
func (p *Parser) Parse() result.ParseResult {
	root, ok := p.parseCompilationUnit()
	if p.fatal != nil {
		p.sink.Add(diag.New(p.offset(), p.line(), p.column(), p.fatal.Error()))
	}
	if !p.sink.Empty() {
		return result.Failure(p.sink.Items())
	}
	if !ok {
		// Defensive: no diagnostic was recorded but parsing didn't
		// produce a root. Treat as an internal error rather than
		// returning a bogus Success.
		return result.Failure(diag.List{diag.New(0, 1, 1, "internal error: parse produced no root and no diagnostics")})
	}
	return result.Success(root)
}

// --- token cursor -----------------------------------------------------

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) at(kind lexer.Kind) bool { return p.current().Kind == kind }

func (p *Parser) atEOF() bool { return p.current().Kind == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches kind, else records a
// syntax error diagnostic and leaves the cursor in place.
func (p *Parser) expect(kind lexer.Kind, what string) (lexer.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.errorf("expected %s", what)
	return lexer.Token{}, false
}

func (p *Parser) offset() int { return p.current().Start }

func (p *Parser) line() int {
	l, _ := p.buf.LineColumn(p.offset())
	return l
}

func (p *Parser) column() int {
	_, c := p.buf.LineColumn(p.offset())
	return c
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.current()
	line, col := p.buf.LineColumn(tok.Start)
	p.sink.Add(diag.New(tok.Start, line, col, fmt.Sprintf(format, args...)))
}

// errorfAt records a diagnostic anchored at pos rather than the
// current cursor position, for checks that run after the offending
// construct has already been fully parsed (e.g. constructor prologue
// ordering).
func (p *Parser) errorfAt(pos int, format string, args ...any) {
	line, col := p.buf.LineColumn(pos)
	p.sink.Add(diag.New(pos, line, col, fmt.Sprintf(format, args...)))
}

// --- strategy registry dispatch -----------------------------------------

// tryStrategy consults the Strategy Registry for phase at the current
// cursor position (spec §4.5). matched reports whether any registered
// strategy's CanHandle claimed this position; ok (meaningful only when
// matched is true) reports whether that strategy's Parse succeeded. A
// production consults tryStrategy before falling back to its own
// default parsing, so a version too low to have any strategy
// registered for phase always leaves matched false and control falls
// through unchanged.
func (p *Parser) tryStrategy(phase langver.Phase) (id types.NodeID, matched bool, ok bool) {
	if p.registry == nil {
		return types.InvalidNodeID, false, false
	}
	s, found := p.registry.Lookup(p.version, phase, p)
	if !found {
		return types.InvalidNodeID, false, false
	}
	p.strategyNode = types.InvalidNodeID
	if err := s.Parse(p); err != nil {
		return types.InvalidNodeID, true, false
	}
	return p.strategyNode, true, true
}

// strategyMatches reports whether a registered strategy claims phase
// at the current position without invoking its Parse. Used by gates
// that toggle a validation rule rather than parse new syntax (the
// flexible constructor prologue: matching only relaxes an ordering
// check the default production otherwise enforces).
func (p *Parser) strategyMatches(phase langver.Phase) bool {
	if p.registry == nil {
		return false
	}
	_, ok := p.registry.Lookup(p.version, phase, p)
	return ok
}

// resync advances the cursor until it reaches one of the given
// boundary kinds or EOF, so parsing can continue after a syntax error
// (spec §4.4 failure semantics).
func (p *Parser) resync(boundaries ...lexer.Kind) {
	for !p.atEOF() {
		for _, b := range boundaries {
			if p.at(b) {
				return
			}
		}
		p.advance()
	}
}

// --- recursion guard ---------------------------------------------------

// enter increments the depth counter, returning false (and setting a
// fatal resource error) if the guard is exceeded (spec §4.4, §7).
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > types.MaxRecursionDepth {
		if p.fatal == nil {
			p.fatal = perr.NewResourceError(p.offset(), p.line(), p.column(),
				fmt.Sprintf("Maximum recursion depth exceeded: %d", types.MaxRecursionDepth))
		}
		return false
	}
	return true
}

func (p *Parser) exit() { p.depth-- }

func (p *Parser) hasFatal() bool { return p.fatal != nil }

// --- node allocation helpers -------------------------------------------

// childStack returns a reusable, zero-length slice with the given hint
// capacity for collecting child ids (spec §9.1).
func (p *Parser) childStack(hint int) []types.NodeID {
	return p.childStacks.Get(hint)
}

func (p *Parser) releaseChildStack(s []types.NodeID) {
	p.childStacks.Put(s)
}

// allocate appends a node with no attribute, surfacing ArenaFull as a
// fatal resource error (spec §4.3 capacity policy).
func (p *Parser) allocate(kind nodekind.Kind, start, end int) types.NodeID {
	id, err := p.arena.Allocate(kind, start, end)
	if err != nil {
		p.recordFatalArenaErr(err)
		return types.InvalidNodeID
	}
	return id
}

func (p *Parser) allocateWithAttr(kind nodekind.Kind, start, end int, attr any) types.NodeID {
	id, err := p.arena.AllocateWithAttr(kind, start, end, attr)
	if err != nil {
		p.recordFatalArenaErr(err)
		return types.InvalidNodeID
	}
	return id
}

func (p *Parser) recordFatalArenaErr(err error) {
	if p.fatal == nil {
		p.fatal = err
	}
}

// attachChildren sets each child's parent to parent and records the
// adjacency, in source order (spec §4.3, §9.1). Safe to call with a
// nil/empty slice (leaf nodes).
func (p *Parser) attachChildren(parent types.NodeID, children []types.NodeID) {
	if parent == types.InvalidNodeID {
		return
	}
	for _, c := range children {
		if c == types.InvalidNodeID {
			continue
		}
		if err := p.arena.SetParent(c, parent); err != nil {
			p.recordFatalArenaErr(err)
			return
		}
	}
	if len(children) == 0 {
		return
	}
	if err := p.arena.AttachChildren(parent, children); err != nil {
		p.recordFatalArenaErr(err)
	}
}
