package parser

import (
	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseTypeOrPattern parses the right-hand operand of `instanceof` or a
// `case` label (spec "Patterns", version-gated §4.2). Below
// PatternMatchingMinVersion no pattern-matching strategy is registered
// for langver.Pattern, so this falls back to a plain type test — the
// pre-pattern-matching grammar.
func (p *Parser) parseTypeOrPattern() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	if id, matched, ok := p.tryStrategy(langver.Pattern); matched {
		if !ok {
			return types.InvalidNodeID, false
		}
		return id, true
	}
	return p.parseType()
}

// parsePattern parses a pattern in a context where one is mandatory (a
// record pattern component). Nested components are not separately
// version-gated: admission into pattern syntax at all was already
// decided by the registry lookup at the outer parseTypeOrPattern call.
func (p *Parser) parsePattern() (types.NodeID, bool) {
	if primitiveKeywords[p.current().Kind] {
		return p.parsePrimitivePattern()
	}
	return p.parseRecordOrTypePattern()
}

// parsePrimitivePattern parses `PrimitiveType identifier` (e.g. `int
// x`), the primitive-pattern special case (spec §4.5).
func (p *Parser) parsePrimitivePattern() (types.NodeID, bool) {
	start := p.offset()
	typ, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}
	nameTok, ok := p.expect(lexer.IDENTIFIER, "pattern binding name")
	if !ok {
		return types.InvalidNodeID, false
	}
	end := nameTok.End
	nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
	id := p.allocate(nodekind.PrimitivePattern, start, end)
	p.attachChildren(id, []types.NodeID{typ, nameChild})
	return id, true
}

// parseRecordOrTypePattern parses the unnamed pattern `_`, a record
// deconstruction pattern `Type(pattern, ...)`, a type pattern with a
// binding name, or (falling through) a plain type test.
func (p *Parser) parseRecordOrTypePattern() (types.NodeID, bool) {
	start := p.offset()
	if p.at(lexer.IDENTIFIER) && p.buf.Slice(p.current().Start, p.current().End) == "_" && p.peek(1).Kind != lexer.Dot {
		end := p.current().End
		p.advance()
		return p.allocate(nodekind.UnnamedPattern, start, end), true
	}

	typ, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}

	switch {
	case p.at(lexer.LParen):
		return p.parseRecordPatternRest(start, typ)
	case p.at(lexer.IDENTIFIER):
		nameTok := p.advance()
		end := nameTok.End
		nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
		id := p.allocate(nodekind.TypePattern, start, end)
		p.attachChildren(id, []types.NodeID{typ, nameChild})
		return id, true
	default:
		return typ, true
	}
}

// parseRecordPatternRest parses the `(pattern, pattern, ...)` component
// list of a record deconstruction pattern, given its already-parsed
// type. Components may themselves be the unnamed pattern `_`, giving
// "record deconstruction with unnamed bindings" (spec §4.5).
func (p *Parser) parseRecordPatternRest(start int, typ types.NodeID) (types.NodeID, bool) {
	p.advance() // '('

	children := p.childStack(4)
	defer p.releaseChildStack(children)
	children = append(children, typ)

	for !p.at(lexer.RParen) && !p.atEOF() {
		comp, ok := p.parsePattern()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, comp)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.RParen, "')' to close record pattern"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.RecordPattern, start, end)
	p.attachChildren(id, children)
	return id, true
}
