package parser

import (
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

var primitiveKeywords = map[lexer.Kind]bool{
	lexer.KwBoolean: true,
	lexer.KwByte:    true,
	lexer.KwShort:   true,
	lexer.KwInt:     true,
	lexer.KwLong:    true,
	lexer.KwChar:    true,
	lexer.KwFloat:   true,
	lexer.KwDouble:  true,
	lexer.KwVoid:    true,
}

// parseType parses a type reference: primitive or qualified reference
// type, optional generic type arguments, optional trailing `[]` array
// suffixes (spec §4.4 "Types").
func (p *Parser) parseType() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	var base types.NodeID

	if primitiveKeywords[p.current().Kind] {
		end := p.current().End
		p.advance()
		base = p.allocate(nodekind.PrimitiveType, start, end)
	} else if p.at(lexer.IDENTIFIER) {
		nameChild, _ := p.qualifiedName()
		end := p.tokens[p.pos-1].End

		if p.at(lexer.OpLt) {
			argsChild, ok := p.parseTypeArguments()
			if !ok {
				return types.InvalidNodeID, false
			}
			end = p.tokens[p.pos-1].End
			base = p.allocate(nodekind.ParameterizedType, start, end)
			p.attachChildren(base, []types.NodeID{nameChild, argsChild})
		} else {
			base = p.allocate(nodekind.ReferenceType, start, end)
			p.attachChildren(base, []types.NodeID{nameChild})
		}
	} else {
		p.errorf("expected a type")
		return types.InvalidNodeID, false
	}

	for p.at(lexer.LBracket) && p.peek(1).Kind == lexer.RBracket {
		p.advance()
		end := p.current().End
		p.advance()
		arr := p.allocate(nodekind.ArrayType, start, end)
		p.attachChildren(arr, []types.NodeID{base})
		base = arr
	}

	return base, true
}

// parseTypeArguments parses `< typeArg (, typeArg)* >`, where typeArg
// is a type or a wildcard (spec "Types": parameterized, wildcard).
// Diamond `<>` produces an empty TYPE_ARGUMENT_LIST.
func (p *Parser) parseTypeArguments() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // '<'

	children := p.childStack(4)
	defer p.releaseChildStack(children)

	if p.at(lexer.OpGt) {
		end := p.current().End
		p.advance()
		id := p.allocate(nodekind.TypeArgumentList, start, end)
		p.attachChildren(id, children)
		return id, true
	}

	for {
		var arg types.NodeID
		var ok bool
		if p.at(lexer.Question) {
			arg, ok = p.parseWildcardType()
		} else {
			arg, ok = p.parseType()
		}
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, arg)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(lexer.OpGt, "'>' to close type arguments"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.TypeArgumentList, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseWildcardType parses `?`, `? extends T`, or `? super T`.
func (p *Parser) parseWildcardType() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // '?'
	end := p.tokens[p.pos-1].End

	var bound types.NodeID = types.InvalidNodeID
	if p.at(lexer.KwExtends) || p.at(lexer.KwSuper) {
		p.advance()
		b, ok := p.parseType()
		if !ok {
			return types.InvalidNodeID, false
		}
		bound = b
		end = p.tokens[p.pos-1].End
	}

	id := p.allocate(nodekind.WildcardType, start, end)
	if bound != types.InvalidNodeID {
		p.attachChildren(id, []types.NodeID{bound})
	}
	return id, true
}

// parseCatchType parses the (possibly union) type of a catch
// parameter: `T1 | T2 | ...` (spec §8.3 S5 multi-catch). Exception
// types are never generic or array types, so each alternative is a
// bare qualified name rather than going through parseType's
// ReferenceType/ParameterizedType/ArrayType wrapping.
func (p *Parser) parseCatchType() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	catchAlt := func() types.NodeID {
		altStart := p.offset()
		if _, ok := p.expect(lexer.IDENTIFIER, "exception type name"); !ok {
			return types.InvalidNodeID
		}
		for p.at(lexer.Dot) && p.peek(1).Kind == lexer.IDENTIFIER {
			p.advance()
			p.advance()
		}
		return p.allocate(nodekind.QualifiedName, altStart, p.tokens[p.pos-1].End)
	}
	first := catchAlt()
	if first == types.InvalidNodeID {
		return types.InvalidNodeID, false
	}
	if !p.at(lexer.OpPipe) {
		return first, true
	}

	children := p.childStack(4)
	defer p.releaseChildStack(children)
	children = append(children, first)

	for p.at(lexer.OpPipe) {
		p.advance()
		alt := catchAlt()
		if alt == types.InvalidNodeID {
			return types.InvalidNodeID, false
		}
		children = append(children, alt)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.UnionType, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseIntersectionCastType parses `T1 & T2 & ...` in a cast (spec
// "Types": intersection, cast-only).
func (p *Parser) parseIntersectionCastType() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	first, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}
	if !p.at(lexer.OpAmp) {
		return first, true
	}

	children := p.childStack(4)
	defer p.releaseChildStack(children)
	children = append(children, first)

	for p.at(lexer.OpAmp) {
		p.advance()
		alt, ok := p.parseType()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, alt)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.IntersectionType, start, end)
	p.attachChildren(id, children)
	return id, true
}
