package parser

import (
	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseTryStatement parses `try [resources] block catch* [finally]`
// (spec "Statements": "try/catch/finally (incl. multi-catch via
// parseCatchType, try-with-resources)").
func (p *Parser) parseTryStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'try'

	children := p.childStack(8)
	defer p.releaseChildStack(children)

	if p.at(lexer.LParen) {
		res, ok := p.parseResourceSpecification()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, res)
	}

	body, ok := p.parseBlock()
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, body)

	for p.at(lexer.KwCatch) {
		c, ok := p.parseCatchClause()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, c)
	}

	if p.at(lexer.KwFinally) {
		p.advance()
		fin, ok := p.parseBlock()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, fin)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.TryStatement, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseCatchClause parses `catch (Type1 | Type2 name) block`.
func (p *Parser) parseCatchClause() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'catch'
	if _, ok := p.expect(lexer.LParen, "'(' after 'catch'"); !ok {
		return types.InvalidNodeID, false
	}
	mods := p.parseModifiers()
	catchType, ok := p.parseCatchType()
	if !ok {
		return types.InvalidNodeID, false
	}
	nameTok, ok := p.expect(lexer.IDENTIFIER, "catch parameter name")
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' after catch parameter"); !ok {
		return types.InvalidNodeID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	name := p.buf.Slice(nameTok.Start, nameTok.End)
	paramDecl := p.allocateWithAttr(nodekind.ParameterDeclaration, nameTok.Start, nameTok.End,
		arena.ParameterAttribute{Name: name, IsFinal: mods.isFinal})
	id := p.allocate(nodekind.CatchClause, start, end)
	children := append(append([]types.NodeID{}, mods.annotations...), catchType, paramDecl, body)
	p.attachChildren(id, children)
	return id, true
}

// parseResourceSpecification parses `( resource (; resource)* [;] )`,
// where each resource is either a declared-and-initialized local
// variable or (Java 9+) a bare reference to an existing effectively
// final variable.
func (p *Parser) parseResourceSpecification() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // '('

	children := p.childStack(4)
	defer p.releaseChildStack(children)

	for {
		res, ok := p.parseResource()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, res)
		if p.at(lexer.Semi) && p.peek(1).Kind != lexer.RParen {
			p.advance()
			continue
		}
		if p.at(lexer.Semi) {
			p.advance() // optional trailing ';'
		}
		break
	}
	if _, ok := p.expect(lexer.RParen, "')' to close resource specification"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ResourceSpecification, start, end)
	p.attachChildren(id, children)
	return id, true
}

func (p *Parser) parseResource() (types.NodeID, bool) {
	if p.isLocalVarDeclStart() {
		mods := p.parseModifiers()
		start := p.startOr(mods)
		typ, ok := p.parseType()
		if !ok {
			return types.InvalidNodeID, false
		}
		nameTok, ok := p.expect(lexer.IDENTIFIER, "resource variable name")
		if !ok {
			return types.InvalidNodeID, false
		}
		if _, ok := p.expect(lexer.OpEq, "'=' in resource declaration"); !ok {
			return types.InvalidNodeID, false
		}
		init, ok := p.parseExpression()
		if !ok {
			return types.InvalidNodeID, false
		}
		nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
		decl := p.allocate(nodekind.VariableDeclarator, nameTok.Start, p.tokens[p.pos-1].End)
		p.attachChildren(decl, []types.NodeID{nameChild, init})

		end := p.tokens[p.pos-1].End
		id := p.allocate(nodekind.LocalVariableDeclaration, start, end)
		children := append(append([]types.NodeID{}, mods.annotations...), typ, decl)
		p.attachChildren(id, children)
		return id, true
	}
	return p.parseExpression()
}
