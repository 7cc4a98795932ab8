package parser

import (
	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseMember dispatches a single class/interface/record body member:
// a nested type declaration, a static/instance initializer, a
// constructor, a method, or a field (spec §4.4 "Members").
func (p *Parser) parseMember(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	switch {
	case p.at(lexer.KwClass), p.at(lexer.KwEnum), p.at(lexer.KwInterface),
		p.at(lexer.At) && p.peek(1).Kind == lexer.KwInterface,
		p.isRecordDeclarationStart():
		return p.parseTypeDeclarationBody(mods)

	case p.at(lexer.LBrace):
		return p.parseInitializer(mods)

	case p.isConstructorStart():
		return p.parseConstructorDeclaration(mods)

	default:
		p.skipTypeParametersIfPresent()
		typ, ok := p.parseType()
		if !ok {
			return types.InvalidNodeID, false
		}
		nameTok, ok := p.expect(lexer.IDENTIFIER, "member name")
		if !ok {
			return types.InvalidNodeID, false
		}
		if p.at(lexer.LParen) {
			return p.parseMethodDeclaration(mods, typ, nameTok)
		}
		return p.parseFieldDeclaration(mods, typ, nameTok)
	}
}

func (p *Parser) isConstructorStart() bool {
	if !p.at(lexer.IDENTIFIER) {
		return false
	}
	if len(p.typeNameStack) == 0 {
		return false
	}
	name := p.buf.Slice(p.current().Start, p.current().End)
	if name != p.typeNameStack[len(p.typeNameStack)-1] {
		return false
	}
	return p.peek(1).Kind == lexer.LParen
}

// parseInitializer parses a static or instance initializer block.
func (p *Parser) parseInitializer(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)
	block, ok := p.parseBlock()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End

	kind := nodekind.InstanceInitializer
	if mods.isStatic {
		kind = nodekind.StaticInitializer
	}
	id := p.allocate(kind, start, end)
	p.attachChildren(id, []types.NodeID{block})
	return id, true
}

// parseConstructorDeclaration parses `Name(params) [throws T,...] Block`.
func (p *Parser) parseConstructorDeclaration(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)
	nameTok := p.advance() // constructor name

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)
	children = append(children, p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End))

	params, ok := p.parseParameterList()
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, params...)

	p.skipThrowsClauseIfPresent()

	body, ok := p.parseBlock()
	if !ok {
		return types.InvalidNodeID, false
	}
	if !p.strategyMatches(langver.ConstructorBody) {
		p.checkConstructorPrologue(body)
	}
	children = append(children, body)

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ConstructorDeclaration, start, end)
	p.attachChildren(id, children)
	return id, true
}

// checkConstructorPrologue enforces pre-flexible-prologue ordering: an
// explicit this(...)/super(...) invocation, if present among body's
// direct statements, must be the first one (spec §4.2). Relaxed when
// the flexible-constructor-prologue strategy matches the configured
// version, in which case the caller skips this check entirely.
func (p *Parser) checkConstructorPrologue(body types.NodeID) {
	n, err := p.arena.Node(body)
	if err != nil {
		return
	}
	for i, stmtID := range n.Children {
		if !p.isExplicitConstructorInvocation(stmtID) {
			continue
		}
		if i != 0 {
			stmt, err := p.arena.Node(stmtID)
			if err == nil {
				p.errorfAt(stmt.Start, "explicit constructor invocation must be the first statement in the constructor body")
			}
		}
		return
	}
}

// isExplicitConstructorInvocation reports whether stmtID is an
// expression statement whose sole expression is a this(...)/super(...)
// call (an explicit constructor invocation, spec §4.2).
func (p *Parser) isExplicitConstructorInvocation(stmtID types.NodeID) bool {
	stmt, err := p.arena.Node(stmtID)
	if err != nil || stmt.Kind != nodekind.ExpressionStatement || len(stmt.Children) != 1 {
		return false
	}
	inv, err := p.arena.Node(stmt.Children[0])
	if err != nil || inv.Kind != nodekind.MethodInvocation || len(inv.Children) == 0 {
		return false
	}
	target, err := p.arena.Node(inv.Children[0])
	if err != nil {
		return false
	}
	return target.Kind == nodekind.ThisExpression || target.Kind == nodekind.SuperExpression
}

// parseMethodDeclaration parses the remainder of a method after its
// return type and name have been consumed: `(params) [throws T,...]
// (Block | ;)`.
func (p *Parser) parseMethodDeclaration(mods modifiers, returnType types.NodeID, nameTok lexer.Token) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)
	children = append(children, returnType, p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End))

	params, ok := p.parseParameterList()
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, params...)

	// Old-style trailing array brackets on the method itself, e.g.
	// `int foo()[]`, are legal but rare; skip them without a node.
	for p.at(lexer.LBracket) && p.peek(1).Kind == lexer.RBracket {
		p.advance()
		p.advance()
	}

	p.skipThrowsClauseIfPresent()

	if p.at(lexer.Semi) {
		p.advance()
	} else if p.at(lexer.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, body)
	} else {
		p.errorf("expected method body or ';'")
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.MethodDeclaration, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseFieldDeclaration parses the remainder of a (possibly
// multi-variable) field declaration after its type and first
// declarator name have been consumed.
func (p *Parser) parseFieldDeclaration(mods modifiers, typ types.NodeID, firstName lexer.Token) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)
	children = append(children, typ)

	decl, ok := p.parseVariableDeclaratorRest(firstName)
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, decl)

	for p.at(lexer.Comma) {
		p.advance()
		nameTok, ok := p.expect(lexer.IDENTIFIER, "variable name")
		if !ok {
			return types.InvalidNodeID, false
		}
		decl, ok := p.parseVariableDeclaratorRest(nameTok)
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, decl)
	}

	if _, ok := p.expect(lexer.Semi, "';' after field declaration"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.FieldDeclaration, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseVariableDeclaratorRest parses `[] * (= initializer)?` after a
// declarator's name token, producing a VARIABLE_DECLARATOR node.
func (p *Parser) parseVariableDeclaratorRest(nameTok lexer.Token) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := nameTok.Start
	nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)

	children := p.childStack(2)
	defer p.releaseChildStack(children)
	children = append(children, nameChild)

	// C-style trailing array brackets on the declarator itself.
	for p.at(lexer.LBracket) && p.peek(1).Kind == lexer.RBracket {
		p.advance()
		p.advance()
	}

	if p.at(lexer.OpEq) {
		p.advance()
		init, ok := p.parseVariableInitializer()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, init)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.VariableDeclarator, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseVariableInitializer parses either an expression or an array
// initializer (spec "Expressions": "array creation and initializers,
// permitting trailing commas").
func (p *Parser) parseVariableInitializer() (types.NodeID, bool) {
	if p.at(lexer.LBrace) {
		return p.parseArrayInitializer()
	}
	return p.parseExpression()
}

// parseArrayInitializer parses `{ expr, expr, ... [,] }`.
func (p *Parser) parseArrayInitializer() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // '{'

	children := p.childStack(8)
	defer p.releaseChildStack(children)

	for !p.at(lexer.RBrace) && !p.atEOF() {
		el, ok := p.parseVariableInitializer()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, el)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.RBrace, "'}' to close array initializer"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ArrayInitializer, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseParameterList parses `(param, param, ...)`, returning the
// parameter declaration node ids (the caller attaches them directly as
// children of the method/constructor, spec has no PARAMETER_LIST
// kind).
func (p *Parser) parseParameterList() ([]types.NodeID, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.exit()

	if _, ok := p.expect(lexer.LParen, "'(' to open parameter list"); !ok {
		return nil, false
	}

	var params []types.NodeID
	for !p.at(lexer.RParen) && !p.atEOF() {
		param, ok := p.parseParameterDeclaration()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.RParen, "')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// parseParameterDeclaration parses `[final] [annotations] Type [...]
// Name` or a receiver parameter `Type this` (spec §3.5 ParameterAttribute).
func (p *Parser) parseParameterDeclaration() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	mods := p.parseModifiers()
	start := p.startOr(mods)

	typ, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}

	isVarargs := false
	if p.at(lexer.OpEllipsis) {
		isVarargs = true
		p.advance()
	}

	if p.at(lexer.KwThis) {
		end := p.current().End
		p.advance()
		id := p.allocateWithAttr(nodekind.ParameterDeclaration, start, end,
			arena.ParameterAttribute{Name: "this", IsReceiver: true, IsFinal: mods.isFinal})
		p.attachChildren(id, append(append([]types.NodeID{}, mods.annotations...), typ))
		return id, true
	}

	nameTok, ok := p.expect(lexer.IDENTIFIER, "parameter name")
	if !ok {
		return types.InvalidNodeID, false
	}
	name := p.buf.Slice(nameTok.Start, nameTok.End)

	for p.at(lexer.LBracket) && p.peek(1).Kind == lexer.RBracket {
		p.advance()
		p.advance()
	}

	end := p.tokens[p.pos-1].End
	id := p.allocateWithAttr(nodekind.ParameterDeclaration, start, end,
		arena.ParameterAttribute{Name: name, IsVarargs: isVarargs, IsFinal: mods.isFinal})
	p.attachChildren(id, append(append([]types.NodeID{}, mods.annotations...), typ))
	return id, true
}

func paramAttrFor(name string, mods modifiers) arena.ParameterAttribute {
	return arena.ParameterAttribute{Name: name, IsFinal: mods.isFinal}
}

// skipThrowsClauseIfPresent consumes `throws T, ...` without producing
// nodes: no THROWS_CLAUSE kind is in the catalog (see DESIGN.md).
func (p *Parser) skipThrowsClauseIfPresent() {
	if !p.at(lexer.KwThrows) {
		return
	}
	p.advance()
	for {
		end := p.scanTypeTokens(p.pos)
		if end < 0 {
			p.errorf("expected a type")
			return
		}
		for p.pos < end {
			p.advance()
		}
		if !p.at(lexer.Comma) {
			return
		}
		p.advance()
	}
}

// parseAnnotation parses `@ qualifiedName [ ( args ) ]`.
func (p *Parser) parseAnnotation() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // '@'

	nameChild, _ := p.qualifiedName()
	end := p.tokens[p.pos-1].End

	children := p.childStack(4)
	defer p.releaseChildStack(children)
	children = append(children, nameChild)

	if p.at(lexer.LParen) {
		p.advance()
		for !p.at(lexer.RParen) && !p.atEOF() {
			arg, ok := p.parseAnnotationArgument()
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
		if _, ok := p.expect(lexer.RParen, "')' to close annotation arguments"); !ok {
			return types.InvalidNodeID, false
		}
		end = p.tokens[p.pos-1].End
	}

	id := p.allocate(nodekind.Annotation, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseAnnotationArgument parses either `name = value` or a bare
// marker/value expression.
func (p *Parser) parseAnnotationArgument() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	var nameChild types.NodeID = types.InvalidNodeID
	if p.at(lexer.IDENTIFIER) && p.peek(1).Kind == lexer.OpEq {
		nameTok := p.advance()
		nameChild = p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
		p.advance() // '='
	}

	value, ok := p.parseVariableInitializer()
	if !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.AnnotationArgument, start, end)
	if nameChild != types.InvalidNodeID {
		p.attachChildren(id, []types.NodeID{nameChild, value})
	} else {
		p.attachChildren(id, []types.NodeID{value})
	}
	return id, true
}

// parseArgumentList parses `(expr, expr, ...)`, producing a single
// ARGUMENT_LIST node wrapping the argument expressions (used by method
// invocations, object creation, and explicit constructor invocations).
func (p *Parser) parseArgumentList() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	if _, ok := p.expect(lexer.LParen, "'(' to open argument list"); !ok {
		return types.InvalidNodeID, false
	}

	children := p.childStack(4)
	defer p.releaseChildStack(children)

	for !p.at(lexer.RParen) && !p.atEOF() {
		arg, ok := p.parseExpression()
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
	if _, ok := p.expect(lexer.RParen, "')' to close argument list"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ArgumentList, start, end)
	p.attachChildren(id, children)
	return id, true
}
