package parser

import (
	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseClassDeclaration parses `class Name [<TypeParams>] [extends T]
// [implements T,...] [permits T,...] ClassBody` (spec §4.4).
func (p *Parser) parseClassDeclaration(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)
	p.advance() // 'class'

	nameTok, ok := p.expect(lexer.IDENTIFIER, "class name")
	if !ok {
		return types.InvalidNodeID, false
	}
	name := p.buf.Slice(nameTok.Start, nameTok.End)

	p.skipTypeParametersIfPresent()

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)

	if p.at(lexer.KwExtends) {
		p.advance()
		if t, ok := p.parseType(); ok {
			children = append(children, t)
		}
	}
	if p.at(lexer.KwImplements) {
		p.advance()
		children = append(children, p.parseTypeList()...)
	}
	p.skipPermitsClauseIfPresent()

	p.typeNameStack = append(p.typeNameStack, name)
	members, ok := p.parseClassBody()
	p.typeNameStack = p.typeNameStack[:len(p.typeNameStack)-1]
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, members...)

	end := p.tokens[p.pos-1].End
	id := p.allocateWithAttr(nodekind.ClassDeclaration, start, end, arena.TypeDeclarationAttribute{Name: name})
	p.attachChildren(id, children)
	return id, true
}

// parseInterfaceOrAnnotationDeclaration parses a plain `interface Name
// ...` declaration and is entered on KwInterface. parseModifiers leaves
// an `@` that precedes `interface` unconsumed, and
// parseTypeDeclarationBody routes that annotation-type case
// (`@interface Name { elements }`) to parseAnnotationTypeDeclaration.
func (p *Parser) parseInterfaceOrAnnotationDeclaration(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)
	p.advance() // 'interface'

	nameTok, ok := p.expect(lexer.IDENTIFIER, "interface name")
	if !ok {
		return types.InvalidNodeID, false
	}
	name := p.buf.Slice(nameTok.Start, nameTok.End)
	p.skipTypeParametersIfPresent()

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)

	if p.at(lexer.KwExtends) {
		p.advance()
		children = append(children, p.parseTypeList()...)
	}
	p.skipPermitsClauseIfPresent()

	p.typeNameStack = append(p.typeNameStack, name)
	members, ok := p.parseClassBody()
	p.typeNameStack = p.typeNameStack[:len(p.typeNameStack)-1]
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, members...)

	end := p.tokens[p.pos-1].End
	id := p.allocateWithAttr(nodekind.InterfaceDeclaration, start, end, arena.TypeDeclarationAttribute{Name: name})
	p.attachChildren(id, children)
	return id, true
}

// parseAnnotationTypeDeclaration parses `@interface Name { elements }`.
func (p *Parser) parseAnnotationTypeDeclaration(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)
	p.advance() // '@'
	p.advance() // 'interface'

	nameTok, ok := p.expect(lexer.IDENTIFIER, "annotation type name")
	if !ok {
		return types.InvalidNodeID, false
	}
	name := p.buf.Slice(nameTok.Start, nameTok.End)

	if _, ok := p.expect(lexer.LBrace, "'{' to open annotation body"); !ok {
		return types.InvalidNodeID, false
	}

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)

	for !p.at(lexer.RBrace) && !p.atEOF() {
		if p.hasFatal() {
			return types.InvalidNodeID, false
		}
		if p.at(lexer.Semi) {
			p.advance()
			continue
		}
		if el, ok := p.parseAnnotationElement(); ok {
			children = append(children, el)
		} else {
			p.resync(lexer.Semi, lexer.RBrace)
		}
	}
	if _, ok := p.expect(lexer.RBrace, "'}' to close annotation body"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocateWithAttr(nodekind.AnnotationDeclaration, start, end, arena.TypeDeclarationAttribute{Name: name})
	p.attachChildren(id, children)
	return id, true
}

// parseAnnotationElement parses `Type name() [default expr] ;`.
func (p *Parser) parseAnnotationElement() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.parseModifiers()
	typ, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.IDENTIFIER, "element name"); !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.LParen, "'(' after element name"); !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' to close element parameter list"); !ok {
		return types.InvalidNodeID, false
	}

	children := p.childStack(2)
	defer p.releaseChildStack(children)
	children = append(children, typ)

	if p.at(lexer.KwDefault) {
		p.advance()
		if def, ok := p.parseExpression(); ok {
			children = append(children, def)
		}
	}
	if _, ok := p.expect(lexer.Semi, "';' after annotation element"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.AnnotationElement, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseEnumDeclaration parses `enum Name [implements T,...] { const,...
// [; member*] }`.
func (p *Parser) parseEnumDeclaration(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)
	p.advance() // 'enum'

	nameTok, ok := p.expect(lexer.IDENTIFIER, "enum name")
	if !ok {
		return types.InvalidNodeID, false
	}
	name := p.buf.Slice(nameTok.Start, nameTok.End)

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)

	if p.at(lexer.KwImplements) {
		p.advance()
		children = append(children, p.parseTypeList()...)
	}

	if _, ok := p.expect(lexer.LBrace, "'{' to open enum body"); !ok {
		return types.InvalidNodeID, false
	}

	p.typeNameStack = append(p.typeNameStack, name)

	for p.at(lexer.IDENTIFIER) || p.at(lexer.At) {
		if c, ok := p.parseEnumConstant(); ok {
			children = append(children, c)
		}
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if p.at(lexer.Semi) {
		p.advance()
		for !p.at(lexer.RBrace) && !p.atEOF() {
			if p.hasFatal() {
				p.typeNameStack = p.typeNameStack[:len(p.typeNameStack)-1]
				return types.InvalidNodeID, false
			}
			if p.at(lexer.Semi) {
				p.advance()
				continue
			}
			mmods := p.parseModifiers()
			if m, ok := p.parseMember(mmods); ok {
				children = append(children, m)
			} else {
				p.resync(lexer.Semi, lexer.RBrace)
			}
		}
	}
	p.typeNameStack = p.typeNameStack[:len(p.typeNameStack)-1]

	if _, ok := p.expect(lexer.RBrace, "'}' to close enum body"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocateWithAttr(nodekind.EnumDeclaration, start, end, arena.TypeDeclarationAttribute{Name: name})
	p.attachChildren(id, children)
	return id, true
}

func (p *Parser) parseEnumConstant() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	mods := p.parseModifiers()
	start := p.startOr(mods)
	if !p.at(lexer.IDENTIFIER) {
		p.errorf("expected enum constant name")
		return types.InvalidNodeID, false
	}
	p.advance()

	children := p.childStack(4)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)

	if p.at(lexer.LParen) {
		args, ok := p.parseArgumentList()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, args)
	}
	if p.at(lexer.LBrace) {
		members, ok := p.parseClassBody()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, members...)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.EnumConstant, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseRecordDeclaration parses `record Name (components) [implements
// T,...] RecordBody` (spec §4.4, "Records have a header parameter
// list whose components become both fields and accessors").
func (p *Parser) parseRecordDeclaration(mods modifiers) (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.startOr(mods)
	p.advance() // 'record' (contextual keyword, lexed as IDENTIFIER)

	nameTok, ok := p.expect(lexer.IDENTIFIER, "record name")
	if !ok {
		return types.InvalidNodeID, false
	}
	name := p.buf.Slice(nameTok.Start, nameTok.End)
	p.skipTypeParametersIfPresent()

	children := p.childStack(8)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)

	if _, ok := p.expect(lexer.LParen, "'(' to open record header"); !ok {
		return types.InvalidNodeID, false
	}
	for !p.at(lexer.RParen) && !p.atEOF() {
		comp, ok := p.parseRecordComponent()
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
	if _, ok := p.expect(lexer.RParen, "')' to close record header"); !ok {
		return types.InvalidNodeID, false
	}

	if p.at(lexer.KwImplements) {
		p.advance()
		children = append(children, p.parseTypeList()...)
	}

	p.typeNameStack = append(p.typeNameStack, name)
	members, ok := p.parseClassBody()
	p.typeNameStack = p.typeNameStack[:len(p.typeNameStack)-1]
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, members...)

	end := p.tokens[p.pos-1].End
	id := p.allocateWithAttr(nodekind.RecordDeclaration, start, end, arena.TypeDeclarationAttribute{Name: name})
	p.attachChildren(id, children)
	return id, true
}

func (p *Parser) parseRecordComponent() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	typ, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}
	nameTok, ok := p.expect(lexer.IDENTIFIER, "record component name")
	if !ok {
		return types.InvalidNodeID, false
	}
	end := nameTok.End
	id := p.allocate(nodekind.RecordComponent, start, end)
	p.attachChildren(id, []types.NodeID{typ})
	return id, true
}

// parseClassBody parses `{ member* }` and returns the member node ids
// (the caller attaches them to the enclosing declaration).
func (p *Parser) parseClassBody() ([]types.NodeID, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.exit()

	if _, ok := p.expect(lexer.LBrace, "'{' to open type body"); !ok {
		return nil, false
	}

	var members []types.NodeID
	for !p.at(lexer.RBrace) && !p.atEOF() {
		if p.hasFatal() {
			return nil, false
		}
		if p.at(lexer.Semi) {
			p.advance()
			continue
		}
		mods := p.parseModifiers()
		m, ok := p.parseMember(mods)
		if ok {
			members = append(members, m)
		} else {
			p.resync(lexer.Semi, lexer.RBrace)
		}
	}
	if _, ok := p.expect(lexer.RBrace, "'}' to close type body"); !ok {
		return nil, false
	}
	return members, true
}

func (p *Parser) parseTypeList() []types.NodeID {
	var out []types.NodeID
	for {
		t, ok := p.parseType()
		if !ok {
			return out
		}
		out = append(out, t)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return out
}

// skipTypeParametersIfPresent consumes a balanced `<...>` type
// parameter list without producing nodes: no TYPE_PARAMETER kind is in
// the node catalog, so this is a deliberate simplification (see
// DESIGN.md).
func (p *Parser) skipTypeParametersIfPresent() {
	if !p.at(lexer.OpLt) {
		return
	}
	depth := 0
	for !p.atEOF() {
		switch p.current().Kind {
		case lexer.OpLt:
			depth++
		case lexer.OpGt:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case lexer.OpShr:
			depth -= 2
			if depth <= 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// skipPermitsClauseIfPresent consumes `permits T, ...` without
// producing nodes: sealed-hierarchy permits lists are not part of the
// node catalog's declared attribute set (see DESIGN.md).
func (p *Parser) skipPermitsClauseIfPresent() {
	if p.current().Kind != lexer.IDENTIFIER {
		return
	}
	if p.buf.Slice(p.current().Start, p.current().End) != "permits" {
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
