package parser

import (
	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseCompilationUnit parses the top-level production (spec §4.4):
// an optional package declaration, zero or more import declarations,
// zero or more type declarations. A compact source file (version-gated,
// spec §4.2) additionally permits top-level member declarations with
// no enclosing type; this parser recognizes that shape when a method
// or field declaration appears where a type declaration was expected.
func (p *Parser) parseCompilationUnit() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := 0
	children := p.childStack(8)
	defer p.releaseChildStack(children)

	if pkg, ok := p.tryParsePackageDeclaration(); ok {
		children = append(children, pkg)
	}

	for p.at(lexer.KwImport) {
		imp, ok := types.InvalidNodeID, false
		if id, matched, strategyOK := p.tryStrategy(langver.TopLevel); matched {
			imp, ok = id, strategyOK
		} else {
			imp, ok = p.parseImportDeclaration()
		}
		if ok {
			children = append(children, imp)
		} else {
			p.resync(lexer.Semi, lexer.KwImport, lexer.EOF)
			if p.at(lexer.Semi) {
				p.advance()
			}
		}
		if p.hasFatal() {
			return types.InvalidNodeID, false
		}
	}

	for !p.atEOF() {
		if p.hasFatal() {
			return types.InvalidNodeID, false
		}
		if p.at(lexer.Semi) {
			p.advance() // stray top-level semicolon
			continue
		}
		if id, ok := p.parseTypeOrCompactMember(); ok {
			children = append(children, id)
		} else {
			p.resync(lexer.KwClass, lexer.KwInterface, lexer.KwEnum, lexer.At, lexer.EOF)
		}
	}

	end := p.buf.Len()
	root := p.allocate(nodekind.CompilationUnit, start, end)
	p.attachChildren(root, children)
	return root, true
}

// tryParsePackageDeclaration parses `package` qualifiedName `;` if
// present at the current position.
func (p *Parser) tryParsePackageDeclaration() (types.NodeID, bool) {
	if !p.at(lexer.KwPackage) {
		return types.InvalidNodeID, false
	}
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // 'package'

	nameChild, text := p.qualifiedName()
	handle := p.arena.InternString(text)
	name, _ := p.arena.InternedString(handle)

	end := p.tokens[p.pos].End
	if _, ok := p.expect(lexer.Semi, "';' after package declaration"); !ok {
		p.resync(lexer.Semi, lexer.KwImport, lexer.KwClass, lexer.EOF)
		if p.at(lexer.Semi) {
			end = p.current().End
			p.advance()
		}
	}

	id := p.allocateWithAttr(nodekind.PackageDeclaration, start, end,
		arena.PackageAttribute{QualifiedName: name, NameHandle: handle})
	p.attachChildren(id, []types.NodeID{nameChild})
	return id, true
}

// parseImportDeclaration parses `import [static] qualifiedName[.*] ;`
// (spec §8.3 S3, S4).
func (p *Parser) parseImportDeclaration() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // 'import'

	isStatic := false
	if p.at(lexer.KwStatic) {
		isStatic = true
		p.advance()
	}

	nameChild, text := p.importTarget()
	handle := p.arena.InternString(text)
	name, _ := p.arena.InternedString(handle)

	end := p.tokens[p.pos].End
	if _, ok := p.expect(lexer.Semi, "';' after import declaration"); !ok {
		return types.InvalidNodeID, false
	}
	end = p.tokens[p.pos-1].End

	kind := nodekind.ImportDeclaration
	if isStatic {
		kind = nodekind.StaticImportDeclaration
	}
	id := p.allocateWithAttr(kind, start, end, arena.ImportAttribute{QualifiedName: name, NameHandle: handle, IsStatic: isStatic})
	p.attachChildren(id, []types.NodeID{nameChild})
	return id, true
}

// parseModuleImportDeclaration parses `import module Name;` (spec
// §4.2, §4.5 "module import declarations"). Unlike a type or static
// import, a module import names a module rather than a package member,
// but shares the qualified-name/semicolon shape, so it reuses
// ImportAttribute.
func (p *Parser) parseModuleImportDeclaration() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // 'import'
	p.advance() // 'module'

	nameChild, text := p.qualifiedName()
	handle := p.arena.InternString(text)
	name, _ := p.arena.InternedString(handle)

	end := p.tokens[p.pos].End
	if _, ok := p.expect(lexer.Semi, "';' after module import declaration"); !ok {
		return types.InvalidNodeID, false
	}
	end = p.tokens[p.pos-1].End

	id := p.allocateWithAttr(nodekind.ModuleImportDeclaration, start, end,
		arena.ImportAttribute{QualifiedName: name, NameHandle: handle})
	p.attachChildren(id, []types.NodeID{nameChild})
	return id, true
}

// parseTypeOrCompactMember dispatches a top-level declaration: a type
// declaration (class/interface/enum/record/annotation), or — in a
// compact source file — a top-level method/field declaration (spec
// §4.4 "compact source file").
func (p *Parser) parseTypeOrCompactMember() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	mods := p.parseModifiers()
	return p.parseTypeDeclarationBody(mods)
}

// parseTypeDeclaration parses a single nested or top-level type
// declaration, including its modifiers/annotations.
func (p *Parser) parseTypeDeclaration() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	mods := p.parseModifiers()
	return p.parseTypeDeclarationBody(mods)
}

func (p *Parser) parseTypeDeclarationBody(mods modifiers) (types.NodeID, bool) {
	switch {
	case p.at(lexer.KwClass):
		return p.parseClassDeclaration(mods)
	case p.at(lexer.At) && p.peek(1).Kind == lexer.KwInterface:
		return p.parseAnnotationTypeDeclaration(mods)
	case p.at(lexer.KwInterface):
		return p.parseInterfaceOrAnnotationDeclaration(mods)
	case p.at(lexer.KwEnum):
		return p.parseEnumDeclaration(mods)
	case p.isRecordDeclarationStart():
		return p.parseRecordDeclaration(mods)
	default:
		// Compact source file (spec §4.4, version-gated §4.2): treat
		// as a member of the implicit unnamed class, sharing member
		// parsing with an ordinary class body. Only admitted when the
		// compact-source-file strategy matches the configured version.
		p.pendingMods = mods
		if id, matched, ok := p.tryStrategy(langver.TopLevel); matched {
			if !ok {
				return types.InvalidNodeID, false
			}
			return id, true
		}
		p.errorf("expected a type declaration (compact source files require language version %d or later)",
			int(langver.CompactSourceMinVersion))
		return types.InvalidNodeID, false
	}
}

func (p *Parser) isRecordDeclarationStart() bool {
	if p.current().Kind != lexer.IDENTIFIER {
		return false
	}
	text := p.buf.Slice(p.current().Start, p.current().End)
	if text != "record" {
		return false
	}
	return p.peek(1).Kind == lexer.IDENTIFIER &&
		(p.peek(2).Kind == lexer.LParen)
}

// modifiers is the set of non-annotation modifier keywords consumed
// before a declaration, plus any annotations attached to it (spec's
// node catalog has no MODIFIERS kind; annotations are the only
// modifier-position construct that becomes its own node).
type modifiers struct {
	isStatic, isFinal, isAbstract bool
	annotations                   []types.NodeID
	start                         int
	hasStart                     bool
}

func (p *Parser) parseModifiers() modifiers {
	var mods modifiers
	for {
		if p.at(lexer.At) && p.peek(1).Kind != lexer.KwInterface {
			if !mods.hasStart {
				mods.start = p.offset()
				mods.hasStart = true
			}
			if ann, ok := p.parseAnnotation(); ok {
				mods.annotations = append(mods.annotations, ann)
			}
			continue
		}
		switch p.current().Kind {
		case lexer.KwPublic, lexer.KwPrivate, lexer.KwProtected, lexer.KwNative,
			lexer.KwStrictfp, lexer.KwTransient, lexer.KwVolatile, lexer.KwSynchronized,
			lexer.KwDefault, lexer.KwConst:
			if !mods.hasStart {
				mods.start = p.offset()
				mods.hasStart = true
			}
			p.advance()
		case lexer.KwStatic:
			if !mods.hasStart {
				mods.start = p.offset()
				mods.hasStart = true
			}
			mods.isStatic = true
			p.advance()
		case lexer.KwFinal:
			if !mods.hasStart {
				mods.start = p.offset()
				mods.hasStart = true
			}
			mods.isFinal = true
			p.advance()
		case lexer.KwAbstract:
			if !mods.hasStart {
				mods.start = p.offset()
				mods.hasStart = true
			}
			mods.isAbstract = true
			p.advance()
		case lexer.IDENTIFIER:
			text := p.buf.Slice(p.current().Start, p.current().End)
			if text == "sealed" || text == "non-sealed" {
				if !mods.hasStart {
					mods.start = p.offset()
					mods.hasStart = true
				}
				p.advance()
				continue
			}
			return mods
		default:
			return mods
		}
	}
}

func (p *Parser) startOr(mods modifiers) int {
	if mods.hasStart {
		return mods.start
	}
	return p.offset()
}
