package parser

import (
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseBlock parses `{ statement* }` (spec "Statements": block).
func (p *Parser) parseBlock() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	if _, ok := p.expect(lexer.LBrace, "'{' to open block"); !ok {
		return types.InvalidNodeID, false
	}

	children := p.childStack(8)
	defer p.releaseChildStack(children)

	for !p.at(lexer.RBrace) && !p.atEOF() {
		if p.hasFatal() {
			return types.InvalidNodeID, false
		}
		stmt, ok := p.parseStatement()
		if ok {
			children = append(children, stmt)
		} else {
			p.resync(lexer.Semi, lexer.RBrace)
			if p.at(lexer.Semi) {
				p.advance()
			}
		}
	}
	if _, ok := p.expect(lexer.RBrace, "'}' to close block"); !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.Block, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseStatement dispatches a single statement (spec "Statements").
func (p *Parser) parseStatement() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	switch {
	case p.at(lexer.LBrace):
		return p.parseBlock()
	case p.at(lexer.KwIf):
		return p.parseIfStatement()
	case p.at(lexer.KwWhile):
		return p.parseWhileStatement()
	case p.at(lexer.KwDo):
		return p.parseDoWhileStatement()
	case p.at(lexer.KwFor):
		return p.parseForStatement()
	case p.at(lexer.KwSwitch):
		return p.parseSwitchStatement()
	case p.at(lexer.KwReturn):
		return p.parseReturnStatement()
	case p.at(lexer.KwThrow):
		return p.parseThrowStatement()
	case p.at(lexer.KwBreak):
		return p.parseBreakOrContinue(nodekind.BreakStatement)
	case p.at(lexer.KwContinue):
		return p.parseBreakOrContinue(nodekind.ContinueStatement)
	case p.at(lexer.KwTry):
		return p.parseTryStatement()
	case p.at(lexer.KwSynchronized):
		return p.parseSynchronizedStatement()
	case p.at(lexer.KwAssert):
		return p.parseAssertStatement()
	case p.at(lexer.Semi):
		start := p.current().End
		p.advance()
		return p.allocate(nodekind.EmptyStatement, start, start), true
	case p.at(lexer.KwClass), p.at(lexer.KwInterface), p.at(lexer.KwEnum),
		p.at(lexer.At) && p.peek(1).Kind == lexer.KwInterface, p.isRecordDeclarationStart():
		return p.parseTypeDeclaration()
	case p.isYieldStatementStart():
		return p.parseYieldStatement()
	case p.at(lexer.IDENTIFIER) && p.peek(1).Kind == lexer.Colon:
		return p.parseLabeledStatement()
	default:
		return p.parseLocalVarOrExpressionStatement()
	}
}

func (p *Parser) parseIfStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'if'
	if _, ok := p.expect(lexer.LParen, "'(' after 'if'"); !ok {
		return types.InvalidNodeID, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' after if condition"); !ok {
		return types.InvalidNodeID, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return types.InvalidNodeID, false
	}

	children := p.childStack(3)
	defer p.releaseChildStack(children)
	children = append(children, cond, then)

	if p.at(lexer.KwElse) {
		p.advance()
		els, ok := p.parseStatement()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, els)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.IfStatement, start, end)
	p.attachChildren(id, children)
	return id, true
}

func (p *Parser) parseWhileStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'while'
	if _, ok := p.expect(lexer.LParen, "'(' after 'while'"); !ok {
		return types.InvalidNodeID, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' after while condition"); !ok {
		return types.InvalidNodeID, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.WhileStatement, start, end)
	p.attachChildren(id, []types.NodeID{cond, body})
	return id, true
}

func (p *Parser) parseDoWhileStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'do'
	body, ok := p.parseStatement()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.KwWhile, "'while' after do-block"); !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.LParen, "'(' after 'while'"); !ok {
		return types.InvalidNodeID, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' after do-while condition"); !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.Semi, "';' after do-while statement"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.DoWhileStatement, start, end)
	p.attachChildren(id, []types.NodeID{body, cond})
	return id, true
}

// parseForStatement parses both the classic three-clause for loop and
// the enhanced for-each loop, disambiguated by whether a `:` follows
// the loop variable (spec "Statements": "for (classic + enhanced)").
func (p *Parser) parseForStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'for'
	if _, ok := p.expect(lexer.LParen, "'(' after 'for'"); !ok {
		return types.InvalidNodeID, false
	}

	if p.isEnhancedForStart() {
		return p.parseEnhancedForRest(start)
	}

	children := p.childStack(8)
	defer p.releaseChildStack(children)

	if !p.at(lexer.Semi) {
		if p.isLocalVarDeclStart() {
			init, ok := p.parseLocalVariableDeclaration(false)
			if !ok {
				return types.InvalidNodeID, false
			}
			children = append(children, init)
		} else {
			for {
				e, ok := p.parseExpression()
				if !ok {
					return types.InvalidNodeID, false
				}
				children = append(children, e)
				if p.at(lexer.Comma) {
					p.advance()
					continue
				}
				break
			}
			if _, ok := p.expect(lexer.Semi, "';' after for-init"); !ok {
				return types.InvalidNodeID, false
			}
		}
	} else {
		p.advance()
	}

	if !p.at(lexer.Semi) {
		cond, ok := p.parseExpression()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, cond)
	}
	if _, ok := p.expect(lexer.Semi, "';' after for-condition"); !ok {
		return types.InvalidNodeID, false
	}

	if !p.at(lexer.RParen) {
		for {
			e, ok := p.parseExpression()
			if !ok {
				return types.InvalidNodeID, false
			}
			children = append(children, e)
			if p.at(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, ok := p.expect(lexer.RParen, "')' after for-update"); !ok {
		return types.InvalidNodeID, false
	}

	body, ok := p.parseStatement()
	if !ok {
		return types.InvalidNodeID, false
	}
	children = append(children, body)

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ForStatement, start, end)
	p.attachChildren(id, children)
	return id, true
}

// isEnhancedForStart scans the loop header without consuming tokens to
// tell `for (Type name : expr)` apart from the classic form.
func (p *Parser) isEnhancedForStart() bool {
	i := p.pos
	if p.tokens[i].Kind == lexer.KwFinal {
		i++
	}
	for p.tokens[i].Kind == lexer.At {
		depth := 0
		for ; i < len(p.tokens); i++ {
			if p.tokens[i].Kind == lexer.LParen {
				depth++
			} else if p.tokens[i].Kind == lexer.RParen {
				depth--
				if depth == 0 {
					i++
					break
				}
			} else if depth == 0 && p.tokens[i].Kind != lexer.At && p.tokens[i].Kind != lexer.IDENTIFIER && p.tokens[i].Kind != lexer.Dot {
				break
			}
		}
	}
	end := p.scanTypeTokens(i)
	if end < 0 {
		return false
	}
	if p.tokens[end].Kind != lexer.IDENTIFIER {
		return false
	}
	return end+1 < len(p.tokens) && p.tokens[end+1].Kind == lexer.Colon
}

// scanTypeTokens returns the token index just past a type reference
// starting at i, or -1 if no type starts there. It does not consume
// tokens.
func (p *Parser) scanTypeTokens(i int) int {
	if i >= len(p.tokens) {
		return -1
	}
	if primitiveKeywords[p.tokens[i].Kind] {
		i++
	} else if p.tokens[i].Kind == lexer.IDENTIFIER {
		i++
		for p.tokens[i].Kind == lexer.Dot && i+1 < len(p.tokens) && p.tokens[i+1].Kind == lexer.IDENTIFIER {
			i += 2
		}
		if p.tokens[i].Kind == lexer.OpLt {
			depth := 0
			for i < len(p.tokens) {
				switch p.tokens[i].Kind {
				case lexer.OpLt:
					depth++
				case lexer.OpGt:
					depth--
				case lexer.OpShr:
					depth -= 2
				case lexer.Semi, lexer.LBrace, lexer.EOF:
					return -1
				}
				i++
				if depth <= 0 {
					break
				}
			}
		}
	} else {
		return -1
	}
	for p.tokens[i].Kind == lexer.LBracket && i+1 < len(p.tokens) && p.tokens[i+1].Kind == lexer.RBracket {
		i += 2
	}
	return i
}

func (p *Parser) parseEnhancedForRest(start int) (types.NodeID, bool) {
	mods := p.parseModifiers()
	typ, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}
	nameTok, ok := p.expect(lexer.IDENTIFIER, "loop variable name")
	if !ok {
		return types.InvalidNodeID, false
	}
	varStart := p.startOr(mods)
	nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
	varID := p.allocate(nodekind.LocalVariableDeclaration, varStart, nameTok.End)
	p.attachChildren(varID, append(append([]types.NodeID{}, mods.annotations...), typ, nameChild))

	if _, ok := p.expect(lexer.Colon, "':' in enhanced for"); !ok {
		return types.InvalidNodeID, false
	}
	iterable, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' after enhanced for header"); !ok {
		return types.InvalidNodeID, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.EnhancedForStatement, start, end)
	p.attachChildren(id, []types.NodeID{varID, iterable, body})
	return id, true
}

func (p *Parser) parseReturnStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'return'
	var value types.NodeID = types.InvalidNodeID
	if !p.at(lexer.Semi) {
		v, ok := p.parseExpression()
		if !ok {
			return types.InvalidNodeID, false
		}
		value = v
	}
	if _, ok := p.expect(lexer.Semi, "';' after return statement"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ReturnStatement, start, end)
	if value != types.InvalidNodeID {
		p.attachChildren(id, []types.NodeID{value})
	}
	return id, true
}

func (p *Parser) parseThrowStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'throw'
	value, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.Semi, "';' after throw statement"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ThrowStatement, start, end)
	p.attachChildren(id, []types.NodeID{value})
	return id, true
}

func (p *Parser) parseBreakOrContinue(kind nodekind.Kind) (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'break'/'continue'
	if p.at(lexer.IDENTIFIER) {
		p.advance() // label
	}
	if _, ok := p.expect(lexer.Semi, "';' after statement"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	return p.allocate(kind, start, end), true
}

func (p *Parser) parseSynchronizedStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'synchronized'
	if _, ok := p.expect(lexer.LParen, "'(' after 'synchronized'"); !ok {
		return types.InvalidNodeID, false
	}
	lock, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' after synchronized lock"); !ok {
		return types.InvalidNodeID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.SynchronizedStatement, start, end)
	p.attachChildren(id, []types.NodeID{lock, body})
	return id, true
}

func (p *Parser) parseAssertStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'assert'
	cond, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	children := p.childStack(2)
	defer p.releaseChildStack(children)
	children = append(children, cond)

	if p.at(lexer.Colon) {
		p.advance()
		msg, ok := p.parseExpression()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, msg)
	}
	if _, ok := p.expect(lexer.Semi, "';' after assert statement"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.AssertStatement, start, end)
	p.attachChildren(id, children)
	return id, true
}

func (p *Parser) isYieldStatementStart() bool {
	if !p.at(lexer.IDENTIFIER) {
		return false
	}
	if p.buf.Slice(p.current().Start, p.current().End) != "yield" {
		return false
	}
	switch p.peek(1).Kind {
	case lexer.Semi, lexer.Dot, lexer.LParen, lexer.LBracket, lexer.OpEq,
		lexer.OpPlusPlus, lexer.OpMinusMinus, lexer.Colon:
		return false
	default:
		return true
	}
}

func (p *Parser) parseYieldStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // 'yield'
	value, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.Semi, "';' after yield statement"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.YieldStatement, start, end)
	p.attachChildren(id, []types.NodeID{value})
	return id, true
}

func (p *Parser) parseLabeledStatement() (types.NodeID, bool) {
	start := p.offset()
	p.advance() // label identifier
	p.advance() // ':'
	stmt, ok := p.parseStatement()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.LabeledStatement, start, end)
	p.attachChildren(id, []types.NodeID{stmt})
	return id, true
}

// parseLocalVarOrExpressionStatement disambiguates a local variable
// declaration from an expression statement by scanning ahead (spec
// §4.4 ambiguity resolutions generalize to this ambiguity as well:
// neither arena nodes nor the cursor are committed until the shape is
// known).
func (p *Parser) parseLocalVarOrExpressionStatement() (types.NodeID, bool) {
	if p.isLocalVarDeclStart() {
		return p.parseLocalVariableDeclaration(true)
	}
	start := p.offset()
	expr, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.Semi, "';' after expression statement"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ExpressionStatement, start, end)
	p.attachChildren(id, []types.NodeID{expr})
	return id, true
}

// isLocalVarDeclStart scans ahead, without consuming tokens, for
// `[final] [@Annotation]* Type identifier` or `var identifier`.
func (p *Parser) isLocalVarDeclStart() bool {
	i := p.pos
	for {
		if p.tokens[i].Kind == lexer.KwFinal {
			i++
			continue
		}
		if p.tokens[i].Kind == lexer.At {
			depth := 0
			j := i + 1
			if j < len(p.tokens) && p.tokens[j].Kind == lexer.IDENTIFIER {
				j++
				for p.tokens[j].Kind == lexer.Dot && j+1 < len(p.tokens) && p.tokens[j+1].Kind == lexer.IDENTIFIER {
					j += 2
				}
			}
			if j < len(p.tokens) && p.tokens[j].Kind == lexer.LParen {
				depth++
				j++
				for depth > 0 && j < len(p.tokens) {
					switch p.tokens[j].Kind {
					case lexer.LParen:
						depth++
					case lexer.RParen:
						depth--
					case lexer.EOF:
						return false
					}
					j++
				}
			}
			i = j
			continue
		}
		break
	}

	if p.tokens[i].Kind == lexer.IDENTIFIER && p.buf.Slice(p.tokens[i].Start, p.tokens[i].End) == "var" {
		return i+1 < len(p.tokens) && p.tokens[i+1].Kind == lexer.IDENTIFIER
	}

	end := p.scanTypeTokens(i)
	if end < 0 {
		return false
	}
	return end < len(p.tokens) && p.tokens[end].Kind == lexer.IDENTIFIER
}

// parseLocalVariableDeclaration parses one or more declarators sharing
// a type, producing a LOCAL_VARIABLE_DECLARATION node. When
// consumeSemi is false, the caller (a classic for-loop header) consumes
// the terminating token itself.
func (p *Parser) parseLocalVariableDeclaration(consumeSemi bool) (types.NodeID, bool) {
	mods := p.parseModifiers()
	start := p.startOr(mods)

	var typ types.NodeID
	var ok bool
	if p.at(lexer.IDENTIFIER) && p.buf.Slice(p.current().Start, p.current().End) == "var" {
		varTok := p.current()
		p.advance()
		typ = p.allocate(nodekind.ReferenceType, varTok.Start, varTok.End)
	} else {
		typ, ok = p.parseType()
		if !ok {
			return types.InvalidNodeID, false
		}
	}

	children := p.childStack(4)
	defer p.releaseChildStack(children)
	children = append(children, mods.annotations...)
	children = append(children, typ)

	nameTok, ok := p.expect(lexer.IDENTIFIER, "variable name")
	if !ok {
		return types.InvalidNodeID, false
	}
	decl, ok := p.parseVariableDeclaratorRest(nameTok)
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

	if consumeSemi {
		if _, ok := p.expect(lexer.Semi, "';' after local variable declaration"); !ok {
			return types.InvalidNodeID, false
		}
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.LocalVariableDeclaration, start, end)
	p.attachChildren(id, children)
	return id, true
}
