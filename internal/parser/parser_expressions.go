package parser

import (
	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseExpression parses a full expression via precedence climbing
// (spec §4.4 "Expressions"), starting at the assignment level (the
// lowest precedence, and the only right-associative tier besides the
// ternary).
func (p *Parser) parseExpression() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()
	return p.parseAssignment()
}

var assignmentOps = map[lexer.Kind]bool{
	lexer.OpEq: true, lexer.OpPlusEq: true, lexer.OpMinusEq: true,
	lexer.OpStarEq: true, lexer.OpSlashEq: true, lexer.OpPercentEq: true,
	lexer.OpAmpEq: true, lexer.OpPipeEq: true, lexer.OpCaretEq: true,
	lexer.OpShlEq: true, lexer.OpShrEq: true, lexer.OpUshrEq: true,
}

func (p *Parser) parseAssignment() (types.NodeID, bool) {
	if lambda, ok := p.tryParseLambda(); ok {
		return lambda, true
	}

	start := p.offset()
	lhs, ok := p.parseConditional()
	if !ok {
		return types.InvalidNodeID, false
	}
	if !assignmentOps[p.current().Kind] {
		return lhs, true
	}
	p.advance()
	rhs, ok := p.parseAssignment()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.AssignmentExpression, start, end)
	p.attachChildren(id, []types.NodeID{lhs, rhs})
	return id, true
}

// tryParseLambda recognizes the lambda forms of spec "Expressions":
// no-parameter `() ->`, single unparenthesized parameter `x ->`, and
// parenthesized parameter list `(a, b) ->`, each with a block or
// expression body.
func (p *Parser) tryParseLambda() (types.NodeID, bool) {
	if p.at(lexer.IDENTIFIER) && p.peek(1).Kind == lexer.OpArrow {
		return p.parseLambda()
	}
	if p.at(lexer.LParen) && p.lambdaParamsAhead() {
		return p.parseLambda()
	}
	return types.InvalidNodeID, false
}

// lambdaParamsAhead scans forward from a '(' for its matching ')'
// followed by '->', without consuming any tokens.
func (p *Parser) lambdaParamsAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Kind == lexer.OpArrow
			}
		case lexer.Semi, lexer.LBrace, lexer.RBrace, lexer.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseLambda() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	params := p.childStack(4)
	defer p.releaseChildStack(params)

	if p.at(lexer.LParen) {
		p.advance()
		for !p.at(lexer.RParen) && !p.atEOF() {
			mods := p.parseModifiers()
			// An implicitly-typed lambda parameter is a bare identifier;
			// an explicitly-typed one is Type identifier. Disambiguate by
			// checking whether the identifier is immediately followed by
			// ',' or ')'.
			if p.at(lexer.IDENTIFIER) && (p.peek(1).Kind == lexer.Comma || p.peek(1).Kind == lexer.RParen) {
				nameTok := p.advance()
				id := p.allocate(nodekind.ParameterDeclaration, nameTok.Start, nameTok.End)
				p.attachChildren(id, mods.annotations)
				params = append(params, id)
			} else {
				param, ok := p.parseParameterDeclaration_inline(mods)
				if !ok {
					return types.InvalidNodeID, false
				}
				params = append(params, param)
			}
			if p.at(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, ok := p.expect(lexer.RParen, "')' to close lambda parameters"); !ok {
			return types.InvalidNodeID, false
		}
	} else {
		nameTok := p.advance()
		params = append(params, p.allocate(nodekind.ParameterDeclaration, nameTok.Start, nameTok.End))
	}

	if _, ok := p.expect(lexer.OpArrow, "'->' in lambda expression"); !ok {
		return types.InvalidNodeID, false
	}

	paramListStart := start
	if len(params) > 0 {
		paramListStart = p.arenaNodeStart(params[0])
	}
	paramListID := p.allocate(nodekind.LambdaParameters, paramListStart, p.tokens[p.pos-1].End)
	p.attachChildren(paramListID, params)

	var body types.NodeID
	var ok bool
	if p.at(lexer.LBrace) {
		body, ok = p.parseBlock()
	} else {
		body, ok = p.parseExpression()
	}
	if !ok {
		return types.InvalidNodeID, false
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.LambdaExpression, start, end)
	p.attachChildren(id, []types.NodeID{paramListID, body})
	return id, true
}

func (p *Parser) arenaNodeStart(id types.NodeID) int {
	n, err := p.arena.Node(id)
	if err != nil {
		return p.offset()
	}
	return n.Start
}

// parseParameterDeclaration_inline parses an explicitly-typed lambda
// parameter whose modifiers have already been consumed.
func (p *Parser) parseParameterDeclaration_inline(mods modifiers) (types.NodeID, bool) {
	start := p.startOr(mods)
	typ, ok := p.parseType()
	if !ok {
		return types.InvalidNodeID, false
	}
	nameTok, ok := p.expect(lexer.IDENTIFIER, "lambda parameter name")
	if !ok {
		return types.InvalidNodeID, false
	}
	name := p.buf.Slice(nameTok.Start, nameTok.End)
	end := nameTok.End
	id := p.allocateWithAttr(nodekind.ParameterDeclaration, start, end,
		paramAttrFor(name, mods))
	p.attachChildren(id, append(append([]types.NodeID{}, mods.annotations...), typ))
	return id, true
}

func (p *Parser) parseConditional() (types.NodeID, bool) {
	start := p.offset()
	cond, ok := p.parseLogicalOr()
	if !ok {
		return types.InvalidNodeID, false
	}
	if !p.at(lexer.Question) {
		return cond, true
	}
	p.advance()
	then, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.Colon, "':' in conditional expression"); !ok {
		return types.InvalidNodeID, false
	}
	els, ok := p.parseConditional()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ConditionalExpression, start, end)
	p.attachChildren(id, []types.NodeID{cond, then, els})
	return id, true
}

// binaryTier is one level of the binary-operator precedence ladder.
type binaryTier struct {
	ops  map[lexer.Kind]bool
	next func(*Parser) (types.NodeID, bool)
}

func (p *Parser) parseBinaryTier(t binaryTier) (types.NodeID, bool) {
	start := p.offset()
	lhs, ok := t.next(p)
	if !ok {
		return types.InvalidNodeID, false
	}
	for t.ops[p.current().Kind] {
		p.advance()
		rhs, ok := t.next(p)
		if !ok {
			return types.InvalidNodeID, false
		}
		end := p.tokens[p.pos-1].End
		id := p.allocate(nodekind.BinaryExpression, start, end)
		p.attachChildren(id, []types.NodeID{lhs, rhs})
		lhs = id
	}
	return lhs, true
}

func (p *Parser) parseLogicalOr() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpOrOr: true}, (*Parser).parseLogicalAnd})
}
func (p *Parser) parseLogicalAnd() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpAndAnd: true}, (*Parser).parseBitOr})
}
func (p *Parser) parseBitOr() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpPipe: true}, (*Parser).parseBitXor})
}
func (p *Parser) parseBitXor() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpCaret: true}, (*Parser).parseBitAnd})
}
func (p *Parser) parseBitAnd() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpAmp: true}, (*Parser).parseEquality})
}
func (p *Parser) parseEquality() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpEqEq: true, lexer.OpNotEq: true}, (*Parser).parseRelational})
}

// parseRelational handles <, >, <=, >=, and instanceof (with an
// optional pattern-variable binding, spec "Expressions": "instanceof
// with optional pattern variable").
func (p *Parser) parseRelational() (types.NodeID, bool) {
	start := p.offset()
	lhs, ok := p.parseShift()
	if !ok {
		return types.InvalidNodeID, false
	}
	for {
		switch {
		case p.at(lexer.KwInstanceof):
			p.advance()
			pattern, ok2 := p.parseTypeOrPattern()
			if !ok2 {
				return types.InvalidNodeID, false
			}
			end := p.tokens[p.pos-1].End
			id := p.allocate(nodekind.InstanceofExpression, start, end)
			p.attachChildren(id, []types.NodeID{lhs, pattern})
			lhs = id
		case p.at(lexer.OpLt), p.at(lexer.OpGt), p.at(lexer.OpLe), p.at(lexer.OpGe):
			p.advance()
			rhs, ok2 := p.parseShift()
			if !ok2 {
				return types.InvalidNodeID, false
			}
			end := p.tokens[p.pos-1].End
			id := p.allocate(nodekind.BinaryExpression, start, end)
			p.attachChildren(id, []types.NodeID{lhs, rhs})
			lhs = id
		default:
			return lhs, true
		}
	}
}

func (p *Parser) parseShift() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpShl: true, lexer.OpShr: true, lexer.OpUshr: true}, (*Parser).parseAdditive})
}
func (p *Parser) parseAdditive() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpPlus: true, lexer.OpMinus: true}, (*Parser).parseMultiplicative})
}
func (p *Parser) parseMultiplicative() (types.NodeID, bool) {
	return p.parseBinaryTier(binaryTier{map[lexer.Kind]bool{lexer.OpStar: true, lexer.OpSlash: true, lexer.OpPercent: true}, (*Parser).parseUnary})
}

var unaryPrefixOps = map[lexer.Kind]bool{
	lexer.OpPlus: true, lexer.OpMinus: true, lexer.OpBang: true, lexer.OpTilde: true,
	lexer.OpPlusPlus: true, lexer.OpMinusMinus: true,
}

// parseUnary handles prefix unary operators and the parenthesized
// cast-vs-expression ambiguity (spec §4.4: "a parenthesized type
// followed by a token that cannot start a binary operator is a cast").
func (p *Parser) parseUnary() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	if unaryPrefixOps[p.current().Kind] {
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return types.InvalidNodeID, false
		}
		end := p.tokens[p.pos-1].End
		id := p.allocate(nodekind.UnaryExpression, start, end)
		p.attachChildren(id, []types.NodeID{operand})
		return id, true
	}

	if p.at(lexer.LParen) && p.castAhead() {
		return p.parseCast()
	}

	return p.parsePostfix()
}

// castAhead reports whether the parenthesized construct at the cursor
// is a cast rather than a parenthesized expression, without consuming
// tokens. It recognizes a primitive type (always a cast) or a reference
// type whose following token cannot continue a binary expression.
func (p *Parser) castAhead() bool {
	i := p.pos + 1
	if i >= len(p.tokens) {
		return false
	}
	if primitiveKeywords[p.tokens[i].Kind] {
		return true
	}
	if p.tokens[i].Kind != lexer.IDENTIFIER {
		return false
	}
	depth := 0
	for i < len(p.tokens) {
		switch p.tokens[i].Kind {
		case lexer.LParen, lexer.LBracket:
			depth++
		case lexer.RParen:
			if depth == 0 {
				i++
				return p.castOperandFollows(i)
			}
			depth--
		case lexer.RBracket:
			depth--
		case lexer.Semi, lexer.LBrace, lexer.EOF:
			return false
		}
		i++
	}
	return false
}

// castOperandFollows reports whether the token at index i can start a
// unary expression operand, meaning the preceding ')' closed a cast.
func (p *Parser) castOperandFollows(i int) bool {
	if i >= len(p.tokens) {
		return false
	}
	switch p.tokens[i].Kind {
	case lexer.IDENTIFIER, lexer.KwThis, lexer.KwSuper, lexer.KwNew,
		lexer.IntLiteral, lexer.LongLiteral, lexer.FloatLiteral, lexer.DoubleLiteral,
		lexer.StringLiteral, lexer.TextBlockLiteral, lexer.CharLiteral,
		lexer.KwTrue, lexer.KwFalse, lexer.KwNull, lexer.LParen,
		lexer.OpBang, lexer.OpTilde:
		return true
	default:
		return false
	}
}

func (p *Parser) parseCast() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	p.advance() // '('

	var typ types.NodeID
	var ok bool
	if p.at(lexer.OpAmp) {
		typ, ok = p.parseIntersectionCastType()
	} else {
		typ, ok = p.parseIntersectionCastType()
	}
	if !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.RParen, "')' to close cast"); !ok {
		return types.InvalidNodeID, false
	}
	operand, ok := p.parseUnary()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.CastExpression, start, end)
	p.attachChildren(id, []types.NodeID{typ, operand})
	return id, true
}

// parsePostfix handles trailing ++/--, field access, array access,
// method invocation, and method references chained onto a primary
// expression.
func (p *Parser) parsePostfix() (types.NodeID, bool) {
	start := p.offset()
	expr, ok := p.parsePrimary()
	if !ok {
		return types.InvalidNodeID, false
	}

	for {
		switch {
		case p.at(lexer.Dot) && p.peek(1).Kind == lexer.IDENTIFIER && p.peek(2).Kind == lexer.LParen:
			p.advance()
			nameTok := p.advance()
			args, ok := p.parseArgumentList()
			if !ok {
				return types.InvalidNodeID, false
			}
			end := p.tokens[p.pos-1].End
			id := p.allocate(nodekind.MethodInvocation, start, end)
			nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
			p.attachChildren(id, []types.NodeID{expr, nameChild, args})
			expr = id

		case p.at(lexer.Dot) && p.peek(1).Kind == lexer.OpLt:
			// Explicit type-witness method invocation: `.<T> name(args)`.
			p.advance()
			if _, ok := p.parseTypeArguments(); !ok {
				return types.InvalidNodeID, false
			}
			nameTok, ok := p.expect(lexer.IDENTIFIER, "method name")
			if !ok {
				return types.InvalidNodeID, false
			}
			args, ok := p.parseArgumentList()
			if !ok {
				return types.InvalidNodeID, false
			}
			end := p.tokens[p.pos-1].End
			id := p.allocate(nodekind.MethodInvocation, start, end)
			nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
			p.attachChildren(id, []types.NodeID{expr, nameChild, args})
			expr = id

		case p.at(lexer.Dot) && p.peek(1).Kind == lexer.IDENTIFIER:
			p.advance()
			nameTok := p.advance()
			end := nameTok.End
			id := p.allocate(nodekind.FieldAccess, start, end)
			nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
			p.attachChildren(id, []types.NodeID{expr, nameChild})
			expr = id

		case p.at(lexer.Dot) && p.peek(1).Kind == lexer.KwThis:
			p.advance()
			end := p.current().End
			p.advance()
			id := p.allocate(nodekind.ThisExpression, start, end)
			p.attachChildren(id, []types.NodeID{expr})
			expr = id

		case p.at(lexer.Dot) && p.peek(1).Kind == lexer.KwNew:
			p.advance()
			inner, ok := p.parseObjectCreation(expr, start)
			if !ok {
				return types.InvalidNodeID, false
			}
			expr = inner

		case p.at(lexer.LBracket):
			p.advance()
			index, ok := p.parseExpression()
			if !ok {
				return types.InvalidNodeID, false
			}
			if _, ok := p.expect(lexer.RBracket, "']' to close array access"); !ok {
				return types.InvalidNodeID, false
			}
			end := p.tokens[p.pos-1].End
			id := p.allocate(nodekind.ArrayAccess, start, end)
			p.attachChildren(id, []types.NodeID{expr, index})
			expr = id

		case p.at(lexer.OpColonColon):
			p.advance()
			var nameEnd int
			if p.at(lexer.KwNew) {
				nameEnd = p.current().End
				p.advance()
			} else {
				nameTok, ok := p.expect(lexer.IDENTIFIER, "method reference name")
				if !ok {
					return types.InvalidNodeID, false
				}
				nameEnd = nameTok.End
			}
			end := nameEnd
			id := p.allocate(nodekind.MethodReference, start, end)
			p.attachChildren(id, []types.NodeID{expr})
			expr = id

		case p.at(lexer.OpPlusPlus), p.at(lexer.OpMinusMinus):
			end := p.current().End
			p.advance()
			id := p.allocate(nodekind.PostfixExpression, start, end)
			p.attachChildren(id, []types.NodeID{expr})
			expr = id

		default:
			return expr, true
		}
	}
}

// parsePrimary parses the innermost expression forms (spec
// "Expressions"): literals, this/super, parenthesized expressions,
// object/array creation, class literals, switch expressions, and
// identifier-rooted method invocations.
func (p *Parser) parsePrimary() (types.NodeID, bool) {
	if !p.enter() {
		return types.InvalidNodeID, false
	}
	defer p.exit()

	start := p.offset()
	switch {
	case p.isLiteral(p.current().Kind):
		return p.parseLiteral(), true

	case p.at(lexer.KwThis):
		end := p.current().End
		p.advance()
		if p.at(lexer.LParen) {
			args, ok := p.parseArgumentList()
			if !ok {
				return types.InvalidNodeID, false
			}
			end = p.tokens[p.pos-1].End
			id := p.allocate(nodekind.MethodInvocation, start, end)
			p.attachChildren(id, []types.NodeID{p.allocate(nodekind.ThisExpression, start, start), args})
			return id, true
		}
		return p.allocate(nodekind.ThisExpression, start, end), true

	case p.at(lexer.KwSuper):
		end := p.current().End
		p.advance()
		if p.at(lexer.LParen) {
			args, ok := p.parseArgumentList()
			if !ok {
				return types.InvalidNodeID, false
			}
			end = p.tokens[p.pos-1].End
			id := p.allocate(nodekind.MethodInvocation, start, end)
			p.attachChildren(id, []types.NodeID{p.allocate(nodekind.SuperExpression, start, start), args})
			return id, true
		}
		return p.allocate(nodekind.SuperExpression, start, end), true

	case p.at(lexer.KwNew):
		p.advance()
		return p.parseCreation(types.InvalidNodeID, start)

	case p.at(lexer.KwSwitch):
		return p.parseSwitchExpression()

	case p.at(lexer.LParen):
		p.advance()
		inner, ok := p.parseExpression()
		if !ok {
			return types.InvalidNodeID, false
		}
		if _, ok := p.expect(lexer.RParen, "')' to close parenthesized expression"); !ok {
			return types.InvalidNodeID, false
		}
		end := p.tokens[p.pos-1].End
		id := p.allocate(nodekind.ParenthesizedExpression, start, end)
		p.attachChildren(id, []types.NodeID{inner})
		return id, true

	case primitiveKeywords[p.current().Kind]:
		return p.parsePrimitiveClassLiteral()

	case p.at(lexer.IDENTIFIER):
		if id, matched, ok := p.tryStrategy(langver.Expression); matched {
			if !ok {
				return types.InvalidNodeID, false
			}
			return id, true
		}
		return p.parseIdentifierPrimary()

	default:
		p.errorf("expected an expression")
		return types.InvalidNodeID, false
	}
}

// parseStringTemplate parses a processor-prefixed template literal
// `Processor."..."` or `Processor."""..."""` as a single expression
// (spec §4.5 "string templates"), given that the caller has already
// confirmed the `identifier '.' (string|text-block)` shape.
func (p *Parser) parseStringTemplate() (types.NodeID, bool) {
	start := p.offset()
	procTok := p.advance() // processor identifier
	p.advance()            // '.'
	procChild := p.allocate(nodekind.Identifier, procTok.Start, procTok.End)
	litChild := p.parseLiteral()
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.StringTemplateExpression, start, end)
	p.attachChildren(id, []types.NodeID{procChild, litChild})
	return id, true
}

func (p *Parser) isLiteral(k lexer.Kind) bool {
	switch k {
	case lexer.IntLiteral, lexer.LongLiteral, lexer.FloatLiteral, lexer.DoubleLiteral,
		lexer.StringLiteral, lexer.TextBlockLiteral, lexer.CharLiteral,
		lexer.KwTrue, lexer.KwFalse, lexer.KwNull:
		return true
	default:
		return false
	}
}

func (p *Parser) parseLiteral() types.NodeID {
	tok := p.current()
	start, end := tok.Start, tok.End
	p.advance()

	var kind nodekind.Kind
	switch tok.Kind {
	case lexer.IntLiteral:
		kind = nodekind.IntegerLiteral
	case lexer.LongLiteral:
		kind = nodekind.LongLiteral
	case lexer.FloatLiteral:
		kind = nodekind.FloatLiteral
	case lexer.DoubleLiteral:
		kind = nodekind.DoubleLiteral
	case lexer.StringLiteral:
		kind = nodekind.StringLiteral
	case lexer.TextBlockLiteral:
		kind = nodekind.TextBlockLiteral
	case lexer.CharLiteral:
		kind = nodekind.CharLiteral
	case lexer.KwTrue, lexer.KwFalse:
		kind = nodekind.BooleanLiteral
	case lexer.KwNull:
		kind = nodekind.NullLiteral
	}
	return p.allocate(kind, start, end)
}

// parseIdentifierPrimary parses an identifier-rooted primary: a bare
// name, a method invocation `name(args)`, or the start of a qualified
// name chain that parsePostfix will extend with field accesses.
func (p *Parser) parseIdentifierPrimary() (types.NodeID, bool) {
	start := p.offset()
	nameTok := p.advance()

	if p.at(lexer.LParen) {
		args, ok := p.parseArgumentList()
		if !ok {
			return types.InvalidNodeID, false
		}
		end := p.tokens[p.pos-1].End
		id := p.allocate(nodekind.MethodInvocation, start, end)
		nameChild := p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End)
		p.attachChildren(id, []types.NodeID{nameChild, args})
		return id, true
	}

	return p.allocate(nodekind.Identifier, nameTok.Start, nameTok.End), true
}

// parseCreation parses the operand after `new`: object creation
// (including diamond generics and anonymous class bodies) or array
// creation (including array initializers). outer is the enclosing
// instance expression for a qualified inner-class creation
// (`outer.new Name(...)`), or types.InvalidNodeID when there is none.
func (p *Parser) parseCreation(outer types.NodeID, start int) (types.NodeID, bool) {
	witness := types.InvalidNodeID
	if p.at(lexer.OpLt) {
		w, ok := p.parseTypeArguments()
		if !ok {
			return types.InvalidNodeID, false
		}
		witness = w
	}

	typ, ok := p.parseCreationType()
	if !ok {
		return types.InvalidNodeID, false
	}

	if p.at(lexer.LBracket) && outer == types.InvalidNodeID {
		return p.parseArrayCreationRest(start, typ)
	}

	args, ok := p.parseArgumentList()
	if !ok {
		return types.InvalidNodeID, false
	}

	children := p.childStack(4)
	defer p.releaseChildStack(children)
	if outer != types.InvalidNodeID {
		children = append(children, outer)
	}
	if witness != types.InvalidNodeID {
		children = append(children, witness)
	}
	children = append(children, typ, args)

	if p.at(lexer.LBrace) {
		body, ok := p.parseClassBody()
		if !ok {
			return types.InvalidNodeID, false
		}
		anon := p.allocate(nodekind.AnonymousClassBody, p.offset(), p.offset())
		p.attachChildren(anon, body)
		children = append(children, anon)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ObjectCreation, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parseObjectCreation parses `outer.new Name(args)`, a qualified
// (inner-class) object creation expression.
func (p *Parser) parseObjectCreation(outer types.NodeID, start int) (types.NodeID, bool) {
	return p.parseCreation(outer, start)
}

// parseCreationType parses the possibly-generic reference type named
// after `new`, without trailing array brackets (those are handled by
// the array-creation path).
func (p *Parser) parseCreationType() (types.NodeID, bool) {
	start := p.offset()
	if primitiveKeywords[p.current().Kind] {
		end := p.current().End
		p.advance()
		return p.allocate(nodekind.PrimitiveType, start, end), true
	}
	nameChild, _ := p.qualifiedName()
	end := p.tokens[p.pos-1].End
	if p.at(lexer.OpLt) {
		argsChild, ok := p.parseTypeArguments()
		if !ok {
			return types.InvalidNodeID, false
		}
		end = p.tokens[p.pos-1].End
		id := p.allocate(nodekind.ParameterizedType, start, end)
		p.attachChildren(id, []types.NodeID{nameChild, argsChild})
		return id, true
	}
	id := p.allocate(nodekind.ReferenceType, start, end)
	p.attachChildren(id, []types.NodeID{nameChild})
	return id, true
}

// parseArrayCreationRest parses the `[dim]...` / `[]...{initializer}`
// tail of an array creation expression.
func (p *Parser) parseArrayCreationRest(start int, elementType types.NodeID) (types.NodeID, bool) {
	children := p.childStack(4)
	defer p.releaseChildStack(children)
	children = append(children, elementType)

	dims := 0
	for p.at(lexer.LBracket) {
		p.advance()
		if p.at(lexer.RBracket) {
			p.advance()
			dims++
			continue
		}
		dimExpr, ok := p.parseExpression()
		if !ok {
			return types.InvalidNodeID, false
		}
		if _, ok := p.expect(lexer.RBracket, "']' in array creation"); !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, dimExpr)
		dims++
	}

	if p.at(lexer.LBrace) {
		init, ok := p.parseArrayInitializer()
		if !ok {
			return types.InvalidNodeID, false
		}
		children = append(children, init)
	}

	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.ArrayCreation, start, end)
	p.attachChildren(id, children)
	return id, true
}

// parsePrimitiveClassLiteral parses `void.class` or `T[].class` /
// `T.class` for a primitive T.
func (p *Parser) parsePrimitiveClassLiteral() (types.NodeID, bool) {
	start := p.offset()
	p.advance()
	for p.at(lexer.LBracket) && p.peek(1).Kind == lexer.RBracket {
		p.advance()
		p.advance()
	}
	if _, ok := p.expect(lexer.Dot, "'.' in class literal"); !ok {
		return types.InvalidNodeID, false
	}
	if _, ok := p.expect(lexer.KwClass, "'class' in class literal"); !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	return p.allocate(nodekind.ClassLiteral, start, end), true
}
