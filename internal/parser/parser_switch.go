package parser

import (
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// parseSwitchStatement parses a switch used as a statement (spec
// "Statements": "switch (statement and expression forms)").
func (p *Parser) parseSwitchStatement() (types.NodeID, bool) {
	start := p.offset()
	selector, body, ok := p.parseSwitchHeaderAndBody()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.SwitchStatement, start, end)
	p.attachChildren(id, append([]types.NodeID{selector}, body...))
	return id, true
}

// parseSwitchExpression parses a switch used as an expression (spec
// "Expressions": "switch expressions (arrow and colon forms)").
func (p *Parser) parseSwitchExpression() (types.NodeID, bool) {
	start := p.offset()
	selector, body, ok := p.parseSwitchHeaderAndBody()
	if !ok {
		return types.InvalidNodeID, false
	}
	end := p.tokens[p.pos-1].End
	id := p.allocate(nodekind.SwitchExpression, start, end)
	p.attachChildren(id, append([]types.NodeID{selector}, body...))
	return id, true
}

// parseSwitchHeaderAndBody parses `switch (selector) { ... }`, common
// to both the statement and expression forms.
func (p *Parser) parseSwitchHeaderAndBody() (types.NodeID, []types.NodeID, bool) {
	p.advance() // 'switch'
	if _, ok := p.expect(lexer.LParen, "'(' after 'switch'"); !ok {
		return types.InvalidNodeID, nil, false
	}
	selector, ok := p.parseExpression()
	if !ok {
		return types.InvalidNodeID, nil, false
	}
	if _, ok := p.expect(lexer.RParen, "')' after switch selector"); !ok {
		return types.InvalidNodeID, nil, false
	}
	if _, ok := p.expect(lexer.LBrace, "'{' to open switch body"); !ok {
		return types.InvalidNodeID, nil, false
	}

	var body []types.NodeID
	for !p.at(lexer.RBrace) && !p.atEOF() {
		if p.hasFatal() {
			return types.InvalidNodeID, nil, false
		}
		group, ok := p.parseSwitchBlockGroup()
		if !ok {
			p.resync(lexer.KwCase, lexer.KwDefault, lexer.RBrace)
			continue
		}
		body = append(body, group...)
	}
	if _, ok := p.expect(lexer.RBrace, "'}' to close switch body"); !ok {
		return types.InvalidNodeID, nil, false
	}
	return selector, body, true
}

// parseSwitchBlockGroup parses one `case ... :`/`case ... ->`/`default`
// label together with its arrow body (for the arrow form) or its
// following fallthrough statements (for the colon form), returning the
// node ids to attach directly as switch children.
func (p *Parser) parseSwitchBlockGroup() ([]types.NodeID, bool) {
	start := p.offset()
	labels, isDefault, ok := p.parseCaseLabels()
	if !ok {
		return nil, false
	}

	if p.at(lexer.OpArrow) {
		p.advance()
		var bodyNode types.NodeID
		switch {
		case p.at(lexer.LBrace):
			bodyNode, ok = p.parseBlock()
		case p.at(lexer.KwThrow):
			bodyNode, ok = p.parseThrowStatement()
		default:
			bodyNode, ok = p.parseExpression()
			if ok {
				if _, semiOK := p.expect(lexer.Semi, "';' after switch rule expression"); !semiOK {
					ok = false
				}
			}
		}
		if !ok {
			return nil, false
		}
		end := p.tokens[p.pos-1].End
		rule := p.allocate(nodekind.SwitchRule, start, end)
		children := append(append([]types.NodeID{}, labels...), bodyNode)
		p.attachChildren(rule, children)
		return []types.NodeID{rule}, true
	}

	if _, ok := p.expect(lexer.Colon, "':' after case label"); !ok {
		return nil, false
	}
	end := p.tokens[p.pos-1].End
	label := p.allocate(nodekind.SwitchLabel, start, end)
	p.attachChildren(label, labels)
	_ = isDefault

	out := []types.NodeID{label}
	for !p.at(lexer.KwCase) && !p.at(lexer.KwDefault) && !p.at(lexer.RBrace) && !p.atEOF() {
		if p.hasFatal() {
			return nil, false
		}
		stmt, ok := p.parseStatement()
		if !ok {
			p.resync(lexer.KwCase, lexer.KwDefault, lexer.RBrace, lexer.Semi)
			if p.at(lexer.Semi) {
				p.advance()
			}
			continue
		}
		out = append(out, stmt)
	}
	return out, true
}

// parseCaseLabels parses `case value (, value)*` or `default`.
func (p *Parser) parseCaseLabels() ([]types.NodeID, bool, bool) {
	if p.at(lexer.KwDefault) {
		p.advance()
		return nil, true, true
	}
	if _, ok := p.expect(lexer.KwCase, "'case' or 'default'"); !ok {
		return nil, false, false
	}

	var values []types.NodeID
	for {
		if p.at(lexer.KwNull) {
			end := p.current().End
			start := p.current().Start
			p.advance()
			values = append(values, p.allocate(nodekind.NullLiteral, start, end))
		} else if p.isPatternCaseLabelAhead() {
			pat, ok := p.parseTypeOrPattern()
			if !ok {
				return nil, false, false
			}
			values = append(values, pat)
		} else {
			v, ok := p.parseExpression()
			if !ok {
				return nil, false, false
			}
			values = append(values, v)
		}
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return values, false, true
}

// isPatternCaseLabelAhead reports whether the case label at the cursor
// is a type/record pattern (`Type name` or `Type(...)`) rather than a
// constant or enum-constant expression, without consuming tokens.
func (p *Parser) isPatternCaseLabelAhead() bool {
	end := p.scanTypeTokens(p.pos)
	if end < 0 || end >= len(p.tokens) {
		return false
	}
	return p.tokens[end].Kind == lexer.IDENTIFIER || p.tokens[end].Kind == lexer.LParen
}
