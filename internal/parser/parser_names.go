package parser

import (
	"strings"

	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// qualifiedName parses `identifier (. identifier)*` and allocates a
// QUALIFIED_NAME node (or IDENTIFIER when there is exactly one
// segment), returning its id and dotted text.
func (p *Parser) qualifiedName() (types.NodeID, string) {
	if !p.enter() {
		return types.InvalidNodeID, ""
	}
	defer p.exit()

	start := p.offset()
	if !p.at(lexer.IDENTIFIER) {
		p.errorf("expected identifier")
		return types.InvalidNodeID, ""
	}

	var segments []string
	first := p.advance()
	segments = append(segments, p.buf.Slice(first.Start, first.End))

	for p.at(lexer.Dot) && p.peek(1).Kind == lexer.IDENTIFIER {
		p.advance() // consume '.'
		seg := p.advance()
		segments = append(segments, p.buf.Slice(seg.Start, seg.End))
	}

	end := p.tokens[p.pos-1].End
	text := strings.Join(segments, ".")

	if len(segments) == 1 {
		return p.allocate(nodekind.Identifier, start, end), text
	}
	return p.allocate(nodekind.QualifiedName, start, end), text
}

// importTarget parses a qualified name with an optional trailing `.*`
// wildcard segment (spec §3.5 ImportAttribute: "wildcard imports end
// the name with a `*` segment"). Returns the child node id and the
// fully dotted text.
func (p *Parser) importTarget() (types.NodeID, string) {
	if !p.enter() {
		return types.InvalidNodeID, ""
	}
	defer p.exit()

	start := p.offset()
	if !p.at(lexer.IDENTIFIER) {
		p.errorf("expected identifier")
		return types.InvalidNodeID, ""
	}

	var segments []string
	first := p.advance()
	segments = append(segments, p.buf.Slice(first.Start, first.End))

	for p.at(lexer.Dot) {
		if p.peek(1).Kind == lexer.OpStar {
			p.advance() // '.'
			p.advance() // '*'
			segments = append(segments, "*")
			break
		}
		if p.peek(1).Kind != lexer.IDENTIFIER {
			break
		}
		p.advance() // '.'
		seg := p.advance()
		segments = append(segments, p.buf.Slice(seg.Start, seg.End))
	}

	end := p.tokens[p.pos-1].End
	text := strings.Join(segments, ".")
	return p.allocate(nodekind.QualifiedName, start, end), text
}
