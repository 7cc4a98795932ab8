package lexer

import "strings"

// scanIdentifierOrKeyword consumes a maximal identifier run starting at
// start, then classifies it against the reserved-keyword table using
// the *decoded* spelling (spec §4.2: "the decoded spelling is matched
// against the keyword table"). Contextual keywords and ordinary
// identifiers are both emitted as IDENTIFIER; only the parser cares
// about their text.
func (lx *Lexer) scanIdentifierOrKeyword(start int) Token {
	var decoded strings.Builder
	hadEscape := false

	pos := start
	for pos < len(lx.text) {
		r, n := lx.charAt(pos)
		if !isIdentifierPart(r) {
			break
		}
		if lx.escapes.Any(pos, pos+n) {
			hadEscape = true
		}
		decoded.WriteRune(r)
		pos += n
	}
	lx.pos = pos

	text := decoded.String()
	var decodedText string
	if hadEscape {
		decodedText = text
	}

	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Start: start, End: pos, DecodedText: decodedText}
	}

	return Token{Kind: IDENTIFIER, Start: start, End: pos, DecodedText: decodedText}
}
