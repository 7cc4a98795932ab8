package lexer

import "github.com/standardbeagle/jparse/internal/diag"

// scanString scans a single-line string literal or, when the opening
// `"` is followed by two more `"` (optional whitespace then a newline),
// a text block (spec §4.2). Internal escapes are the lexer's
// responsibility and never alter the literal's span; no re-indentation
// of text blocks is performed here (left to the formatter).
func (lx *Lexer) scanString(start int) Token {
	if lx.isTextBlockOpen(start) {
		return lx.scanTextBlock(start)
	}

	pos := start + 1 // past opening quote
	for pos < len(lx.text) {
		r, n := lx.charAt(pos)
		switch r {
		case '\\':
			pos += n
			_, n2 := lx.charAt(pos)
			pos += n2
			continue
		case '"':
			pos += n
			lx.pos = pos
			return Token{Kind: StringLiteral, Start: start, End: pos}
		case '\n':
			lx.pos = pos
			line, col := lx.buf.LineColumn(start)
			lx.sink.Add(diag.New(start, line, col, "unterminated string literal"))
			return Token{Kind: ERROR, Start: start, End: pos}
		default:
			pos += n
		}
	}

	lx.pos = pos
	line, col := lx.buf.LineColumn(start)
	lx.sink.Add(diag.New(start, line, col, "unterminated string literal"))
	return Token{Kind: ERROR, Start: start, End: pos}
}

// isTextBlockOpen reports whether the `"` at start opens a text block:
// `"""` followed by optional whitespace and a newline.
func (lx *Lexer) isTextBlockOpen(start int) bool {
	pos := start
	for i := 0; i < 3; i++ {
		r, n := lx.charAt(pos)
		if r != '"' {
			return false
		}
		pos += n
	}
	for pos < len(lx.text) {
		r, n := lx.charAt(pos)
		switch r {
		case ' ', '\t':
			pos += n
			continue
		case '\n':
			return true
		case '\r':
			pos += n
			continue
		default:
			return false
		}
	}
	return false
}

func (lx *Lexer) scanTextBlock(start int) Token {
	pos := start + 3
	// Skip the opening-line whitespace through the first newline.
	for pos < len(lx.text) {
		r, n := lx.charAt(pos)
		pos += n
		if r == '\n' {
			break
		}
	}

	for pos < len(lx.text) {
		r, n := lx.charAt(pos)
		switch r {
		case '\\':
			pos += n
			_, n2 := lx.charAt(pos)
			pos += n2
			continue
		case '"':
			if lx.matchClosingTripleQuote(pos) {
				pos += 3
				lx.pos = pos
				return Token{Kind: TextBlockLiteral, Start: start, End: pos, IsTextBlock: true}
			}
			pos += n
		default:
			pos += n
		}
	}

	lx.pos = pos
	line, col := lx.buf.LineColumn(start)
	lx.sink.Add(diag.New(start, line, col, "unterminated text block"))
	return Token{Kind: ERROR, Start: start, End: pos, IsTextBlock: true}
}

func (lx *Lexer) matchClosingTripleQuote(pos int) bool {
	p := pos
	for i := 0; i < 3; i++ {
		r, n := lx.charAt(p)
		if r != '"' {
			return false
		}
		p += n
	}
	return true
}

// scanChar scans a character literal.
func (lx *Lexer) scanChar(start int) Token {
	pos := start + 1

	if pos < len(lx.text) {
		r, n := lx.charAt(pos)
		if r == '\\' {
			pos += n
			_, n2 := lx.charAt(pos)
			pos += n2
		} else if r != '\'' {
			pos += n
		}
	}

	if r, n := lx.charAt(pos); r == '\'' {
		pos += n
		lx.pos = pos
		return Token{Kind: CharLiteral, Start: start, End: pos}
	}

	lx.pos = pos
	line, col := lx.buf.LineColumn(start)
	lx.sink.Add(diag.New(start, line, col, "unterminated character literal"))
	return Token{Kind: ERROR, Start: start, End: pos}
}
