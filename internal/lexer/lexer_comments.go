package lexer

import "github.com/standardbeagle/jparse/internal/diag"

// scanComment scans a line or block comment starting at start, which
// must be positioned at the leading `/`. Comments are exposed as their
// own token kinds (not discarded like whitespace) because they become
// arena nodes (spec §4.2).
func (lx *Lexer) scanComment(start int) Token {
	_, n0 := lx.charAt(start)
	r1, n1 := lx.charAt(start + n0)

	switch r1 {
	case '/':
		pos := start + n0 + n1
		for pos < len(lx.text) {
			r, n := lx.charAt(pos)
			if r == '\n' {
				break
			}
			pos += n
		}
		lx.pos = pos
		return Token{Kind: LineComment, Start: start, End: pos}

	case '*':
		pos := start + n0 + n1
		isJavadoc := false
		if r2, n2 := lx.charAt(pos); r2 == '*' {
			if r3, _ := lx.charAt(pos + n2); r3 != '/' {
				isJavadoc = true
			}
		}
		for pos < len(lx.text) {
			r, n := lx.charAt(pos)
			if r == '*' {
				if r2, n2 := lx.charAt(pos + n); r2 == '/' {
					pos += n + n2
					lx.pos = pos
					kind := BlockComment
					if isJavadoc {
						kind = JavadocComment
					}
					return Token{Kind: kind, Start: start, End: pos}
				}
			}
			pos += n
		}
		lx.pos = pos
		line, col := lx.buf.LineColumn(start)
		lx.sink.Add(diag.New(start, line, col, "unterminated block comment"))
		kind := BlockComment
		if isJavadoc {
			kind = JavadocComment
		}
		return Token{Kind: kind, Start: start, End: pos}

	default:
		return lx.scanOperatorOrSeparator(start)
	}
}
