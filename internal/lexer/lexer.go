package lexer

import (
	"unicode/utf8"

	"github.com/standardbeagle/jparse/internal/diag"
	"github.com/standardbeagle/jparse/internal/escape"
	"github.com/standardbeagle/jparse/internal/source"
)

// Lexer produces the complete token sequence for a buffer in one linear
// pass (spec §4.2). Tokens never overlap and together cover the input;
// whitespace is discarded. The last token produced is always EOF.
type Lexer struct {
	buf     *source.Buffer
	text    []byte
	escapes *escape.Map
	pos     int
	sink    diag.Sink
}

// New creates a Lexer over buf using the escape map produced by
// escape.Preprocess(buf).
func New(buf *source.Buffer, escapes *escape.Map) *Lexer {
	return &Lexer{buf: buf, text: buf.Bytes(), escapes: escapes}
}

// Lex runs the lexer to completion and returns the token array (always
// ending in exactly one EOF token) plus any diagnostics recorded.
func (lx *Lexer) Lex() ([]Token, diag.List) {
	tokens := make([]Token, 0, len(lx.text)/3+4)

	for {
		lx.skipTrivia()
		if lx.pos >= len(lx.text) {
			tokens = append(tokens, Token{Kind: EOF, Start: lx.pos, End: lx.pos})
			break
		}

		tok := lx.next()
		tokens = append(tokens, tok)
	}

	return tokens, lx.sink.Items()
}

// charAt returns the logical (escape-decoded) rune at raw offset pos and
// the number of raw bytes it occupies. Returns (utf8.RuneError, 0) past
// the end of input.
func (lx *Lexer) charAt(pos int) (r rune, rawLen int) {
	if pos >= len(lx.text) {
		return utf8.RuneError, 0
	}
	if esc, ok := lx.escapes.At(pos); ok {
		if esc.Valid {
			return esc.Decoded, esc.End - esc.Start
		}
		return utf8.RuneError, esc.End - esc.Start
	}
	r, size := utf8.DecodeRune(lx.text[pos:])
	if size == 0 {
		size = 1
	}
	return r, size
}

// skipTrivia advances past whitespace, which the lexer discards rather
// than exposing (spec §4.2: "whitespace is emitted as skippable trivia
// or discarded").
func (lx *Lexer) skipTrivia() {
	for lx.pos < len(lx.text) {
		r, n := lx.charAt(lx.pos)
		if !isJavaWhitespace(r) {
			return
		}
		lx.pos += n
	}
}

func isJavaWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

// next scans and returns exactly one token starting at lx.pos, which
// must not be whitespace and must be within bounds.
func (lx *Lexer) next() Token {
	start := lx.pos
	r, n := lx.charAt(lx.pos)

	switch {
	case isIdentifierStart(r):
		return lx.scanIdentifierOrKeyword(start)

	case isDigit(r):
		return lx.scanNumber(start)

	case r == '.' && isDigit(peekRune(lx, lx.pos+n)):
		return lx.scanNumber(start)

	case r == '"':
		return lx.scanString(start)

	case r == '\'':
		return lx.scanChar(start)

	case r == '/' && startsComment(lx, lx.pos, n):
		return lx.scanComment(start)

	case isOperatorOrSeparatorStart(r):
		return lx.scanOperatorOrSeparator(start)

	default:
		lx.pos += n
		line, col := lx.buf.LineColumn(start)
		lx.sink.Add(diag.New(start, line, col, "unexpected character"))
		return Token{Kind: ERROR, Start: start, End: lx.pos}
	}
}

func peekRune(lx *Lexer, pos int) rune {
	r, _ := lx.charAt(pos)
	return r
}

func startsComment(lx *Lexer, pos, slashLen int) bool {
	r, _ := lx.charAt(pos + slashLen)
	return r == '/' || r == '*'
}

func isIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r > 127 && isLetterLike(r))
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isLetterLike(r rune) bool {
	// Conservative superset check for non-ASCII identifier characters;
	// the formatter never needs identifier classification finer than
	// "part of this identifier token".
	return r != utf8.RuneError
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isOperatorOrSeparatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '^', '~', '!', '=', '<', '>',
		'(', ')', '{', '}', '[', ']', ';', ',', ':', '?', '@', '.':
		return true
	default:
		return false
	}
}
