// Package escape implements the pre-lexical Unicode escape preprocessor
// (spec §4.1): it locates `\uXXXX`-style escapes outside already-open
// string/character/text-block literals and comments, decodes them, and
// records their original span so the lexer can later consult both the
// original spelling and the decoded value of anything that overlaps one.
package escape

import (
	"github.com/standardbeagle/jparse/internal/diag"
	"github.com/standardbeagle/jparse/internal/source"
)

// Escape records one decoded `\u...` sequence.
type Escape struct {
	Start   int  // offset of the first backslash
	End     int  // offset one past the final hex digit
	Decoded rune // the decoded code point; 0 if Valid is false
	Valid   bool
}

// mode tracks the lightweight state machine used to recognize regions
// where escape decoding must be deferred to the string-literal sub-lexer.
type mode int

const (
	modeNormal mode = iota
	modeLineComment
	modeBlockComment
	modeString
	modeChar
	modeTextBlock
)

// Preprocess scans buf for Unicode escapes outside literals/comments,
// returning them in ascending Start order plus any diagnostics for
// malformed escapes.
func Preprocess(buf *source.Buffer) ([]Escape, diag.List) {
	text := buf.Bytes()
	n := len(text)

	var escapes []Escape
	var sink diag.Sink

	m := modeNormal
	i := 0

	for i < n {
		switch m {
		case modeNormal:
			switch {
			case text[i] == '\\' && isEscapeCandidate(text, i):
				esc, next := decodeEscape(buf, text, i, &sink)
				escapes = append(escapes, esc)
				i = next
				continue
			case i+1 < n && text[i] == '/' && text[i+1] == '/':
				m = modeLineComment
				i += 2
				continue
			case i+1 < n && text[i] == '/' && text[i+1] == '*':
				m = modeBlockComment
				i += 2
				continue
			case i+2 < n && text[i] == '"' && text[i+1] == '"' && text[i+2] == '"':
				m = modeTextBlock
				i += 3
				continue
			case text[i] == '"':
				m = modeString
				i++
				continue
			case text[i] == '\'':
				m = modeChar
				i++
				continue
			default:
				i++
			}

		case modeLineComment:
			if text[i] == '\n' {
				m = modeNormal
			}
			i++

		case modeBlockComment:
			if i+1 < n && text[i] == '*' && text[i+1] == '/' {
				m = modeNormal
				i += 2
				continue
			}
			i++

		case modeString:
			if text[i] == '\\' && i+1 < n {
				i += 2
				continue
			}
			if text[i] == '"' {
				m = modeNormal
			}
			i++

		case modeChar:
			if text[i] == '\\' && i+1 < n {
				i += 2
				continue
			}
			if text[i] == '\'' {
				m = modeNormal
			}
			i++

		case modeTextBlock:
			if text[i] == '\\' && i+1 < n {
				i += 2
				continue
			}
			if i+2 < n && text[i] == '"' && text[i+1] == '"' && text[i+2] == '"' {
				m = modeNormal
				i += 3
				continue
			}
			i++
		}
	}

	return escapes, sink.Items()
}

// isEscapeCandidate reports whether the backslash at i begins a `\u...`
// escape, per the odd-leading-backslash-count policy (spec §4.1).
func isEscapeCandidate(text []byte, i int) bool {
	// Count consecutive backslashes ending at i (inclusive), reading backward.
	count := 0
	for j := i; j >= 0 && text[j] == '\\'; j-- {
		count++
	}
	if count%2 == 0 {
		return false
	}
	return i+1 < len(text) && text[i+1] == 'u'
}

// decodeEscape decodes one `\u+XXXX` escape starting at i (the
// backslash). Returns the Escape record and the index just past it.
func decodeEscape(buf *source.Buffer, text []byte, i int, sink *diag.Sink) (Escape, int) {
	n := len(text)
	j := i + 1 // at 'u'
	for j < n && text[j] == 'u' {
		j++
	}
	// j now points just past the run of 'u' characters.
	hexStart := j
	valid := true
	var value rune
	for k := 0; k < 4; k++ {
		if hexStart+k >= n {
			valid = false
			break
		}
		d, ok := hexDigit(text[hexStart+k])
		if !ok {
			line, col := buf.LineColumn(hexStart + k)
			sink.Add(diag.New(hexStart+k, line, col,
				"illegal unicode escape: expected hexadecimal digit"))
			valid = false
			break
		}
		value = value*16 + rune(d)
	}

	end := hexStart + 4
	if end > n {
		end = n
	}
	if !valid {
		return Escape{Start: i, End: end, Valid: false}, end
	}
	return Escape{Start: i, End: end, Decoded: value, Valid: true}, end
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
