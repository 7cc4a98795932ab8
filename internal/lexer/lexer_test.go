package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/escape"
	"github.com/standardbeagle/jparse/internal/source"
)

func lex(t *testing.T, text string) ([]Token, *source.Buffer) {
	t.Helper()
	buf := source.New([]byte(text))
	escapes, diags := escape.Preprocess(buf)
	require.Empty(t, diags)
	lx := New(buf, escape.NewMap(escapes))
	toks, _ := lx.Lex()
	return toks, buf
}

func TestLex_EmptyEndsInEOF(t *testing.T) {
	toks, _ := lex(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, EOF, toks[0].Kind)
}

func TestLex_KeywordsAndIdentifiers(t *testing.T) {
	toks, _ := lex(t, "class Test public")
	require.Len(t, toks, 4)
	assert.Equal(t, KwClass, toks[0].Kind)
	assert.Equal(t, IDENTIFIER, toks[1].Kind)
	assert.Equal(t, KwPublic, toks[2].Kind)
	assert.Equal(t, EOF, toks[3].Kind)
}

func TestLex_EscapedKeyword(t *testing.T) {
	// The Unicode escape for 'p' followed by "ublic" decodes to "public".
	toks, buf := lex(t, "\x5cu0070ublic")
	require.Len(t, toks, 2)
	assert.Equal(t, KwPublic, toks[0].Kind)
	assert.True(t, toks[0].HasEscape())
	assert.Equal(t, "public", toks[0].DecodedText)
	assert.Equal(t, "\x5cu0070ublic", buf.Slice(toks[0].Start, toks[0].End))
}

func TestLex_Numbers(t *testing.T) {
	toks, _ := lex(t, "0x1F 0b101 010 42L 3.14 .5 1e10 2f 3d 1_000_000")
	var kinds []Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	expected := []Kind{
		IntLiteral, IntLiteral, IntLiteral, LongLiteral, DoubleLiteral,
		DoubleLiteral, DoubleLiteral, FloatLiteral, DoubleLiteral, IntLiteral, EOF,
	}
	assert.Equal(t, expected, kinds)
}

func TestLex_Strings(t *testing.T) {
	toks, _ := lex(t, `"hello \"world\""`)
	require.Len(t, toks, 2)
	assert.Equal(t, StringLiteral, toks[0].Kind)
	assert.Equal(t, 0, toks[0].Start)
	assert.Equal(t, 17, toks[0].End)
}

func TestLex_TextBlock(t *testing.T) {
	toks, _ := lex(t, "\"\"\"\n  hi\n  \"\"\"")
	require.Len(t, toks, 2)
	assert.Equal(t, TextBlockLiteral, toks[0].Kind)
	assert.True(t, toks[0].IsTextBlock)
}

func TestLex_CharLiteral(t *testing.T) {
	toks, _ := lex(t, `'a' '\n' '\''`)
	require.Len(t, toks, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, CharLiteral, toks[i].Kind)
	}
}

func TestLex_Operators(t *testing.T) {
	toks, _ := lex(t, ">>>= -> :: ... ++ >>> <<=")
	var kinds []Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	expected := []Kind{OpUshrEq, OpArrow, OpColonColon, OpEllipsis, OpPlusPlus, OpUshr, OpShlEq, EOF}
	assert.Equal(t, expected, kinds)
}

func TestLex_Comments(t *testing.T) {
	toks, _ := lex(t, "// line\n/* block */\n/** javadoc */")
	require.Len(t, toks, 4)
	assert.Equal(t, LineComment, toks[0].Kind)
	assert.Equal(t, BlockComment, toks[1].Kind)
	assert.Equal(t, JavadocComment, toks[2].Kind)
}

func TestLex_UnterminatedString(t *testing.T) {
	buf := source.New([]byte(`"unterminated`))
	escapes, _ := escape.Preprocess(buf)
	lx := New(buf, escape.NewMap(escapes))
	toks, diags := lx.Lex()
	require.NotEmpty(t, diags)
	assert.Equal(t, ERROR, toks[0].Kind)
}

func TestLex_ContextualKeywordsAreIdentifiers(t *testing.T) {
	toks, _ := lex(t, "var record sealed yield")
	for i := 0; i < 4; i++ {
		assert.Equal(t, IDENTIFIER, toks[i].Kind)
	}
	assert.True(t, IsContextualKeyword("var"))
	assert.False(t, IsContextualKeyword("class"))
}
