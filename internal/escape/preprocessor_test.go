package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/source"
)

func TestPreprocess_SimpleEscape(t *testing.T) {
	buf := source.New([]byte(`\u0070ublic`)) // decodes to "public"
	escapes, diags := Preprocess(buf)
	require.Empty(t, diags)
	require.Len(t, escapes, 1)
	assert.Equal(t, 0, escapes[0].Start)
	assert.Equal(t, 6, escapes[0].End)
	assert.Equal(t, 'p', escapes[0].Decoded)
	assert.True(t, escapes[0].Valid)
}

func TestPreprocess_MultipleUPrefix(t *testing.T) {
	buf := source.New([]byte(`\uuuu0041`)) // extra 'u's allowed
	escapes, diags := Preprocess(buf)
	require.Empty(t, diags)
	require.Len(t, escapes, 1)
	assert.Equal(t, 'A', escapes[0].Decoded)
}

func TestPreprocess_InvalidHexDigit(t *testing.T) {
	buf := source.New([]byte(`\u00zz`))
	escapes, diags := Preprocess(buf)
	require.Len(t, escapes, 1)
	assert.False(t, escapes[0].Valid)
	require.NotEmpty(t, diags)
}

func TestPreprocess_EvenBackslashesNotEscape(t *testing.T) {
	buf := source.New([]byte(`\\u0041`)) // even backslash count: not an escape
	escapes, _ := Preprocess(buf)
	assert.Empty(t, escapes)
}

func TestPreprocess_SkipsInsideStringLiteral(t *testing.T) {
	buf := source.New([]byte(`"\u0041" \u0042`))
	escapes, diags := Preprocess(buf)
	require.Empty(t, diags)
	require.Len(t, escapes, 1)
	assert.Equal(t, 9, escapes[0].Start) // the one outside the string
}

func TestPreprocess_SkipsInsideLineComment(t *testing.T) {
	buf := source.New([]byte("// \\u0041\n\\u0042"))
	escapes, _ := Preprocess(buf)
	require.Len(t, escapes, 1)
	assert.Equal(t, 10, escapes[0].Start)
}

func TestPreprocess_SkipsInsideBlockComment(t *testing.T) {
	buf := source.New([]byte(`/* \u0041 */ \u0042`))
	escapes, _ := Preprocess(buf)
	require.Len(t, escapes, 1)
	assert.Equal(t, 13, escapes[0].Start)
}

func TestPreprocess_SkipsInsideTextBlock(t *testing.T) {
	buf := source.New([]byte("\"\"\"\n\\u0041\n\"\"\" \\u0042"))
	escapes, _ := Preprocess(buf)
	require.Len(t, escapes, 1)
}

func TestMapLookup(t *testing.T) {
	buf := source.New([]byte(`\u0070ublic`))
	escapes, _ := Preprocess(buf)
	m := NewMap(escapes)

	e, ok := m.At(0)
	require.True(t, ok)
	assert.Equal(t, 'p', e.Decoded)

	_, ok = m.At(1)
	assert.False(t, ok)

	assert.True(t, m.Any(0, 6))
	assert.False(t, m.Any(6, 11))
}
