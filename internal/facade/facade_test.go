package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/parser"
	"github.com/standardbeagle/jparse/internal/perr"
)

func newTestPool(t *testing.T) *parser.Pool {
	t.Helper()
	return parser.NewPool()
}

func TestOpen_RejectsEmptyInput(t *testing.T) {
	_, err := Open(nil, Options{})
	require.Error(t, err)
	var ve *perr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "empty input", ve.Reason)
}

func TestOpen_RejectsWhitespaceOnlyInput(t *testing.T) {
	_, err := Open([]byte("   \n\t  "), Options{})
	require.Error(t, err)
	var ve *perr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "no tokens", ve.Reason)
}

func TestOpen_RejectsOversizedInput(t *testing.T) {
	_, err := Open([]byte("class A {}"), Options{MaxInputBytes: 4})
	require.Error(t, err)
	var ve *perr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "input too large", ve.Reason)
}

func TestScope_ParseSucceedsOnSimpleClass(t *testing.T) {
	scope, err := Open([]byte("class Foo {}"), Options{})
	require.NoError(t, err)
	defer scope.Release()

	res := scope.Parse(Options{})
	require.True(t, res.IsSuccess())

	root, ok := scope.Root()
	require.True(t, ok)
	assert.Equal(t, nodekind.CompilationUnit, scope.Kind(root))
}

func TestScope_TextOfRoundTripsSourceSpan(t *testing.T) {
	src := "class Foo {}"
	scope, err := Open([]byte(src), Options{})
	require.NoError(t, err)
	defer scope.Release()

	res := scope.Parse(Options{})
	require.True(t, res.IsSuccess())

	root, _ := scope.Root()
	text, err := scope.TextOf(root)
	require.NoError(t, err)
	assert.Equal(t, src, text)
}

func TestScope_ParseIsIdempotent(t *testing.T) {
	scope, err := Open([]byte("class Foo {}"), Options{})
	require.NoError(t, err)
	defer scope.Release()

	first := scope.Parse(Options{})
	second := scope.Parse(Options{})
	assert.Equal(t, first, second)
}

func TestScope_ReleaseReturnsArenaToPool(t *testing.T) {
	pool := newTestPool(t)

	scope, err := Open([]byte("class Foo {}"), Options{Pool: pool})
	require.NoError(t, err)
	scope.Parse(Options{})
	scope.Release()

	scope2, err := Open([]byte("class Bar {}"), Options{Pool: pool})
	require.NoError(t, err)
	defer scope2.Release()
	res := scope2.Parse(Options{})
	require.True(t, res.IsSuccess())
}
