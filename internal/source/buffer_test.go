package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLineColumn(t *testing.T) {
	b := New([]byte("abc\ndef\nghi"))

	line, col := b.LineColumn(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = b.LineColumn(4) // 'd'
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	line, col = b.LineColumn(9) // 'h'
	assert.Equal(t, 3, line)
	assert.Equal(t, 2, col)
}

func TestBufferSlice(t *testing.T) {
	b := New([]byte("hello world"))
	assert.Equal(t, "hello", b.Slice(0, 5))
	assert.Equal(t, "world", b.Slice(6, 11))
}

func TestBufferLen(t *testing.T) {
	b := New([]byte("xyz"))
	assert.Equal(t, 3, b.Len())
}
