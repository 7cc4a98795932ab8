package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternTable_DedupesEqualStrings(t *testing.T) {
	tbl := NewInternTable()
	a := tbl.Intern("com.example.Foo")
	b := tbl.Intern("com.example.Foo")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, tbl.Len())
}

func TestInternTable_DistinctStringsGetDistinctHandles(t *testing.T) {
	tbl := NewInternTable()
	a := tbl.Intern("com.example.Foo")
	b := tbl.Intern("com.example.Bar")
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, tbl.Len())
}

func TestInternTable_StringResolvesHandle(t *testing.T) {
	tbl := NewInternTable()
	h := tbl.Intern("com.example.Foo")
	s, ok := tbl.String(h)
	assert.True(t, ok)
	assert.Equal(t, "com.example.Foo", s)

	_, ok = tbl.String(99)
	assert.False(t, ok)
}

func TestInternTable_ResetClearsEntries(t *testing.T) {
	tbl := NewInternTable()
	tbl.Intern("com.example.Foo")
	tbl.Reset()
	assert.Equal(t, 0, tbl.Len())
}

func TestArena_InternStringDedupesAcrossAttributes(t *testing.T) {
	a := New(8)
	h1 := a.InternString("com.example.Foo")
	h2 := a.InternString("com.example.Foo")
	assert.Equal(t, h1, h2)

	s, ok := a.InternedString(h1)
	assert.True(t, ok)
	assert.Equal(t, "com.example.Foo", s)
}

func TestArena_ResetClearsInternTable(t *testing.T) {
	a := New(8)
	a.InternString("com.example.Foo")
	a.Reset()
	_, ok := a.InternedString(0)
	assert.False(t, ok)
}
