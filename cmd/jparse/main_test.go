package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/config"
)

func TestMatchesAny_MatchesGlobPattern(t *testing.T) {
	assert.True(t, matchesAny([]string{"**/*.java"}, "src/main/Foo.java"))
	assert.False(t, matchesAny([]string{"**/*.java"}, "src/main/Foo.kt"))
}

func TestMatchesAny_EmptyPatternListMatchesNothing(t *testing.T) {
	assert.False(t, matchesAny(nil, "Foo.java"))
}

func TestParseFile_SucceedsOnValidSource(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.java")
	require.NoError(t, os.WriteFile(path, []byte("class Foo {}"), 0o644))

	result := parseFile(path, 0)
	assert.True(t, result.OK)
	assert.Positive(t, result.NodeCount)
	assert.NotEmpty(t, result.RootRef)
}

func TestParseFile_ReportsErrorsOnUnreadableFile(t *testing.T) {
	cfg = config.Default()
	result := parseFile(filepath.Join(t.TempDir(), "missing.java"), 0)
	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Errors)
}
