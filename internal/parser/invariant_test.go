package parser_test

// Universal invariants P2-P7 (spec §8.1), checked across a handful of
// representative sources rather than one fixed scenario.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/facade"
	"github.com/standardbeagle/jparse/internal/types"
)

var invariantSources = []string{
	"class Test {}\n",
	"package com.example;\nimport java.util.List;\nclass Test { int x; void m() {} }\n",
	"public class Test {\n  public void foo() {\n    for (int i = 0; i < 10; i++) {\n      if (i % 2 == 0) { System.out.println(i); }\n    }\n  }\n}\n",
	"interface Shape { double area(); }\nclass Circle implements Shape { double r; public double area() { return 3.14 * r * r; } }\n",
}

func TestInvariants_AcrossRepresentativeSources(t *testing.T) {
	for _, src := range invariantSources {
		src := src
		t.Run(src[:min(20, len(src))], func(t *testing.T) {
			scope := openAndParse(t, src)
			res := scope.Parse(facade.Options{})
			require.True(t, res.IsSuccess())

			root, ok := scope.Root()
			require.True(t, ok)

			checkP2ParentChildBounds(t, scope, root)
			checkP3PostOrderIDs(t, scope, root, -1)
			checkP4TextRoundTrip(t, scope, root, src)
		})
	}
}

func checkP2ParentChildBounds(t *testing.T, scope *facade.Scope, id types.NodeID) {
	t.Helper()
	n, err := scope.Node(id)
	require.NoError(t, err)
	for _, childID := range n.Children {
		child, err := scope.Node(childID)
		require.NoError(t, err)
		assert.LessOrEqual(t, n.Start, child.Start, "child starts before parent")
		assert.LessOrEqual(t, child.End, n.End, "child ends after parent")
		checkP2ParentChildBounds(t, scope, childID)
	}
}

func checkP3PostOrderIDs(t *testing.T, scope *facade.Scope, id types.NodeID, parentID int32) {
	t.Helper()
	n, err := scope.Node(id)
	require.NoError(t, err)
	if parentID >= 0 {
		assert.Less(t, int32(id), parentID, "non-root node id must be less than its parent's id")
	}
	for _, childID := range n.Children {
		checkP3PostOrderIDs(t, scope, childID, int32(id))
	}
}

func checkP4TextRoundTrip(t *testing.T, scope *facade.Scope, id types.NodeID, src string) {
	t.Helper()
	n, err := scope.Node(id)
	require.NoError(t, err)
	text, err := scope.TextOf(id)
	require.NoError(t, err)
	assert.Equal(t, src[n.Start:n.End], text)
	for _, childID := range n.Children {
		checkP4TextRoundTrip(t, scope, childID, src)
	}
}

func TestInvariants_P5_DeterministicAcrossRuns(t *testing.T) {
	src := "package com.example;\nclass Test { int x; void m() {} }\n"

	scopeA, err := facade.Open([]byte(src), facade.Options{})
	require.NoError(t, err)
	defer scopeA.Release()
	resA := scopeA.Parse(facade.Options{})
	require.True(t, resA.IsSuccess())

	scopeB, err := facade.Open([]byte(src), facade.Options{})
	require.NoError(t, err)
	defer scopeB.Release()
	resB := scopeB.Parse(facade.Options{})
	require.True(t, resB.IsSuccess())

	rootA, _ := scopeA.Root()
	rootB, _ := scopeB.Root()
	assert.Equal(t, rootA, rootB)
	assert.Equal(t, scopeA.ArenaLen(), scopeB.ArenaLen())

	nA, err := scopeA.Node(rootA)
	require.NoError(t, err)
	nB, err := scopeB.Node(rootB)
	require.NoError(t, err)
	assert.Equal(t, nA, nB)
}

func TestInvariants_P6_BoundedRecordSize(t *testing.T) {
	scope := openAndParse(t, "package com.example;\nclass Test { int x; void m() {} }\n")
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())
	assert.Positive(t, scope.ArenaLen())
	assert.Equal(t, types.NodeRecordSize, arena.RecordSize)
}

func TestInvariants_P7_SuccessfulParseCoversWholeInput(t *testing.T) {
	src := "class Test {}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	root, _ := scope.Root()
	n, err := scope.Node(root)
	require.NoError(t, err)
	assert.Equal(t, len(src), n.End, "root node must span to end of input on success")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
