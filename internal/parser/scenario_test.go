package parser_test

// End-to-end scenarios S1-S6: concrete inputs with an expected node
// shape, parsed through the public facade and checked against the
// arena's allocation order, spans, and attributes.

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/facade"
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

func openAndParse(t *testing.T, src string) *facade.Scope {
	t.Helper()
	scope, err := facade.Open([]byte(src), facade.Options{})
	require.NoError(t, err)
	t.Cleanup(scope.Release)
	return scope
}

func TestScenario_S1_DefaultPackageEmptyClass(t *testing.T) {
	src := "class Test {}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	root, ok := scope.Root()
	require.True(t, ok)
	assert.Equal(t, nodekind.CompilationUnit, scope.Kind(root))

	n, err := scope.Node(root)
	require.NoError(t, err)
	assert.Equal(t, 0, n.Start)
	assert.Equal(t, 14, n.End)
	require.Len(t, n.Children, 1)

	class, err := scope.Node(n.Children[0])
	require.NoError(t, err)
	assert.Equal(t, nodekind.ClassDeclaration, class.Kind)
	assert.Equal(t, 0, class.Start)
	assert.Equal(t, 13, class.End)

	attr, ok := scope.TypeDeclarationAttr(n.Children[0])
	require.True(t, ok)
	assert.Equal(t, "Test", attr.Name)
}

func TestScenario_S2_PackageAndEmptyClass(t *testing.T) {
	src := "package com.example; class Test {}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	root, _ := scope.Root()
	n, err := scope.Node(root)
	require.NoError(t, err)
	assert.Equal(t, 0, n.Start)
	assert.Equal(t, 35, n.End)
	require.Len(t, n.Children, 2)

	pkg, err := scope.Node(n.Children[0])
	require.NoError(t, err)
	assert.Equal(t, nodekind.PackageDeclaration, pkg.Kind)
	assert.Equal(t, 0, pkg.Start)
	assert.Equal(t, 20, pkg.End)
	require.Len(t, pkg.Children, 1)

	qname, err := scope.Node(pkg.Children[0])
	require.NoError(t, err)
	assert.Equal(t, nodekind.QualifiedName, qname.Kind)
	assert.Equal(t, 8, qname.Start)
	assert.Equal(t, 19, qname.End)

	pkgAttr, ok := scope.PackageAttr(n.Children[0])
	require.True(t, ok)
	assert.Equal(t, "com.example", pkgAttr.QualifiedName)

	class, err := scope.Node(n.Children[1])
	require.NoError(t, err)
	assert.Equal(t, nodekind.ClassDeclaration, class.Kind)
	assert.Equal(t, 21, class.Start)
	assert.Equal(t, 34, class.End)
}

func TestScenario_S3_SingleImport(t *testing.T) {
	src := "import java.util.List;\nclass Test {}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	imp := findFirst(t, scope, nodekind.ImportDeclaration)
	require.NotNil(t, imp)
	assert.Equal(t, 0, imp.Start)
	assert.Equal(t, 22, imp.End)

	attr, ok := scope.ImportAttr(imp.ID)
	require.True(t, ok)
	assert.Equal(t, "java.util.List", attr.QualifiedName)
	assert.False(t, attr.IsStatic)
}

func TestScenario_S4_StaticWildcardImport(t *testing.T) {
	src := "import static java.lang.Math.*;\nclass Test {}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	imp := findFirst(t, scope, nodekind.StaticImportDeclaration)
	require.NotNil(t, imp)
	assert.Equal(t, 0, imp.Start)
	assert.Equal(t, 31, imp.End)

	attr, ok := scope.ImportAttr(imp.ID)
	require.True(t, ok)
	assert.Equal(t, "java.lang.Math.*", attr.QualifiedName)
	assert.True(t, attr.IsStatic)
}

func TestScenario_S5_MultiCatch(t *testing.T) {
	src := "public class Test { public void foo() { try { } catch (IOException | SQLException e) { } } }"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	catch := findFirst(t, scope, nodekind.CatchClause)
	require.NotNil(t, catch)
	require.Len(t, catch.Children, 3)

	union, err := scope.Node(catch.Children[0])
	require.NoError(t, err)
	assert.Equal(t, nodekind.UnionType, union.Kind)
	require.Len(t, union.Children, 2)

	for _, childID := range union.Children {
		child, err := scope.Node(childID)
		require.NoError(t, err)
		assert.Equal(t, nodekind.QualifiedName, child.Kind)
	}

	param, err := scope.Node(catch.Children[1])
	require.NoError(t, err)
	assert.Equal(t, nodekind.ParameterDeclaration, param.Kind)

	pattr, ok := scope.ParameterAttr(catch.Children[1])
	require.True(t, ok)
	assert.Equal(t, "e", pattr.Name)
	assert.False(t, pattr.IsFinal)
	assert.False(t, pattr.IsVarargs)
	assert.False(t, pattr.IsReceiver)
}

func TestScenario_S6_RecursionLimitExceeded(t *testing.T) {
	var b strings.Builder
	b.WriteString("public class T { Object m(Object v){ return switch(v){ ")
	for i := 0; i < 1500; i++ {
		fmt.Fprintf(&b, "case int x%d when x>0 -> switch(x){ ", i)
	}
	b.WriteString("default -> 42")
	b.WriteString(strings.Repeat("; }", 1500))
	b.WriteString("; } } }")

	scope := openAndParse(t, b.String())
	res := scope.Parse(facade.Options{})
	require.False(t, res.IsSuccess())

	errs, ok := res.Errors()
	require.True(t, ok)

	var found bool
	for _, d := range errs {
		if strings.Contains(d.String(), "Maximum recursion depth exceeded") &&
			strings.Contains(d.String(), "1000") {
			found = true
		}
	}
	assert.True(t, found, "expected a recursion-depth diagnostic, got: %v", errs)
}

func findFirst(t *testing.T, scope *facade.Scope, kind nodekind.Kind) *arena.Node {
	t.Helper()
	root, ok := scope.Root()
	require.True(t, ok)
	return walkFor(t, scope, root, kind)
}

func walkFor(t *testing.T, scope *facade.Scope, id types.NodeID, kind nodekind.Kind) *arena.Node {
	t.Helper()
	n, err := scope.Node(id)
	require.NoError(t, err)
	if n.Kind == kind {
		return &n
	}
	for _, childID := range n.Children {
		if found := walkFor(t, scope, childID, kind); found != nil {
			return found
		}
	}
	return nil
}
