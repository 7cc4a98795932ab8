package parser_test

// Exercises the Strategy Registry's covered special cases (spec
// §4.5) end to end through the public facade: each strategy's syntax
// parses at its minimum version and is rejected below it.

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/facade"
	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/nodekind"
)

func TestInterning_RepeatedImportSharesHandle(t *testing.T) {
	src := "package com.example;\nimport com.example.util.Helper;\nimport com.example.util.Helper;\nclass Test {}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	root, ok := scope.Root()
	require.True(t, ok)
	n, err := scope.Node(root)
	require.NoError(t, err)

	var imports []arena.ImportAttribute
	for _, childID := range n.Children {
		child, err := scope.Node(childID)
		require.NoError(t, err)
		if child.Kind != nodekind.ImportDeclaration {
			continue
		}
		attr, ok := scope.ImportAttr(childID)
		require.True(t, ok)
		imports = append(imports, attr)
	}
	require.Len(t, imports, 2)
	assert.Equal(t, "com.example.util.Helper", imports[0].QualifiedName)
	assert.Equal(t, imports[0].NameHandle, imports[1].NameHandle)
}

func TestStrategy_ModuleImportDeclaration(t *testing.T) {
	src := "import module com.example.mod;\nclass Test {}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	imp := findFirst(t, scope, nodekind.ModuleImportDeclaration)
	require.NotNil(t, imp)

	attr, ok := scope.ImportAttr(imp.ID)
	require.True(t, ok)
	assert.Equal(t, "com.example.mod", attr.QualifiedName)
	assert.False(t, attr.IsStatic)
}

func TestStrategy_CompactSourceFile_AllowedAtDefaultVersion(t *testing.T) {
	src := "void main() {\n  System.out.println(\"hi\");\n}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	method := findFirst(t, scope, nodekind.MethodDeclaration)
	require.NotNil(t, method)
}

func TestStrategy_CompactSourceFile_RejectedBelowMinVersion(t *testing.T) {
	src := "void main() {\n  System.out.println(\"hi\");\n}\n"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{Version: langver.V17})
	require.False(t, res.IsSuccess())

	errs, ok := res.Errors()
	require.True(t, ok)
	var found bool
	for _, d := range errs {
		if strings.Contains(d.String(), "compact source files") {
			found = true
		}
	}
	assert.True(t, found, "expected a compact-source-file diagnostic, got: %v", errs)
}

func TestStrategy_PrimitivePattern(t *testing.T) {
	src := "public class Test { public void foo(Object o) { if (o instanceof int i) { } } }"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	pat := findFirst(t, scope, nodekind.PrimitivePattern)
	require.NotNil(t, pat)
}

func TestStrategy_StringTemplate(t *testing.T) {
	src := "public class Test { public void foo() { Object o = STR.\"hi\"; } }"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())

	tmpl := findFirst(t, scope, nodekind.StringTemplateExpression)
	require.NotNil(t, tmpl)
	require.Len(t, tmpl.Children, 2)
}

func TestStrategy_FlexibleConstructorPrologue_AllowedAtDefaultVersion(t *testing.T) {
	src := "public class Test { int x; Test(int v) { validate(v); this.x = v; super(); } static void validate(int v) {} }"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{})
	require.True(t, res.IsSuccess())
}

func TestStrategy_FlexibleConstructorPrologue_RejectedBelowMinVersion(t *testing.T) {
	src := "public class Test { int x; Test(int v) { validate(v); super(); } static void validate(int v) {} }"
	scope := openAndParse(t, src)
	res := scope.Parse(facade.Options{Version: langver.V21})
	require.False(t, res.IsSuccess())

	errs, ok := res.Errors()
	require.True(t, ok)
	var found bool
	for _, d := range errs {
		if strings.Contains(d.String(), "explicit constructor invocation must be the first statement") {
			found = true
		}
	}
	assert.True(t, found, "expected a constructor-prologue diagnostic, got: %v", errs)
}
