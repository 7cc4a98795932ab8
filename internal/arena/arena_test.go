package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/perr"
	"github.com/standardbeagle/jparse/internal/types"
)

func TestArena_AllocateBasic(t *testing.T) {
	a := New(16)
	id, err := a.Allocate(nodekind.Identifier, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, types.NodeID(0), id)
	assert.Equal(t, 1, a.Len())

	n, err := a.Node(id)
	require.NoError(t, err)
	assert.Equal(t, nodekind.Identifier, n.Kind)
	assert.Equal(t, 0, n.Start)
	assert.Equal(t, 3, n.End)
	assert.Equal(t, types.NoParent, n.ParentID)
	assert.Empty(t, n.Children)
}

func TestArena_ArenaFullError(t *testing.T) {
	a := New(1)
	_, err := a.Allocate(nodekind.Identifier, 0, 1)
	require.NoError(t, err)

	_, err = a.Allocate(nodekind.Identifier, 1, 2)
	require.Error(t, err)
	var full *perr.ArenaFullError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, 1, full.Capacity)
}

func TestArena_InvalidNodeID(t *testing.T) {
	a := New(4)
	_, err := a.Node(types.NodeID(99))
	require.Error(t, err)
	var invalid *perr.InvalidNodeIDError
	require.ErrorAs(t, err, &invalid)
}

// TestArena_PostOrderAllocation mirrors the parser's usual discipline:
// children are allocated first, collected on a local stack, and the
// parent is allocated afterward with SetParent + AttachChildren (spec
// §4.3, §9.1).
func TestArena_PostOrderAllocation(t *testing.T) {
	a := New(16)

	left, err := a.Allocate(nodekind.IntegerLiteral, 0, 1)
	require.NoError(t, err)
	right, err := a.Allocate(nodekind.IntegerLiteral, 4, 5)
	require.NoError(t, err)

	parent, err := a.Allocate(nodekind.BinaryExpression, 0, 5)
	require.NoError(t, err)

	require.NoError(t, a.SetParent(left, parent))
	require.NoError(t, a.SetParent(right, parent))
	require.NoError(t, a.AttachChildren(parent, []types.NodeID{left, right}))

	n, err := a.Node(parent)
	require.NoError(t, err)
	assert.Equal(t, []types.NodeID{left, right}, n.Children)

	leftNode, err := a.Node(left)
	require.NoError(t, err)
	assert.Equal(t, parent, leftNode.ParentID)
}

func TestArena_AttachChildren_RejectsMismatchedParent(t *testing.T) {
	a := New(16)
	child, err := a.Allocate(nodekind.IntegerLiteral, 0, 1)
	require.NoError(t, err)
	parent, err := a.Allocate(nodekind.BinaryExpression, 0, 1)
	require.NoError(t, err)
	other, err := a.Allocate(nodekind.BinaryExpression, 0, 1)
	require.NoError(t, err)

	require.NoError(t, a.SetParent(child, parent))
	err = a.AttachChildren(other, []types.NodeID{child})
	require.Error(t, err)
}

func TestArena_SetParent_RequiresParentGreaterThanChild(t *testing.T) {
	a := New(16)
	child, err := a.Allocate(nodekind.IntegerLiteral, 0, 1)
	require.NoError(t, err)

	err = a.SetParent(child, child)
	require.Error(t, err)
}

func TestArena_AllocateWithAttr_PackageAndImport(t *testing.T) {
	a := New(16)

	pkgID, err := a.AllocateWithAttr(nodekind.PackageDeclaration, 0, 10,
		PackageAttribute{QualifiedName: "com.example.app"})
	require.NoError(t, err)

	pkgAttr, ok := a.PackageAttr(pkgID)
	require.True(t, ok)
	assert.Equal(t, "com.example.app", pkgAttr.QualifiedName)

	_, ok = a.ImportAttr(pkgID)
	assert.False(t, ok)

	impID, err := a.AllocateWithAttr(nodekind.ImportDeclaration, 11, 30,
		ImportAttribute{QualifiedName: "java.util.*", IsStatic: false})
	require.NoError(t, err)
	impAttr, ok := a.ImportAttr(impID)
	require.True(t, ok)
	assert.Equal(t, "java.util.*", impAttr.QualifiedName)
	assert.False(t, impAttr.IsStatic)
}

func TestArena_AllocateWithAttr_ParameterFlags(t *testing.T) {
	a := New(16)
	id, err := a.AllocateWithAttr(nodekind.ParameterDeclaration, 0, 10,
		ParameterAttribute{Name: "args", IsVarargs: true})
	require.NoError(t, err)

	attr, ok := a.ParameterAttr(id)
	require.True(t, ok)
	assert.Equal(t, "args", attr.Name)
	assert.True(t, attr.IsVarargs)
	assert.False(t, attr.IsFinal)
}

func TestArena_NodeWithoutAttr_ReturnsNotOK(t *testing.T) {
	a := New(16)
	id, err := a.Allocate(nodekind.Identifier, 0, 1)
	require.NoError(t, err)

	_, ok := a.TypeDeclarationAttr(id)
	assert.False(t, ok)
}

func TestArena_Reset_ReusesStorageAndClearsAttrs(t *testing.T) {
	a := New(16)
	id, err := a.AllocateWithAttr(nodekind.PackageDeclaration, 0, 1,
		PackageAttribute{QualifiedName: "a.b"})
	require.NoError(t, err)
	require.Equal(t, 1, a.Len())

	a.Reset()
	assert.Equal(t, 0, a.Len())
	_, ok := a.PackageAttr(id)
	assert.False(t, ok)

	newID, err := a.Allocate(nodekind.Identifier, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, types.NodeID(0), newID)
}

func TestArena_EstimatedBytes_GrowsWithNodeCount(t *testing.T) {
	a := New(16)
	before := a.EstimatedBytes()
	_, err := a.Allocate(nodekind.Identifier, 0, 1)
	require.NoError(t, err)
	after := a.EstimatedBytes()
	assert.Greater(t, after, before)
	assert.GreaterOrEqual(t, after, types.NodeRecordSize)
}
