package result

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/jparse/internal/diag"
	"github.com/standardbeagle/jparse/internal/types"
)

func TestSuccess_HoldsRoot(t *testing.T) {
	r := Success(types.NodeID(3))
	assert.True(t, r.IsSuccess())
	root, ok := r.Root()
	assert.True(t, ok)
	assert.Equal(t, types.NodeID(3), root)

	_, ok = r.Errors()
	assert.False(t, ok)
}

func TestSuccess_RejectsSentinelRoot(t *testing.T) {
	assert.Panics(t, func() {
		Success(types.InvalidNodeID)
	})
}

func TestFailure_HoldsErrors(t *testing.T) {
	errs := diag.List{diag.New(0, 1, 1, "unexpected token")}
	r := Failure(errs)
	assert.False(t, r.IsSuccess())

	got, ok := r.Errors()
	assert.True(t, ok)
	assert.Equal(t, errs, got)

	_, ok = r.Root()
	assert.False(t, ok)
}

func TestFailure_RejectsEmptyList(t *testing.T) {
	assert.Panics(t, func() {
		Failure(diag.List{})
	})
	assert.Panics(t, func() {
		Failure(nil)
	})
}

func TestFailure_IsImmutableAgainstCallerMutation(t *testing.T) {
	errs := diag.List{diag.New(0, 1, 1, "first")}
	r := Failure(errs)

	errs[0].Message = "mutated"
	errs = append(errs, diag.New(1, 1, 2, "second"))

	got, _ := r.Errors()
	assert.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Message)
}
