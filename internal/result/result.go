// Package result implements ParseResult (spec §3.7, §4.6): the sum
// type a parse produces, referencing the Arena it was built in but
// never outliving the parser scope that owns that Arena (spec §3.8).
package result

import (
	"github.com/standardbeagle/jparse/internal/diag"
	"github.com/standardbeagle/jparse/internal/types"
)

// ParseResult is either a Success carrying the arena root, or a
// Failure carrying a non-empty, immutable diagnostic list. Exactly
// one of Root()'s and Errors()' ok results is true at any time; there
// is no third state.
type ParseResult struct {
	ok     bool
	root   types.NodeID
	errors diag.List
}

// Success constructs a successful result referencing root. It panics
// if root is the sentinel/invalid node id — a caller passing that is
// a parser bug, not a representable outcome (spec §8.2 result laws).
func Success(root types.NodeID) ParseResult {
	if root == types.InvalidNodeID {
		panic("result.Success: root must not be the sentinel node id")
	}
	return ParseResult{ok: true, root: root}
}

// Failure constructs a failed result from errors. errors must be
// non-empty; the slice is defensively copied so later mutation of the
// caller's backing array cannot change the stored list (spec §8.2).
func Failure(errors diag.List) ParseResult {
	if len(errors) == 0 {
		panic("result.Failure: errors must be non-empty")
	}
	copied := make(diag.List, len(errors))
	copy(copied, errors)
	return ParseResult{ok: false, errors: copied}
}

// IsSuccess reports whether this result is the Success variant.
func (r ParseResult) IsSuccess() bool { return r.ok }

// Root returns the arena root node id and true if this is a Success
// result; otherwise returns types.InvalidNodeID and false.
func (r ParseResult) Root() (types.NodeID, bool) {
	if !r.ok {
		return types.InvalidNodeID, false
	}
	return r.root, true
}

// Errors returns the diagnostic list and true if this is a Failure
// result; otherwise returns nil and false. The returned slice is a
// defensive copy.
func (r ParseResult) Errors() (diag.List, bool) {
	if r.ok {
		return nil, false
	}
	out := make(diag.List, len(r.errors))
	copy(out, r.errors)
	return out, true
}
