// Package arena implements the index-overlay AST store (spec §3.3-§3.5,
// §4.3): a contiguous column of fixed-size 16-byte node records, an
// append-only children-adjacency vector, and parallel side tables for
// attributes that don't fit the fixed record. Arena is single-threaded
// and confined to one parser scope (spec §5).
package arena

import (
	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/perr"
	"github.com/standardbeagle/jparse/internal/types"
)

// Arena is bulk, append-only AST storage for one parser scope.
type Arena struct {
	records    []record
	children   []types.NodeID
	childSpans []childSpan

	packages []PackageAttribute
	imports  []ImportAttribute
	typeDecl []TypeDeclarationAttribute
	params   []ParameterAttribute

	// attrIndex maps a node id to an index into one of the typed
	// attribute slices above, plus which slice it belongs to. A node
	// with no attribute is simply absent from attrIndex, matching the
	// "only nodes of kinds that carry attributes occupy an entry"
	// policy (spec §3.3).
	attrIndex map[types.NodeID]attrRef

	capacity int

	// intern is created lazily on first InternString call; an Arena
	// that never interns a string never pays for the table (spec §9.1
	// "implementers may intern").
	intern *InternTable
}

type attrKind uint8

const (
	attrNone attrKind = iota
	attrPackage
	attrImport
	attrTypeDecl
	attrParameter
)

type attrRef struct {
	kind attrKind
	idx  int
}

// New creates an Arena with the given initial node capacity. Capacity
// bounds allocate(); exceeding it returns ArenaFullError rather than
// growing (spec §4.3 capacity policy).
func New(capacity int) *Arena {
	if capacity < 1 {
		capacity = 1
	}
	return &Arena{
		records:    make([]record, 0, capacity),
		children:   make([]types.NodeID, 0, capacity),
		childSpans: make([]childSpan, 0, capacity),
		attrIndex:  make(map[types.NodeID]attrRef),
		capacity:   capacity,
	}
}

// Node is the read view returned by Node(id) (spec §6.2).
type Node struct {
	ID       types.NodeID
	Kind     nodekind.Kind
	Start    int
	End      int
	ParentID types.NodeID
	Children []types.NodeID
}

// Len returns the number of allocated nodes.
func (a *Arena) Len() int { return len(a.records) }

// Capacity returns the arena's fixed node capacity.
func (a *Arena) Capacity() int { return a.capacity }

// EstimatedBytes approximates the arena's memory footprint: the 16-
// byte-per-node record column is the dominant, headline cost (spec
// P6); children adjacency and side tables are reported too since they
// are real allocations, but are typically a small fraction of total
// nodes (only declaration/import/parameter nodes carry an attribute,
// and most nodes are leaves with zero children).
func (a *Arena) EstimatedBytes() int {
	const childSpanSize = 8 // int32 + int32
	const childIDSize = 4
	const avgAttrSize = 24 // conservative estimate for a small struct + string header

	return len(a.records)*types.NodeRecordSize +
		len(a.childSpans)*childSpanSize +
		len(a.children)*childIDSize +
		len(a.attrIndex)*avgAttrSize
}

// Allocate appends a node with no attribute and returns its id.
func (a *Arena) Allocate(kind nodekind.Kind, start, end int) (types.NodeID, error) {
	return a.allocate(kind, start, end, types.NoParent)
}

func (a *Arena) allocate(kind nodekind.Kind, start, end int, parent types.NodeID) (types.NodeID, error) {
	if len(a.records) >= a.capacity {
		return types.InvalidNodeID, perr.NewArenaFullError(a.capacity, len(a.records))
	}
	id := types.NodeID(len(a.records))
	a.records = append(a.records, newRecord(kind, start, end, parent))
	a.childSpans = append(a.childSpans, childSpan{})
	return id, nil
}

// AllocateWithAttr appends a node and stores attr in the matching side
// table. attr must be one of PackageAttribute, ImportAttribute,
// TypeDeclarationAttribute, or ParameterAttribute.
func (a *Arena) AllocateWithAttr(kind nodekind.Kind, start, end int, attr any) (types.NodeID, error) {
	id, err := a.Allocate(kind, start, end)
	if err != nil {
		return id, err
	}
	a.storeAttr(id, attr)
	return id, nil
}

func (a *Arena) storeAttr(id types.NodeID, attr any) {
	switch v := attr.(type) {
	case PackageAttribute:
		a.packages = append(a.packages, v)
		a.attrIndex[id] = attrRef{kind: attrPackage, idx: len(a.packages) - 1}
	case ImportAttribute:
		a.imports = append(a.imports, v)
		a.attrIndex[id] = attrRef{kind: attrImport, idx: len(a.imports) - 1}
	case TypeDeclarationAttribute:
		a.typeDecl = append(a.typeDecl, v)
		a.attrIndex[id] = attrRef{kind: attrTypeDecl, idx: len(a.typeDecl) - 1}
	case ParameterAttribute:
		a.params = append(a.params, v)
		a.attrIndex[id] = attrRef{kind: attrParameter, idx: len(a.params) - 1}
	}
}

// AttachChildren records parent's children in source order. Every id in
// children must already exist and have ParentID == parent (spec §4.3).
func (a *Arena) AttachChildren(parent types.NodeID, childIDs []types.NodeID) error {
	if err := a.checkID(parent); err != nil {
		return err
	}
	for _, c := range childIDs {
		if err := a.checkID(c); err != nil {
			return err
		}
		if a.records[c].parent() != parent {
			return perr.NewInternalError("attach_children",
				"child node's parent_id does not match the attaching parent")
		}
	}

	start := len(a.children)
	a.children = append(a.children, childIDs...)
	a.childSpans[parent] = childSpan{start: int32(start), count: int32(len(childIDs))}
	return nil
}

// SetParent sets child's parent_id after the fact, used when a parent
// node is allocated after its children (the normal post-order case;
// spec §4.3, §9.1). parent must be greater than child.
func (a *Arena) SetParent(child, parent types.NodeID) error {
	if err := a.checkID(child); err != nil {
		return err
	}
	if parent != types.NoParent {
		if err := a.checkID(parent); err != nil {
			return err
		}
		if parent <= child {
			return perr.NewInternalError("set_parent", "parent id must be greater than child id")
		}
	}
	a.records[child].parentID = int32(parent)
	return nil
}

// Node returns a read view of the node at id.
func (a *Arena) Node(id types.NodeID) (Node, error) {
	if err := a.checkID(id); err != nil {
		return Node{}, err
	}
	r := a.records[id]
	span := a.childSpans[id]
	var kids []types.NodeID
	if span.count > 0 {
		kids = a.children[span.start : span.start+span.count]
	}
	return Node{
		ID:       id,
		Kind:     r.kind(),
		Start:    r.start(),
		End:      r.end(),
		ParentID: r.parent(),
		Children: kids,
	}, nil
}

// PackageAttr returns the PackageAttribute stored at id.
func (a *Arena) PackageAttr(id types.NodeID) (PackageAttribute, bool) {
	ref, ok := a.attrIndex[id]
	if !ok || ref.kind != attrPackage {
		return PackageAttribute{}, false
	}
	return a.packages[ref.idx], true
}

// ImportAttr returns the ImportAttribute stored at id.
func (a *Arena) ImportAttr(id types.NodeID) (ImportAttribute, bool) {
	ref, ok := a.attrIndex[id]
	if !ok || ref.kind != attrImport {
		return ImportAttribute{}, false
	}
	return a.imports[ref.idx], true
}

// TypeDeclarationAttr returns the TypeDeclarationAttribute stored at id.
func (a *Arena) TypeDeclarationAttr(id types.NodeID) (TypeDeclarationAttribute, bool) {
	ref, ok := a.attrIndex[id]
	if !ok || ref.kind != attrTypeDecl {
		return TypeDeclarationAttribute{}, false
	}
	return a.typeDecl[ref.idx], true
}

// ParameterAttr returns the ParameterAttribute stored at id.
func (a *Arena) ParameterAttr(id types.NodeID) (ParameterAttribute, bool) {
	ref, ok := a.attrIndex[id]
	if !ok || ref.kind != attrParameter {
		return ParameterAttribute{}, false
	}
	return a.params[ref.idx], true
}

// Reset drops all nodes but keeps backing storage for reuse (spec §4.3),
// enabling a parser.Pool to recycle an Arena across many parses.
func (a *Arena) Reset() {
	a.records = a.records[:0]
	a.children = a.children[:0]
	a.childSpans = a.childSpans[:0]
	a.packages = a.packages[:0]
	a.imports = a.imports[:0]
	a.typeDecl = a.typeDecl[:0]
	a.params = a.params[:0]
	for k := range a.attrIndex {
		delete(a.attrIndex, k)
	}
	if a.intern != nil {
		a.intern.Reset()
	}
}

// InternString deduplicates s through this Arena's InternTable,
// creating the table on first use.
func (a *Arena) InternString(s string) int32 {
	if a.intern == nil {
		a.intern = NewInternTable()
	}
	return a.intern.Intern(s)
}

// InternedString resolves a handle previously returned by InternString.
func (a *Arena) InternedString(handle int32) (string, bool) {
	if a.intern == nil {
		return "", false
	}
	return a.intern.String(handle)
}

func (a *Arena) checkID(id types.NodeID) error {
	if id < 0 || int(id) >= len(a.records) {
		return perr.NewInvalidNodeIDError(int64(id), 0, int64(len(a.records)))
	}
	return nil
}
