package arena

import (
	"unsafe"

	"github.com/standardbeagle/jparse/internal/nodekind"
	"github.com/standardbeagle/jparse/internal/types"
)

// RecordSize is the actual in-memory size of one node record, computed
// rather than assumed so cmd/sizecheck can catch a future field change
// that breaks the spec's 16-byte budget.
var RecordSize = int(unsafe.Sizeof(record{}))

// record is the arena's fixed-size, 16-byte-per-node column entry (spec
// §3.3). Field order is chosen so Go's natural alignment packs it to
// exactly 16 bytes with no manual padding tricks beyond the explicit
// _pad array; verified at cmd/sizecheck.
type record struct {
	startOffset uint32
	length      uint32
	parentID    int32
	nodeKind    uint8
	_pad        [3]byte
}

func newRecord(kind nodekind.Kind, start, end int, parent types.NodeID) record {
	return record{
		startOffset: uint32(start),
		length:      uint32(end - start),
		parentID:    int32(parent),
		nodeKind:    uint8(kind),
	}
}

func (r record) start() int               { return int(r.startOffset) }
func (r record) end() int                 { return int(r.startOffset) + int(r.length) }
func (r record) kind() nodekind.Kind       { return nodekind.Kind(r.nodeKind) }
func (r record) parent() types.NodeID      { return types.NodeID(r.parentID) }

// childSpan is the externally-stored (children_start, children_count)
// pair (spec §3.4), one per node, indexed by node id.
type childSpan struct {
	start int32
	count int32
}
