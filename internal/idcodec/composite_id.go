package idcodec

import (
	"github.com/standardbeagle/jparse/internal/encoding"
	"github.com/standardbeagle/jparse/internal/types"
)

// CompositeNodeRef packing:
//   - Lower 32 bits: FileID
//   - Upper 32 bits: NodeID (as uint32)
//
// Used by cmd/jparse's parse and batch commands to print a
// single opaque token that identifies a node within a specific file's
// arena, without exposing two separate integers.

// EncodeComposite packs a FileID and NodeID into one base-63 string.
func EncodeComposite(fileID types.FileID, node types.NodeID) string {
	combined := encoding.PackUint32Pair(uint32(fileID), uint32(node))
	return EncodeNoZero(combined)
}

// DecodeComposite decodes a base-63 string back to a FileID and NodeID.
func DecodeComposite(encoded string) (types.FileID, types.NodeID, error) {
	if encoded == "" {
		return 0, 0, ErrEmptyString
	}

	combined, err := Decode(encoded)
	if err != nil {
		return 0, 0, err
	}

	lower, upper := encoding.UnpackUint32Pair(combined)
	return types.FileID(lower), types.NodeID(int32(upper)), nil
}
