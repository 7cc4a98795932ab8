package idcodec

import (
	"github.com/standardbeagle/jparse/internal/types"
)

// EncodeNodeID encodes a types.NodeID to a base-63 string. This is used
// only by debugging tools (cmd/decode_ids); the
// arena itself always addresses nodes by raw types.NodeID.
func EncodeNodeID(id types.NodeID) string {
	return Encode(uint64(uint32(id)))
}

// DecodeNodeID decodes a base-63 string back to a types.NodeID.
func DecodeNodeID(encoded string) (types.NodeID, error) {
	value, err := Decode(encoded)
	if err != nil {
		return 0, err
	}
	return types.NodeID(int32(uint32(value))), nil
}

// EncodeFileID encodes a types.FileID to a base-63 string.
func EncodeFileID(id types.FileID) string {
	return Encode(uint64(id))
}

// DecodeFileID decodes a base-63 string to a types.FileID.
func DecodeFileID(encoded string) (types.FileID, error) {
	value, err := Decode(encoded)
	if err != nil {
		return 0, err
	}
	if value > uint64(^types.FileID(0)) {
		return 0, ErrOverflow
	}
	return types.FileID(value), nil
}
