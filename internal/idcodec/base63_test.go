package idcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/types"
)

func TestEncodeDecodeNodeID(t *testing.T) {
	for _, id := range []types.NodeID{0, 1, 42, 100000} {
		enc := EncodeNodeID(id)
		dec, err := DecodeNodeID(enc)
		require.NoError(t, err)
		assert.Equal(t, id, dec)
	}
}

func TestEncodeDecodeComposite(t *testing.T) {
	fileID := types.FileID(7)
	node := types.NodeID(99)

	enc := EncodeComposite(fileID, node)
	require.NotEmpty(t, enc)

	gotFile, gotNode, err := DecodeComposite(enc)
	require.NoError(t, err)
	assert.Equal(t, fileID, gotFile)
	assert.Equal(t, node, gotNode)
}

func TestDecodeComposite_Empty(t *testing.T) {
	_, _, err := DecodeComposite("")
	assert.ErrorIs(t, err, ErrEmptyString)
}
