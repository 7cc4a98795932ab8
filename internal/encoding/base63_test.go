package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase63Encode_Zero(t *testing.T) {
	assert.Equal(t, "A", Base63Encode(0))
}

func TestBase63RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 62, 63, 64, 1000, 1 << 40, ^uint64(0)} {
		enc := Base63Encode(v)
		dec, err := Base63Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, v, dec, "round trip of %d via %q", v, enc)
	}
}

func TestBase63Decode_Empty(t *testing.T) {
	_, err := Base63Decode("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestBase63Decode_InvalidChar(t *testing.T) {
	_, err := Base63Decode("A!B")
	assert.ErrorIs(t, err, ErrInvalidChar)
}

func TestBase63IsValid(t *testing.T) {
	assert.True(t, Base63IsValid("AbC_0"))
	assert.False(t, Base63IsValid(""))
	assert.False(t, Base63IsValid("A B"))
}

func TestPackUnpackUint32Pair(t *testing.T) {
	packed := PackUint32Pair(42, 7)
	lower, upper := UnpackUint32Pair(packed)
	assert.Equal(t, uint32(42), lower)
	assert.Equal(t, uint32(7), upper)
}
