package embeddings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	v := Vector{0, 1, -1, 0.5, math.MaxFloat32, -math.SmallestNonzeroFloat32}
	b := Encode(v)
	assert.Len(t, b, len(v)*4)

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestEncode_LittleEndian(t *testing.T) {
	// 1.0f is 0x3f800000.
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, Encode(Vector{1}))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3, 4, 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not multiple of 4")

	v, err := Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}
