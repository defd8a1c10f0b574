package embeddings

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode packs v as little-endian IEEE 754 float32 values without a length prefix;
// the length is derived from the byte count on decode.
func Encode(v Vector) []byte {
	if len(v) == 0 {
		return nil
	}
	b := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// Decode reverses Encode.
func Decode(b []byte) (Vector, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("embeddings: invalid vector blob length %d (not multiple of 4)", len(b))
	}
	v := make(Vector, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
