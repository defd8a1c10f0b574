package similarity

import (
	"math"

	"wordsim/internal/embeddings"
)

// Cosine returns dot(a, b) / (|a| * |b|), accumulated in float64 and clamped to [-1, 1].
func Cosine(a, b embeddings.Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Left: len(a), Right: len(b)}
	}
	if len(a) == 0 {
		return 0, ErrDegenerateVector
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, ErrDegenerateVector
	}
	score := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, score)), nil
}
