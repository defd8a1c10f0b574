package embeddings

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Uniform initialisation range used by Keras-style embedding layers.
const (
	randomInitMin = -0.05
	randomInitMax = 0.05
)

// RandomMatrix is an untrained embedding matrix: one row per vocabulary word,
// filled with seeded uniform noise. The same seed always yields the same rows.
type RandomMatrix struct {
	index map[string]int
	rows  []Vector
	dim   int
}

// NewRandomMatrix allocates a dim-wide row for every distinct word in vocab.
func NewRandomMatrix(vocab []string, dim int, seed uint64) (*RandomMatrix, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("random matrix: dim must be positive, got %d", dim)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	m := &RandomMatrix{index: make(map[string]int, len(vocab)), dim: dim}
	for _, w := range vocab {
		if _, dup := m.index[w]; dup {
			continue
		}
		row := make(Vector, dim)
		for i := range row {
			row[i] = float32(randomInitMin + rng.Float64()*(randomInitMax-randomInitMin))
		}
		m.index[w] = len(m.rows)
		m.rows = append(m.rows, row)
	}
	return m, nil
}

func (m *RandomMatrix) Name() string { return "trainable" }

func (m *RandomMatrix) Dim() int { return m.dim }

func (m *RandomMatrix) Lookup(_ context.Context, word string) (Vector, error) {
	i, ok := m.index[word]
	if !ok {
		return nil, ErrWordNotFound
	}
	return m.rows[i], nil
}

var _ Provider = (*RandomMatrix)(nil)
