package embeddings

import (
	"context"
	"errors"
	"testing"
)

func TestRandomMatrix_Deterministic(t *testing.T) {
	vocab := []string{"cat", "dog", "apple"}
	a, err := NewRandomMatrix(vocab, 5, 42)
	if err != nil {
		t.Fatalf("NewRandomMatrix: %v", err)
	}
	b, err := NewRandomMatrix(vocab, 5, 42)
	if err != nil {
		t.Fatalf("NewRandomMatrix: %v", err)
	}

	ctx := context.Background()
	for _, w := range vocab {
		va, _ := a.Lookup(ctx, w)
		vb, _ := b.Lookup(ctx, w)
		if len(va) != 5 {
			t.Fatalf("%s: got dim %d, want 5", w, len(va))
		}
		for i := range va {
			if va[i] != vb[i] {
				t.Errorf("%s[%d]: %f != %f for the same seed", w, i, va[i], vb[i])
			}
			if va[i] < randomInitMin || va[i] > randomInitMax {
				t.Errorf("%s[%d] = %f outside init range", w, i, va[i])
			}
		}
	}
}

func TestRandomMatrix_SeedChangesRows(t *testing.T) {
	ctx := context.Background()
	a, _ := NewRandomMatrix([]string{"cat"}, 5, 1)
	b, _ := NewRandomMatrix([]string{"cat"}, 5, 2)
	va, _ := a.Lookup(ctx, "cat")
	vb, _ := b.Lookup(ctx, "cat")

	same := true
	for i := range va {
		if va[i] != vb[i] {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds produced identical rows")
	}
}

func TestRandomMatrix_Lookup(t *testing.T) {
	m, err := NewRandomMatrix([]string{"cat", "cat", "dog"}, 3, 7)
	if err != nil {
		t.Fatalf("NewRandomMatrix: %v", err)
	}
	if m.Name() != "trainable" || m.Dim() != 3 {
		t.Errorf("got name=%q dim=%d", m.Name(), m.Dim())
	}
	if _, err := m.Lookup(context.Background(), "queen"); !errors.Is(err, ErrWordNotFound) {
		t.Errorf("expected ErrWordNotFound, got %v", err)
	}
	if _, err := NewRandomMatrix(nil, 0, 1); err == nil {
		t.Errorf("expected error for zero dim")
	}
}
