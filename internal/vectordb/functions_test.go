package vectordb

import (
	"database/sql/driver"
	"testing"

	"wordsim/internal/embeddings"
)

func TestVecCosine(t *testing.T) {
	unit := embeddings.Encode(embeddings.Vector{1, 0})
	tests := []struct {
		name    string
		args    []driver.Value
		want    driver.Value
		wantErr bool
	}{
		{"identical", []driver.Value{unit, unit}, 1.0, false},
		{"orthogonal", []driver.Value{unit, embeddings.Encode(embeddings.Vector{0, 1})}, 0.0, false},
		{"null arg", []driver.Value{nil, unit}, nil, false},
		{"zero vector", []driver.Value{unit, embeddings.Encode(embeddings.Vector{0, 0})}, nil, false},
		{"width mismatch", []driver.Value{unit, embeddings.Encode(embeddings.Vector{1, 0, 0})}, nil, false},
		{"text arg", []driver.Value{"oops", unit}, nil, true},
		{"bad blob", []driver.Value{[]byte{1, 2, 3}, unit}, nil, true},
		{"arity", []driver.Value{unit}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vecCosine(nil, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegisterFunctions(t *testing.T) {
	if err := registerFunctions(); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Repeat calls report the first outcome instead of registering twice.
	if err := registerFunctions(); err != nil {
		t.Fatalf("second register: %v", err)
	}

	s := newTestStore(t)
	unit := embeddings.Encode(embeddings.Vector{1, 0})
	var score float64
	if err := s.db.QueryRow(`SELECT vec_cosine(?, ?)`, unit, unit).Scan(&score); err != nil {
		t.Fatalf("vec_cosine unavailable: %v", err)
	}
	if score != 1 {
		t.Errorf("got %v, want 1", score)
	}
}
