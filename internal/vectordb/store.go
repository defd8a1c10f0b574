package vectordb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"wordsim/internal/embeddings"
)

// ErrNoTable is returned when writing to a store before EnsureTable. Reads before
// EnsureTable see an empty store.
var ErrNoTable = errors.New("vectordb: table not initialised")

// Entry is one word and its vector.
type Entry struct {
	Word   string
	Vector embeddings.Vector
}

// Match is a search hit. Score is cosine similarity, higher is closer.
type Match struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Store defines the vector table contract shared by the embedded and Postgres backends.
type Store interface {
	// EnsureTable creates the table for dim-wide vectors, or checks an existing one matches.
	EnsureTable(ctx context.Context, dim int) error
	Upsert(ctx context.Context, entries []Entry) error
	// Get returns the stored vectors; words with no row are left out.
	Get(ctx context.Context, words []string) (map[string]embeddings.Vector, error)
	// Search returns up to k rows ranked by cosine similarity to query.
	Search(ctx context.Context, query embeddings.Vector, k int) ([]Match, error)
	Dim() int
	Close() error
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidateTableName guards table names before they are interpolated into SQL.
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("vectordb: invalid table name %q", name)
	}
	return nil
}

func checkEntries(entries []Entry, dim int) error {
	if dim == 0 {
		return ErrNoTable
	}
	for _, e := range entries {
		if e.Word == "" {
			return errors.New("vectordb: entry with empty word")
		}
		if len(e.Vector) != dim {
			return fmt.Errorf("vectordb: %q has %d values, table holds %d", e.Word, len(e.Vector), dim)
		}
	}
	return nil
}

func isZero(v embeddings.Vector) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
