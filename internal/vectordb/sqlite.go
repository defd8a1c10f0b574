package vectordb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wordsim/internal/embeddings"
)

// SQLiteStore keeps vectors in an embedded SQLite file as little-endian float32 BLOBs.
type SQLiteStore struct {
	db    *sql.DB
	table string
	dim   int
}

// NewSQLite opens (or creates) the database at path. ":memory:" gives a private
// in-memory database.
func NewSQLite(path, table string) (*SQLiteStore, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}
	if err := registerFunctions(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: SQLite serialises writers anyway and ":memory:" is per-connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db, table: table}, nil
}

func (s *SQLiteStore) EnsureTable(ctx context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("vectordb: dim must be positive, got %d", dim)
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		word TEXT PRIMARY KEY,
		vector BLOB NOT NULL
	)`, s.table)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	var width int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT length(vector) FROM %s LIMIT 1`, s.table)).Scan(&width)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("inspect table %s: %w", s.table, err)
	case int(width/4) != dim:
		return fmt.Errorf("vectordb: table %s holds %d-dim vectors, want %d", s.table, width/4, dim)
	}
	s.dim = dim
	return nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, entries []Entry) error {
	if err := checkEntries(entries, s.dim); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s(word, vector) VALUES(?, ?)
		ON CONFLICT(word) DO UPDATE SET vector=excluded.vector`, s.table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Word, embeddings.Encode(e.Vector)); err != nil {
			return fmt.Errorf("upsert %q: %w", e.Word, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Get(ctx context.Context, words []string) (map[string]embeddings.Vector, error) {
	out := make(map[string]embeddings.Vector, len(words))
	if len(words) == 0 {
		return out, nil
	}
	if s.dim == 0 {
		// No table yet: nothing has been stored.
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(words)), ",")
	args := make([]any, len(words))
	for i, w := range words {
		args[i] = w
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT word, vector FROM %s WHERE word IN (%s)`, s.table, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			word string
			blob []byte
		)
		if err := rows.Scan(&word, &blob); err != nil {
			return nil, err
		}
		vec, err := embeddings.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", word, err)
		}
		out[word] = vec
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Search(ctx context.Context, query embeddings.Vector, k int) ([]Match, error) {
	if s.dim == 0 {
		return nil, ErrNoTable
	}
	if k <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT word, score FROM (
			SELECT word, vec_cosine(vector, ?) AS score FROM %s
		)
		WHERE score IS NOT NULL
		ORDER BY score DESC, word
		LIMIT ?`, s.table), embeddings.Encode(query), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Word, &m.Score); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Dim() int { return s.dim }

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
