package vectordb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"wordsim/internal/embeddings"
)

// PostgresStore keeps vectors in a pgvector column and ranks with the <=> operator.
type PostgresStore struct {
	db    *sql.DB
	table string
	dim   int
}

func NewPostgres(dsn, table string) (*PostgresStore, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db, table: table}, nil
}

func (s *PostgresStore) EnsureTable(ctx context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("vectordb: dim must be positive, got %d", dim)
	}
	// Serialise concurrent runs creating the same table.
	const lockID = 727367

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	if _, err := conn.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		word TEXT PRIMARY KEY,
		vector vector(%d) NOT NULL
	)`, s.table, dim)
	if _, err := conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	// A pre-existing table keeps its declared width; make sure it is ours.
	var width int
	err = conn.QueryRowContext(ctx, `
		SELECT atttypmod FROM pg_attribute
		WHERE attrelid = $1::regclass AND attname = 'vector'`, s.table).Scan(&width)
	if err != nil {
		return fmt.Errorf("inspect table %s: %w", s.table, err)
	}
	if width > 0 && width != dim {
		return fmt.Errorf("vectordb: table %s holds %d-dim vectors, want %d", s.table, width, dim)
	}
	s.dim = dim
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, entries []Entry) error {
	if err := checkEntries(entries, s.dim); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s(word, vector) VALUES($1, $2)
		ON CONFLICT (word) DO UPDATE SET vector=excluded.vector`, s.table)
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, e.Word, pgvector.NewVector(e.Vector)); err != nil {
			return fmt.Errorf("upsert %q: %w", e.Word, err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) Get(ctx context.Context, words []string) (map[string]embeddings.Vector, error) {
	out := make(map[string]embeddings.Vector, len(words))
	if len(words) == 0 {
		return out, nil
	}
	if s.dim == 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT word, vector FROM %s WHERE word = ANY($1)`, s.table), pq.Array(words))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			word string
			vec  pgvector.Vector
		)
		if err := rows.Scan(&word, &vec); err != nil {
			return nil, err
		}
		out[word] = vec.Slice()
	}
	return out, rows.Err()
}

func (s *PostgresStore) Search(ctx context.Context, query embeddings.Vector, k int) ([]Match, error) {
	if s.dim == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != s.dim {
		return nil, fmt.Errorf("vectordb: query has %d values, table holds %d", len(query), s.dim)
	}
	// <=> against a zero vector is NaN; vec_cosine yields NULL for the same input.
	if isZero(query) {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT word, 1 - (vector <=> $1) AS score
		FROM %s
		WHERE vector_norm(vector) > 0
		ORDER BY vector <=> $1, word
		LIMIT $2`, s.table), pgvector.NewVector(query), k)
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

func (s *PostgresStore) Dim() int { return s.dim }

func (s *PostgresStore) Close() error { return s.db.Close() }

var _ Store = (*PostgresStore)(nil)
