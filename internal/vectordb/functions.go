package vectordb

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"wordsim/internal/embeddings"
	"wordsim/internal/similarity"
)

var (
	registerOnce sync.Once
	errRegister  error
)

// registerFunctions makes vec_cosine available on connections opened afterwards.
func registerFunctions() error {
	registerOnce.Do(func() {
		if err := sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosine); err != nil {
			errRegister = fmt.Errorf("register vec_cosine: %w", err)
		}
	})
	return errRegister
}

// vecCosine(a BLOB, b BLOB) returns NULL when either side is NULL, degenerate or of
// a different width, so such rows drop out of a ranking.
func vecCosine(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_cosine: expected 2 arguments, got %d", len(args))
	}
	a, err := blobArg(args[0])
	if err != nil {
		return nil, err
	}
	b, err := blobArg(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	score, err := similarity.Cosine(a, b)
	if err != nil {
		return nil, nil
	}
	return score, nil
}

func blobArg(arg driver.Value) (embeddings.Vector, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return embeddings.Decode(v)
	default:
		return nil, fmt.Errorf("vec_cosine: unsupported argument type %T; want BLOB", arg)
	}
}
