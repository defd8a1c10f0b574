package similarity

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateVector is returned when a vector is empty or has zero norm.
	ErrDegenerateVector = errors.New("degenerate vector: zero norm")
	// ErrDimensionMismatch is matched by every *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// DimensionMismatchError reports two vectors of different length.
type DimensionMismatchError struct {
	Left, Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: %d vs %d", e.Left, e.Right)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
