package similarity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"wordsim/internal/embeddings"
)

// WordResult is the lookup outcome for one candidate word.
type WordResult struct {
	Word   string            `json:"word"`
	Vector embeddings.Vector `json:"vector,omitempty"`
	Found  bool              `json:"found"`
}

// PairResult is one scored pair.
type PairResult struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
	Label Label   `json:"label"`
}

// SkippedPair is a pair that was excluded from scoring.
type SkippedPair struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Report is the outcome of one evaluation run.
type Report struct {
	ID        uuid.UUID     `json:"id"`
	Provider  string        `json:"provider"`
	Dim       int           `json:"dim"`
	Words     []WordResult  `json:"words"`
	Pairs     []PairResult  `json:"pairs"`
	Skipped   []SkippedPair `json:"skipped,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Missing returns the words the provider did not have, in input order.
func (r *Report) Missing() []string {
	var out []string
	for _, w := range r.Words {
		if !w.Found {
			out = append(out, w.Word)
		}
	}
	return out
}

type evaluateInput struct {
	Words []string `validate:"required,min=1,unique,dive,word"`
}

var validate = newValidator()

// newValidator panics if the "word" rule cannot be registered; Evaluate would
// otherwise reject every input with an undefined-tag error.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("word", validWord); err != nil {
		panic(fmt.Sprintf("similarity: register word validation: %v", err))
	}
	return v
}

func validWord(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}

type options struct {
	log *slog.Logger
	now func() time.Time
}

// Option configures Evaluate.
type Option func(*options)

// WithLogger sets the logger used for the run summary.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Evaluate resolves every word through p and scores each unordered pair (i < j) of
// resolved words in index order. Absent words are reported once and left out of
// every pair. A pair whose vectors are degenerate or of different length is
// recorded in Skipped and the run continues. Any other provider error aborts.
func Evaluate(ctx context.Context, p embeddings.Provider, words []string, opts ...Option) (*Report, error) {
	o := options{log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if p == nil {
		return nil, errors.New("similarity: provider cannot be nil")
	}
	if err := validate.Struct(evaluateInput{Words: words}); err != nil {
		return nil, fmt.Errorf("similarity: invalid words: %w", err)
	}

	found, err := embeddings.ResolveAll(ctx, p, words)
	if err != nil {
		return nil, fmt.Errorf("similarity: resolve: %w", err)
	}

	rep := &Report{
		ID:        uuid.New(),
		Provider:  p.Name(),
		Words:     make([]WordResult, len(words)),
		Pairs:     []PairResult{},
		CreatedAt: o.now().UTC(),
	}
	for i, w := range words {
		vec, ok := found[w]
		rep.Words[i] = WordResult{Word: w, Vector: vec, Found: ok}
		if ok && rep.Dim == 0 {
			rep.Dim = len(vec)
		}
	}
	if rep.Dim == 0 {
		rep.Dim = p.Dim()
	}

	for i := 0; i < len(words); i++ {
		a := rep.Words[i]
		if !a.Found {
			continue
		}
		for j := i + 1; j < len(words); j++ {
			b := rep.Words[j]
			if !b.Found {
				continue
			}
			score, err := Cosine(a.Vector, b.Vector)
			if err != nil {
				rep.Skipped = append(rep.Skipped, SkippedPair{A: a.Word, B: b.Word, Reason: err.Error(), Err: err})
				continue
			}
			rep.Pairs = append(rep.Pairs, PairResult{A: a.Word, B: b.Word, Score: score, Label: Classify(score)})
		}
	}

	o.log.Info("similarity evaluated",
		"provider", rep.Provider,
		"dim", rep.Dim,
		"words", len(words),
		"missing", len(words)-len(found),
		"pairs", len(rep.Pairs),
		"skipped", len(rep.Skipped),
	)
	return rep, nil
}
