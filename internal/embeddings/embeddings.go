package embeddings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Vector is a simple float32 slice wrapper.
type Vector []float32

// ErrWordNotFound is returned by a Provider when the word has no vector in its vocabulary.
var ErrWordNotFound = errors.New("word not found in vocabulary")

// Provider resolves a word to its embedding.
type Provider interface {
	// Name identifies the provider in logs, reports and cache keys.
	Name() string
	// Dim returns the vector length, or 0 when it is not known before the first lookup.
	Dim() int
	// Lookup returns ErrWordNotFound when the word is absent.
	Lookup(ctx context.Context, word string) (Vector, error)
}

// BatchProvider is implemented by providers that resolve many words in one round-trip.
// Absent words are left out of the returned map.
type BatchProvider interface {
	Provider
	LookupMany(ctx context.Context, words []string) (map[string]Vector, error)
}

// Fingerprinter is implemented by providers whose vectors depend on more than
// their name, such as the model, the requested width or the source file.
type Fingerprinter interface {
	Fingerprint() string
}

// Fingerprint identifies the vector space p serves. Two providers with equal
// fingerprints return the same vector for the same word.
func Fingerprint(p Provider) string {
	if f, ok := p.(Fingerprinter); ok {
		return f.Fingerprint()
	}
	return fmt.Sprintf("%s/%d", p.Name(), p.Dim())
}

// Result holds the outcome of an asynchronous lookup.
type Result struct {
	Word   string
	Vector Vector
	Err    error
}

// LookupAsync resolves word in a goroutine. The channel receives exactly one Result and is then closed.
func LookupAsync(ctx context.Context, p Provider, word string) <-chan Result {
	resultCh := make(chan Result, 1)
	go func() {
		defer close(resultCh)
		vec, err := p.Lookup(ctx, word)
		resultCh <- Result{Word: word, Vector: vec, Err: err}
	}()
	return resultCh
}

const defaultResolveConcurrency = 8

// ResolveAll resolves every word. Absent words are left out of the map; any other
// provider error aborts the resolution.
func ResolveAll(ctx context.Context, p Provider, words []string) (map[string]Vector, error) {
	if bp, ok := p.(BatchProvider); ok {
		found, err := bp.LookupMany(ctx, words)
		if err != nil {
			return nil, fmt.Errorf("%s: batch lookup: %w", p.Name(), err)
		}
		return found, nil
	}

	var mu sync.Mutex
	found := make(map[string]Vector, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultResolveConcurrency)
	for _, w := range words {
		g.Go(func() error {
			vec, err := p.Lookup(gctx, w)
			if errors.Is(err, ErrWordNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: lookup %q: %w", p.Name(), w, err)
			}
			mu.Lock()
			found[w] = vec
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}
