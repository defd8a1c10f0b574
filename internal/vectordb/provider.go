package vectordb

import (
	"context"
	"fmt"

	"wordsim/internal/embeddings"
)

// Provider serves embeddings read back from a Store.
type Provider struct {
	store Store
	name  string
}

func NewProvider(store Store, name string) *Provider {
	if name == "" {
		name = "vectordb"
	}
	return &Provider{store: store, name: name}
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) Dim() int { return p.store.Dim() }

func (p *Provider) Lookup(ctx context.Context, word string) (embeddings.Vector, error) {
	found, err := p.store.Get(ctx, []string{word})
	if err != nil {
		return nil, err
	}
	vec, ok := found[word]
	if !ok {
		return nil, embeddings.ErrWordNotFound
	}
	return vec, nil
}

func (p *Provider) LookupMany(ctx context.Context, words []string) (map[string]embeddings.Vector, error) {
	return p.store.Get(ctx, words)
}

var _ embeddings.BatchProvider = (*Provider)(nil)

// IngestResult lists which words were written and which the source did not have.
type IngestResult struct {
	Inserted []string
	Missing  []string
}

// Ingest copies the vectors for words from src into store, creating the table on
// first use. Words absent from src are reported in Missing and not written. The
// table is opened even when nothing is written, so rows from an earlier run stay
// readable.
func Ingest(ctx context.Context, store Store, src embeddings.Provider, words []string) (IngestResult, error) {
	var res IngestResult
	found, err := embeddings.ResolveAll(ctx, src, words)
	if err != nil {
		return res, fmt.Errorf("ingest: %w", err)
	}

	entries := make([]Entry, 0, len(found))
	for _, w := range words {
		vec, ok := found[w]
		if !ok {
			res.Missing = append(res.Missing, w)
			continue
		}
		entries = append(entries, Entry{Word: w, Vector: vec})
		res.Inserted = append(res.Inserted, w)
	}
	dim := src.Dim()
	if dim == 0 && len(entries) > 0 {
		dim = len(entries[0].Vector)
	}
	if dim == 0 {
		// Width unknown and nothing to write; reads see an empty store.
		return res, nil
	}
	if err := store.EnsureTable(ctx, dim); err != nil {
		return IngestResult{}, fmt.Errorf("ingest: %w", err)
	}
	if len(entries) == 0 {
		return res, nil
	}
	if err := store.Upsert(ctx, entries); err != nil {
		return IngestResult{}, fmt.Errorf("ingest: %w", err)
	}
	return res, nil
}
