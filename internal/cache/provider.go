package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"wordsim/internal/embeddings"
)

// CachedProvider fronts an embeddings.Provider with an in-process LRU and a shared
// VectorCache. Absent words are never cached, so a vocabulary change is picked up
// on the next run. Keys carry the provider's fingerprint, so vectors cached under
// one model or width are never served under another.
type CachedProvider struct {
	inner embeddings.Provider
	scope string
	local *lru.Cache[string, embeddings.Vector]
	store VectorCache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedProvider wraps inner. lruSize must be positive.
func NewCachedProvider(inner embeddings.Provider, store VectorCache, lruSize int, ttl time.Duration, log *slog.Logger) (*CachedProvider, error) {
	if inner == nil {
		return nil, fmt.Errorf("cache: provider cannot be nil")
	}
	if store == nil {
		store = NewNoOpCache()
	}
	local, err := lru.New[string, embeddings.Vector](lruSize)
	if err != nil {
		return nil, fmt.Errorf("cache: lru: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &CachedProvider{inner: inner, scope: embeddings.Fingerprint(inner), local: local, store: store, ttl: ttl, log: log}, nil
}

func (p *CachedProvider) Name() string { return p.inner.Name() }

func (p *CachedProvider) Dim() int { return p.inner.Dim() }

func (p *CachedProvider) Lookup(ctx context.Context, word string) (embeddings.Vector, error) {
	if vec, ok := p.cached(ctx, word); ok {
		return vec, nil
	}
	vec, err := p.inner.Lookup(ctx, word)
	if err != nil {
		return nil, err
	}
	p.remember(ctx, word, vec)
	return vec, nil
}

// LookupMany serves hits from the cache tiers and resolves only the misses through
// the wrapped provider.
func (p *CachedProvider) LookupMany(ctx context.Context, words []string) (map[string]embeddings.Vector, error) {
	out := make(map[string]embeddings.Vector, len(words))
	var misses []string
	for _, w := range words {
		if vec, ok := p.cached(ctx, w); ok {
			out[w] = vec
			continue
		}
		misses = append(misses, w)
	}
	if len(misses) == 0 {
		return out, nil
	}
	p.log.Debug("vector cache miss", "scope", p.scope, "words", len(misses))

	resolved, err := embeddings.ResolveAll(ctx, p.inner, misses)
	if err != nil {
		return nil, err
	}
	for w, vec := range resolved {
		p.remember(ctx, w, vec)
		out[w] = vec
	}
	return out, nil
}

func (p *CachedProvider) cached(ctx context.Context, word string) (embeddings.Vector, bool) {
	key := Key(p.scope, word)
	if vec, ok := p.local.Get(key); ok {
		return vec, true
	}
	vec, ok, err := p.store.Get(ctx, key)
	if err != nil {
		// Cache read failures degrade to a miss.
		p.log.Warn("vector cache read failed", "key", key, "err", err)
		return nil, false
	}
	if ok {
		p.local.Add(key, vec)
	}
	return vec, ok
}

func (p *CachedProvider) remember(ctx context.Context, word string, vec embeddings.Vector) {
	key := Key(p.scope, word)
	p.local.Add(key, vec)
	if err := p.store.Set(ctx, key, vec, p.ttl); err != nil {
		p.log.Warn("vector cache write failed", "key", key, "err", err)
	}
}

var _ embeddings.BatchProvider = (*CachedProvider)(nil)
