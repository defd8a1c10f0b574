package embeddings

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// EncoderConfig configures an OpenAI-compatible embeddings endpoint.
type EncoderConfig struct {
	APIKey string
	// BaseURL points the client at any OpenAI-compatible server (for example one
	// hosting all-MiniLM-L6-v2). Empty means api.openai.com.
	BaseURL string
	Model   openai.EmbeddingModel
	// Dimensions asks the model for shorter vectors when supported. Zero keeps the default.
	Dimensions int
	// Normalize rescales every vector to unit length.
	Normalize bool
	Timeout   time.Duration
}

// Encoder embeds words with a transformer model served behind the embeddings API.
type Encoder struct {
	model      openai.EmbeddingModel
	dimensions int
	normalize  bool
	timeout    time.Duration
	client     *openai.Client
	dim        atomic.Int64
}

const defaultEmbeddingTimeout = 30 * time.Second

// NewEncoder creates a new embeddings client.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if cfg.Model == "" {
		cfg.Model = openai.EmbeddingModelTextEmbedding3Small
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEmbeddingTimeout
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	cli := openai.NewClient(opts...)
	e := &Encoder{
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		normalize:  cfg.Normalize,
		timeout:    cfg.Timeout,
		client:     &cli,
	}
	e.dim.Store(int64(cfg.Dimensions))
	return e, nil
}

func (e *Encoder) Name() string { return "transformer" }

// Dim is the requested dimension, or the width of the last response when the model default is used.
func (e *Encoder) Dim() int { return int(e.dim.Load()) }

// Fingerprint is fixed at construction; the width learned from responses is not part of it.
func (e *Encoder) Fingerprint() string {
	return fmt.Sprintf("transformer/%s/%d/normalize=%t", e.model, e.dimensions, e.normalize)
}

func (e *Encoder) Lookup(ctx context.Context, word string) (Vector, error) {
	vecs, err := e.embed(ctx, []string{word})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// LookupMany embeds all words in a single request. An encoder has no closed
// vocabulary, so every word comes back resolved.
func (e *Encoder) LookupMany(ctx context.Context, words []string) (map[string]Vector, error) {
	if len(words) == 0 {
		return map[string]Vector{}, nil
	}
	vecs, err := e.embed(ctx, words)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Vector, len(words))
	for i, w := range words {
		out[w] = vecs[i]
	}
	return out, nil
}

func (e *Encoder) embed(ctx context.Context, texts []string) ([]Vector, error) {
	if e == nil || e.client == nil {
		return nil, fmt.Errorf("nil openai client")
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("openai: cannot embed empty text")
		}
	}
	reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	params := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: e.model,
	}
	if e.dimensions > 0 {
		params.Dimensions = openai.Int(int64(e.dimensions))
	}
	resp, err := e.client.Embeddings.New(reqCtx, params)
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai: got %d embeddings for %d inputs", len(resp.Data), len(texts))
	}

	out := make([]Vector, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(out) {
			return nil, fmt.Errorf("openai: embedding index %d out of range", d.Index)
		}
		out[d.Index] = toVector(d.Embedding, e.normalize)
	}
	e.dim.Store(int64(len(out[0])))
	return out, nil
}

// toVector converts the API's []float64 to a Vector, optionally scaling it to unit length.
func toVector(embedding []float64, normalize bool) Vector {
	scale := 1.0
	if normalize {
		var sum float64
		for _, v := range embedding {
			sum += v * v
		}
		if sum > 0 {
			scale = 1 / math.Sqrt(sum)
		}
	}
	vec := make(Vector, len(embedding))
	for i, v := range embedding {
		vec[i] = float32(v * scale)
	}
	return vec
}

var _ BatchProvider = (*Encoder)(nil)
