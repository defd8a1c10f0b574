package embeddings

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// GloveOptions controls how a GloVe text file is read.
type GloveOptions struct {
	// MaxDim truncates every vector to its first MaxDim values. Zero keeps the full width.
	MaxDim int
}

// Glove serves vectors parsed from a GloVe text file ("word v1 v2 ... vN" per line).
type Glove struct {
	vectors map[string]Vector
	dim     int
	source  string
}

// OpenGlove loads the GloVe file at path.
func OpenGlove(path string, opts GloveOptions) (*Glove, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glove file: %w", err)
	}
	defer f.Close()
	g, err := LoadGlove(f, opts)
	if err != nil {
		return nil, err
	}
	g.source = filepath.Base(path)
	return g, nil
}

// LoadGlove parses GloVe-formatted text. Blank lines are skipped; every other line
// must carry the same number of values.
func LoadGlove(r io.Reader, opts GloveOptions) (*Glove, error) {
	if opts.MaxDim < 0 {
		return nil, fmt.Errorf("glove: negative MaxDim %d", opts.MaxDim)
	}
	g := &Glove{vectors: make(map[string]Vector)}

	sc := bufio.NewScanner(r)
	// glove.840B lines run past the default 64KiB token limit.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	width := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("glove: line %d: word without values", lineNo)
		}
		values := fields[1:]
		if width == 0 {
			width = len(values)
		} else if len(values) != width {
			return nil, fmt.Errorf("glove: line %d: got %d values, want %d", lineNo, len(values), width)
		}
		if opts.MaxDim > 0 && len(values) > opts.MaxDim {
			values = values[:opts.MaxDim]
		}
		vec := make(Vector, len(values))
		for i, s := range values {
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("glove: line %d: value %d: %w", lineNo, i+1, err)
			}
			vec[i] = float32(f)
		}
		g.vectors[fields[0]] = vec
		g.dim = len(vec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("glove: read: %w", err)
	}
	return g, nil
}

func (g *Glove) Name() string { return "glove" }

func (g *Glove) Dim() int { return g.dim }

// Fingerprint covers the truncated width and, for files, the file name.
func (g *Glove) Fingerprint() string {
	if g.source == "" {
		return fmt.Sprintf("glove/%d", g.dim)
	}
	return fmt.Sprintf("glove/%d/%s", g.dim, g.source)
}

// Vocabulary returns the number of words loaded.
func (g *Glove) Vocabulary() int { return len(g.vectors) }

func (g *Glove) Lookup(_ context.Context, word string) (Vector, error) {
	vec, ok := g.vectors[word]
	if !ok {
		return nil, ErrWordNotFound
	}
	return vec, nil
}

// LookupMany answers from memory; it never fails.
func (g *Glove) LookupMany(_ context.Context, words []string) (map[string]Vector, error) {
	out := make(map[string]Vector, len(words))
	for _, w := range words {
		if vec, ok := g.vectors[w]; ok {
			out[w] = vec
		}
	}
	return out, nil
}

var _ BatchProvider = (*Glove)(nil)
