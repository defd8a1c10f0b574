package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wordsim/internal/embeddings"
	"wordsim/internal/similarity"
)

const defaultPreviewDims = 10

// WriteText renders rep as:
//
//	word: [v1, v2, ... ...]
//	w1 vs w2: 0.994 (highly similar)
//
// Absent words get a single not-found line; skipped pairs are listed after the scores.
func WriteText(w io.Writer, rep *similarity.Report, opts Options) error {
	if rep == nil {
		return fmt.Errorf("report: nil report")
	}
	if opts.PreviewDims <= 0 {
		opts.PreviewDims = defaultPreviewDims
	}
	p := phrasesFor(opts.Locale)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, p.header, rep.Provider, rep.Dim)
	fmt.Fprintf(bw, p.vectors, opts.PreviewDims)
	for _, wr := range rep.Words {
		if !wr.Found {
			fmt.Fprintf(bw, p.absent, wr.Word)
			continue
		}
		fmt.Fprintf(bw, "%s: [%s ...]\n", wr.Word, preview(wr.Vector, opts.PreviewDims))
	}

	fmt.Fprint(bw, p.pairs)
	for _, pr := range rep.Pairs {
		fmt.Fprintf(bw, "%s vs %s: %.3f (%s)\n", pr.A, pr.B, pr.Score, pr.Label.Text(opts.Locale))
	}
	for _, sp := range rep.Skipped {
		fmt.Fprintf(bw, p.skipped, sp.A, sp.B, sp.Reason)
	}
	return bw.Flush()
}

// WriteNeighbours renders one line per query word:
//
//	nearest to "cat": cat (1.000), dog (0.922), kitten (0.800)
func WriteNeighbours(w io.Writer, nbs []Neighbours, opts Options) error {
	if len(nbs) == 0 {
		return nil
	}
	p := phrasesFor(opts.Locale)
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, p.neighbours)
	for _, nb := range nbs {
		fmt.Fprintf(bw, p.nearest, nb.Word)
		for i, m := range nb.Matches {
			if i > 0 {
				bw.WriteString(", ")
			}
			fmt.Fprintf(bw, "%s (%.3f)", m.Word, m.Score)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func preview(v embeddings.Vector, n int) string {
	if n > len(v) {
		n = len(v)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.FormatFloat(float64(v[i]), 'f', 3, 32)
	}
	return strings.Join(parts, ", ")
}
