// Package report renders similarity reports for the terminal or as JSON.
package report

import (
	"wordsim/internal/similarity"
	"wordsim/internal/vectordb"
)

// Options controls text rendering.
type Options struct {
	// PreviewDims is how many leading vector values each word line shows.
	PreviewDims int
	// Locale selects "en" or "zh" wording.
	Locale string
}

// Neighbours lists the nearest stored words to Word.
type Neighbours struct {
	Word    string           `json:"word"`
	Matches []vectordb.Match `json:"matches"`
}

// Document is the JSON shape of a run: the evaluation plus any neighbour searches.
type Document struct {
	*similarity.Report
	Neighbours []Neighbours `json:"neighbours,omitempty"`
}

type phrases struct {
	header     string
	vectors    string
	absent     string
	pairs      string
	skipped    string
	neighbours string
	nearest    string
}

var locales = map[string]phrases{
	"en": {
		header:     "provider: %s (dim %d)\n",
		vectors:    "\nWord vectors (first %d dims):\n",
		absent:     "%s: not found in vocabulary\n",
		pairs:      "\nWord similarity:\n",
		skipped:    "%s vs %s: skipped (%s)\n",
		neighbours: "\nNearest neighbours:\n",
		nearest:    "nearest to %q: ",
	},
	"zh": {
		header:     "模型: %s (%d 维)\n",
		vectors:    "\n词向量示例 (前%d维):\n",
		absent:     "%s: ❌ 不在 GloVe 模型词表中\n",
		pairs:      "\n词相似度:\n",
		skipped:    "%s vs %s: 已跳过 (%s)\n",
		neighbours: "\n相似词检索:\n",
		nearest:    "与 %q 最相似的词有：",
	},
}

func phrasesFor(locale string) phrases {
	if p, ok := locales[locale]; ok {
		return p
	}
	return locales["en"]
}
