package similarity

// Label buckets a similarity score.
type Label int

const (
	NotVerySimilar Label = iota
	ModeratelySimilar
	HighlySimilar
)

// Lower bounds, inclusive.
const (
	HighThreshold     = 0.7
	ModerateThreshold = 0.4
)

// Classify maps a score to its label. The first matching threshold wins.
func Classify(score float64) Label {
	switch {
	case score >= HighThreshold:
		return HighlySimilar
	case score >= ModerateThreshold:
		return ModeratelySimilar
	default:
		return NotVerySimilar
	}
}

func (l Label) String() string {
	switch l {
	case HighlySimilar:
		return "highly similar"
	case ModeratelySimilar:
		return "moderately similar"
	default:
		return "not very similar"
	}
}

var zhLabels = map[Label]string{
	HighlySimilar:     "非常相似",
	ModeratelySimilar: "较为相似",
	NotVerySimilar:    "不太相似",
}

// Text returns the label in the given locale ("en" or "zh"). Unknown locales fall back to English.
func (l Label) Text(locale string) string {
	if locale == "zh" {
		if s, ok := zhLabels[l]; ok {
			return s
		}
	}
	return l.String()
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
