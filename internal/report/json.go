package report

import (
	"encoding/json"
	"fmt"
	"io"

	"wordsim/internal/similarity"
)

// WriteJSON encodes the run as one indented JSON document.
func WriteJSON(w io.Writer, rep *similarity.Report, nbs []Neighbours) error {
	if rep == nil {
		return fmt.Errorf("report: nil report")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(Document{Report: rep, Neighbours: nbs})
}
