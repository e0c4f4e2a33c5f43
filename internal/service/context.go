package service

import (
	"fmt"
	"strings"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

// assembleContext renders the ranked hits into the context block handed to
// the chat capability and returns, in the same order, the units backing
// each source index. The block format is part of the answer contract: the
// source index printed here is what the model cites back.
func assembleContext(ranked []model.Hit) (string, []model.RetrievalUnit) {
	var sb strings.Builder
	units := make([]model.RetrievalUnit, 0, len(ranked))
	for i, hit := range ranked {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Source ID: %d\nVideo Title: %s\nTranscript Snippet: %s",
			i, hit.Unit.Metadata.Title, hit.Unit.Text)
		units = append(units, hit.Unit)
	}
	return sb.String(), units
}
