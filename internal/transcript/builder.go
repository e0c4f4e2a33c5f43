package transcript

import (
	"strconv"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/hashid"
)

// BuildUnits composes chunks into retrieval units, one per chunk in order.
// Unit ids are assigned from the video id plus the chunk's 0-based ordinal,
// so rebuilding the same transcript with the same chunking yields the same
// ids and the index upserts instead of duplicating.
func BuildUnits(videoID, title string, chunks []model.Chunk) []model.RetrievalUnit {
	units := make([]model.RetrievalUnit, 0, len(chunks))
	for i, chunk := range chunks {
		units = append(units, model.RetrievalUnit{
			ID:   hashid.Assign(videoID + strconv.Itoa(i)),
			Text: chunk.Render(),
			Metadata: model.UnitMetadata{
				Title:   title,
				VideoID: videoID,
				Start:   chunk.Start(),
				End:     chunk.End(),
			},
		})
	}
	return units
}
