package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

func makeHits(texts ...string) []model.Hit {
	hits := make([]model.Hit, 0, len(texts))
	for i, text := range texts {
		hits = append(hits, model.Hit{
			Unit: model.RetrievalUnit{
				ID:   uint64(i + 1),
				Text: text,
				Metadata: model.UnitMetadata{
					Title:   "Talk",
					VideoID: "abc123",
					Start:   i * 60,
					End:     i*60 + 60,
				},
			},
			Score: float32(1) / float32(i+1),
		})
	}
	return hits
}

func TestAssembleContextFormat(t *testing.T) {
	block, units := assembleContext(makeHits("<0><2><hi> <2><3><there>", "<5><1><ok>"))
	want := "Source ID: 0\nVideo Title: Talk\nTranscript Snippet: <0><2><hi> <2><3><there>\n\n" +
		"Source ID: 1\nVideo Title: Talk\nTranscript Snippet: <5><1><ok>"
	require.Equal(t, want, block)
	require.Len(t, units, 2)
	require.Equal(t, "<5><1><ok>", units[1].Text)
}

func TestAssembleContextEmpty(t *testing.T) {
	block, units := assembleContext(nil)
	require.Empty(t, block)
	require.Empty(t, units)
}

func TestAssembleContextDeterministic(t *testing.T) {
	hits := makeHits("a", "b", "c")
	first, _ := assembleContext(hits)
	second, _ := assembleContext(hits)
	require.Equal(t, first, second)
}

func TestAssembleContextPreservesOrder(t *testing.T) {
	hits := makeHits("first", "second", "third")
	_, units := assembleContext(hits)
	for i, unit := range units {
		require.Equal(t, hits[i].Unit.ID, unit.ID)
	}
}
