package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

func citationUnits() []model.RetrievalUnit {
	return []model.RetrievalUnit{
		{
			ID:   1,
			Text: "<60><5><intro>",
			Metadata: model.UnitMetadata{
				Title:   "Talk",
				VideoID: "abc123",
				Start:   60,
				End:     120,
			},
		},
		{
			ID:   2,
			Text: "<600><4><outro>",
			Metadata: model.UnitMetadata{
				Title:   "Other",
				VideoID: "xyz_789",
				Start:   600,
				End:     660,
			},
		},
	}
}

func TestParseCitationsFullLine(t *testing.T) {
	reply := "The speaker explains it early on.\n" +
		"source_id=0 start_time=0:01:05 seconds=65 end_time=0:02:00 video_id=abc123 `intro`"
	citations := parseCitations(reply, citationUnits())
	require.Len(t, citations, 1)
	c := citations[0]
	require.Equal(t, 0, c.SourceIndex)
	require.Equal(t, "abc123", c.VideoID)
	require.Equal(t, 65, c.StartSeconds)
	require.Equal(t, 120, c.EndSeconds)
	require.Equal(t, "intro", c.Quote)
}

func TestParseCitationsSecondsPreferred(t *testing.T) {
	// seconds= carries the raw value; start_time= is only a fallback.
	citations := parseCitations("seconds=65 start_time=0:09:59 video_id=abc123", citationUnits())
	require.Len(t, citations, 1)
	require.Equal(t, 65, citations[0].StartSeconds)
}

func TestParseCitationsStartTimeFallback(t *testing.T) {
	citations := parseCitations("start_time=1:02:03 video_id=abc123", citationUnits())
	require.Len(t, citations, 1)
	require.Equal(t, 3723, citations[0].StartSeconds)
	require.Equal(t, -1, citations[0].SourceIndex)
	require.Equal(t, 3723, citations[0].EndSeconds)
}

func TestParseCitationsEndFromUnit(t *testing.T) {
	citations := parseCitations("source_id=1 seconds=600", citationUnits())
	require.Len(t, citations, 1)
	require.Equal(t, 1, citations[0].SourceIndex)
	require.Equal(t, "xyz_789", citations[0].VideoID)
	require.Equal(t, 660, citations[0].EndSeconds)
}

func TestParseCitationsOutOfRangeSourceID(t *testing.T) {
	// An unresolvable source id with no video_id is not a citation.
	citations := parseCitations("source_id=9 seconds=10", citationUnits())
	require.Empty(t, citations)

	// With a video_id on the line it still counts, source unresolved.
	citations = parseCitations("source_id=9 seconds=10 video_id=abc123", citationUnits())
	require.Len(t, citations, 1)
	require.Equal(t, -1, citations[0].SourceIndex)
}

func TestParseCitationsNoTokens(t *testing.T) {
	require.Empty(t, parseCitations("I don't know.", citationUnits()))
	require.Empty(t, parseCitations("video_id=abc123 but no start", citationUnits()))
	require.Empty(t, parseCitations("", citationUnits()))
}

func TestParseCitationsMultipleLines(t *testing.T) {
	reply := "Answer text.\n" +
		"source_id=0 seconds=65\n" +
		"source_id=1 seconds=600\n"
	citations := parseCitations(reply, citationUnits())
	require.Len(t, citations, 2)
	require.Equal(t, "abc123", citations[0].VideoID)
	require.Equal(t, "xyz_789", citations[1].VideoID)
}

func TestFormatTimestamp(t *testing.T) {
	for _, tc := range []struct {
		seconds int
		want    string
	}{
		{0, "0:00:00"},
		{65, "0:01:05"},
		{3723, "1:02:03"},
		{36000, "10:00:00"},
		{-5, "0:00:00"},
	} {
		require.Equal(t, tc.want, FormatTimestamp(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, sec := range []int{0, 1, 59, 60, 61, 3599, 3600, 3661, 7262} {
		line := "start_time=" + FormatTimestamp(sec) + " video_id=abc123"
		citations := parseCitations(line, nil)
		require.Len(t, citations, 1, "seconds=%d", sec)
		require.Equal(t, sec, citations[0].StartSeconds)
	}
}
