package transcript

import (
	"reflect"
	"testing"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

func TestBuildUnits(t *testing.T) {
	chunks := Segment([]model.TranscriptLine{
		{Start: 0, Duration: 2, Text: "hi"},
		{Start: 2, Duration: 3, Text: "there"},
		{Start: 5, Duration: 1, Text: "ok"},
	}, 2)

	units := BuildUnits("abc123", "Some Episode", chunks)
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2", len(units))
	}
	if units[0].ID == units[1].ID {
		t.Errorf("chunk ordinals produced the same id %d", units[0].ID)
	}
	if units[0].Text != "<0><2><hi> <2><3><there>" {
		t.Errorf("unit 0 text = %q", units[0].Text)
	}
	want := model.UnitMetadata{Title: "Some Episode", VideoID: "abc123", Start: 0, End: 5}
	if units[0].Metadata != want {
		t.Errorf("unit 0 metadata = %+v, want %+v", units[0].Metadata, want)
	}
	if units[1].Metadata.Start != 5 || units[1].Metadata.End != 6 {
		t.Errorf("unit 1 envelope = (%d,%d), want (5,6)", units[1].Metadata.Start, units[1].Metadata.End)
	}
}

func TestBuildUnitsIdempotent(t *testing.T) {
	lines := makeLines(30)
	first := BuildUnits("vid", "title", Segment(lines, 10))
	second := BuildUnits("vid", "title", Segment(lines, 10))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("rebuilding the same transcript produced different units")
	}
}

func TestBuildUnitsDistinctVideos(t *testing.T) {
	chunks := Segment(makeLines(5), 5)
	a := BuildUnits("video-a", "a", chunks)
	b := BuildUnits("video-b", "b", chunks)
	if a[0].ID == b[0].ID {
		t.Errorf("different videos share unit id %d", a[0].ID)
	}
}
