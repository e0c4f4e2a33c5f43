package transcript

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

func makeLines(n int) []model.TranscriptLine {
	lines := make([]model.TranscriptLine, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, model.TranscriptLine{
			Start:    i * 2,
			Duration: 2,
			Text:     fmt.Sprintf("line %d", i),
		})
	}
	return lines
}

func TestSegmentLosslessPartition(t *testing.T) {
	tests := []struct {
		name       string
		lines      int
		maxLines   int
		wantChunks int
	}{
		{name: "empty", lines: 0, maxLines: 10, wantChunks: 0},
		{name: "single line", lines: 1, maxLines: 10, wantChunks: 1},
		{name: "exact multiple", lines: 20, maxLines: 10, wantChunks: 2},
		{name: "short tail", lines: 25, maxLines: 10, wantChunks: 3},
		{name: "one line per chunk", lines: 5, maxLines: 1, wantChunks: 5},
		{name: "single oversized chunk", lines: 7, maxLines: 100, wantChunks: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := makeLines(tt.lines)
			chunks := Segment(lines, tt.maxLines)
			if len(chunks) != tt.wantChunks {
				t.Fatalf("got %d chunks, want %d", len(chunks), tt.wantChunks)
			}
			var rejoined []model.TranscriptLine
			for i, chunk := range chunks {
				if len(chunk.Lines) == 0 {
					t.Fatalf("chunk %d is empty", i)
				}
				if len(chunk.Lines) > tt.maxLines {
					t.Fatalf("chunk %d has %d lines, max is %d", i, len(chunk.Lines), tt.maxLines)
				}
				if i < len(chunks)-1 && len(chunk.Lines) != tt.maxLines {
					t.Fatalf("non-final chunk %d has %d lines, want exactly %d", i, len(chunk.Lines), tt.maxLines)
				}
				rejoined = append(rejoined, chunk.Lines...)
			}
			if tt.lines == 0 {
				return
			}
			if !reflect.DeepEqual(rejoined, lines) {
				t.Errorf("concatenated chunks do not reproduce the input")
			}
		})
	}
}

func TestSegmentTimingEnvelope(t *testing.T) {
	lines := []model.TranscriptLine{
		{Start: 0, Duration: 2, Text: "hi"},
		{Start: 2, Duration: 3, Text: "there"},
		{Start: 5, Duration: 1, Text: "ok"},
	}
	chunks := Segment(lines, 2)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if got := chunks[0].Start(); got != 0 {
		t.Errorf("chunk 0 start = %d, want 0", got)
	}
	if got := chunks[0].End(); got != 5 {
		t.Errorf("chunk 0 end = %d, want 5", got)
	}
	if got := chunks[1].Start(); got != 5 {
		t.Errorf("chunk 1 start = %d, want 5", got)
	}
	if got := chunks[1].End(); got != 6 {
		t.Errorf("chunk 1 end = %d, want 6", got)
	}
}

func TestChunkRender(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.TranscriptLine
		want  string
	}{
		{
			name: "joins lines with single spaces",
			lines: []model.TranscriptLine{
				{Start: 0, Duration: 2, Text: "hi"},
				{Start: 2, Duration: 3, Text: "there"},
			},
			want: "<0><2><hi> <2><3><there>",
		},
		{
			name: "truncates fractional duration",
			lines: []model.TranscriptLine{
				{Start: 478, Duration: 6.13, Text: "Hey pal"},
			},
			want: "<478><6><Hey pal>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Chunk{Lines: tt.lines}.Render()
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
