package transcript

import (
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

// Segment splits a transcript into ordered chunks of at most maxLines lines
// each. Lines are accumulated into a buffer that is flushed exactly every
// maxLines lines, so every chunk except possibly the last is full and the
// concatenation of all chunks reproduces the input. Empty input yields no
// chunks.
func Segment(lines []model.TranscriptLine, maxLines int) []model.Chunk {
	if maxLines < 1 {
		maxLines = 1
	}
	var chunks []model.Chunk
	buf := make([]model.TranscriptLine, 0, maxLines)
	for _, line := range lines {
		buf = append(buf, line)
		if len(buf) == maxLines {
			chunks = append(chunks, model.Chunk{Lines: buf})
			buf = make([]model.TranscriptLine, 0, maxLines)
		}
	}
	if len(buf) > 0 {
		chunks = append(chunks, model.Chunk{Lines: buf})
	}
	return chunks
}
