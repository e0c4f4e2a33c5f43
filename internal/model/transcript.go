package model

import (
	"fmt"
	"strings"
)

// TranscriptLine is one timed caption line as returned by the transcript
// source. Start is in whole seconds; Duration may carry a fractional part.
type TranscriptLine struct {
	Start    int     `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// VideoRef identifies one piece of source content to ingest.
type VideoRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Chunk is a contiguous, non-empty run of transcript lines treated as one
// retrieval unit. Chunks for a transcript are a lossless partition of its
// lines: concatenating them in order reproduces the transcript exactly.
type Chunk struct {
	Lines []TranscriptLine
}

// Start is the start second of the chunk's first line.
func (c Chunk) Start() int {
	return c.Lines[0].Start
}

// End is the last line's start plus its duration, truncated to seconds.
func (c Chunk) End() int {
	last := c.Lines[len(c.Lines)-1]
	return last.Start + int(last.Duration)
}

// Render encodes the chunk as the chat capability expects it: each line as
// <start><duration><text> with integer seconds, joined by single spaces.
// The answer contract documents this exact shape, so it must stay stable.
func (c Chunk) Render() string {
	var sb strings.Builder
	for i, line := range c.Lines {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "<%d><%d><%s>", line.Start, int(line.Duration), line.Text)
	}
	return sb.String()
}
