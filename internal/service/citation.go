package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

// answerContract is the system message given to the chat capability. It
// documents the <start><duration><text> snippet encoding and pins down the
// whitespace-free token grammar the citation parser scans for, so the two
// sides of the wire contract live next to each other in this package.
const answerContract = `Use the given video transcript context to answer the question. If you don't know the answer, say you don't know. Use three sentences maximum and keep the answer concise.
Each context entry is labeled "Source ID: <n>" and its transcript snippet is a sequence of lines in the form <start><duration><text>, where the first field is the line's start time in whole seconds, the second its duration in whole seconds, and the third the spoken line.
After your answer, report every transcript line you used to determine it. Write one citation per output line, using these tokens with no spaces inside any token:
source_id=<source id> start_time=h:mm:ss seconds=<start in raw seconds> end_time=h:mm:ss video_id=<video id>
You may append a short quote from the cited line between backticks at the end of the citation line.`

var (
	sourceIDPattern  = regexp.MustCompile(`\bsource_id=(\d+)`)
	startTimePattern = regexp.MustCompile(`\bstart_time=(\d+):(\d{1,2}):(\d{1,2})`)
	endTimePattern   = regexp.MustCompile(`\bend_time=(\d+):(\d{1,2}):(\d{1,2})`)
	secondsPattern   = regexp.MustCompile(`\bseconds=(\d+)`)
	videoIDPattern   = regexp.MustCompile(`\bvideo_id=([A-Za-z0-9_-]+)`)
	quotePattern     = regexp.MustCompile("`([^`]+)`")
)

// parseCitations scans the chat reply line by line for the citation token
// grammar. A line yields a citation when it carries a start time (either
// token form) plus something that ties it to a source: a source_id that
// resolves into units, or a video_id. Everything else on the line is
// ignored, and lines that do not match are simply not citations; parsing
// never fails the answer.
func parseCitations(reply string, units []model.RetrievalUnit) []model.Citation {
	var citations []model.Citation
	for _, line := range strings.Split(reply, "\n") {
		citation, ok := parseCitationLine(line, units)
		if !ok {
			continue
		}
		citations = append(citations, citation)
	}
	return citations
}

func parseCitationLine(line string, units []model.RetrievalUnit) (model.Citation, bool) {
	start, hasStart := extractStart(line)
	if !hasStart {
		return model.Citation{}, false
	}

	citation := model.Citation{
		SourceIndex:  -1,
		StartSeconds: start,
		EndSeconds:   -1,
	}
	if m := sourceIDPattern.FindStringSubmatch(line); m != nil {
		idx, err := strconv.Atoi(m[1])
		if err == nil && idx >= 0 && idx < len(units) {
			citation.SourceIndex = idx
			citation.VideoID = units[idx].Metadata.VideoID
			citation.EndSeconds = units[idx].Metadata.End
		}
	}
	if m := videoIDPattern.FindStringSubmatch(line); m != nil {
		citation.VideoID = m[1]
	}
	if m := endTimePattern.FindStringSubmatch(line); m != nil {
		citation.EndSeconds = hmsToSeconds(m[1], m[2], m[3])
	}
	if citation.VideoID == "" {
		return model.Citation{}, false
	}
	if citation.EndSeconds < start {
		citation.EndSeconds = start
	}
	if m := quotePattern.FindStringSubmatch(line); m != nil {
		citation.Quote = strings.TrimSpace(m[1])
	}
	return citation, true
}

// extractStart prefers the raw-seconds token and falls back to h:mm:ss.
func extractStart(line string) (int, bool) {
	if m := secondsPattern.FindStringSubmatch(line); m != nil {
		sec, err := strconv.Atoi(m[1])
		if err == nil {
			return sec, true
		}
	}
	if m := startTimePattern.FindStringSubmatch(line); m != nil {
		return hmsToSeconds(m[1], m[2], m[3]), true
	}
	return 0, false
}

func hmsToSeconds(h, m, s string) int {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	return hours*3600 + minutes*60 + seconds
}

// FormatTimestamp renders seconds in the h:mm:ss shape the answer contract
// uses, e.g. 65 -> "0:01:05".
func FormatTimestamp(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", totalSeconds/3600, totalSeconds/60%60, totalSeconds%60)
}
