package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	apperr "github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errors"
)

// Source fetches the timed lines of one video's transcript. Fetch returns
// apperr.ErrTranscriptNotFound when the id has no transcript and wraps
// apperr.ErrFetch for every other failure.
type Source interface {
	Fetch(ctx context.Context, videoID string) ([]model.TranscriptLine, error)
}

type httpSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource returns a Source backed by a transcript fetch service that
// serves GET {base}/transcripts/{video_id} as a JSON array of lines.
func NewHTTPSource(baseURL string, client *http.Client) Source {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &httpSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (s *httpSource) Fetch(ctx context.Context, videoID string) ([]model.TranscriptLine, error) {
	endpoint := s.baseURL + "/transcripts/" + url.PathEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", apperr.ErrTranscriptNotFound, videoID)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s: %s", apperr.ErrFetch, resp.Status, strings.TrimSpace(string(body)))
	}
	var lines []model.TranscriptLine
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", apperr.ErrFetch, err)
	}
	return lines, nil
}
