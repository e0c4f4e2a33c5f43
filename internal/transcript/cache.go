package transcript

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/filestore"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

type cachingSource struct {
	next  Source
	store filestore.Store
}

// NewCachingSource wraps a Source with a filestore-backed cache keyed by
// video id. A usable cached copy short-circuits the fetch; any cache error
// is treated as a miss and the fetched transcript is written back through.
// Cache failures never fail the fetch itself.
func NewCachingSource(next Source, store filestore.Store) Source {
	if store == nil {
		return next
	}
	return &cachingSource{next: next, store: store}
}

func (s *cachingSource) Fetch(ctx context.Context, videoID string) ([]model.TranscriptLine, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("video_id", videoID))
	key := cacheKey(videoID)

	if rc, err := s.store.Open(ctx, key); err == nil {
		var lines []model.TranscriptLine
		decodeErr := json.NewDecoder(rc).Decode(&lines)
		rc.Close()
		if decodeErr == nil {
			logger.Debug("transcript cache hit", zap.Int("lines", len(lines)))
			return lines, nil
		}
		logger.Warn("discarding corrupt transcript cache entry", zap.Error(decodeErr))
	}

	lines, err := s.next.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(lines)
	if err == nil {
		reader := nopSeekCloser{bytes.NewReader(data)}
		if err := s.store.Save(ctx, key, reader, int64(len(data))); err != nil {
			logger.Warn("transcript cache write failed", zap.Error(err))
		}
	}
	return lines, nil
}

func cacheKey(videoID string) string {
	return videoID + ".json"
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error {
	return nil
}
