package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/index"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	apperr "github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errors"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/transcript"
)

// IngestService turns a video's transcript into retrieval units and loads
// them into the index. Ingestion is a one-shot batch per video and is
// idempotent: unit ids are deterministic, so running it again replaces the
// same units.
type IngestService struct {
	source       transcript.Source
	index        index.Gateway
	documentSize int
}

// IngestResult is the per-video outcome of a batch run.
type IngestResult struct {
	Video model.VideoRef
	Units int
	Err   error
}

func NewIngestService(source transcript.Source, gateway index.Gateway, documentSize int) *IngestService {
	if documentSize <= 0 {
		documentSize = 1000
	}
	return &IngestService{
		source:       source,
		index:        gateway,
		documentSize: documentSize,
	}
}

// Ingest fetches, segments, and indexes one video's transcript, returning
// the number of units written. A transcript with no lines ingests nothing.
func (s *IngestService) Ingest(ctx context.Context, ref model.VideoRef) (int, error) {
	if ref.ID == "" {
		return 0, fmt.Errorf("%w: video id is required", apperr.ErrInvalid)
	}
	logger := logutil.GetLogger(ctx).With(zap.String("video_id", ref.ID))

	lines, err := s.source.Fetch(ctx, ref.ID)
	if err != nil {
		return 0, err
	}
	chunks := transcript.Segment(lines, s.documentSize)
	units := transcript.BuildUnits(ref.ID, ref.Title, chunks)
	if len(units) == 0 {
		logger.Warn("transcript is empty, nothing to ingest")
		return 0, nil
	}
	if err := s.index.Ingest(ctx, units); err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrIndex, err)
	}
	logger.Info("transcript ingested",
		zap.Int("lines", len(lines)),
		zap.Int("units", len(units)),
	)
	return len(units), nil
}

// IngestAll runs Ingest over the whole set, continuing past per-video
// failures so one missing transcript cannot sink the batch.
func (s *IngestService) IngestAll(ctx context.Context, refs []model.VideoRef) []IngestResult {
	results := make([]IngestResult, 0, len(refs))
	for _, ref := range refs {
		units, err := s.Ingest(ctx, ref)
		if err != nil {
			logutil.GetLogger(ctx).Error("video ingest failed",
				zap.String("video_id", ref.ID),
				zap.Error(err),
			)
		}
		results = append(results, IngestResult{Video: ref, Units: units, Err: err})
	}
	return results
}

// Remove drops all of a video's units from the index.
func (s *IngestService) Remove(ctx context.Context, videoID string) error {
	if videoID == "" {
		return fmt.Errorf("%w: video id is required", apperr.ErrInvalid)
	}
	if err := s.index.Remove(ctx, videoID); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrIndex, err)
	}
	return nil
}
