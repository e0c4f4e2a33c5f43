package job

import (
	"context"
	"fmt"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/service"
)

// TranscriptRefreshJob re-ingests the configured video set on a schedule.
// Unit ids are deterministic, so a refresh upserts in place and picks up
// transcripts that have been corrected or extended since the last run.
type TranscriptRefreshJob struct {
	ingest *service.IngestService
	videos []model.VideoRef
}

func NewTranscriptRefreshJob(ingest *service.IngestService, videos []model.VideoRef) *TranscriptRefreshJob {
	return &TranscriptRefreshJob{ingest: ingest, videos: videos}
}

func (j *TranscriptRefreshJob) Name() string {
	return "transcript_refresh"
}

func (j *TranscriptRefreshJob) Run(ctx context.Context) error {
	if j.ingest == nil || len(j.videos) == 0 {
		return nil
	}
	failed := 0
	for _, result := range j.ingest.IngestAll(ctx, j.videos) {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d videos failed to refresh", failed, len(j.videos))
	}
	return nil
}
