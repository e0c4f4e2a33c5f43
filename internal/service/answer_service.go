package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/ai"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/index"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	apperr "github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errors"
)

// AnswerOptions bound the retrieval pipeline. Zero values fall back to
// sensible defaults.
type AnswerOptions struct {
	CandidateLimit int
	RerankTopK     int
	CacheSize      int
	CacheTTL       time.Duration
}

func (o *AnswerOptions) fill() {
	if o.CandidateLimit <= 0 {
		o.CandidateLimit = 20
	}
	if o.RerankTopK <= 0 {
		o.RerankTopK = 5
	}
	if o.CacheSize <= 0 {
		o.CacheSize = 1024
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 2 * time.Hour
	}
}

// AnswerService runs one question through the retrieval pipeline: search
// the index, rerank the candidates, assemble the context block, ask the
// chat capability once, then recover citations from its reply. Each stage
// feeds the next; no stage is revisited.
type AnswerService struct {
	index    index.Gateway
	reranker ai.IReranker
	chatter  ai.IChatter
	opts     AnswerOptions
	cache    *expirable.LRU[string, *model.Answer]
}

func NewAnswerService(gateway index.Gateway, reranker ai.IReranker, chatter ai.IChatter, opts AnswerOptions) *AnswerService {
	opts.fill()
	return &AnswerService{
		index:    gateway,
		reranker: reranker,
		chatter:  chatter,
		opts:     opts,
		cache:    expirable.NewLRU[string, *model.Answer](opts.CacheSize, nil, opts.CacheTTL),
	}
}

func (s *AnswerService) Ask(ctx context.Context, question string) (*model.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", apperr.ErrInvalid)
	}
	if cached, ok := s.cache.Get(question); ok {
		return cached, nil
	}
	logger := logutil.GetLogger(ctx).With(zap.String("question", question))

	hits, err := s.index.Search(ctx, question, s.opts.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrIndex, err)
	}
	logger.Debug("candidates retrieved", zap.Int("count", len(hits)))

	ranked := s.rerank(ctx, question, hits)
	block, units := assembleContext(ranked)

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: answerContract},
		{Role: ai.RoleUser, Content: question + "\n\nContext:\n" + block},
	}
	reply, err := s.chatter.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrChat, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: empty completion", apperr.ErrChat)
	}

	answer := &model.Answer{
		Text:      reply,
		Citations: parseCitations(reply, units),
	}
	logger.Info("answer composed",
		zap.Int("sources", len(units)),
		zap.Int("citations", len(answer.Citations)),
	)
	s.cache.Add(question, answer)
	return answer, nil
}

// rerank asks the external reranker for a finer ordering of the candidate
// set. Reranking only reorders and truncates an already-valid set, so on
// any failure the similarity order truncated to top-k is used instead of
// aborting the question.
func (s *AnswerService) rerank(ctx context.Context, question string, hits []model.Hit) []model.Hit {
	topK := s.opts.RerankTopK
	if len(hits) == 0 {
		return nil
	}
	if s.reranker == nil {
		return truncateHits(hits, topK)
	}
	docs := make([]string, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, hit.Unit.Text)
	}
	results, err := s.reranker.Rerank(ctx, question, docs, topK)
	if err != nil {
		logutil.GetLogger(ctx).Warn("rerank failed, keeping similarity order", zap.Error(err))
		return truncateHits(hits, topK)
	}
	ranked := make([]model.Hit, 0, len(results))
	for _, result := range results {
		if result.Index < 0 || result.Index >= len(hits) {
			continue
		}
		hit := hits[result.Index]
		hit.Score = result.Score
		ranked = append(ranked, hit)
	}
	if len(ranked) == 0 {
		return truncateHits(hits, topK)
	}
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

func truncateHits(hits []model.Hit, topK int) []model.Hit {
	if len(hits) > topK {
		return hits[:topK]
	}
	return hits
}
