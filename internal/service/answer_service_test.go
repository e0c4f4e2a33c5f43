package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/ai"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	apperr "github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errors"
)

type fakeGateway struct {
	hits      []model.Hit
	searchErr error
	searches  int
	ingested  [][]model.RetrievalUnit
	ingestErr error
	removed   []string
	removeErr error
}

func (g *fakeGateway) Ingest(ctx context.Context, units []model.RetrievalUnit) error {
	g.ingested = append(g.ingested, units)
	return g.ingestErr
}

func (g *fakeGateway) Search(ctx context.Context, query string, limit int) ([]model.Hit, error) {
	g.searches++
	if g.searchErr != nil {
		return nil, g.searchErr
	}
	if len(g.hits) > limit {
		return g.hits[:limit], nil
	}
	return g.hits, nil
}

func (g *fakeGateway) Remove(ctx context.Context, videoID string) error {
	g.removed = append(g.removed, videoID)
	return g.removeErr
}

type fakeReranker struct {
	results []ai.RankedDocument
	err     error
	calls   int
}

func (r *fakeReranker) Rerank(ctx context.Context, query string, documents []string, topK int) ([]ai.RankedDocument, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.results, nil
}

type fakeChatter struct {
	reply string
	err   error
	calls int
	last  []ai.Message
}

func (c *fakeChatter) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	c.calls++
	c.last = messages
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func TestAnswerServiceAsk(t *testing.T) {
	gateway := &fakeGateway{hits: makeHits("<60><5><intro>", "<120><5><more>")}
	reranker := &fakeReranker{results: []ai.RankedDocument{{Index: 1, Score: 0.9}, {Index: 0, Score: 0.4}}}
	chatter := &fakeChatter{reply: "It starts at the intro.\nsource_id=1 seconds=60 video_id=abc123"}
	svc := NewAnswerService(gateway, reranker, chatter, AnswerOptions{})

	answer, err := svc.Ask(context.Background(), "when does it start?")
	require.NoError(t, err)
	require.Equal(t, chatter.reply, answer.Text)
	require.Len(t, answer.Citations, 1)
	require.Equal(t, 60, answer.Citations[0].StartSeconds)
	require.Equal(t, 1, reranker.calls)
	require.Equal(t, 1, chatter.calls)

	// The rerank winner leads the context block the chat capability sees.
	require.Len(t, chatter.last, 2)
	require.Equal(t, ai.RoleSystem, chatter.last[0].Role)
	require.Contains(t, chatter.last[1].Content, "Source ID: 0\nVideo Title: Talk\nTranscript Snippet: <120><5><more>")
}

func TestAnswerServiceEmptyQuestion(t *testing.T) {
	svc := NewAnswerService(&fakeGateway{}, nil, &fakeChatter{reply: "x"}, AnswerOptions{})
	_, err := svc.Ask(context.Background(), "   ")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestAnswerServiceSearchFailure(t *testing.T) {
	gateway := &fakeGateway{searchErr: errors.New("connection refused")}
	svc := NewAnswerService(gateway, nil, &fakeChatter{reply: "x"}, AnswerOptions{})
	_, err := svc.Ask(context.Background(), "anything")
	require.ErrorIs(t, err, apperr.ErrIndex)
}

func TestAnswerServiceRerankDegrades(t *testing.T) {
	gateway := &fakeGateway{hits: makeHits("a", "b", "c", "d", "e", "f")}
	reranker := &fakeReranker{err: errors.New("quota exceeded")}
	chatter := &fakeChatter{reply: "answer"}
	svc := NewAnswerService(gateway, reranker, chatter, AnswerOptions{RerankTopK: 3})

	answer, err := svc.Ask(context.Background(), "q")
	require.NoError(t, err)
	require.Equal(t, "answer", answer.Text)

	// Similarity order truncated to top-k: the first three hits, in order.
	require.Contains(t, chatter.last[1].Content, "Transcript Snippet: a")
	require.Contains(t, chatter.last[1].Content, "Source ID: 2")
	require.NotContains(t, chatter.last[1].Content, "Source ID: 3")
}

func TestAnswerServiceNoReranker(t *testing.T) {
	gateway := &fakeGateway{hits: makeHits("a", "b", "c")}
	chatter := &fakeChatter{reply: "answer"}
	svc := NewAnswerService(gateway, nil, chatter, AnswerOptions{RerankTopK: 2})

	_, err := svc.Ask(context.Background(), "q")
	require.NoError(t, err)
	require.Contains(t, chatter.last[1].Content, "Source ID: 1")
	require.NotContains(t, chatter.last[1].Content, "Source ID: 2")
}

func TestAnswerServiceChatFailure(t *testing.T) {
	gateway := &fakeGateway{hits: makeHits("a")}
	svc := NewAnswerService(gateway, nil, &fakeChatter{err: ai.ErrUnavailable}, AnswerOptions{})
	_, err := svc.Ask(context.Background(), "q")
	require.ErrorIs(t, err, apperr.ErrChat)
}

func TestAnswerServiceEmptyReply(t *testing.T) {
	gateway := &fakeGateway{hits: makeHits("a")}
	svc := NewAnswerService(gateway, nil, &fakeChatter{reply: "  \n "}, AnswerOptions{})
	_, err := svc.Ask(context.Background(), "q")
	require.ErrorIs(t, err, apperr.ErrChat)
}

func TestAnswerServiceCachesByQuestion(t *testing.T) {
	gateway := &fakeGateway{hits: makeHits("a")}
	chatter := &fakeChatter{reply: "answer"}
	svc := NewAnswerService(gateway, nil, chatter, AnswerOptions{})

	first, err := svc.Ask(context.Background(), "q")
	require.NoError(t, err)
	second, err := svc.Ask(context.Background(), "q")
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, gateway.searches)
	require.Equal(t, 1, chatter.calls)

	_, err = svc.Ask(context.Background(), "different")
	require.NoError(t, err)
	require.Equal(t, 2, gateway.searches)
}

func TestAnswerServiceDropsOutOfRangeRerankIndexes(t *testing.T) {
	gateway := &fakeGateway{hits: makeHits("a", "b")}
	reranker := &fakeReranker{results: []ai.RankedDocument{{Index: 5, Score: 0.9}, {Index: 0, Score: 0.5}}}
	chatter := &fakeChatter{reply: "answer"}
	svc := NewAnswerService(gateway, reranker, chatter, AnswerOptions{})

	_, err := svc.Ask(context.Background(), "q")
	require.NoError(t, err)
	require.Contains(t, chatter.last[1].Content, "Transcript Snippet: a")
	require.NotContains(t, chatter.last[1].Content, "Source ID: 1")
}
