package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnavailable = errors.New("ai provider not available")

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeQuery    = "RETRIEVAL_QUERY"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RankedDocument references an input document of a rerank call by its
// position in the candidate slice. Providers must never return indexes
// outside the input.
type RankedDocument struct {
	Index int
	Score float32
}

type IChatProvider interface {
	Name() string
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

type IEmbedProvider interface {
	Name() string
	Embed(ctx context.Context, model string, text string, taskType string) ([]float32, error)
}

type IRerankProvider interface {
	Name() string
	Rerank(ctx context.Context, model string, query string, documents []string, topK int) ([]RankedDocument, error)
}

// IChatter is a chat provider bound to one model.
type IChatter interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// IEmbedder is an embed provider bound to one model.
type IEmbedder interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
	ModelName() string
}

// IReranker is a rerank provider bound to one model.
type IReranker interface {
	Rerank(ctx context.Context, query string, documents []string, topK int) ([]RankedDocument, error)
}

type chatter struct {
	provider IChatProvider
	model    string
}

func NewChatter(p IChatProvider, model string) IChatter {
	return &chatter{provider: p, model: model}
}

func (c *chatter) Complete(ctx context.Context, messages []Message) (string, error) {
	return c.provider.Complete(ctx, c.model, messages)
}

type embedder struct {
	provider IEmbedProvider
	model    string
}

func NewEmbedder(p IEmbedProvider, model string) IEmbedder {
	return &embedder{provider: p, model: model}
}

func (e *embedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	return e.provider.Embed(ctx, e.model, text, taskType)
}

func (e *embedder) ModelName() string {
	return e.model
}

type reranker struct {
	provider IRerankProvider
	model    string
}

func NewReranker(p IRerankProvider, model string) IReranker {
	return &reranker{provider: p, model: model}
}

func (r *reranker) Rerank(ctx context.Context, query string, documents []string, topK int) ([]RankedDocument, error) {
	return r.provider.Rerank(ctx, r.model, query, documents, topK)
}

type ChatFactory func(args interface{}) (IChatProvider, error)
type EmbedFactory func(args interface{}) (IEmbedProvider, error)
type RerankFactory func(args interface{}) (IRerankProvider, error)

var (
	chatRegistry   = map[string]ChatFactory{}
	embedRegistry  = map[string]EmbedFactory{}
	rerankRegistry = map[string]RerankFactory{}
)

func RegisterChat(name string, factory ChatFactory) {
	key := registryKey(name)
	if key == "" || factory == nil {
		return
	}
	chatRegistry[key] = factory
}

func RegisterEmbed(name string, factory EmbedFactory) {
	key := registryKey(name)
	if key == "" || factory == nil {
		return
	}
	embedRegistry[key] = factory
}

func RegisterRerank(name string, factory RerankFactory) {
	key := registryKey(name)
	if key == "" || factory == nil {
		return
	}
	rerankRegistry[key] = factory
}

func NewChatProvider(name string, args interface{}) (IChatProvider, error) {
	factory := chatRegistry[registryKey(name)]
	if factory == nil {
		return nil, fmt.Errorf("unsupported chat provider: %s", name)
	}
	return factory(args)
}

func NewEmbedProvider(name string, args interface{}) (IEmbedProvider, error) {
	factory := embedRegistry[registryKey(name)]
	if factory == nil {
		return nil, fmt.Errorf("unsupported embed provider: %s", name)
	}
	return factory(args)
}

func NewRerankProvider(name string, args interface{}) (IRerankProvider, error) {
	factory := rerankRegistry[registryKey(name)]
	if factory == nil {
		return nil, fmt.Errorf("unsupported rerank provider: %s", name)
	}
	return factory(args)
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode provider config: %w", err)
	}
	return nil
}
