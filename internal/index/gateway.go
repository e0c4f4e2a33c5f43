package index

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/ai"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

// Gateway is the contract with the similarity index. Ingest upserts by unit
// id, so calling it again with the same units replaces rather than
// duplicates. Search returns hits in descending similarity order with ties
// broken by insertion order.
type Gateway interface {
	Ingest(ctx context.Context, units []model.RetrievalUnit) error
	Search(ctx context.Context, query string, limit int) ([]model.Hit, error)
	Remove(ctx context.Context, videoID string) error
}

type Factory func(args interface{}, embedder ai.IEmbedder) (Gateway, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func New(indexType string, args interface{}, embedder ai.IEmbedder) (Gateway, error) {
	key := strings.ToLower(strings.TrimSpace(indexType))
	if key == "" {
		return nil, fmt.Errorf("index.type is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("index requires an embedder")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported index type: %s", indexType)
	}
	return factory(args, embedder)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("index config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode index config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode index config: %w", err)
	}
	return nil
}
