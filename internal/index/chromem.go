package index

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/ai"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
)

const defaultChromemCollection = "transcript_units"

type chromemConfig struct {
	Path       string `json:"path"`
	Collection string `json:"collection"`
	Compress   bool   `json:"compress"`
}

// chromemGateway is the embedded index: no external service, vectors live
// in-process (optionally persisted under Path). Suited to single-node
// deployments and tests.
type chromemGateway struct {
	collection *chromem.Collection
}

func init() {
	Register("chromem", createChromemGateway)
}

func createChromemGateway(args interface{}, embedder ai.IEmbedder) (Gateway, error) {
	cfg := &chromemConfig{}
	if args != nil {
		if err := decodeConfig(args, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultChromemCollection
	}
	var db *chromem.DB
	var err error
	if cfg.Path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("open chromem db: %w", err)
		}
	}
	// chromem uses one embedding func for documents and queries alike, so
	// the document task type covers both directions here.
	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text, ai.TaskTypeDocument)
	}
	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("open chromem collection: %w", err)
	}
	return &chromemGateway{collection: collection}, nil
}

func (g *chromemGateway) Ingest(ctx context.Context, units []model.RetrievalUnit) error {
	if len(units) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(units))
	for _, unit := range units {
		docs = append(docs, chromem.Document{
			ID:      strconv.FormatUint(unit.ID, 10),
			Content: unit.Text,
			Metadata: map[string]string{
				"title":    unit.Metadata.Title,
				"video_id": unit.Metadata.VideoID,
				"start":    strconv.Itoa(unit.Metadata.Start),
				"end":      strconv.Itoa(unit.Metadata.End),
			},
		})
	}
	return g.collection.AddDocuments(ctx, docs, runtime.NumCPU())
}

func (g *chromemGateway) Search(ctx context.Context, query string, limit int) ([]model.Hit, error) {
	if limit <= 0 {
		return nil, nil
	}
	if count := g.collection.Count(); count < limit {
		limit = count
	}
	if limit == 0 {
		return nil, nil
	}
	results, err := g.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, err
	}
	hits := make([]model.Hit, 0, len(results))
	for _, result := range results {
		unit, err := unitFromResult(result)
		if err != nil {
			return nil, err
		}
		hits = append(hits, model.Hit{Unit: unit, Score: result.Similarity})
	}
	return hits, nil
}

func (g *chromemGateway) Remove(ctx context.Context, videoID string) error {
	return g.collection.Delete(ctx, map[string]string{"video_id": videoID}, nil)
}

func unitFromResult(result chromem.Result) (model.RetrievalUnit, error) {
	id, err := strconv.ParseUint(result.ID, 10, 64)
	if err != nil {
		return model.RetrievalUnit{}, fmt.Errorf("malformed unit id %q: %w", result.ID, err)
	}
	start, _ := strconv.Atoi(result.Metadata["start"])
	end, _ := strconv.Atoi(result.Metadata["end"])
	return model.RetrievalUnit{
		ID:   id,
		Text: result.Content,
		Metadata: model.UnitMetadata{
			Title:   result.Metadata["title"],
			VideoID: result.Metadata["video_id"],
			Start:   start,
			End:     end,
		},
	}, nil
}
