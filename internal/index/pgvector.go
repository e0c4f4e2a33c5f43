package index

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/didi/gendry/builder"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/ai"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/dbutil"
)

const unitTable = "transcript_units"

type pgvectorConfig struct {
	DSN       string `json:"dsn"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	Password  string `json:"password"`
	DBName    string `json:"dbname"`
	SSLMode   string `json:"sslmode"`
	Dimension int    `json:"dimension"`
}

type pgvectorGateway struct {
	db       *sql.DB
	embedder ai.IEmbedder
}

func init() {
	Register("pgvector", createPgvectorGateway)
}

func createPgvectorGateway(args interface{}, embedder ai.IEmbedder) (Gateway, error) {
	cfg := &pgvectorConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("index.dimension is required for pgvector")
	}
	dsn := cfg.DSN
	if dsn == "" {
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslmode)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	gw := &pgvectorGateway{db: db, embedder: embedder}
	if err := gw.ensureSchema(cfg.Dimension); err != nil {
		return nil, fmt.Errorf("init pgvector schema: %w", err)
	}
	return gw, nil
}

func (g *pgvectorGateway) ensureSchema(dimension int) error {
	// seq records insertion order; it is the stable tie-break for searches
	// that land on equal distances.
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGINT PRIMARY KEY,
			video_id TEXT NOT NULL,
			title TEXT NOT NULL,
			start_sec INT NOT NULL,
			end_sec INT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			seq BIGSERIAL
		)`, unitTable, dimension),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_video ON %s (video_id)`, unitTable, unitTable),
	}
	for _, stmt := range statements {
		if _, err := g.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *pgvectorGateway) Ingest(ctx context.Context, units []model.RetrievalUnit) error {
	if len(units) == 0 {
		return nil
	}
	upsert := fmt.Sprintf(`
		INSERT INTO %s (id, video_id, title, start_sec, end_sec, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			video_id = EXCLUDED.video_id,
			title = EXCLUDED.title,
			start_sec = EXCLUDED.start_sec,
			end_sec = EXCLUDED.end_sec,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding
	`, unitTable)

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, unit := range units {
		emb, err := g.embedder.Embed(ctx, unit.Text, ai.TaskTypeDocument)
		if err != nil {
			return fmt.Errorf("embed unit %d: %w", unit.ID, err)
		}
		if _, err := tx.ExecContext(ctx, upsert,
			int64(unit.ID),
			unit.Metadata.VideoID,
			unit.Metadata.Title,
			unit.Metadata.Start,
			unit.Metadata.End,
			unit.Text,
			pgvector.NewVector(emb),
		); err != nil {
			return fmt.Errorf("upsert unit %d: %w", unit.ID, err)
		}
	}
	return tx.Commit()
}

func (g *pgvectorGateway) Search(ctx context.Context, query string, limit int) ([]model.Hit, error) {
	if limit <= 0 {
		return nil, nil
	}
	emb, err := g.embedder.Embed(ctx, query, ai.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	stmt := fmt.Sprintf(`
		SELECT id, video_id, title, start_sec, end_sec, content,
			1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1, seq
		LIMIT $2
	`, unitTable)
	rows, err := g.db.QueryContext(ctx, stmt, pgvector.NewVector(emb), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var hits []model.Hit
	for rows.Next() {
		var (
			id   int64
			meta model.UnitMetadata
			text string
			hit  model.Hit
		)
		if err := rows.Scan(&id, &meta.VideoID, &meta.Title, &meta.Start, &meta.End, &text, &hit.Score); err != nil {
			return nil, err
		}
		hit.Unit = model.RetrievalUnit{ID: uint64(id), Text: text, Metadata: meta}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

func (g *pgvectorGateway) Remove(ctx context.Context, videoID string) error {
	stmt, args, err := builder.BuildDelete(unitTable, map[string]interface{}{
		"video_id": videoID,
	})
	if err != nil {
		return err
	}
	stmt, args = dbutil.Finalize(stmt, args)
	_, err = g.db.ExecContext(ctx, stmt, args...)
	return err
}
