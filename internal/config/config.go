package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Retrieval     RetrievalConfig  `json:"retrieval"`
	Transcript    TranscriptConfig `json:"transcript"`
	Index         IndexConfig      `json:"index"`
	AI            AIConfig         `json:"ai"`
	Videos        []VideoConfig    `json:"videos"`
	RefreshCron   string           `json:"refresh_cron"`
	CORSAllowlist []string         `json:"cors_allowlist"`
}

// RetrievalConfig bounds the pipeline stages. All three are read once at
// startup and never change while the process runs.
type RetrievalConfig struct {
	DocumentSize   int `json:"document_size"`
	CandidateLimit int `json:"candidate_limit"`
	RerankTopK     int `json:"rerank_top_k"`
}

type TranscriptConfig struct {
	BaseURL string       `json:"base_url"`
	Cache   *CacheConfig `json:"cache"`
}

type CacheConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type IndexConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIConfig struct {
	Chat           []ProviderConfig `json:"chat"`
	Embed          []ProviderConfig `json:"embed"`
	Rerank         *ProviderConfig  `json:"rerank"`
	EmbedCacheSize int              `json:"embed_cache_size"`
	EmbedCacheTTL  int              `json:"embed_cache_ttl_hours"`
}

type ProviderConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Args     interface{} `json:"args"`
}

type VideoConfig struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Retrieval.DocumentSize == 0 {
		cfg.Retrieval.DocumentSize = 1000
	}
	if cfg.Retrieval.CandidateLimit == 0 {
		cfg.Retrieval.CandidateLimit = 20
	}
	if cfg.Retrieval.RerankTopK == 0 {
		cfg.Retrieval.RerankTopK = 5
	}
	if cfg.Retrieval.DocumentSize < 1 || cfg.Retrieval.CandidateLimit < 1 || cfg.Retrieval.RerankTopK < 1 {
		return nil, fmt.Errorf("retrieval limits must be positive")
	}
	if cfg.Transcript.BaseURL == "" {
		return nil, fmt.Errorf("transcript.base_url is required")
	}
	if cfg.Index.Type == "" {
		return nil, fmt.Errorf("index.type is required")
	}
	if len(cfg.AI.Embed) == 0 {
		return nil, fmt.Errorf("ai.embed requires at least one provider")
	}
	if len(cfg.AI.Chat) == 0 {
		return nil, fmt.Errorf("ai.chat requires at least one provider")
	}
	for _, p := range append(append([]ProviderConfig{}, cfg.AI.Chat...), cfg.AI.Embed...) {
		if p.Provider == "" || p.Model == "" {
			return nil, fmt.Errorf("ai provider entries require provider and model")
		}
	}
	if cfg.AI.Rerank != nil && (cfg.AI.Rerank.Provider == "" || cfg.AI.Rerank.Model == "") {
		return nil, fmt.Errorf("ai.rerank requires provider and model")
	}
	for _, v := range cfg.Videos {
		if v.ID == "" {
			return nil, fmt.Errorf("videos entries require an id")
		}
	}
	return &cfg, nil
}
