package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultCohereBaseURL = "https://api.cohere.com"

type cohereConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

type cohereRerankProvider struct {
	apiKey  string
	baseURL string
}

type cohereRerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

type cohereRerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float32 `json:"relevance_score"`
	} `json:"results"`
}

func (p *cohereRerankProvider) Name() string {
	return "cohere"
}

func (p *cohereRerankProvider) Rerank(ctx context.Context, model string, query string, documents []string, topK int) ([]RankedDocument, error) {
	if p.apiKey == "" {
		return nil, ErrUnavailable
	}
	if len(documents) == 0 {
		return nil, nil
	}
	if topK <= 0 || topK > len(documents) {
		topK = len(documents)
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/v1/rerank"
	reqBody := cohereRerankRequest{
		Model:     model,
		Query:     query,
		Documents: documents,
		TopN:      topK,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cohere request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var out cohereRerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	ranked := make([]RankedDocument, 0, len(out.Results))
	for _, result := range out.Results {
		// A provider must not point outside the candidate set it was given.
		if result.Index < 0 || result.Index >= len(documents) {
			return nil, fmt.Errorf("cohere returned out-of-range document index %d", result.Index)
		}
		ranked = append(ranked, RankedDocument{Index: result.Index, Score: result.RelevanceScore})
	}
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

func createCohereRerankFactory(args interface{}) (IRerankProvider, error) {
	cfg := &cohereConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	return &cohereRerankProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURLOrDefault(cfg.BaseURL, defaultCohereBaseURL),
	}, nil
}

func init() {
	RegisterRerank("cohere", createCohereRerankFactory)
}
