package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newCohereServer(t *testing.T, response string, status int) (*httptest.Server, *cohereRerankRequest) {
	t.Helper()
	captured := &cohereRerankRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/rerank", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestCohereRerank(t *testing.T) {
	response := `{"results":[{"index":2,"relevance_score":0.97},{"index":0,"relevance_score":0.41}]}`
	server, captured := newCohereServer(t, response, http.StatusOK)

	provider, err := NewRerankProvider("cohere", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": server.URL,
	})
	require.NoError(t, err)

	docs := []string{"a", "b", "c"}
	ranked, err := provider.Rerank(context.Background(), "rerank-v3.5", "query", docs, 2)
	require.NoError(t, err)
	require.Equal(t, []RankedDocument{{Index: 2, Score: 0.97}, {Index: 0, Score: 0.41}}, ranked)
	require.Equal(t, "rerank-v3.5", captured.Model)
	require.Equal(t, docs, captured.Documents)
	require.Equal(t, 2, captured.TopN)
}

func TestCohereRerankClampsTopK(t *testing.T) {
	server, captured := newCohereServer(t, `{"results":[]}`, http.StatusOK)
	provider, err := NewRerankProvider("cohere", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": server.URL,
	})
	require.NoError(t, err)

	_, err = provider.Rerank(context.Background(), "m", "q", []string{"a", "b"}, 10)
	require.NoError(t, err)
	require.Equal(t, 2, captured.TopN)
}

func TestCohereRerankOutOfRangeIndex(t *testing.T) {
	server, _ := newCohereServer(t, `{"results":[{"index":7,"relevance_score":0.5}]}`, http.StatusOK)
	provider, err := NewRerankProvider("cohere", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": server.URL,
	})
	require.NoError(t, err)

	_, err = provider.Rerank(context.Background(), "m", "q", []string{"a", "b"}, 2)
	require.Error(t, err)
}

func TestCohereRerankServerError(t *testing.T) {
	server, _ := newCohereServer(t, `{"message":"invalid request"}`, http.StatusBadRequest)
	provider, err := NewRerankProvider("cohere", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": server.URL,
	})
	require.NoError(t, err)

	_, err = provider.Rerank(context.Background(), "m", "q", []string{"a"}, 1)
	require.Error(t, err)
}

func TestCohereRerankNoKey(t *testing.T) {
	provider, err := NewRerankProvider("cohere", map[string]interface{}{})
	require.NoError(t, err)
	_, err = provider.Rerank(context.Background(), "m", "q", []string{"a"}, 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCohereRerankEmptyDocuments(t *testing.T) {
	provider, err := NewRerankProvider("cohere", map[string]interface{}{"api_key": "test-key"})
	require.NoError(t, err)
	ranked, err := provider.Rerank(context.Background(), "m", "q", nil, 3)
	require.NoError(t, err)
	require.Empty(t, ranked)
}
