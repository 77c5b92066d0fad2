package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(Config{
		BaseURL:         baseURL,
		APIKey:          "test-key",
		EmbeddingModel:  "text-embedding-004",
		GenerationModel: "gemini-1.5-flash-latest",
	})
}

func TestEmbedSendsTaskTypeAndParsesVector(t *testing.T) {
	var gotPath, gotKeyHeader, gotRawQuery string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKeyHeader = r.Header.Get("x-goog-api-key")
		gotRawQuery = r.URL.RawQuery
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}))
	defer srv.Close()

	vector, err := newTestClient(srv.URL).Embed(context.Background(), "hello world", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "/models/text-embedding-004:embedContent", gotPath)
	assert.Equal(t, "test-key", gotKeyHeader)
	assert.Empty(t, gotRawQuery)
	assert.Equal(t, "RETRIEVAL_DOCUMENT", gotBody["taskType"])
	assert.Equal(t, "models/text-embedding-004", gotBody["model"])
}

func TestTransportErrorOmitsAPIKey(t *testing.T) {
	// url.Error quotes the full request URL, and those messages reach
	// clients as error details, so the key must never appear in it.
	client := NewGeminiClient(Config{
		BaseURL:         "http://127.0.0.1:1",
		APIKey:          "SECRET-KEY-123",
		EmbeddingModel:  "text-embedding-004",
		GenerationModel: "gemini-1.5-flash-latest",
	})

	_, err := client.Embed(context.Background(), "text", TaskRetrievalDocument)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")

	_, err = client.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
}

func TestEmbedQueryTask(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"embedding":{"values":[1]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Embed(context.Background(), "query", TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Equal(t, "RETRIEVAL_QUERY", gotBody["taskType"])
}

func TestEmbedEmptyInput(t *testing.T) {
	_, err := newTestClient("http://unused").Embed(context.Background(), "   ", TaskRetrievalDocument)
	require.Error(t, err)
}

func TestEmbedProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Embed(context.Background(), "text", TaskRetrievalDocument)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestEmbedEmptyVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":{"values":[]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Embed(context.Background(), "text", TaskRetrievalDocument)
	require.Error(t, err)
}

func TestSummarizeParsesCandidates(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash-latest:generateContent", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"One. "},{"text":"Two. Three."}]}}]}`))
	}))
	defer srv.Close()

	summary, err := newTestClient(srv.URL).Summarize(context.Background(), "some long article")
	require.NoError(t, err)
	assert.Equal(t, "One. Two. Three.", summary)

	// The prompt carries the 3-sentence instruction plus the content.
	contents := gotBody["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	text := parts[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, "3-sentence summary")
	assert.Contains(t, text, "some long article")
}

func TestSummarizeEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Summarize(context.Background(), "content")
	require.Error(t, err)
}

func TestSummarizeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Summarize(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
