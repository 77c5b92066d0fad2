package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// EmbeddingTask selects the provider's task-optimized embedding variant.
// Documents and queries are embedded differently so that queries land near
// the documents that answer them.
type EmbeddingTask string

const (
	TaskRetrievalDocument EmbeddingTask = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    EmbeddingTask = "RETRIEVAL_QUERY"
)

// Embed returns the embedding vector for the given text. The vector length
// is fixed by the embedding model, not by this client.
func (c *GeminiClient) Embed(ctx context.Context, text string, task EmbeddingTask) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("embedding input is empty")
	}

	reqBody := map[string]interface{}{
		"model": "models/" + c.cfg.EmbeddingModel,
		"content": map[string]interface{}{
			"parts": []map[string]string{
				{"text": text},
			},
		},
		"taskType": string(task),
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request failed: %w", err)
	}

	raw, err := c.post(ctx, c.modelURL(c.cfg.EmbeddingModel, "embedContent"), bodyBytes)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Embedding struct {
			Values []float32 `json:"values"`
		} `json:"embedding"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse embedding json failed: %w", err)
	}
	if len(parsed.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return parsed.Embedding.Values, nil
}
