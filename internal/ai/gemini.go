package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds API settings for the Gemini generative-language endpoints.
type Config struct {
	BaseURL         string
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
}

// GeminiClient talks to the Gemini REST API directly. Construct once at
// process start and share; the embedded http.Client is safe for concurrent
// use and bounds every provider call with its timeout.
type GeminiClient struct {
	cfg        Config
	httpClient *http.Client
}

func NewGeminiClient(cfg Config) *GeminiClient {
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

const summaryPrompt = "Provide a concise, 3-sentence summary of the following content:\n\n"

// Summarize asks the generation model for a short summary of content.
func (c *GeminiClient) Summarize(ctx context.Context, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("summarize input is empty")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": summaryPrompt + content},
				},
			},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request failed: %w", err)
	}

	raw, err := c.post(ctx, c.modelURL(c.cfg.GenerationModel, "generateContent"), bodyBytes)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse generate json failed: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in generate response")
	}

	var summary strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		summary.WriteString(part.Text)
	}
	text := strings.TrimSpace(summary.String())
	if text == "" {
		return "", fmt.Errorf("empty summary text in generate response")
	}
	return text, nil
}

func (c *GeminiClient) modelURL(model, method string) string {
	return fmt.Sprintf("%s/models/%s:%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		model,
		method,
	)
}

func (c *GeminiClient) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gemini request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The key travels in a header, never in the URL: transport errors quote
	// the full URL and those messages end up in client-visible details.
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gemini response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini response status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
