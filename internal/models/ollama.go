// internal/models/ollama.go
package models

import (
	"context"
	"fmt"
	"strings"
)

// DefaultOllamaEndpoint is where a local Ollama daemon listens
const DefaultOllamaEndpoint = "http://localhost:11434"

// OllamaClient calls the Ollama chat API
type OllamaClient struct {
	endpoint string
	client   *RetryableClient
}

func NewOllama(endpoint string, retry RetryConfig) *OllamaClient {
	return &OllamaClient{
		endpoint: normalizeEndpoint(endpoint, DefaultOllamaEndpoint),
		client:   NewRetryableClient(retry),
	}
}

type ollamaOptions struct {
	NumPredict int `json:"num_predict,omitempty"`
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  *ollamaOptions `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error,omitempty"`
}

func (c *OllamaClient) Generate(ctx context.Context, model string, messages []Message, maxTokens int) (string, error) {
	req := ollamaChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}
	// Omitting num_predict leaves the model's own cap in place
	if maxTokens > 0 {
		req.Options = &ollamaOptions{NumPredict: maxTokens}
	}

	var resp ollamaChatResponse
	if err := c.client.PostJSON(ctx, c.endpoint+"/api/chat", nil, req, &resp); err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("ollama chat: %s", resp.Error)
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

// normalizeEndpoint accepts host:port or a full URL and strips trailing slashes
func normalizeEndpoint(endpoint, fallback string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = fallback
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	return strings.TrimRight(endpoint, "/")
}
