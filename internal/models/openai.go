// internal/models/openai.go
package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultOpenAIBaseURL is the public OpenAI API root. Any compatible
// service (OpenRouter, xAI, a local proxy) can be used instead.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// ErrMissingAPIKey is returned when an OpenAI-compatible backend has no key
var ErrMissingAPIKey = errors.New("openai: api key not configured")

// OpenAIClient calls an OpenAI-compatible chat completions API
type OpenAIClient struct {
	baseURL string
	apiKey  string
	client  *RetryableClient
}

func NewOpenAI(baseURL, apiKey string, retry RetryConfig) *OpenAIClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  NewRetryableClient(retry),
	}
}

type openAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Stream    bool      `json:"stream"`
}

type openAIResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) Generate(ctx context.Context, model string, messages []Message, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := openAIRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var resp openAIResponse
	if err := c.client.PostJSON(ctx, c.baseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", fmt.Errorf("chat completions: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("chat completions: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
