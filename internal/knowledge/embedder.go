// internal/knowledge/embedder.go
package knowledge

import (
	"context"
	"fmt"
	"strings"

	"arena/internal/models"
)

// DefaultEmbeddingModel is the Ollama model used to embed chunks and queries
const DefaultEmbeddingModel = "nomic-embed-text"

// Embedder turns texts into vectors, one per input, in order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OllamaEmbedder calls the Ollama embed API
type OllamaEmbedder struct {
	endpoint string
	model    string
	client   *models.RetryableClient
}

func NewOllamaEmbedder(endpoint, model string, retry models.RetryConfig) *OllamaEmbedder {
	if endpoint == "" {
		endpoint = models.DefaultOllamaEndpoint
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OllamaEmbedder{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client:   models.NewRetryableClient(retry),
	}
}

// Model returns the embedding model name
func (e *OllamaEmbedder) Model() string { return e.model }

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Error      string      `json:"error,omitempty"`
}

func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var resp embedResponse
	if err := e.client.PostJSON(ctx, e.endpoint+"/api/embed", nil, embedRequest{Model: e.model, Input: texts}, &resp); err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("ollama embed: %s", resp.Error)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama embed: got %d vectors for %d inputs", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}
