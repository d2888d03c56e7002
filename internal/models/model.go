// internal/models/model.go
package models

import (
	"context"
)

// Chat message roles understood by every backend
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the message sequence sent to a backend
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator is the interface all generation backends must implement.
// maxTokens <= 0 means unbounded; the backend's own cap applies.
type Generator interface {
	Generate(ctx context.Context, model string, messages []Message, maxTokens int) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface
type GeneratorFunc func(ctx context.Context, model string, messages []Message, maxTokens int) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, model string, messages []Message, maxTokens int) (string, error) {
	return f(ctx, model, messages, maxTokens)
}
