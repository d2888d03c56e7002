// internal/models/registry.go
package models

import (
	"context"
	"fmt"
	"strings"
)

// Registry routes a model identifier to the backend that serves it.
// Identifiers are either "backend:model" or a bare model name, which goes
// to the default backend. Ollama tags such as "dolphin-phi:latest" contain
// a colon too, so only registered backend names are treated as prefixes.
type Registry struct {
	backends map[string]Generator
	order    []string // Preserve registration order for display
	fallback string
}

// NewRegistry creates an empty registry whose bare identifiers go to fallback
func NewRegistry(fallback string) *Registry {
	return &Registry{
		backends: make(map[string]Generator),
		fallback: fallback,
	}
}

// Register adds or replaces a backend
func (r *Registry) Register(name string, g Generator) {
	if _, ok := r.backends[name]; !ok {
		r.order = append(r.order, name)
	}
	r.backends[name] = g
}

// Get returns a backend by name
func (r *Registry) Get(name string) Generator {
	return r.backends[name]
}

// Names returns registered backend names in order
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve splits an identifier into its backend and backend-local model name
func (r *Registry) Resolve(id string) (Generator, string, error) {
	if prefix, rest, ok := strings.Cut(id, ":"); ok {
		if g, known := r.backends[prefix]; known {
			return g, rest, nil
		}
	}
	g, ok := r.backends[r.fallback]
	if !ok {
		return nil, "", fmt.Errorf("no backend registered for model %q", id)
	}
	return g, id, nil
}

// Generate implements Generator by dispatching on the model identifier
func (r *Registry) Generate(ctx context.Context, model string, messages []Message, maxTokens int) (string, error) {
	g, name, err := r.Resolve(model)
	if err != nil {
		return "", err
	}
	return g.Generate(ctx, name, messages, maxTokens)
}
