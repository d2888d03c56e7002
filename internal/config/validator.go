// internal/config/validator.go
package config

import (
	"fmt"
	"slices"
	"strings"

	"arena/internal/logging"
)

// Backends that can serve model identifiers
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidBackends returns the accepted models.backend values
func ValidBackends() []string {
	return []string{BackendOllama, BackendOpenAI}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Debate.Topic) == "" {
		errs = append(errs, ValidationError{"debate.topic", c.Debate.Topic, "must not be empty"})
	}
	if c.Debate.Rounds < 0 {
		errs = append(errs, ValidationError{"debate.rounds", c.Debate.Rounds, "must be non-negative"})
	}

	if !slices.Contains(ValidBackends(), c.Models.Backend) {
		errs = append(errs, ValidationError{"models.backend", c.Models.Backend,
			"must be one of " + strings.Join(ValidBackends(), ", ")})
	}
	for field, model := range map[string]string{
		"models.default": c.Models.Default,
		"models.summary": c.Models.Summary,
		"models.judge":   c.Models.Judge,
	} {
		if strings.TrimSpace(model) == "" {
			errs = append(errs, ValidationError{field, model, "must not be empty"})
		}
	}

	errs = append(errs, c.validateBudgets()...)
	errs = append(errs, c.validateRetrieval()...)

	if c.Timeouts.TurnSeconds < 0 {
		errs = append(errs, ValidationError{"timeouts.turn_seconds", c.Timeouts.TurnSeconds, "must be non-negative"})
	}
	if c.Retry.Attempts < 1 {
		errs = append(errs, ValidationError{"retry.attempts", c.Retry.Attempts, "must be at least 1"})
	}
	if c.Retry.DelayMs < 0 {
		errs = append(errs, ValidationError{"retry.delay_ms", c.Retry.DelayMs, "must be non-negative"})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level,
			"must be one of " + strings.Join(ValidLogLevels(), ", ")})
	}

	if c.Webhook.URL != "" && !strings.HasPrefix(c.Webhook.URL, "http://") && !strings.HasPrefix(c.Webhook.URL, "https://") {
		errs = append(errs, ValidationError{"webhook.url", c.Webhook.URL, "must be an http(s) URL"})
	}

	return errs
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = strings.ToLower(l)
	}
	return out
}

func (c *Config) validateBudgets() []ValidationError {
	var errs []ValidationError
	budgets := []struct {
		field string
		value int
	}{
		{"budgets.opening", c.Budgets.Opening},
		{"budgets.rebuttal", c.Budgets.Rebuttal},
		{"budgets.closing", c.Budgets.Closing},
		{"budgets.judge", c.Budgets.Judge},
		{"budgets.summary", c.Budgets.Summary},
	}
	for _, b := range budgets {
		if b.value < 0 {
			errs = append(errs, ValidationError{b.field, b.value, "must be non-negative (0 = unbounded)"})
		}
	}
	return errs
}

func (c *Config) validateRetrieval() []ValidationError {
	var errs []ValidationError
	r := c.Retrieval

	if r.ChunkSize <= 0 {
		errs = append(errs, ValidationError{"retrieval.chunk_size", r.ChunkSize, "must be positive"})
	}
	if r.ChunkOverlap < 0 || (r.ChunkSize > 0 && r.ChunkOverlap >= r.ChunkSize) {
		errs = append(errs, ValidationError{"retrieval.chunk_overlap", r.ChunkOverlap, "must be in [0, chunk_size)"})
	}
	if r.K <= 0 {
		errs = append(errs, ValidationError{"retrieval.k", r.K, "must be positive"})
	}
	if c.Debate.EnableRAG {
		if r.KBDirectory == "" {
			errs = append(errs, ValidationError{"retrieval.kb_directory", r.KBDirectory, "required when retrieval is enabled"})
		}
		if r.VectorStorePath == "" {
			errs = append(errs, ValidationError{"retrieval.vector_store_path", r.VectorStorePath, "required when retrieval is enabled"})
		}
	}
	return errs
}
