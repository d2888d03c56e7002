// Package evidence defines the retrieval contract used by debaters and the
// policy that turns retrieval outcomes into the evidence block injected into
// a debater's prompt.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel texts substituted for retrieved content. They are prompt text,
// not errors: a debater always proceeds with whichever block results.
const (
	DisabledBlock = "[No RAG enabled]\n\n"
	EmptyBlock    = "[No relevant information found]\n\n"
	errorBlockFmt = "[RAG error: %v]\n\n"

	blockHeader    = "Relevant information from knowledge base:\n\n"
	blockSeparator = "\n---\n"
)

// DefaultMaxPassages is how many top-ranked passages make it into a block.
const DefaultMaxPassages = 3

// ErrRetrieval marks failures raised by a Retriever.
var ErrRetrieval = errors.New("retrieval failed")

// Passage is one ranked retrieval result.
type Passage struct {
	Source  string // provenance, e.g. a file path
	Content string
}

// Retriever returns passages relevant to a query, best match first.
type Retriever interface {
	Query(ctx context.Context, text string) ([]Passage, error)
}

// RetrievalError wraps a failure from a retrieval backend.
type RetrievalError struct {
	Query string
	Err   error
}

func (e *RetrievalError) Error() string {
	if e.Err == nil {
		return "retrieval failed"
	}
	return "retrieval failed: " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Is reports ErrRetrieval so callers can match without the concrete type.
func (e *RetrievalError) Is(target error) bool { return target == ErrRetrieval }

// ErrorBlock renders the sentinel for a failed retrieval.
func ErrorBlock(err error) string {
	return fmt.Sprintf(errorBlockFmt, err)
}

// FormatPassages renders up to max passages as an evidence block.
// An empty slice yields EmptyBlock.
func FormatPassages(passages []Passage, max int) string {
	if len(passages) == 0 {
		return EmptyBlock
	}
	if max > 0 && len(passages) > max {
		passages = passages[:max]
	}

	formatted := make([]string, len(passages))
	for i, p := range passages {
		source := p.Source
		if source == "" {
			source = "N/A"
		}
		formatted[i] = fmt.Sprintf("Source: %s\nContent: %s", source, p.Content)
	}
	return blockHeader + strings.Join(formatted, blockSeparator) + "\n\n"
}

// Gather queries r and applies the evidence policy. A nil retriever means
// retrieval is disabled. Retrieval failures never escape: they come back
// as the error sentinel along with the error for logging.
func Gather(ctx context.Context, r Retriever, query string, max int) (string, error) {
	if r == nil {
		return DisabledBlock, nil
	}

	passages, err := r.Query(ctx, query)
	if err != nil {
		return ErrorBlock(err), err
	}
	return FormatPassages(passages, max), nil
}
