// internal/knowledge/retriever_test.go
package knowledge

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"arena/internal/evidence"
)

var keywords = []string{"solar", "oil", "water"}

// keywordEmbedder maps text to counts of a few keywords
type keywordEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *keywordEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		v := make([]float32, len(keywords)+1)
		for j, k := range keywords {
			v[j] = float32(strings.Count(lower, k))
		}
		v[len(keywords)] = 0.01
		out[i] = v
	}
	return out, nil
}

func (e *keywordEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func embedded(t *testing.T, e Embedder, chunks ...Chunk) []Chunk {
	t.Helper()
	if err := embedChunks(context.Background(), e, chunks); err != nil {
		t.Fatal(err)
	}
	return chunks
}

func TestRetrieverRanking(t *testing.T) {
	e := &keywordEmbedder{}
	chunks := embedded(t, e,
		Chunk{Source: "oil.txt", Content: "oil oil oil"},
		Chunk{Source: "solar.txt", Content: "solar panels and solar farms"},
		Chunk{Source: "water.txt", Content: "water rights"},
		Chunk{Source: "mixed.txt", Content: "solar and water"},
	)
	r := newRetriever(chunks, e, 2)

	passages, err := r.Query(context.Background(), "the future of solar")
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(passages) != 2 {
		t.Fatalf("Expected 2 passages, got %d", len(passages))
	}
	if passages[0].Source != "solar.txt" || passages[1].Source != "mixed.txt" {
		t.Errorf("Unexpected ranking %+v", passages)
	}
}

func TestRetrieverDefaultK(t *testing.T) {
	e := &keywordEmbedder{}
	var chunks []Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, Chunk{Source: "s", Content: "oil"})
	}
	r := newRetriever(embedded(t, e, chunks...), e, 0)

	passages, _ := r.Query(context.Background(), "oil")
	if len(passages) != DefaultTopK {
		t.Errorf("Expected %d passages, got %d", DefaultTopK, len(passages))
	}
}

func TestRetrieverEmbedFailure(t *testing.T) {
	e := &keywordEmbedder{err: errors.New("ollama down")}
	r := newRetriever(nil, e, 3)

	_, err := r.Query(context.Background(), "q")
	if !errors.Is(err, evidence.ErrRetrieval) {
		t.Fatalf("Expected retrieval error, got %v", err)
	}
	var rerr *evidence.RetrievalError
	if !errors.As(err, &rerr) || rerr.Query != "q" {
		t.Errorf("Unexpected error detail %v", err)
	}
}

func TestCosine(t *testing.T) {
	if got := cosine([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("Identical vectors should score 1, got %f", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("Orthogonal vectors should score 0, got %f", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("Zero vector should score 0, got %f", got)
	}
}
