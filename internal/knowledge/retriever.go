// internal/knowledge/retriever.go
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"arena/internal/evidence"
)

// DefaultTopK is how many passages a query returns
const DefaultTopK = 3

// Retriever ranks stored chunks by cosine similarity to a query.
// Chunks are loaded once; the store is not consulted per query.
type Retriever struct {
	chunks   []Chunk
	embedder Embedder
	k        int
}

// NewRetriever loads every chunk from store
func NewRetriever(ctx context.Context, store *Store, embedder Embedder, k int) (*Retriever, error) {
	chunks, err := store.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	return newRetriever(chunks, embedder, k), nil
}

func newRetriever(chunks []Chunk, embedder Embedder, k int) *Retriever {
	if k <= 0 {
		k = DefaultTopK
	}
	return &Retriever{chunks: chunks, embedder: embedder, k: k}
}

// Len returns the number of searchable chunks
func (r *Retriever) Len() int { return len(r.chunks) }

// Query implements evidence.Retriever
func (r *Retriever) Query(ctx context.Context, text string) ([]evidence.Passage, error) {
	vectors, err := r.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, &evidence.RetrievalError{Query: text, Err: err}
	}
	if len(vectors) != 1 {
		return nil, &evidence.RetrievalError{Query: text, Err: errors.New("embedder returned no vector")}
	}
	query := vectors[0]

	type scored struct {
		chunk *Chunk
		score float64
	}
	ranked := make([]scored, 0, len(r.chunks))
	for i := range r.chunks {
		c := &r.chunks[i]
		if len(c.Embedding) != len(query) {
			continue
		}
		ranked = append(ranked, scored{chunk: c, score: cosine(query, c.Embedding)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > r.k {
		ranked = ranked[:r.k]
	}
	passages := make([]evidence.Passage, len(ranked))
	for i, s := range ranked {
		passages[i] = evidence.Passage{Source: s.chunk.Source, Content: s.chunk.Content}
	}
	return passages, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
