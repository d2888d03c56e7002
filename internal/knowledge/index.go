// internal/knowledge/index.go
package knowledge

import (
	"context"
	"errors"
	"fmt"

	"arena/internal/evidence"
	"arena/internal/logging"
)

// embedBatch caps how many chunks go into one embed request
const embedBatch = 32

const metaEmbeddingModel = "embedding_model"

// Options locate the knowledge base and describe how to index it
type Options struct {
	KBDirectory    string
	StorePath      string
	EmbeddingModel string
	ChunkSize      int
	ChunkOverlap   int
	K              int
	ForceRebuild   bool
}

// Index prepares a retriever over the knowledge base. An existing
// non-empty store built with the same embedding model is reused;
// otherwise documents are loaded, split, embedded, persisted, and the
// store is re-opened to verify it. It returns a nil Retriever when no
// usable knowledge exists, which callers treat as retrieval disabled.
func Index(ctx context.Context, opts Options, embedder Embedder, logger *logging.Logger) (evidence.Retriever, error) {
	if opts.EmbeddingModel == "" {
		opts.EmbeddingModel = DefaultEmbeddingModel
	}

	if !opts.ForceRebuild && StoreExists(opts.StorePath) {
		r, err := reuse(ctx, opts, embedder, logger)
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}

	logger.Info("loading documents", "directory", opts.KBDirectory)
	docs, err := LoadDirectory(opts.KBDirectory, func(path string, err error) {
		logger.Warn("skipping document", "path", path, "error", err.Error())
	})
	if errors.Is(err, ErrNoKnowledge) {
		logger.Warn("no knowledge available", "reason", err.Error())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Info("documents loaded", "count", len(docs))

	splitter, err := NewSplitter(opts.ChunkSize, opts.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	chunks := splitter.SplitDocuments(docs)
	if len(chunks) == 0 {
		logger.Warn("chunking produced no chunks", "documents", len(docs))
		return nil, nil
	}
	logger.Info("documents split", "chunks", len(chunks), "chunk_size", opts.ChunkSize, "overlap", opts.ChunkOverlap)

	if err := embedChunks(ctx, embedder, chunks); err != nil {
		return nil, err
	}

	if err := persist(ctx, opts, chunks); err != nil {
		return nil, err
	}
	logger.Info("vector store persisted", "path", opts.StorePath)

	// Re-open to verify what was written
	store, err := OpenStore(opts.StorePath)
	if err != nil {
		return nil, fmt.Errorf("verify store: %w", err)
	}
	defer store.Close()

	r, err := NewRetriever(ctx, store, embedder, opts.K)
	if err != nil {
		return nil, fmt.Errorf("verify store: %w", err)
	}
	if r.Len() != len(chunks) {
		return nil, fmt.Errorf("verify store: expected %d chunks, found %d", len(chunks), r.Len())
	}
	logger.Info("vector store verified", "chunks", r.Len(), "k", opts.K)
	return r, nil
}

// reuse returns a retriever over an existing store, or nil if the store
// is empty or was built with a different embedding model
func reuse(ctx context.Context, opts Options, embedder Embedder, logger *logging.Logger) (*Retriever, error) {
	store, err := OpenStore(opts.StorePath)
	if err != nil {
		logger.Warn("existing store failed to open, re-indexing", "error", err.Error())
		return nil, nil
	}
	defer store.Close()

	n, err := store.Count(ctx)
	if err != nil || n == 0 {
		return nil, nil
	}
	model, err := store.Meta(ctx, metaEmbeddingModel)
	if err != nil {
		return nil, err
	}
	if model != opts.EmbeddingModel {
		logger.Warn("embedding model changed, re-indexing", "stored", model, "configured", opts.EmbeddingModel)
		return nil, nil
	}

	r, err := NewRetriever(ctx, store, embedder, opts.K)
	if err != nil {
		return nil, err
	}
	logger.Info("using existing vector store", "path", opts.StorePath, "chunks", r.Len())
	return r, nil
}

func embedChunks(ctx context.Context, embedder Embedder, chunks []Chunk) error {
	for start := 0; start < len(chunks); start += embedBatch {
		end := min(start+embedBatch, len(chunks))
		texts := make([]string, end-start)
		for i := range texts {
			texts[i] = chunks[start+i].Content
		}
		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks %d-%d: %w", start, end, err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embed chunks %d-%d: got %d vectors", start, end, len(vectors))
		}
		for i, v := range vectors {
			chunks[start+i].Embedding = v
		}
	}
	return nil
}

func persist(ctx context.Context, opts Options, chunks []Chunk) error {
	store, err := OpenStore(opts.StorePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	if err := store.AddChunks(ctx, chunks); err != nil {
		return fmt.Errorf("write chunks: %w", err)
	}
	return store.SetMeta(ctx, metaEmbeddingModel, opts.EmbeddingModel)
}
