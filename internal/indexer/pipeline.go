package indexer

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cv-screener/internal/contextutil"
	"cv-screener/internal/llm"
	"cv-screener/internal/vectorstore"
)

// Stages reported by StageError.
const (
	StageEmbedding   = "embedding"
	StageVectorIndex = "vector_index"
)

// ErrEmptyText is returned when a document yields no chunks.
var ErrEmptyText = errors.New("no text to index")

// StageError identifies which external step of indexing failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ChunkIndex receives the embedded chunks of a document.
type ChunkIndex interface {
	Upsert(ctx context.Context, documentID, originalName string, chunks []vectorstore.ChunkVector) error
}

// Pipeline chunks extracted text, embeds every chunk and writes the vectors.
type Pipeline struct {
	chunker     *Chunker
	embedder    llm.Embedder
	index       ChunkIndex
	batchSize   int
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBatchSize sets how many chunks are sent per embedding request.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithConcurrency sets how many embedding requests may be in flight per document.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(chunker *Chunker, embedder llm.Embedder, index ChunkIndex, opts ...Option) *Pipeline {
	p := &Pipeline{
		chunker:     chunker,
		embedder:    embedder,
		index:       index,
		batchSize:   32,
		concurrency: 2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Index splits text, embeds every chunk and upserts the result under documentID.
// Nothing is written unless every chunk was embedded. It returns the chunk count.
func (p *Pipeline) Index(ctx context.Context, documentID, originalName, text string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	texts := p.chunker.Split(text)
	if len(texts) == 0 {
		return 0, ErrEmptyText
	}

	embeddings, err := p.embed(ctx, texts)
	if err != nil {
		return 0, &StageError{Stage: StageEmbedding, Err: err}
	}

	chunks := make([]vectorstore.ChunkVector, len(texts))
	for i, t := range texts {
		chunks[i] = vectorstore.ChunkVector{Index: i, Text: t, Embedding: embeddings[i]}
	}

	if err := p.index.Upsert(ctx, documentID, originalName, chunks); err != nil {
		return 0, &StageError{Stage: StageVectorIndex, Err: err}
	}

	logger.InfoContext(ctx, "indexed document", "document_id", documentID, "chunks", len(chunks))
	return len(chunks), nil
}

func (p *Pipeline) embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for start := 0; start < len(texts); start += p.batchSize {
		end := min(start+p.batchSize, len(texts))
		g.Go(func() error {
			vecs, err := p.embedder.EmbedTexts(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("chunks %d-%d: %w", start, end-1, err)
			}
			if len(vecs) != end-start {
				return fmt.Errorf("chunks %d-%d: expected %d embeddings, got %d", start, end-1, end-start, len(vecs))
			}
			copy(out[start:end], vecs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
