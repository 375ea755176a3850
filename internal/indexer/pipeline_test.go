package indexer_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cv-screener/internal/indexer"
	"cv-screener/internal/llm"
	"cv-screener/internal/llm/mocks"
	"cv-screener/internal/vectorstore"
)

func init() {
	slog.SetDefault(slog.New(slog.DiscardHandler))
}

// fakeEmbedder returns one vector per text with the text length as first component.
type fakeEmbedder struct {
	calls atomic.Int32
	fail  bool
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls.Add(1)
	if f.fail {
		return nil, errors.New("provider unavailable")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len([]rune(t))), 1}
	}
	return out, nil
}

var _ llm.Embedder = (*fakeEmbedder)(nil)

func newChunker(t *testing.T, size, overlap int) *indexer.Chunker {
	t.Helper()
	c, err := indexer.NewChunker(size, overlap)
	require.NoError(t, err)
	return c
}

func TestPipeline_Index(t *testing.T) {
	ctx := context.Background()
	store := vectorstore.NewMemoryStore(2)
	index := vectorstore.NewDocumentIndex(store)
	embedder := &fakeEmbedder{}

	p := indexer.NewPipeline(newChunker(t, 10, 2), embedder, index, indexer.WithBatchSize(2), indexer.WithConcurrency(3))

	text := "Jane Doe. Go, Kubernetes, PostgreSQL. Ten years backend."
	n, err := p.Index(ctx, "doc-1", "resume.pdf", text)
	require.NoError(t, err)

	expected := len(newChunker(t, 10, 2).Split(text))
	assert.Equal(t, expected, n)
	assert.Equal(t, int32((expected+1)/2), embedder.calls.Load())

	count, err := index.CountByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, n, count)

	matches, err := index.QuerySimilar(ctx, []float32{10, 1}, n, "doc-1")
	require.NoError(t, err)
	for _, m := range matches {
		assert.Equal(t, "resume.pdf", m.OriginalName)
		assert.Equal(t, vectorstore.VectorID("doc-1", m.ChunkIndex), m.VectorID)
	}
}

func TestPipeline_Index_EmptyText(t *testing.T) {
	embedder := &fakeEmbedder{}
	p := indexer.NewPipeline(newChunker(t, 10, 2), embedder, vectorstore.NewDocumentIndex(vectorstore.NewMemoryStore(2)))

	_, err := p.Index(context.Background(), "doc-1", "empty.pdf", "")
	assert.ErrorIs(t, err, indexer.ErrEmptyText)
	assert.Zero(t, embedder.calls.Load())
}

func TestPipeline_Index_EmbeddingFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	index := vectorstore.NewDocumentIndex(vectorstore.NewMemoryStore(2))
	p := indexer.NewPipeline(newChunker(t, 10, 2), &fakeEmbedder{fail: true}, index)

	_, err := p.Index(ctx, "doc-1", "resume.pdf", "some extracted text that spans chunks")

	var stageErr *indexer.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, indexer.StageEmbedding, stageErr.Stage)

	count, err := index.CountByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPipeline_Index_EmbeddingCountMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"abc"}).Return([][]float32{}, nil)

	p := indexer.NewPipeline(newChunker(t, 10, 2), embedder, vectorstore.NewDocumentIndex(vectorstore.NewMemoryStore(2)))

	_, err := p.Index(context.Background(), "doc-1", "resume.pdf", "abc")
	var stageErr *indexer.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, indexer.StageEmbedding, stageErr.Stage)
}

type failingIndex struct{ err error }

func (f failingIndex) Upsert(context.Context, string, string, []vectorstore.ChunkVector) error {
	return f.err
}

func TestPipeline_Index_UpsertFailure(t *testing.T) {
	upsertErr := errors.New("qdrant unavailable")
	p := indexer.NewPipeline(newChunker(t, 10, 2), &fakeEmbedder{}, failingIndex{err: upsertErr})

	_, err := p.Index(context.Background(), "doc-1", "resume.pdf", "abc")

	var stageErr *indexer.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, indexer.StageVectorIndex, stageErr.Stage)
	assert.ErrorIs(t, err, upsertErr)
}
