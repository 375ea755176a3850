package vectorstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunks(n int, dim int) []ChunkVector {
	out := make([]ChunkVector, n)
	for i := range out {
		vec := make([]float32, dim)
		vec[i%dim] = 1
		out[i] = ChunkVector{Index: i, Text: fmt.Sprintf("chunk %d", i), Embedding: vec}
	}
	return out
}

func TestVectorIDs(t *testing.T) {
	assert.Equal(t, "abc_chunk_3", VectorID("abc", 3))
	assert.Equal(t, PointID("abc_chunk_3"), PointID(VectorID("abc", 3)))
	assert.NotEqual(t, PointID(VectorID("abc", 3)), PointID(VectorID("abc", 4)))
}

func TestDocumentIndex_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	idx := NewDocumentIndex(NewMemoryStore(4))

	require.NoError(t, idx.Upsert(ctx, "doc-1", "resume.pdf", chunks(3, 4)))
	require.NoError(t, idx.Upsert(ctx, "doc-1", "resume.pdf", chunks(3, 4)))

	n, err := idx.CountByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDocumentIndex_UpsertRemovesStaleChunks(t *testing.T) {
	ctx := context.Background()
	idx := NewDocumentIndex(NewMemoryStore(4))

	require.NoError(t, idx.Upsert(ctx, "doc-1", "resume.pdf", chunks(5, 4)))
	require.NoError(t, idx.Upsert(ctx, "doc-1", "resume.pdf", chunks(2, 4)))

	n, err := idx.CountByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	matches, err := idx.QuerySimilar(ctx, []float32{1, 1, 1, 1}, 10, "doc-1")
	require.NoError(t, err)
	for _, m := range matches {
		assert.Less(t, m.ChunkIndex, 2)
	}
}

func TestDocumentIndex_QuerySimilar(t *testing.T) {
	ctx := context.Background()
	idx := NewDocumentIndex(NewMemoryStore(2))

	require.NoError(t, idx.Upsert(ctx, "doc-a", "alice.pdf", []ChunkVector{
		{Index: 0, Text: "Go and Kubernetes", Embedding: []float32{1, 0}},
	}))
	require.NoError(t, idx.Upsert(ctx, "doc-b", "bob.pdf", []ChunkVector{
		{Index: 0, Text: "Python and Django", Embedding: []float32{0, 1}},
		{Index: 1, Text: "Some Go", Embedding: []float32{0.7, 0.7}},
	}))

	matches, err := idx.QuerySimilar(ctx, []float32{1, 0}, 2, "")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "doc-a", matches[0].DocumentID)
	assert.Equal(t, "alice.pdf", matches[0].OriginalName)
	assert.Equal(t, "Go and Kubernetes", matches[0].Text)
	assert.Equal(t, "doc-a_chunk_0", matches[0].VectorID)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)

	filtered, err := idx.QuerySimilar(ctx, []float32{1, 0}, 5, "doc-b")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, m := range filtered {
		assert.Equal(t, "doc-b", m.DocumentID)
	}
	assert.Equal(t, 1, filtered[0].ChunkIndex)
}

func TestDocumentIndex_DeleteByDocument(t *testing.T) {
	ctx := context.Background()
	idx := NewDocumentIndex(NewMemoryStore(4))

	require.NoError(t, idx.Upsert(ctx, "doc-1", "resume.pdf", chunks(4, 4)))
	require.NoError(t, idx.Upsert(ctx, "doc-2", "other.pdf", chunks(2, 4)))

	found, err := idx.DeleteByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, found)

	matches, err := idx.QuerySimilar(ctx, []float32{1, 0, 0, 0}, 10, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, matches)

	stats, err := idx.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, IndexStats{TotalVectors: 2, Dimension: 4}, stats)

	found, err = idx.DeleteByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2)

	t.Run("rejects wrong dimension", func(t *testing.T) {
		err := store.Upsert(ctx, []Point{{ID: "p", Vec: []float32{1, 2, 3}}})
		assert.Error(t, err)
	})

	t.Run("refuses unfiltered delete", func(t *testing.T) {
		assert.ErrorIs(t, store.DeleteByFilter(ctx, nil), ErrEmptyFilter)
	})

	t.Run("search limits results", func(t *testing.T) {
		require.NoError(t, store.Upsert(ctx, []Point{
			{ID: "a", Vec: []float32{1, 0}, Meta: map[string]any{FieldDocumentID: "x", FieldChunkIndex: 0}},
			{ID: "b", Vec: []float32{0, 1}, Meta: map[string]any{FieldDocumentID: "x", FieldChunkIndex: 1}},
			{ID: "c", Vec: []float32{1, 1}, Meta: map[string]any{FieldDocumentID: "y", FieldChunkIndex: 0}},
		}))
		res, err := store.Search(ctx, []float32{1, 0}, 1, nil)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "a", res[0].PointID)

		_, err = store.Search(ctx, []float32{1, 0}, 0, nil)
		assert.Error(t, err)
	})

	t.Run("count with min chunk index", func(t *testing.T) {
		minIdx := 1
		n, err := store.Count(ctx, &Filter{DocumentID: "x", MinChunkIndex: &minIdx})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
