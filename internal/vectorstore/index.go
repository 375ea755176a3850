package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cv-screener/internal/contextutil"
)

// pointNamespace seeds the name-based UUIDs used as point ids.
var pointNamespace = uuid.MustParse("8f2b5c1e-4d7a-4b6e-9a3f-0c1d2e3f4a5b")

// VectorID returns the logical id of chunk index of a document.
func VectorID(documentID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, index)
}

// PointID maps a logical vector id onto the UUID the backend stores.
// The mapping is a pure function of its input.
func PointID(vectorID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(vectorID)).String()
}

// ChunkVector is one embedded chunk ready for indexing.
type ChunkVector struct {
	Index     int
	Text      string
	Embedding []float32
}

// ChunkMatch is a retrieved chunk with its similarity score.
type ChunkMatch struct {
	DocumentID   string
	OriginalName string
	ChunkIndex   int
	VectorID     string
	Text         string
	Score        float32
}

// IndexStats summarises the vector collection.
type IndexStats struct {
	TotalVectors int `json:"total_vectors"`
	Dimension    int `json:"dimension"`
}

// DocumentIndex stores and retrieves document chunks on top of a VectorStore.
type DocumentIndex struct {
	store VectorStore
}

// NewDocumentIndex wraps store.
func NewDocumentIndex(store VectorStore) *DocumentIndex {
	return &DocumentIndex{store: store}
}

// Upsert writes chunks for documentID and removes any vectors the document
// had at chunk indices beyond the new set.
func (d *DocumentIndex) Upsert(ctx context.Context, documentID, originalName string, chunks []ChunkVector) error {
	logger := contextutil.LoggerFromContext(ctx)
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}

	points := make([]Point, 0, len(chunks))
	for _, c := range chunks {
		vid := VectorID(documentID, c.Index)
		points = append(points, Point{
			ID:  PointID(vid),
			Vec: c.Embedding,
			Meta: map[string]any{
				FieldDocumentID:   documentID,
				FieldOriginalName: originalName,
				FieldChunkIndex:   c.Index,
				FieldVectorID:     vid,
				FieldText:         c.Text,
			},
		})
	}

	if err := d.store.Upsert(ctx, points); err != nil {
		return err
	}

	first := len(chunks)
	stale := &Filter{DocumentID: documentID, MinChunkIndex: &first}
	n, err := d.store.Count(ctx, stale)
	if err != nil {
		return fmt.Errorf("failed to count stale vectors: %w", err)
	}
	if n > 0 {
		logger.InfoContext(ctx, "removing stale vectors", "document_id", documentID, "count", n)
		if err := d.store.DeleteByFilter(ctx, stale); err != nil {
			return fmt.Errorf("failed to remove stale vectors: %w", err)
		}
	}
	return nil
}

// QuerySimilar returns up to topK chunks by descending similarity, limited to
// documentID when it is non-empty.
func (d *DocumentIndex) QuerySimilar(ctx context.Context, embedding []float32, topK int, documentID string) ([]ChunkMatch, error) {
	var filter *Filter
	if documentID != "" {
		filter = &Filter{DocumentID: documentID}
	}

	results, err := d.store.Search(ctx, embedding, topK, filter)
	if err != nil {
		return nil, err
	}

	matches := make([]ChunkMatch, 0, len(results))
	for _, r := range results {
		m := ChunkMatch{Score: r.Score}
		m.DocumentID, _ = r.Meta[FieldDocumentID].(string)
		m.OriginalName, _ = r.Meta[FieldOriginalName].(string)
		m.VectorID, _ = r.Meta[FieldVectorID].(string)
		m.Text, _ = r.Meta[FieldText].(string)
		m.ChunkIndex, _ = intFromMeta(r.Meta, FieldChunkIndex)
		matches = append(matches, m)
	}
	return matches, nil
}

// CountByDocument returns how many vectors belong to documentID.
func (d *DocumentIndex) CountByDocument(ctx context.Context, documentID string) (int, error) {
	return d.store.Count(ctx, &Filter{DocumentID: documentID})
}

// DeleteByDocument removes every vector of documentID and reports whether any existed.
// The delete is verified by recounting.
func (d *DocumentIndex) DeleteByDocument(ctx context.Context, documentID string) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if documentID == "" {
		return false, fmt.Errorf("document id is required")
	}

	filter := &Filter{DocumentID: documentID}
	found, err := d.store.Count(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to count vectors: %w", err)
	}
	if found == 0 {
		return false, nil
	}

	if err := d.store.DeleteByFilter(ctx, filter); err != nil {
		return false, err
	}

	remaining, err := d.store.Count(ctx, filter)
	if err != nil {
		return true, fmt.Errorf("failed to verify vector deletion: %w", err)
	}
	if remaining > 0 {
		return true, fmt.Errorf("%d vectors remain after delete", remaining)
	}

	logger.InfoContext(ctx, "deleted document vectors", "document_id", documentID, "count", found)
	return true, nil
}

// Describe reports total vectors and dimension.
func (d *DocumentIndex) Describe(ctx context.Context) (IndexStats, error) {
	info, err := d.store.Describe(ctx)
	if err != nil {
		return IndexStats{}, err
	}
	return IndexStats{TotalVectors: info.PointsCount, Dimension: info.VectorSize}, nil
}

// Ping checks the underlying store.
func (d *DocumentIndex) Ping(ctx context.Context) error {
	return d.store.Ping(ctx)
}
