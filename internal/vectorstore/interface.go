package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks cv-screener/internal/vectorstore VectorStore

import (
	"context"
	"errors"
)

// Payload fields stored with every chunk vector.
const (
	FieldDocumentID   = "document_id"
	FieldOriginalName = "original_name"
	FieldChunkIndex   = "chunk_index"
	FieldVectorID     = "vector_id"
	FieldText         = "text"
)

// ErrEmptyFilter is returned when a filtered delete would match the whole collection.
var ErrEmptyFilter = errors.New("delete requires a non-empty filter")

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// Filter restricts an operation to the chunks of one document and,
// optionally, to chunk indices at or above MinChunkIndex.
type Filter struct {
	DocumentID    string
	MinChunkIndex *int
}

// Empty reports whether f matches every point.
func (f *Filter) Empty() bool {
	return f == nil || (f.DocumentID == "" && f.MinChunkIndex == nil)
}

// CollectionInfo contains information about the bound collection.
type CollectionInfo struct {
	VectorSize  int
	PointsCount int
	Status      string
}

// VectorStore defines the interface for vector storage operations on a
// single collection chosen at construction.
type VectorStore interface {
	// Upsert inserts or replaces points by id.
	Upsert(ctx context.Context, points []Point) error

	// Search returns up to k points ordered by descending similarity.
	Search(ctx context.Context, query []float32, k int, filter *Filter) ([]SearchResult, error)

	// Count returns the exact number of points matching filter.
	Count(ctx context.Context, filter *Filter) (int, error)

	// DeleteByFilter removes every point matching filter.
	DeleteByFilter(ctx context.Context, filter *Filter) error

	// Describe reports collection size and dimension.
	Describe(ctx context.Context) (CollectionInfo, error)

	// Ping checks that the backing service and collection are reachable.
	Ping(ctx context.Context) error
}

// intFromMeta reads an integer payload value regardless of how the backend decoded it.
func intFromMeta(meta map[string]any, key string) (int, bool) {
	switch v := meta[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func matches(f *Filter, meta map[string]any) bool {
	if f == nil {
		return true
	}
	if f.DocumentID != "" {
		if id, _ := meta[FieldDocumentID].(string); id != f.DocumentID {
			return false
		}
	}
	if f.MinChunkIndex != nil {
		idx, ok := intFromMeta(meta, FieldChunkIndex)
		if !ok || idx < *f.MinChunkIndex {
			return false
		}
	}
	return true
}
