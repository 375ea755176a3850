package vectorstore

import (
	"context"
	"fmt"
	"maps"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process VectorStore using brute-force cosine similarity.
type MemoryStore struct {
	mu         sync.RWMutex
	vectorSize int
	points     map[string]Point
}

// NewMemoryStore creates an empty store accepting vectors of vectorSize dimensions.
// A vectorSize of 0 accepts any dimension.
func NewMemoryStore(vectorSize int) *MemoryStore {
	return &MemoryStore{
		vectorSize: vectorSize,
		points:     make(map[string]Point),
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, points []Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, p := range points {
		if s.vectorSize > 0 && len(p.Vec) != s.vectorSize {
			return fmt.Errorf("point %s has %d dimensions, expected %d", p.ID, len(p.Vec), s.vectorSize)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range points {
		vec := make([]float32, len(p.Vec))
		copy(vec, p.Vec)
		s.points[p.ID] = Point{ID: p.ID, Vec: vec, Meta: maps.Clone(p.Meta)}
	}
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, query []float32, k int, filter *Filter) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	results := make([]SearchResult, 0, len(s.points))
	for _, p := range s.points {
		if !matches(filter, p.Meta) {
			continue
		}
		results = append(results, SearchResult{
			PointID: p.ID,
			Score:   cosine(query, p.Vec),
			Meta:    maps.Clone(p.Meta),
		})
	}
	s.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].PointID < results[j].PointID
		}
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *MemoryStore) Count(ctx context.Context, filter *Filter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.points {
		if matches(filter, p.Meta) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) DeleteByFilter(ctx context.Context, filter *Filter) error {
	if filter.Empty() {
		return ErrEmptyFilter
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.points {
		if matches(filter, p.Meta) {
			delete(s.points, id)
		}
	}
	return nil
}

func (s *MemoryStore) Describe(ctx context.Context) (CollectionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CollectionInfo{
		VectorSize:  s.vectorSize,
		PointsCount: len(s.points),
		Status:      "green",
	}, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
