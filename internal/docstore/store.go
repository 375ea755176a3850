package docstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks cv-screener/internal/docstore Store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const fileExt = ".pdf"

var (
	// ErrNotFound is returned by Open when no content is stored for an id.
	ErrNotFound = errors.New("document content not found")
	// ErrInvalidID is returned for ids that cannot be used as a storage key.
	ErrInvalidID = errors.New("invalid document id")
)

// Object describes one stored raw document.
type Object struct {
	ID        string
	SizeBytes int64
}

// Store persists raw uploaded bytes keyed by document id.
// Writes are atomic: readers never observe a partially written document.
type Store interface {
	// Save writes data under id and returns its locator.
	Save(ctx context.Context, id string, data []byte) (string, error)
	// PathFor returns the locator of id, or false when nothing is stored.
	PathFor(ctx context.Context, id string) (string, bool, error)
	// Open returns a reader over the stored bytes.
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	// Delete removes id. Deleting missing content returns false and no error.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns every stored document.
	List(ctx context.Context) ([]Object, error)
}

// ReadAll loads the whole document for id.
func ReadAll(ctx context.Context, s Store, id string) ([]byte, error) {
	rc, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", id, err)
	}
	return data, nil
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func keyFor(id string) string {
	return id + fileExt
}

// idFromKey reverses keyFor, reporting false for foreign names.
func idFromKey(key string) (string, bool) {
	if strings.HasPrefix(key, ".") || !strings.HasSuffix(key, fileExt) {
		return "", false
	}
	id := strings.TrimSuffix(key, fileExt)
	return id, id != ""
}
