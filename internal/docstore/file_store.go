package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"cv-screener/internal/contextutil"
)

// FileStore keeps each document as {dir}/{id}.pdf on the local filesystem.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted at it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, keyFor(id))
}

// Save writes data to a temp file in the same directory and renames it into place.
func (s *FileStore) Save(ctx context.Context, id string, data []byte) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateID(id); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to sync document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close document: %w", err)
	}

	dst := s.path(id)
	if err := os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("failed to persist document: %w", err)
	}

	logger.DebugContext(ctx, "document saved", "id", id, "path", dst, "size_bytes", len(data))
	return dst, nil
}

// PathFor returns the file path of id if it exists.
func (s *FileStore) PathFor(ctx context.Context, id string) (string, bool, error) {
	if err := validateID(id); err != nil {
		return "", false, err
	}

	p := s.path(id)
	_, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to stat document: %w", err)
	}
	return p, true, nil
}

// Open returns the file for reading.
func (s *FileStore) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return f, nil
}

// Delete removes the file for id.
func (s *FileStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}

	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return true, nil
}

// List returns every stored document with its size.
func (s *FileStore) List(ctx context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := idFromKey(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		objects = append(objects, Object{ID: id, SizeBytes: info.Size()})
	}
	return objects, nil
}
