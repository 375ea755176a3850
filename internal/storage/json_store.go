package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"cv-screener/internal/contextutil"
)

const metadataExt = ".json"

// FileMetadataStore keeps one indented JSON file per document so records
// stay readable and repairable by hand.
type FileMetadataStore struct {
	dir string
	mu  sync.RWMutex
	now func() time.Time
}

// NewFileMetadataStore creates the directory if needed and returns a store rooted at it.
func NewFileMetadataStore(dir string, opts ...Option) (*FileMetadataStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory: %w", err)
	}
	o := buildOptions(opts)
	return &FileMetadataStore{dir: dir, now: o.now}, nil
}

func (s *FileMetadataStore) path(id string) string {
	return filepath.Join(s.dir, id+metadataExt)
}

// Create stores a new record.
func (s *FileMetadataStore) Create(ctx context.Context, rec DocumentRecord) error {
	if err := validateID(rec.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(rec.ID)); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, rec.ID)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat metadata file: %w", err)
	}

	if rec.ProcessingErrors == nil {
		rec.ProcessingErrors = []string{}
	}
	if rec.LastAccessedAt.IsZero() {
		rec.LastAccessedAt = s.now()
	}
	return s.write(rec)
}

// Get returns the record for id.
func (s *FileMetadataStore) Get(ctx context.Context, id string) (DocumentRecord, bool, error) {
	if err := validateID(id); err != nil {
		return DocumentRecord{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read(id)
}

// Update applies upd to the record and refreshes its last access time.
func (s *FileMetadataStore) Update(ctx context.Context, id string, upd RecordUpdate) (DocumentRecord, bool, error) {
	if err := validateID(id); err != nil {
		return DocumentRecord{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok, err := s.read(id)
	if err != nil || !ok {
		return DocumentRecord{}, ok, err
	}

	upd.apply(&rec, s.now())
	if err := s.write(rec); err != nil {
		return DocumentRecord{}, false, err
	}
	return rec, true, nil
}

// Delete removes the record for id.
func (s *FileMetadataStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete metadata file: %w", err)
	}
	return true, nil
}

// ListAll returns every readable record, most recently uploaded first.
// Files that cannot be parsed are logged and skipped.
func (s *FileMetadataStore) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.metadataFiles()
	if err != nil {
		return nil, err
	}

	records := make([]DocumentRecord, 0, len(names))
	for _, name := range names {
		rec, ok, err := s.read(strings.TrimSuffix(name, metadataExt))
		if err != nil || !ok {
			logger.WarnContext(ctx, "skipping unreadable metadata file", "file", name, "error", err)
			continue
		}
		records = append(records, rec)
	}

	slices.SortStableFunc(records, func(a, b DocumentRecord) int {
		return b.UploadedAt.Compare(a.UploadedAt)
	})
	return records, nil
}

// Count returns the number of metadata files on disk.
func (s *FileMetadataStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.metadataFiles()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

func (s *FileMetadataStore) metadataFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), metadataExt) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *FileMetadataStore) read(id string) (DocumentRecord, bool, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return DocumentRecord{}, false, nil
	}
	if err != nil {
		return DocumentRecord{}, false, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var rec DocumentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return DocumentRecord{}, false, fmt.Errorf("failed to decode metadata %s: %w", id, err)
	}
	if rec.ProcessingErrors == nil {
		rec.ProcessingErrors = []string{}
	}
	return rec, true, nil
}

// write replaces the record file atomically via a temp file and rename.
func (s *FileMetadataStore) write(rec DocumentRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*"+metadataExt)
	if err != nil {
		return fmt.Errorf("failed to create temp metadata file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close metadata file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(rec.ID)); err != nil {
		return fmt.Errorf("failed to persist metadata: %w", err)
	}
	return nil
}
