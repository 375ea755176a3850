package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_metadata_store.go -package=mocks cv-screener/internal/storage MetadataStore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrAlreadyExists is returned when creating a record whose id is taken.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidID is returned for ids that cannot be used as a storage key.
	ErrInvalidID = errors.New("invalid record id")
)

// MetadataStore persists document records keyed by document id.
// Reads of unknown ids report absence through the bool result, not an error.
// Every mutation is durable before the call returns.
type MetadataStore interface {
	// Create stores a new record.
	Create(ctx context.Context, rec DocumentRecord) error
	// Get returns the record for id.
	Get(ctx context.Context, id string) (DocumentRecord, bool, error)
	// Update applies upd to the record and refreshes its last access time.
	Update(ctx context.Context, id string, upd RecordUpdate) (DocumentRecord, bool, error)
	// Delete removes the record for id.
	Delete(ctx context.Context, id string) (bool, error)
	// ListAll returns every record, most recently uploaded first.
	ListAll(ctx context.Context) ([]DocumentRecord, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

// Option configures a metadata store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for last access timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// validateID rejects ids that could escape the storage namespace.
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
