package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// timeLayout is fixed width so lexical order matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectDocument = `SELECT id, original_name, uploaded_at, last_accessed_at, size_bytes,
	status, chunk_count, processing_errors, vector_prefix FROM documents`

// SQLiteMetadataStore stores document records in a SQLite table.
// It implements the MetadataStore interface.
type SQLiteMetadataStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteMetadataStore creates a new SQLiteMetadataStore. The schema must
// already be migrated.
func NewSQLiteMetadataStore(db *sql.DB, opts ...Option) *SQLiteMetadataStore {
	o := buildOptions(opts)
	return &SQLiteMetadataStore{db: db, now: o.now}
}

// Create stores a new record.
func (s *SQLiteMetadataStore) Create(ctx context.Context, rec DocumentRecord) error {
	if err := validateID(rec.ID); err != nil {
		return err
	}
	if rec.LastAccessedAt.IsZero() {
		rec.LastAccessedAt = s.now()
	}

	errs, err := encodeErrors(rec.ProcessingErrors)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, original_name, uploaded_at, last_accessed_at, size_bytes,
		 status, chunk_count, processing_errors, vector_prefix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalName, formatTime(rec.UploadedAt), formatTime(rec.LastAccessedAt), rec.SizeBytes,
		string(rec.Status), rec.ChunkCount, errs, rec.VectorPrefix,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, rec.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// Get returns the record for id.
func (s *SQLiteMetadataStore) Get(ctx context.Context, id string) (DocumentRecord, bool, error) {
	if err := validateID(id); err != nil {
		return DocumentRecord{}, false, err
	}

	rec, err := scanDocument(s.db.QueryRowContext(ctx, selectDocument+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentRecord{}, false, nil
	}
	if err != nil {
		return DocumentRecord{}, false, fmt.Errorf("failed to query document: %w", err)
	}
	return rec, true, nil
}

// Update applies upd inside a transaction and refreshes the last access time.
func (s *SQLiteMetadataStore) Update(ctx context.Context, id string, upd RecordUpdate) (DocumentRecord, bool, error) {
	if err := validateID(id); err != nil {
		return DocumentRecord{}, false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DocumentRecord{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rec, err := scanDocument(tx.QueryRowContext(ctx, selectDocument+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentRecord{}, false, nil
	}
	if err != nil {
		return DocumentRecord{}, false, fmt.Errorf("failed to query document: %w", err)
	}

	upd.apply(&rec, s.now())
	errs, err := encodeErrors(rec.ProcessingErrors)
	if err != nil {
		return DocumentRecord{}, false, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE documents SET status = ?, chunk_count = ?, processing_errors = ?, last_accessed_at = ? WHERE id = ?`,
		string(rec.Status), rec.ChunkCount, errs, formatTime(rec.LastAccessedAt), id,
	)
	if err != nil {
		return DocumentRecord{}, false, fmt.Errorf("failed to update document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return DocumentRecord{}, false, fmt.Errorf("failed to commit update: %w", err)
	}
	return rec, true, nil
}

// Delete removes the record for id.
func (s *SQLiteMetadataStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// ListAll returns every record, most recently uploaded first.
func (s *SQLiteMetadataStore) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectDocument+" ORDER BY uploaded_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]DocumentRecord, 0)
	for rows.Next() {
		rec, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *SQLiteMetadataStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (DocumentRecord, error) {
	var (
		rec                    DocumentRecord
		status, errs           string
		uploadedAt, accessedAt string
	)
	err := row.Scan(&rec.ID, &rec.OriginalName, &uploadedAt, &accessedAt, &rec.SizeBytes,
		&status, &rec.ChunkCount, &errs, &rec.VectorPrefix)
	if err != nil {
		return DocumentRecord{}, err
	}

	rec.Status = Status(status)
	if rec.UploadedAt, err = time.Parse(timeLayout, uploadedAt); err != nil {
		return DocumentRecord{}, fmt.Errorf("failed to parse uploaded_at: %w", err)
	}
	if rec.LastAccessedAt, err = time.Parse(timeLayout, accessedAt); err != nil {
		return DocumentRecord{}, fmt.Errorf("failed to parse last_accessed_at: %w", err)
	}
	if err := json.Unmarshal([]byte(errs), &rec.ProcessingErrors); err != nil {
		return DocumentRecord{}, fmt.Errorf("failed to decode processing_errors: %w", err)
	}
	if rec.ProcessingErrors == nil {
		rec.ProcessingErrors = []string{}
	}
	return rec, nil
}

func encodeErrors(errs []string) (string, error) {
	if errs == nil {
		errs = []string{}
	}
	data, err := json.Marshal(errs)
	if err != nil {
		return "", fmt.Errorf("failed to encode processing_errors: %w", err)
	}
	return string(data), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
