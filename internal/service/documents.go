package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cv-screener/internal/contextutil"
	"cv-screener/internal/docstore"
	"cv-screener/internal/extract"
	"cv-screener/internal/indexer"
	"cv-screener/internal/storage"
	"cv-screener/internal/vectorstore"
)

const DefaultProcessingTimeout = 5 * time.Minute

// Indexer turns extracted text into indexed chunks and returns the chunk count.
type Indexer interface {
	Index(ctx context.Context, documentID, originalName, text string) (int, error)
}

// VectorIndex is the part of the vector index the document lifecycle needs.
type VectorIndex interface {
	DeleteByDocument(ctx context.Context, documentID string) (bool, error)
	Describe(ctx context.Context) (vectorstore.IndexStats, error)
}

// Stats summarises both stores.
type Stats struct {
	TotalFiles     int     `json:"total_files"`
	MetadataFiles  int     `json:"metadata_files"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	Consistent     bool    `json:"consistent"`
}

// DocumentList is every known record plus store statistics.
type DocumentList struct {
	Documents []storage.DocumentRecord `json:"documents"`
	Stats     Stats                    `json:"stats"`
}

// AuditReport lists ids present in only one of the two stores.
type AuditReport struct {
	OrphanFiles    []string `json:"orphan_files"`
	OrphanMetadata []string `json:"orphan_metadata"`
	Consistent     bool     `json:"consistent"`
}

// DeleteResult reports the outcome of each part of a delete.
type DeleteResult struct {
	ID             string `json:"id"`
	VectorsDeleted bool   `json:"vectors_deleted"`
	VectorsFound   bool   `json:"vectors_found"`
	VectorError    string `json:"vector_error,omitempty"`
	FilesDeleted   bool   `json:"files_deleted"`
	FileError      string `json:"file_error,omitempty"`
}

// Complete reports whether every part of the delete succeeded.
func (r DeleteResult) Complete() bool {
	return r.VectorError == "" && r.FileError == "" && r.FilesDeleted
}

// SourceFile maps a document id to a display name.
type SourceFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentService owns the document lifecycle across the metadata store,
// the document store and the vector index.
type DocumentService struct {
	meta      storage.MetadataStore
	docs      docstore.Store
	extractor extract.Extractor
	indexer   Indexer
	vectors   VectorIndex

	timeout     time.Duration
	autoProcess bool
	newID       func() string
	now         func() time.Time

	locks *keyLock

	baseCtx  context.Context
	shutdown context.CancelFunc
	wg       sync.WaitGroup

	mu       sync.Mutex
	closing  bool
	running  map[string]context.CancelFunc
	deleting map[string]int
}

// DocumentOption configures a DocumentService.
type DocumentOption func(*DocumentService)

// WithProcessingTimeout bounds the processing of one document.
func WithProcessingTimeout(d time.Duration) DocumentOption {
	return func(s *DocumentService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithAutoProcess starts processing right after a successful upload.
func WithAutoProcess(enabled bool) DocumentOption {
	return func(s *DocumentService) {
		s.autoProcess = enabled
	}
}

// WithIDGenerator overrides document id generation.
func WithIDGenerator(newID func() string) DocumentOption {
	return func(s *DocumentService) {
		s.newID = newID
	}
}

// WithNow overrides the upload timestamp source.
func WithNow(now func() time.Time) DocumentOption {
	return func(s *DocumentService) {
		s.now = now
	}
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	meta storage.MetadataStore,
	docs docstore.Store,
	extractor extract.Extractor,
	idx Indexer,
	vectors VectorIndex,
	opts ...DocumentOption,
) *DocumentService {
	baseCtx, shutdown := context.WithCancel(context.Background())
	s := &DocumentService{
		meta:      meta,
		docs:      docs,
		extractor: extractor,
		indexer:   idx,
		vectors:   vectors,
		timeout:   DefaultProcessingTimeout,
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
		locks:     newKeyLock(),
		baseCtx:   baseCtx,
		shutdown:  shutdown,
		running:   make(map[string]context.CancelFunc),
		deleting:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload validates and stores a new document and creates its record.
// Raw content and metadata are written as a pair: if the record cannot be
// created the raw content is removed again.
func (s *DocumentService) Upload(ctx context.Context, filename string, data []byte) (storage.DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	name := filepath.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	if name == "" || name == "." || name == "/" {
		return storage.DocumentRecord{}, &ValidationError{Field: "file", Message: "filename is required"}
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		logger.WarnContext(ctx, "rejected non-PDF upload", "filename", name)
		return storage.DocumentRecord{}, &ValidationError{Field: "file", Message: "only PDF files are accepted"}
	}
	if len(data) == 0 {
		return storage.DocumentRecord{}, &ValidationError{Field: "file", Message: "file is empty"}
	}

	id := s.newID()
	if _, err := s.docs.Save(ctx, id, data); err != nil {
		logger.ErrorContext(ctx, "failed to store document", "document_id", id, "error", err)
		return storage.DocumentRecord{}, WrapError(err, "failed to store document")
	}

	now := s.now()
	rec := storage.DocumentRecord{
		ID:               id,
		OriginalName:     name,
		UploadedAt:       now,
		LastAccessedAt:   now,
		SizeBytes:        int64(len(data)),
		Status:           storage.StatusUploaded,
		ChunkCount:       0,
		ProcessingErrors: []string{},
		VectorPrefix:     storage.VectorPrefixFor(id),
	}

	if err := s.meta.Create(ctx, rec); err != nil {
		logger.ErrorContext(ctx, "failed to create metadata, removing stored document", "document_id", id, "error", err)
		if _, delErr := s.docs.Delete(context.WithoutCancel(ctx), id); delErr != nil {
			logger.ErrorContext(ctx, "failed to roll back stored document", "document_id", id, "error", delErr)
			return storage.DocumentRecord{}, fmt.Errorf("%w: document %s stored without metadata: %v", ErrInconsistent, id, errors.Join(err, delErr))
		}
		return storage.DocumentRecord{}, WrapError(err, "failed to create document metadata")
	}

	logger.InfoContext(ctx, "document uploaded", "document_id", id, "filename", name, "size_bytes", rec.SizeBytes)

	if s.autoProcess {
		started, err := s.StartProcessing(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "failed to start processing", "document_id", id, "error", err)
		} else {
			rec = started
		}
	}
	return rec, nil
}

// Get returns the record for id.
func (s *DocumentService) Get(ctx context.Context, id string) (storage.DocumentRecord, error) {
	rec, ok, err := s.meta.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidID) {
			return storage.DocumentRecord{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return storage.DocumentRecord{}, WrapError(err, "failed to read document metadata")
	}
	if !ok {
		return storage.DocumentRecord{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// Exists reports whether both the record and the raw content of id are present.
func (s *DocumentService) Exists(ctx context.Context, id string) (bool, error) {
	_, hasMeta, err := s.meta.Get(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrInvalidID) {
		return false, WrapError(err, "failed to read document metadata")
	}
	if !hasMeta {
		return false, nil
	}
	_, hasFile, err := s.docs.PathFor(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrInvalidID) {
			return false, nil
		}
		return false, WrapError(err, "failed to stat document")
	}
	return hasFile, nil
}

// List returns every record, newest first, with store statistics.
func (s *DocumentService) List(ctx context.Context) (DocumentList, error) {
	records, err := s.meta.ListAll(ctx)
	if err != nil {
		return DocumentList{}, WrapError(err, "failed to list document metadata")
	}
	objects, err := s.docs.List(ctx)
	if err != nil {
		return DocumentList{}, WrapError(err, "failed to list documents")
	}

	if records == nil {
		records = []storage.DocumentRecord{}
	}
	report := audit(records, objects)
	return DocumentList{
		Documents: records,
		Stats:     stats(records, objects, report.Consistent),
	}, nil
}

// Stats returns store statistics without the records.
func (s *DocumentService) Stats(ctx context.Context) (Stats, error) {
	list, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return list.Stats, nil
}

// Audit lists ids present in only one of the metadata store and the document store.
func (s *DocumentService) Audit(ctx context.Context) (AuditReport, error) {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := s.meta.ListAll(ctx)
	if err != nil {
		return AuditReport{}, WrapError(err, "failed to list document metadata")
	}
	objects, err := s.docs.List(ctx)
	if err != nil {
		return AuditReport{}, WrapError(err, "failed to list documents")
	}

	report := audit(records, objects)
	if !report.Consistent {
		logger.WarnContext(ctx, "store inconsistency detected",
			"orphan_files", len(report.OrphanFiles),
			"orphan_metadata", len(report.OrphanMetadata),
		)
	}
	return report, nil
}

// IndexStats describes the vector index.
func (s *DocumentService) IndexStats(ctx context.Context) (vectorstore.IndexStats, error) {
	st, err := s.vectors.Describe(ctx)
	if err != nil {
		return vectorstore.IndexStats{}, &UpstreamError{Service: "vector index", Err: err}
	}
	return st, nil
}

// ResolveNames maps document ids to their original filenames. Ids without a
// record get a name derived from the id.
func (s *DocumentService) ResolveNames(ctx context.Context, ids []string) []SourceFile {
	logger := contextutil.LoggerFromContext(ctx)

	out := make([]SourceFile, 0, len(ids))
	for _, id := range ids {
		name := fallbackName(id)
		rec, ok, err := s.meta.Get(ctx, id)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "failed to resolve source name", "document_id", id, "error", err)
		case ok && rec.OriginalName != "":
			name = rec.OriginalName
		}
		out = append(out, SourceFile{ID: id, Name: name})
	}
	return out
}

// StartProcessing moves an uploaded document to processing and indexes it in
// the background. The returned record is in the processing state.
func (s *DocumentService) StartProcessing(ctx context.Context, id string) (storage.DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !s.addWorker() {
		return storage.DocumentRecord{}, fmt.Errorf("service is shutting down: %w", ErrInvalidState)
	}

	rec, runCtx, cancel, err := s.begin(ctx, contextutil.WithLogger(s.baseCtx, logger), id)
	if err != nil {
		s.wg.Done()
		return storage.DocumentRecord{}, err
	}

	go func() {
		defer s.wg.Done()
		defer s.locks.Unlock(id)
		defer s.untrack(id, cancel)
		s.process(runCtx, rec)
	}()

	return rec, nil
}

// Process moves an uploaded document to processing and indexes it before returning
// the terminal record.
func (s *DocumentService) Process(ctx context.Context, id string) (storage.DocumentRecord, error) {
	rec, runCtx, cancel, err := s.begin(ctx, ctx, id)
	if err != nil {
		return storage.DocumentRecord{}, err
	}
	defer s.locks.Unlock(id)
	defer s.untrack(id, cancel)

	return s.process(runCtx, rec), nil
}

// begin takes the document lock and performs the uploaded -> processing
// transition. The returned run context derives from parent and is registered
// for cancellation while the lock is held. On success the lock is still held
// and the caller must untrack cancel and release the lock.
func (s *DocumentService) begin(ctx, parent context.Context, id string) (storage.DocumentRecord, context.Context, context.CancelFunc, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.locks.Lock(ctx, id); err != nil {
		return storage.DocumentRecord{}, nil, nil, err
	}
	runCtx, cancel := context.WithCancel(parent)
	s.track(id, cancel)

	fail := func(err error) (storage.DocumentRecord, context.Context, context.CancelFunc, error) {
		s.untrack(id, cancel)
		s.locks.Unlock(id)
		return storage.DocumentRecord{}, nil, nil, err
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	if rec.Status != storage.StatusUploaded {
		return fail(fmt.Errorf("document %s is %s: %w", id, rec.Status, ErrInvalidState))
	}

	processing := storage.StatusProcessing
	rec, ok, err := s.meta.Update(ctx, id, storage.RecordUpdate{Status: &processing})
	if err != nil {
		return fail(WrapError(err, "failed to mark document as processing"))
	}
	if !ok {
		return fail(fmt.Errorf("document %s: %w", id, ErrNotFound))
	}

	logger.InfoContext(ctx, "document processing started", "document_id", id)
	return rec, runCtx, cancel, nil
}

// InterruptedMessage is recorded on documents whose processing was cut short
// by a restart.
const InterruptedMessage = "processing interrupted by restart"

// RecoverInterrupted moves records left in processing by a previous run to
// error and drops any partial vectors they wrote. It returns the number of
// records recovered.
func (s *DocumentService) RecoverInterrupted(ctx context.Context) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := s.meta.ListAll(ctx)
	if err != nil {
		return 0, WrapError(err, "failed to list document metadata")
	}

	recovered := 0
	for _, rec := range records {
		if rec.Status != storage.StatusProcessing || s.isRunning(rec.ID) {
			continue
		}
		ok, err := s.markInterrupted(ctx, rec.ID)
		if err != nil {
			return recovered, err
		}
		if ok {
			recovered++
		}
	}
	if recovered > 0 {
		logger.WarnContext(ctx, "recovered interrupted documents", "count", recovered)
	}
	return recovered, nil
}

func (s *DocumentService) markInterrupted(ctx context.Context, id string) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.locks.Lock(ctx, id); err != nil {
		return false, err
	}
	defer s.locks.Unlock(id)

	// Re-read under the lock; the record may have moved on since ListAll.
	rec, ok, err := s.meta.Get(ctx, id)
	if err != nil {
		return false, WrapError(err, "failed to read document metadata")
	}
	if !ok || rec.Status != storage.StatusProcessing {
		return false, nil
	}

	if _, err := s.vectors.DeleteByDocument(ctx, id); err != nil {
		logger.WarnContext(ctx, "failed to remove partial vectors", "document_id", id, "error", err)
	}

	status := storage.StatusError
	_, ok, err = s.meta.Update(ctx, id, storage.RecordUpdate{
		Status:       &status,
		AppendErrors: []string{InterruptedMessage},
	})
	if err != nil {
		return false, WrapError(err, "failed to mark document as interrupted")
	}
	if ok {
		logger.InfoContext(ctx, "document marked as interrupted", "document_id", id)
	}
	return ok, nil
}

// process runs extraction and indexing under the processing timeout and always
// writes a terminal status, even when ctx was cancelled.
func (s *DocumentService) process(ctx context.Context, rec storage.DocumentRecord) storage.DocumentRecord {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chunks, err := s.index(runCtx, rec)

	writeCtx := context.WithoutCancel(ctx)
	var upd storage.RecordUpdate
	if err != nil {
		msg := s.describeFailure(runCtx, err)
		logger.ErrorContext(ctx, "document processing failed", "document_id", rec.ID, "error", err, "duration", time.Since(start))

		if _, delErr := s.vectors.DeleteByDocument(writeCtx, rec.ID); delErr != nil {
			logger.WarnContext(ctx, "failed to remove partial vectors", "document_id", rec.ID, "error", delErr)
		}

		status := storage.StatusError
		upd = storage.RecordUpdate{Status: &status, AppendErrors: []string{msg}}
	} else {
		logger.InfoContext(ctx, "document processed", "document_id", rec.ID, "chunks", chunks, "duration", time.Since(start))
		status := storage.StatusProcessed
		upd = storage.RecordUpdate{Status: &status, ChunkCount: &chunks}
	}

	updated, ok, uerr := s.meta.Update(writeCtx, rec.ID, upd)
	if uerr != nil || !ok {
		logger.ErrorContext(ctx, "failed to record processing result", "document_id", rec.ID, "error", uerr, "found", ok)
		rec.Status = *upd.Status
		if upd.ChunkCount != nil {
			rec.ChunkCount = *upd.ChunkCount
		}
		rec.ProcessingErrors = append(rec.ProcessingErrors, upd.AppendErrors...)
		return rec
	}
	return updated
}

func (s *DocumentService) index(ctx context.Context, rec storage.DocumentRecord) (int, error) {
	data, err := docstore.ReadAll(ctx, s.docs, rec.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to read document: %w", err)
	}

	text, err := s.extractor.ExtractText(ctx, data)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, indexer.ErrEmptyText
	}

	return s.indexer.Index(ctx, rec.ID, rec.OriginalName, text)
}

// describeFailure turns a processing error into the message stored on the record.
func (s *DocumentService) describeFailure(ctx context.Context, err error) string {
	var stageErr *indexer.StageError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("processing timed out after %s", s.timeout)
	case errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled):
		return "processing was cancelled"
	case errors.Is(err, indexer.ErrEmptyText):
		return "no text could be extracted from the document"
	case errors.Is(err, extract.ErrExtraction):
		return fmt.Sprintf("text extraction failed: %v", err)
	case errors.As(err, &stageErr) && stageErr.Stage == indexer.StageEmbedding:
		return fmt.Sprintf("embedding failed: %v", stageErr.Err)
	case errors.As(err, &stageErr) && stageErr.Stage == indexer.StageVectorIndex:
		return fmt.Sprintf("vector index upsert failed: %v", stageErr.Err)
	default:
		return err.Error()
	}
}

// Delete removes the vectors, raw content and record of id. Any processing in
// flight for id is cancelled first. Vectors are removed before the stored
// files so a failed vector delete leaves the document addressable for a retry.
func (s *DocumentService) Delete(ctx context.Context, id string) (DeleteResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	done := s.cancelRunning(id)
	if err := s.locks.Lock(ctx, id); err != nil {
		done()
		return DeleteResult{}, err
	}
	defer s.locks.Unlock(id)
	defer done()

	_, hasMeta, err := s.meta.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidID) {
			return DeleteResult{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return DeleteResult{}, WrapError(err, "failed to read document metadata")
	}
	_, hasFile, err := s.docs.PathFor(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrInvalidID) {
			return DeleteResult{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return DeleteResult{}, WrapError(err, "failed to stat document")
	}
	if !hasMeta && !hasFile {
		return DeleteResult{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}

	result := DeleteResult{ID: id}

	found, err := s.vectors.DeleteByDocument(ctx, id)
	result.VectorsFound = found
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete vectors", "document_id", id, "error", err)
		result.VectorError = err.Error()
		result.FileError = "files kept because vector deletion failed; retry the delete"
		return result, nil
	}
	result.VectorsDeleted = found

	var fileErrs []string
	if hasFile {
		if _, err := s.docs.Delete(ctx, id); err != nil {
			fileErrs = append(fileErrs, fmt.Sprintf("document store: %v", err))
		}
	}
	if len(fileErrs) == 0 && hasMeta {
		if _, err := s.meta.Delete(ctx, id); err != nil {
			fileErrs = append(fileErrs, fmt.Sprintf("metadata store: %v", err))
		}
	}

	if len(fileErrs) > 0 {
		result.FileError = strings.Join(fileErrs, "; ")
		logger.ErrorContext(ctx, "failed to delete document files", "document_id", id, "error", result.FileError)
		return result, nil
	}
	result.FilesDeleted = true

	logger.InfoContext(ctx, "document deleted", "document_id", id, "vectors_found", found, "had_metadata", hasMeta, "had_file", hasFile)
	return result, nil
}

// Close stops accepting background work and waits for in-flight processing to
// finish. When ctx expires first the remaining runs are cancelled; Close then
// waits for them to record their outcome and returns the ctx error.
func (s *DocumentService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	defer s.shutdown()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
	}

	s.shutdown()
	<-done
	return fmt.Errorf("waiting for background processing: %w", ctx.Err())
}

// addWorker reserves a background slot unless Close has started.
func (s *DocumentService) addWorker() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *DocumentService) track(id string, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[id] = cancel
	if s.deleting[id] > 0 {
		cancel()
	}
}

func (s *DocumentService) isRunning(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.running[id]
	return ok
}

func (s *DocumentService) untrack(id string, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, id)
}

// cancelRunning cancels processing of id and keeps cancelling any run that
// starts before the returned func is called.
func (s *DocumentService) cancelRunning(id string) func() {
	s.mu.Lock()
	s.deleting[id]++
	cancel, ok := s.running[id]
	s.mu.Unlock()
	if ok {
		cancel()
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.deleting[id]--; s.deleting[id] <= 0 {
			delete(s.deleting, id)
		}
	}
}

func audit(records []storage.DocumentRecord, objects []docstore.Object) AuditReport {
	metaIDs := make(map[string]bool, len(records))
	for _, r := range records {
		metaIDs[r.ID] = true
	}
	fileIDs := make(map[string]bool, len(objects))
	for _, o := range objects {
		fileIDs[o.ID] = true
	}

	report := AuditReport{OrphanFiles: []string{}, OrphanMetadata: []string{}}
	for id := range fileIDs {
		if !metaIDs[id] {
			report.OrphanFiles = append(report.OrphanFiles, id)
		}
	}
	for id := range metaIDs {
		if !fileIDs[id] {
			report.OrphanMetadata = append(report.OrphanMetadata, id)
		}
	}
	slices.Sort(report.OrphanFiles)
	slices.Sort(report.OrphanMetadata)
	report.Consistent = len(report.OrphanFiles) == 0 && len(report.OrphanMetadata) == 0
	return report
}

func stats(records []storage.DocumentRecord, objects []docstore.Object, consistent bool) Stats {
	var total int64
	for _, o := range objects {
		total += o.SizeBytes
	}
	return Stats{
		TotalFiles:     len(objects),
		MetadataFiles:  len(records),
		TotalSizeBytes: total,
		TotalSizeMB:    math.Round(float64(total)/(1024*1024)*100) / 100,
		Consistent:     consistent,
	}
}

func fallbackName(id string) string {
	if len(id) > 8 {
		return "File " + id[:8]
	}
	return "File " + id
}
