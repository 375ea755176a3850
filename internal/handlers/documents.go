package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_handlers.go -package=mocks cv-screener/internal/handlers DocumentAPI,QueryAPI,StatsAPI,Pinger

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cv-screener/internal/contextutil"
	"cv-screener/internal/service"
	"cv-screener/internal/storage"
)

// DefaultMaxUploadBytes bounds an upload request body when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// DocumentAPI is the document lifecycle as used by the HTTP layer.
type DocumentAPI interface {
	Upload(ctx context.Context, filename string, data []byte) (storage.DocumentRecord, error)
	Get(ctx context.Context, id string) (storage.DocumentRecord, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) (service.DocumentList, error)
	StartProcessing(ctx context.Context, id string) (storage.DocumentRecord, error)
	Delete(ctx context.Context, id string) (service.DeleteResult, error)
	Audit(ctx context.Context) (service.AuditReport, error)
}

// DocumentsHandler handles HTTP requests for uploaded CVs.
type DocumentsHandler struct {
	documents      DocumentAPI
	maxUploadBytes int64
}

// NewDocumentsHandler creates a new DocumentsHandler. A non-positive
// maxUploadBytes uses DefaultMaxUploadBytes.
func NewDocumentsHandler(documents DocumentAPI, maxUploadBytes int64) *DocumentsHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &DocumentsHandler{
		documents:      documents,
		maxUploadBytes: maxUploadBytes,
	}
}

// ProcessResponse is returned when background processing was started.
type ProcessResponse struct {
	ID     string         `json:"id"`
	Status storage.Status `json:"status"`
}

// Upload stores a PDF sent as the multipart field "file".
func (h *DocumentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.WarnContext(ctx, "upload too large", "limit_bytes", tooLarge.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, KindValidation, "File is too large")
			return
		}
		logger.WarnContext(ctx, "invalid upload request", "error", err)
		writeError(w, http.StatusBadRequest, KindValidation, "Expected a multipart form with a file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.WarnContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, KindValidation, "Failed to read uploaded file")
		return
	}

	rec, err := h.documents.Upload(ctx, header.Filename, data)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to upload document")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, rec)
}

// List returns every document record together with store statistics.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.documents.List(ctx)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to list documents")
		return
	}
	writeJSON(w, ctx, http.StatusOK, list)
}

// Get returns the record of a single document.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.documents.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to get document")
		return
	}
	writeJSON(w, ctx, http.StatusOK, rec)
}

// Head answers 200 when both the record and the raw content of a document
// are present and 404 otherwise. It writes no body.
func (h *DocumentsHandler) Head(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := h.documents.Exists(ctx, chi.URLParam(r, "id"))
	if err != nil {
		logger.ErrorContext(ctx, "failed to check document", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Process starts background processing of an uploaded document.
func (h *DocumentsHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.documents.StartProcessing(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to start processing")
		return
	}
	writeJSON(w, ctx, http.StatusAccepted, ProcessResponse{ID: rec.ID, Status: rec.Status})
}

// Delete removes a document from every store. A partial delete answers
// 207 Multi-Status with the outcome of each part.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.documents.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to delete document")
		return
	}

	status := http.StatusOK
	if !result.Complete() {
		status = http.StatusMultiStatus
	}
	writeJSON(w, ctx, status, result)
}

// Audit reports ids present in only one of the stores.
func (h *DocumentsHandler) Audit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.documents.Audit(ctx)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to audit documents")
		return
	}
	writeJSON(w, ctx, http.StatusOK, report)
}
