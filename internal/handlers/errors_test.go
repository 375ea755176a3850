package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cv-screener/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantError  string
	}{
		{"validation", &service.ValidationError{Field: "file", Message: "only PDF files are accepted"}, http.StatusBadRequest, KindValidation, "only PDF files are accepted"},
		{"wrapped invalid input", fmt.Errorf("bad: %w", service.ErrInvalidInput), http.StatusBadRequest, KindValidation, "Invalid input"},
		{"not found", fmt.Errorf("document x: %w", service.ErrNotFound), http.StatusNotFound, KindNotFound, "Document not found"},
		{"invalid state", fmt.Errorf("document x is processed: %w", service.ErrInvalidState), http.StatusConflict, KindConflict, "document x is processed: invalid document state"},
		{"upstream", &service.UpstreamError{Service: "vector index", Err: errors.New("down")}, http.StatusBadGateway, KindUpstream, "External service error"},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, KindUpstream, "Request timed out"},
		{"inconsistent stores", fmt.Errorf("%w: doc", service.ErrInconsistent), http.StatusInternalServerError, KindInternal, "default"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, KindInternal, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(w, context.Background(), tt.err, "default")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Kind != tt.wantKind || resp.Error != tt.wantError {
				t.Errorf("response = %+v, want kind %q error %q", resp, tt.wantKind, tt.wantError)
			}
		})
	}
}
