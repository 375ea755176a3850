package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"cv-screener/internal/contextutil"
	"cv-screener/internal/screening"
)

// ScreeningHandler serves the screening criteria and the CV-to-job analysis.
type ScreeningHandler struct {
	criteria screening.Criteria
}

// NewScreeningHandler creates a new ScreeningHandler.
func NewScreeningHandler(criteria screening.Criteria) *ScreeningHandler {
	return &ScreeningHandler{criteria: criteria}
}

// Criteria returns the available screening criteria.
func (h *ScreeningHandler) Criteria(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.criteria)
}

// Analyze scores a CV against a job description.
func (h *ScreeningHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req screening.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.CVText) == "" {
		writeError(w, http.StatusBadRequest, KindValidation, "job_description and cv_text are required")
		return
	}

	writeJSON(w, ctx, http.StatusOK, screening.Analyze(req))
}
