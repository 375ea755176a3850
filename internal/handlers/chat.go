package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"cv-screener/internal/contextutil"
	"cv-screener/internal/rag"
	"cv-screener/internal/service"
	"cv-screener/internal/vectorstore"
)

const (
	selfTestQuestion = "How many files are processed?"
	selfTestPreview  = 100
)

// QueryAPI answers questions about the uploaded CVs.
type QueryAPI interface {
	Query(ctx context.Context, question string) (service.QueryResult, error)
}

// StatsAPI reports statistics of the stores behind the chat.
type StatsAPI interface {
	Stats(ctx context.Context) (service.Stats, error)
	IndexStats(ctx context.Context) (vectorstore.IndexStats, error)
}

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	queries QueryAPI
	stats   StatsAPI
	md      goldmark.Markdown
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(queries QueryAPI, stats StatsAPI) *ChatHandler {
	return &ChatHandler{
		queries: queries,
		stats:   stats,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithHardWraps(),
			),
		),
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	service.QueryResult
	ResponseHTML string `json:"response_html,omitempty"`
}

// StatsResponse combines vector index and file statistics.
type StatsResponse struct {
	VectorStore vectorstore.IndexStats `json:"vectorstore"`
	Files       service.Stats          `json:"files"`
	Status      string                 `json:"status"`
}

// SelfTestResponse reports the outcome of the canned chat query.
type SelfTestResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	TestResponse string `json:"test_response,omitempty"`
}

// ServeHTTP answers a chat message. With ?format=html the answer is also
// rendered from markdown.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, KindValidation, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	result, err := h.queries.Query(ctx, req.Message)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to process chat request")
		return
	}

	resp := ChatResponse{QueryResult: result}
	if r.URL.Query().Get("format") == "html" {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(result.Response), &buf); err != nil {
			logger.WarnContext(ctx, "failed to render markdown", "error", err)
		} else {
			resp.ResponseHTML = buf.String()
		}
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// Stats reports vector index and file statistics.
func (h *ChatHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	index, err := h.stats.IndexStats(ctx)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to get statistics")
		return
	}
	files, err := h.stats.Stats(ctx)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to get statistics")
		return
	}

	writeJSON(w, ctx, http.StatusOK, StatsResponse{
		VectorStore: index,
		Files:       files,
		Status:      "operational",
	})
}

// SelfTest runs a canned query through the whole chat path. Failures are
// reported in the body, not the status code.
func (h *ChatHandler) SelfTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	result, err := h.queries.Query(ctx, selfTestQuestion)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "chat self-test failed", "error", err)
		writeJSON(w, ctx, http.StatusOK, SelfTestResponse{Status: "error", Message: "Chat self-test failed: " + err.Error()})
	case result.Outcome == rag.OutcomeUpstreamError:
		logger.WarnContext(ctx, "chat self-test failed", "error", result.Error)
		writeJSON(w, ctx, http.StatusOK, SelfTestResponse{Status: "error", Message: "Chat self-test failed: " + result.Error})
	default:
		writeJSON(w, ctx, http.StatusOK, SelfTestResponse{
			Status:       "success",
			Message:      "Chat is working",
			TestResponse: preview(result.Response, selfTestPreview),
		})
	}
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
