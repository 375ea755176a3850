package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cv-screener/internal/handlers"
	"cv-screener/internal/screening"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Documents      handlers.DocumentAPI
	Queries        handlers.QueryAPI
	Stats          handlers.StatsAPI
	VectorStore    handlers.Pinger
	Criteria       screening.Criteria
	MaxUploadBytes int64
	AllowedOrigins []string
	Version        string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.AllowedOrigins))

	documents := handlers.NewDocumentsHandler(deps.Documents, deps.MaxUploadBytes)
	chat := handlers.NewChatHandler(deps.Queries, deps.Stats)
	health := handlers.NewHealthHandler(deps.VectorStore)
	screen := handlers.NewScreeningHandler(deps.Criteria)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", health)
		r.Get("/health/detailed", health.Detailed)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", documents.Upload)
			r.Get("/", documents.List)
			r.Get("/audit", documents.Audit)
			r.Get("/{id}", documents.Get)
			r.Head("/{id}", documents.Head)
			r.Post("/{id}/process", documents.Process)
			r.Delete("/{id}", documents.Delete)
		})

		r.Method(http.MethodPost, "/chat", chat)
		r.Get("/chat/stats", chat.Stats)
		r.Post("/chat/test", chat.SelfTest)

		r.Post("/screening/analyze", screen.Analyze)
		r.Get("/screening/criteria", screen.Criteria)
	})

	version := deps.Version
	if version == "" {
		version = "dev"
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "CV screener API",
			"version": version,
		})
	})

	return r
}
