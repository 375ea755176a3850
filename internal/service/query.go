package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query.go -package=mocks cv-screener/internal/service Answerer,NameResolver

import (
	"context"
	"strings"
	"time"

	"cv-screener/internal/contextutil"
	"cv-screener/internal/rag"
)

const DefaultQueryTimeout = 60 * time.Second

// Answerer produces a sourced answer. It reports failures inside the Answer.
type Answerer interface {
	Answer(ctx context.Context, question string) rag.Answer
}

// NameResolver maps document ids to display names.
type NameResolver interface {
	ResolveNames(ctx context.Context, ids []string) []SourceFile
}

// QueryResult is the answer to a question. SourceFiles holds the display
// name of each entry in Sources, in the same order.
type QueryResult struct {
	Response    string      `json:"response"`
	Sources     []string    `json:"sources"`
	SourceFiles []string    `json:"source_files"`
	Confidence  float64     `json:"confidence"`
	Outcome     rag.Outcome `json:"outcome"`
	Error       string      `json:"error,omitempty"`
}

// QueryService answers questions about the uploaded CVs.
type QueryService struct {
	engine  Answerer
	names   NameResolver
	timeout time.Duration
}

// NewQueryService creates a new QueryService. A non-positive timeout uses DefaultQueryTimeout.
func NewQueryService(engine Answerer, names NameResolver, timeout time.Duration) *QueryService {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &QueryService{
		engine:  engine,
		names:   names,
		timeout: timeout,
	}
}

// Query answers question. Only invalid input is returned as an error.
func (s *QueryService) Query(ctx context.Context, question string) (QueryResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		logger.WarnContext(ctx, "empty message in chat request")
		return QueryResult{}, &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ans := s.engine.Answer(ctx, question)

	sources := ans.Sources
	if sources == nil {
		sources = []string{}
	}
	files := make([]string, 0, len(sources))
	if len(sources) > 0 {
		for _, f := range s.names.ResolveNames(ctx, sources) {
			files = append(files, f.Name)
		}
	}

	logger.InfoContext(ctx, "chat request processed", "outcome", ans.Outcome, "sources", len(sources), "confidence", ans.Confidence)
	return QueryResult{
		Response:    ans.Response,
		Sources:     sources,
		SourceFiles: files,
		Confidence:  ans.Confidence,
		Outcome:     ans.Outcome,
		Error:       ans.Error,
	}, nil
}
