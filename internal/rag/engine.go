package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks cv-screener/internal/rag Retriever

import (
	"context"
	"fmt"
	"strings"

	"cv-screener/internal/contextutil"
	"cv-screener/internal/llm"
	"cv-screener/internal/vectorstore"
)

const (
	DefaultTopK        = 5
	DefaultTemperature = 0.1

	noSourcesResponse = "I couldn't find any CV content related to this question. Upload and process some CVs first, then ask again."

	systemPrompt = "You are an assistant that helps recruiters screen candidates. " +
		"Answer the question using only the CV excerpts provided. Mention candidates by the file they come from. " +
		"If the excerpts do not contain enough information to answer, say so."
)

// Retriever returns the chunks most similar to an embedding.
type Retriever interface {
	QuerySimilar(ctx context.Context, embedding []float32, topK int, documentID string) ([]vectorstore.ChunkMatch, error)
}

// Engine answers questions from indexed CV chunks.
type Engine struct {
	embedder    llm.Embedder
	retriever   Retriever
	completer   llm.Completer
	topK        int
	temperature float32
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithTemperature sets the completion temperature.
func WithTemperature(t float32) Option {
	return func(e *Engine) {
		e.temperature = t
	}
}

// NewEngine creates a new RAG engine.
func NewEngine(embedder llm.Embedder, retriever Retriever, completer llm.Completer, opts ...Option) *Engine {
	e := &Engine{
		embedder:    embedder,
		retriever:   retriever,
		completer:   completer,
		topK:        DefaultTopK,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Confidence returns the heuristic confidence for n distinct source documents.
func Confidence(n int) float64 {
	if n <= 0 {
		return 0
	}
	return min(0.9, 0.5+0.1*float64(n))
}

// Answer embeds question, retrieves similar chunks and asks the language model
// to answer from them. Failures are reported inside the returned Answer.
func (e *Engine) Answer(ctx context.Context, question string) (ans Answer) {
	logger := contextutil.LoggerFromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "RAG query panicked", "panic", r)
			ans = failed(fmt.Errorf("internal error: %v", r))
		}
	}()

	logger.InfoContext(ctx, "RAG query started", "question_length", len(question), "top_k", e.topK)

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return failed(fmt.Errorf("failed to embed question: %w", err))
	}
	if len(embeddings) == 0 {
		return failed(fmt.Errorf("no embedding returned for question"))
	}

	matches, err := e.retriever.QuerySimilar(ctx, embeddings[0], e.topK, "")
	if err != nil {
		logger.ErrorContext(ctx, "failed to search vector store", "error", err)
		return failed(fmt.Errorf("failed to search vector index: %w", err))
	}

	if len(matches) == 0 {
		logger.InfoContext(ctx, "no search results found")
		return Answer{
			Response:   noSourcesResponse,
			Sources:    []string{},
			Confidence: 0,
			Outcome:    OutcomeNoSources,
		}
	}

	chunks := make([]RetrievedChunk, 0, len(matches))
	sources := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, m := range matches {
		chunks = append(chunks, RetrievedChunk{
			DocumentID:   m.DocumentID,
			OriginalName: m.OriginalName,
			ChunkIndex:   m.ChunkIndex,
			Score:        m.Score,
			Text:         m.Text,
		})
		if m.DocumentID != "" && !seen[m.DocumentID] {
			seen[m.DocumentID] = true
			sources = append(sources, m.DocumentID)
		}
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildPrompt(chunks, question)},
	}

	logger.DebugContext(ctx, "sending request to LLM", "chunks", len(chunks), "sources", len(sources))

	response, err := e.completer.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: e.temperature,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return failed(fmt.Errorf("failed to get LLM response: %w", err))
	}

	logger.InfoContext(ctx, "RAG query completed", "chunks_used", len(chunks), "sources", len(sources), "answer_length", len(response))

	return Answer{
		Response:   response,
		Sources:    sources,
		Confidence: Confidence(len(sources)),
		Outcome:    OutcomeAnswered,
		Chunks:     chunks,
	}
}

// BuildPrompt places the retrieved excerpts before the question.
func BuildPrompt(chunks []RetrievedChunk, question string) string {
	var b strings.Builder
	b.WriteString("--- CV excerpts ---\n\n")
	for i, c := range chunks {
		name := c.OriginalName
		if name == "" {
			name = c.DocumentID
		}
		fmt.Fprintf(&b, "[%d] File: %s (part %d)\n%s\n\n", i+1, name, c.ChunkIndex+1, c.Text)
	}
	b.WriteString("--- End of excerpts ---\n\n")
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

func failed(err error) Answer {
	return Answer{
		Response:   fmt.Sprintf("Sorry, I could not answer the question: %v", err),
		Sources:    []string{},
		Confidence: 0,
		Outcome:    OutcomeUpstreamError,
		Error:      err.Error(),
	}
}
