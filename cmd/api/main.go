package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cv-screener/internal/config"
	"cv-screener/internal/contextutil"
	"cv-screener/internal/docstore"
	"cv-screener/internal/extract"
	"cv-screener/internal/http"
	"cv-screener/internal/indexer"
	"cv-screener/internal/llm"
	"cv-screener/internal/logging"
	"cv-screener/internal/rag"
	"cv-screener/internal/screening"
	"cv-screener/internal/service"
	"cv-screener/internal/storage"
	"cv-screener/internal/vectorstore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logCloser := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer func() {
		_ = logCloser.Close()
	}()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "file", cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = contextutil.WithLogger(ctx, logger)

	meta, closeMeta, err := openMetadataStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open metadata store: %v", err)
	}
	defer closeMeta()

	docs, err := openDocumentStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}

	store, closeStore, err := openVectorStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}
	defer closeStore()
	index := vectorstore.NewDocumentIndex(store)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize, cfg.LLMTimeout).
		WithRateLimit(cfg.EmbeddingRateLimit)
	validateEmbedder(ctx, embedder, cfg.QdrantVectorSize)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout, cfg.LLMHeaders)

	chunker, err := indexer.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatalf("Invalid chunking configuration: %v", err)
	}
	pipeline := indexer.NewPipeline(chunker, embedder, index,
		indexer.WithBatchSize(cfg.EmbeddingBatchSize),
		indexer.WithConcurrency(cfg.EmbeddingConcurrency),
	)

	documents := service.NewDocumentService(meta, docs, extract.NewPDFExtractor(), pipeline, index,
		service.WithProcessingTimeout(cfg.ProcessingTimeout),
		service.WithAutoProcess(cfg.AutoProcess),
	)
	if _, err := documents.RecoverInterrupted(ctx); err != nil {
		log.Fatalf("Failed to recover interrupted documents: %v", err)
	}

	engine := rag.NewEngine(embedder, index, llmClient,
		rag.WithTopK(cfg.RetrievalTopK),
		rag.WithTemperature(cfg.LLMTemperature),
	)
	queries := service.NewQueryService(engine, documents, cfg.QueryTimeout)
	slog.Info("RAG engine initialized", "top_k", cfg.RetrievalTopK, "model", cfg.LLMModelName)

	criteria, err := screening.LoadCriteria()
	if err != nil {
		log.Fatalf("Failed to load screening criteria: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		Documents:      documents,
		Queries:        queries,
		Stats:          documents,
		VectorStore:    index,
		Criteria:       criteria,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Version:        version,
	})

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr, "version", version)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			slog.Error("API server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	if err := documents.Close(shutdownCtx); err != nil {
		slog.Error("Background processing did not finish", "error", err)
	}
	slog.Info("Server stopped")
}

// openMetadataStore returns the configured metadata backend and a cleanup func.
func openMetadataStore(cfg *config.Config) (storage.MetadataStore, func(), error) {
	if cfg.MetadataStore == "sqlite" {
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("Database initialized", "path", cfg.DBPath)
		return storage.NewSQLiteMetadataStore(db), func() { _ = db.Close() }, nil
	}

	store, err := storage.NewFileMetadataStore(cfg.MetadataDir())
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Metadata directory ready", "path", cfg.MetadataDir())
	return store, func() {}, nil
}

// openDocumentStore returns the configured raw document backend.
func openDocumentStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	if cfg.DocumentStore == "minio" {
		store, err := docstore.NewMinioStore(ctx, docstore.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("Object store ready", "endpoint", cfg.MinioEndpoint, "bucket", cfg.MinioBucket)
		return store, nil
	}

	store, err := docstore.NewFileStore(cfg.DocumentDir())
	if err != nil {
		return nil, err
	}
	slog.Info("Document directory ready", "path", cfg.DocumentDir())
	return store, nil
}

// openVectorStore returns the configured vector backend and a cleanup func.
func openVectorStore(ctx context.Context, cfg *config.Config) (vectorstore.VectorStore, func(), error) {
	if cfg.VectorStore == "memory" {
		slog.Warn("Using in-memory vector store; vectors are lost on restart")
		return vectorstore.NewMemoryStore(cfg.QdrantVectorSize), func() {}, nil
	}

	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
	if err != nil {
		return nil, nil, err
	}
	// Ensure collection exists with correct vector size
	if err := store.EnsureCollection(ctx, cfg.QdrantVectorSize); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	return store, func() { _ = store.Close() }, nil
}

// validateEmbedder checks the provider's vector size once at startup. An
// unreachable provider is only logged so the API can still serve documents.
func validateEmbedder(ctx context.Context, embedder *llm.EmbeddingsClient, vectorSize int) {
	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	vectors, err := embedder.EmbedTexts(checkCtx, []string{"test"})
	if err != nil {
		slog.Warn("Embedding provider check failed", "error", err)
		return
	}
	if len(vectors) == 0 || len(vectors[0]) != vectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d", vectorSize)
	}
	slog.Info("Embedding client validated", "vector_size", vectorSize)
}
