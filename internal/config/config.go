package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api"
	openAIBaseURL     = "https://api.openai.com"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort            string
	CORSAllowedOrigins []string
	MaxUploadBytes     int64

	LogLevel      slog.Level
	LogFormat     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	DataDir       string
	DocumentStore string
	MetadataStore string
	DBPath        string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioRegion    string

	LLMBaseURL     string
	LLMModelName   string
	LLMAPIKey      string
	LLMTemperature float32
	LLMTimeout     time.Duration
	// LLMHeaders are sent with every completion request (OpenRouter attribution).
	LLMHeaders map[string]string

	EmbeddingBaseURL     string
	EmbeddingModelName   string
	EmbeddingAPIKey      string
	EmbeddingRateLimit   float64
	EmbeddingBatchSize   int
	EmbeddingConcurrency int

	VectorStore      string
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	ChunkSize     int
	ChunkOverlap  int
	RetrievalTopK int

	ProcessingTimeout time.Duration
	QueryTimeout      time.Duration
	AutoProcess       bool
}

// MetadataDir is where the JSON metadata backend keeps one file per document.
func (c *Config) MetadataDir() string {
	return filepath.Join(c.DataDir, "metadata")
}

// DocumentDir is where the filesystem document backend keeps raw uploads.
func (c *Config) DocumentDir() string {
	return filepath.Join(c.DataDir, "cvs")
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// A .env file in the current directory or any of the nearest parents is loaded first;
// variables already present in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "8000"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogFile:            getEnv("LOG_FILE", ""),
		DataDir:            getEnv("DATA_DIR", "./data"),
		DocumentStore:      strings.ToLower(getEnv("DOCUMENT_STORE", "file")),
		MetadataStore:      strings.ToLower(getEnv("METADATA_STORE", "json")),
		MinioEndpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:        getEnv("MINIO_BUCKET", "cvs"),
		MinioRegion:        getEnv("MINIO_REGION", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorStore:        strings.ToLower(getEnv("VECTOR_STORE", "qdrant")),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "cv_chunks"),
	}
	cfg.DBPath = getEnv("DB_PATH", filepath.Join(cfg.DataDir, "cv-screener.db"))

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	applyLLMProvider(cfg)

	ints := []struct {
		key  string
		def  int
		min  int
		dest *int
	}{
		{"LOG_MAX_SIZE_MB", 100, 1, &cfg.LogMaxSizeMB},
		{"LOG_MAX_BACKUPS", 3, 0, &cfg.LogMaxBackups},
		{"LOG_MAX_AGE_DAYS", 28, 0, &cfg.LogMaxAgeDays},
		{"EMBEDDING_BATCH_SIZE", 16, 1, &cfg.EmbeddingBatchSize},
		{"EMBEDDING_CONCURRENCY", 2, 1, &cfg.EmbeddingConcurrency},
		{"QDRANT_VECTOR_SIZE", 1536, 1, &cfg.QdrantVectorSize},
		{"CHUNK_SIZE", 1000, 1, &cfg.ChunkSize},
		{"CHUNK_OVERLAP", 200, 0, &cfg.ChunkOverlap},
		{"RETRIEVAL_TOP_K", 5, 1, &cfg.RetrievalTopK},
	}
	for _, f := range ints {
		v, err := getEnvInt(f.key, f.def)
		if err != nil {
			return nil, err
		}
		if v < f.min {
			return nil, fmt.Errorf("%s must be at least %d", f.key, f.min)
		}
		*f.dest = v
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be less than CHUNK_SIZE (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}

	maxUploadMB, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	if maxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be greater than 0")
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) << 20

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.1"), 32)
	if err != nil {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be a valid number: %w", err)
	}
	cfg.LLMTemperature = float32(temperature)

	cfg.EmbeddingRateLimit, err = strconv.ParseFloat(getEnv("EMBEDDING_RATE_LIMIT", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_RATE_LIMIT must be a valid number: %w", err)
	}

	durations := []struct {
		key  string
		def  string
		dest *time.Duration
	}{
		{"LLM_TIMEOUT", "60s", &cfg.LLMTimeout},
		{"PROCESSING_TIMEOUT", "5m", &cfg.ProcessingTimeout},
		{"QUERY_TIMEOUT", "60s", &cfg.QueryTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("%s must be a valid duration: %w", d.key, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%s must be greater than 0", d.key)
		}
		*d.dest = v
	}

	if cfg.MinioUseSSL, err = getEnvBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if cfg.AutoProcess, err = getEnvBool("AUTO_PROCESS", true); err != nil {
		return nil, err
	}

	switch cfg.DocumentStore {
	case "file", "minio":
	default:
		return nil, fmt.Errorf("DOCUMENT_STORE must be file or minio, got %q", cfg.DocumentStore)
	}
	switch cfg.MetadataStore {
	case "json", "sqlite":
	default:
		return nil, fmt.Errorf("METADATA_STORE must be json or sqlite, got %q", cfg.MetadataStore)
	}
	switch cfg.VectorStore {
	case "qdrant", "memory":
	default:
		return nil, fmt.Errorf("VECTOR_STORE must be qdrant or memory, got %q", cfg.VectorStore)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// applyLLMProvider picks the completion endpoint. An OpenRouter key wins over an
// OpenAI key; LLM_BASE_URL and LLM_API_KEY override either.
func applyLLMProvider(cfg *Config) {
	openRouterKey := os.Getenv("OPENROUTER_API_KEY")
	openAIKey := os.Getenv("OPENAI_API_KEY")

	switch {
	case openRouterKey != "":
		cfg.LLMBaseURL = openRouterBaseURL
		cfg.LLMAPIKey = openRouterKey
		cfg.LLMModelName = getEnv("LLM_MODEL", "openai/gpt-3.5-turbo")
		cfg.LLMHeaders = map[string]string{
			"HTTP-Referer": getEnv("OPENROUTER_REFERER", "http://localhost:3000"),
			"X-Title":      getEnv("OPENROUTER_TITLE", "CV Screener"),
		}
	default:
		cfg.LLMBaseURL = openAIBaseURL
		cfg.LLMAPIKey = openAIKey
		cfg.LLMModelName = getEnv("LLM_MODEL", "gpt-3.5-turbo")
	}
	cfg.LLMBaseURL = strings.TrimRight(getEnv("LLM_BASE_URL", cfg.LLMBaseURL), "/")
	cfg.LLMAPIKey = getEnv("LLM_API_KEY", cfg.LLMAPIKey)

	cfg.EmbeddingBaseURL = strings.TrimRight(getEnv("EMBEDDING_BASE_URL", openAIBaseURL), "/")
	cfg.EmbeddingAPIKey = getEnv("EMBEDDING_API_KEY", openAIKey)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
