package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"API_PORT", "CORS_ALLOWED_ORIGINS", "MAX_UPLOAD_MB",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	"DATA_DIR", "DOCUMENT_STORE", "METADATA_STORE", "DB_PATH",
	"OPENROUTER_API_KEY", "OPENAI_API_KEY", "LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL", "LLM_TEMPERATURE",
	"EMBEDDING_BASE_URL", "EMBEDDING_API_KEY", "EMBEDDING_MODEL", "EMBEDDING_RATE_LIMIT",
	"VECTOR_STORE", "QDRANT_URL", "QDRANT_COLLECTION", "QDRANT_VECTOR_SIZE",
	"CHUNK_SIZE", "CHUNK_OVERLAP", "RETRIEVAL_TOP_K",
	"PROCESSING_TIMEOUT", "QUERY_TIMEOUT", "AUTO_PROCESS",
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "defaults",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "8000" &&
					cfg.ChunkSize == 1000 &&
					cfg.ChunkOverlap == 200 &&
					cfg.RetrievalTopK == 5 &&
					cfg.QdrantVectorSize == 1536 &&
					cfg.LLMModelName == "gpt-3.5-turbo" &&
					cfg.LLMBaseURL == openAIBaseURL &&
					cfg.LLMTemperature == float32(0.1) &&
					cfg.ProcessingTimeout == 5*time.Minute &&
					cfg.AutoProcess &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.MaxUploadBytes == 10<<20 &&
					len(cfg.CORSAllowedOrigins) == 2
			},
		},
		{
			name: "openrouter key takes precedence",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("OPENROUTER_API_KEY", "or-key")
				setEnv("OPENAI_API_KEY", "oa-key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMBaseURL == openRouterBaseURL &&
					cfg.LLMAPIKey == "or-key" &&
					cfg.LLMHeaders["X-Title"] != "" &&
					cfg.EmbeddingAPIKey == "oa-key"
			},
		},
		{
			name: "explicit base url overrides provider",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("OPENAI_API_KEY", "oa-key")
				setEnv("LLM_BASE_URL", "http://localhost:8080/")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMBaseURL == "http://localhost:8080" && cfg.LLMAPIKey == "oa-key"
			},
		},
		{
			name: "overlap equal to size",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("CHUNK_SIZE", "200")
				setEnv("CHUNK_OVERLAP", "200")
			},
			wantErr: true,
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("QDRANT_VECTOR_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero vector size",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "unknown metadata store",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("METADATA_STORE", "postgres")
			},
			wantErr: true,
		},
		{
			name: "invalid processing timeout",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("PROCESSING_TIMEOUT", "soon")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", t.TempDir())
				setEnv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "creates nested data dir",
			setupEnv: func(t *testing.T) {
				setEnv("DATA_DIR", filepath.Join(t.TempDir(), "a", "b"))
				setEnv("METADATA_STORE", "sqlite")
			},
			checkConfig: func(cfg *Config) bool {
				_, err := os.Stat(cfg.DataDir)
				return err == nil && cfg.DBPath == filepath.Join(cfg.DataDir, "cv-screener.db")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	key := "CV_SCREENER_TEST_ENV"
	unsetEnv(key)
	defer unsetEnv(key)

	if got := getEnv(key, "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %v, want fallback", got)
	}
	setEnv(key, "value")
	if got := getEnv(key, "fallback"); got != "value" {
		t.Errorf("getEnv() = %v, want value", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList() = %v, want [a b]", got)
	}
}
