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

// Config holds all configuration for the application.
type Config struct {
	APIPort     string
	CORSOrigins []string

	LogLevel  slog.Level
	LogFormat string
	LogFile   string

	DBPath string

	AuthJWTSecret string
	AuthJWKSURL   string

	// LLMProvider selects the completion backend: "openai" (any OpenAI-compatible
	// server) or "anthropic". An empty API key leaves the assistant unconfigured.
	LLMProvider     string
	LLMBaseURL      string
	LLMModelName    string
	LLMAPIKey       string
	LLMVisionModel  string
	LLMAudioModel   string
	LLMTimeout      time.Duration
	LLMTemperature  float32
	LLMMaxTokens    int
	AnthropicAPIKey string

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PresignExpiry time.Duration

	// Qdrant search is optional; it is enabled when QDRANT_URL is set.
	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
	EmbeddingBaseURL   string
	EmbeddingModelName string

	Limits Limits
}

// Limits are the workspace policy knobs.
type Limits struct {
	MaxDocumentsPerCase int
	MaxCaseSizeBytes    int64
	MaxUploadBytes      int64
	MaxExtractedChars   int
	ContextDocChars     int
	ContextTotalChars   int
}

// DefaultLimits returns the stock workspace policy.
func DefaultLimits() Limits {
	return Limits{
		MaxDocumentsPerCase: 30,
		MaxCaseSizeBytes:    50 * 1024 * 1024,
		MaxUploadBytes:      25 * 1024 * 1024,
		MaxExtractedChars:   20000,
		ContextDocChars:     2000,
		ContextTotalChars:   12000,
	}
}

// AssistantConfigured reports whether credentials for the selected completion
// backend are present.
func (c *Config) AssistantConfigured() bool {
	if c.LLMProvider == "anthropic" {
		return c.AnthropicAPIKey != ""
	}
	return c.LLMAPIKey != ""
}

// SearchEnabled reports whether the Qdrant document index is configured.
func (c *Config) SearchEnabled() bool {
	return c.QdrantURL != ""
}

// BlobEnabled reports whether an S3 bucket is configured for uploads.
func (c *Config) BlobEnabled() bool {
	return c.S3Bucket != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or a parent, it is loaded first.
// Environment variables already set take precedence over .env file values.
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
		APIPort:            getEnv("API_PORT", "9000"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		LogFile:            getEnv("LOG_FILE", ""),
		DBPath:             getEnv("DB_PATH", "./data/casedesk.db"),
		AuthJWTSecret:      getEnv("AUTH_JWT_SECRET", ""),
		AuthJWKSURL:        getEnv("AUTH_JWKS_URL", ""),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMVisionModel:     getEnv("LLM_VISION_MODEL", ""),
		LLMAudioModel:      getEnv("LLM_AUDIO_MODEL", "whisper-1"),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3AccessKey:        getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:        getEnv("S3_SECRET_KEY", ""),
		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "documents"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		Limits:             DefaultLimits(),
	}

	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.LLMProvider != "openai" && cfg.LLMProvider != "anthropic" {
		return nil, fmt.Errorf("LLM_PROVIDER must be openai or anthropic, got %q", cfg.LLMProvider)
	}
	if cfg.LLMProvider == "anthropic" && cfg.LLMModelName == "gpt-4o-mini" {
		cfg.LLMModelName = "claude-3-5-haiku-latest"
	}
	if cfg.LLMVisionModel == "" {
		cfg.LLMVisionModel = cfg.LLMModelName
	}
	if cfg.EmbeddingBaseURL == "" {
		cfg.EmbeddingBaseURL = cfg.LLMBaseURL
	}

	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.S3PresignExpiry, err = getDuration("S3_PRESIGN_EXPIRY", time.Hour); err != nil {
		return nil, err
	}

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.2"), 32)
	if err != nil {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be a valid number: %w", err)
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	cfg.LLMTemperature = float32(temperature)

	if cfg.LLMMaxTokens, err = getPositiveInt("LLM_MAX_TOKENS", 512); err != nil {
		return nil, err
	}

	if cfg.QdrantURL != "" {
		// Must match the output size of the embeddings model; a change requires
		// recreating the collection.
		if cfg.QdrantVectorSize, err = getPositiveInt("QDRANT_VECTOR_SIZE", 0); err != nil {
			return nil, err
		}
		if cfg.QdrantVectorSize == 0 {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required when QDRANT_URL is set")
		}
	}

	if cfg.Limits, err = loadLimits(cfg.Limits); err != nil {
		return nil, err
	}

	if cfg.AuthJWTSecret == "" && cfg.AuthJWKSURL == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET or AUTH_JWKS_URL is required")
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func loadLimits(l Limits) (Limits, error) {
	var err error
	if l.MaxDocumentsPerCase, err = getPositiveInt("MAX_DOCUMENTS_PER_CASE", l.MaxDocumentsPerCase); err != nil {
		return l, err
	}
	maxCase, err := getPositiveInt("MAX_CASE_SIZE_BYTES", int(l.MaxCaseSizeBytes))
	if err != nil {
		return l, err
	}
	l.MaxCaseSizeBytes = int64(maxCase)
	maxUpload, err := getPositiveInt("MAX_UPLOAD_BYTES", int(l.MaxUploadBytes))
	if err != nil {
		return l, err
	}
	l.MaxUploadBytes = int64(maxUpload)
	if l.MaxExtractedChars, err = getPositiveInt("MAX_EXTRACTED_CHARS", l.MaxExtractedChars); err != nil {
		return l, err
	}
	if l.ContextDocChars, err = getPositiveInt("CONTEXT_DOC_CHARS", l.ContextDocChars); err != nil {
		return l, err
	}
	if l.ContextTotalChars, err = getPositiveInt("CONTEXT_TOTAL_CHARS", l.ContextTotalChars); err != nil {
		return l, err
	}
	return l, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
