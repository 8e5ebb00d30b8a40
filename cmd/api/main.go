package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"casedesk/internal/auth"
	"casedesk/internal/blob"
	"casedesk/internal/config"
	"casedesk/internal/extract"
	"casedesk/internal/handlers"
	"casedesk/internal/http"
	"casedesk/internal/llm"
	"casedesk/internal/logging"
	"casedesk/internal/rag"
	"casedesk/internal/service"
	"casedesk/internal/storage"
	"casedesk/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level, format and file sink
	_, logCloser := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	defer func() {
		_ = logCloser.Close()
	}()
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "file", cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	caseRepo := storage.NewCaseRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	messageRepo := storage.NewMessageRepo(db)
	fileRepo := storage.NewFileRepo(db)

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}

	healthChecks := []handlers.HealthCheck{
		{Name: "database", Critical: true, Check: db.PingContext},
	}

	// Completion backend. A nil completer leaves the assistant unconfigured and
	// every reply becomes the not-configured message.
	var (
		completer rag.Completer
		images    extract.ImageDescriber
		audio     extract.Transcriber
	)
	if cfg.AssistantConfigured() {
		var backend llm.ChatCompleter
		switch cfg.LLMProvider {
		case "anthropic":
			anthropicClient, err := llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.LLMModelName, cfg.LLMTimeout)
			if err != nil {
				log.Fatalf("Failed to create Anthropic client: %v", err)
			}
			backend = anthropicClient
			images = anthropicClient
		default:
			llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName).WithTimeout(cfg.LLMTimeout)
			llmClient.VisionModel = cfg.LLMVisionModel
			llmClient.AudioModel = cfg.LLMAudioModel
			backend = llmClient
			images = llmClient
			audio = llmClient
		}
		completer = llm.NewBreakerCompleter("llm-"+cfg.LLMProvider, backend, llm.DefaultBreakerSettings())
		slog.Info("AI assistant configured", "provider", cfg.LLMProvider, "model", cfg.LLMModelName)
	} else {
		slog.Warn("AI assistant not configured; replies will explain how to set it up", "provider", cfg.LLMProvider)
	}

	generator := rag.NewGenerator(completer, rag.GeneratorConfig{
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
		Limits: rag.ContextLimits{
			PerDocumentChars: cfg.Limits.ContextDocChars,
			TotalChars:       cfg.Limits.ContextTotalChars,
		},
	})
	extractor := extract.NewService(images, audio, cfg.Limits.MaxExtractedChars)

	// Blob store: S3 when a bucket is configured, otherwise next to the database.
	var blobs blob.Store
	if cfg.BlobEnabled() {
		s3Store, err := blob.NewS3Store(ctx, blob.S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Endpoint:      cfg.S3Endpoint,
			PresignExpiry: cfg.S3PresignExpiry,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 blob store: %v", err)
		}
		blobs = s3Store
		healthChecks = append(healthChecks, handlers.HealthCheck{Name: "blob_store", Check: s3Store.Ping})
		slog.Info("S3 blob store ready", "bucket", cfg.S3Bucket)
	} else {
		blobDir := filepath.Join(filepath.Dir(cfg.DBPath), "blobs")
		diskStore, err := blob.NewDiskStore(blobDir)
		if err != nil {
			log.Fatalf("Failed to initialize disk blob store: %v", err)
		}
		blobs = diskStore
		slog.Info("Disk blob store ready", "path", blobDir)
	}

	// Optional semantic search. Both interfaces stay nil when Qdrant is not
	// configured.
	var (
		search service.SearchService
		index  service.DocumentIndexer
	)
	if cfg.SearchEnabled() {
		vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		defer func() {
			_ = vectorStore.Close()
		}()

		// Ensure collection exists with correct vector size
		if err := vectorStore.EnsureCollection(ctx, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		search = service.NewSearchService(caseRepo, documentRepo, embedder, vectorStore, cfg.EmbeddingModelName)
		index = search
		healthChecks = append(healthChecks, handlers.HealthCheck{Name: "vector_store", Check: vectorStore.Ping})
	}

	// Create services
	documentService := service.NewDocumentService(caseRepo, documentRepo, cfg.Limits, index)
	deps := &http.Deps{
		CaseService:      service.NewCaseService(caseRepo, documentRepo, index),
		DocumentService:  documentService,
		MessagingService: service.NewMessagingService(caseRepo, documentRepo, messageRepo, generator),
		FileService:      service.NewFileService(fileRepo, caseRepo, blobs, extractor, documentService, cfg.Limits),
		ChatService:      service.NewChatService(documentRepo, generator),
		SearchService:    search,
		Verifier:         verifier,
		HealthChecks:     healthChecks,
		MaxUploadBytes:   cfg.Limits.MaxUploadBytes,
		CORSOrigins:      cfg.CORSOrigins,
	}
	router := http.NewRouter(deps)

	// Start API server
	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("API server shutdown failed", "error", err)
	}
}

// newVerifier prefers the JWKS endpoint over the shared secret when both are set.
func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, error) {
	if cfg.AuthJWKSURL != "" {
		return auth.NewJWKSVerifier(ctx, cfg.AuthJWKSURL)
	}
	return auth.NewHMACVerifier(cfg.AuthJWTSecret)
}
