package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"casedesk/internal/auth"
	"casedesk/internal/handlers"
	"casedesk/internal/service"
)

// Deps holds dependencies for the HTTP router. SearchService may be nil
// when semantic search is not configured.
type Deps struct {
	CaseService      service.CaseService
	DocumentService  service.DocumentService
	MessagingService service.MessagingService
	FileService      service.FileService
	ChatService      service.ChatService
	SearchService    service.SearchService

	Verifier     auth.Verifier
	HealthChecks []handlers.HealthCheck

	MaxUploadBytes int64
	CORSOrigins    []string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.CORSOrigins))

	cases := handlers.NewCaseHandler(deps.CaseService, deps.DocumentService)
	documents := handlers.NewDocumentHandler(deps.DocumentService, deps.SearchService)
	messages := handlers.NewMessageHandler(deps.MessagingService)
	files := handlers.NewFileHandler(deps.FileService, deps.MaxUploadBytes)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.HealthChecks...))

		r.Group(func(r chi.Router) {
			r.Use(Auth(deps.Verifier))

			r.Route("/cases", func(r chi.Router) {
				r.Post("/", cases.Create)
				r.Get("/", cases.List)
				r.Route("/{caseID}", func(r chi.Router) {
					r.Get("/", cases.Get)
					r.Patch("/", cases.Update)
					r.Delete("/", cases.Delete)
					r.Get("/documents", cases.ListDocuments)
					r.Post("/documents/{documentID}", cases.AttachDocument)
					r.Delete("/documents/{documentID}", cases.DetachDocument)
					r.Get("/messages", messages.List)
					r.Post("/messages", messages.Send)
				})
			})

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", documents.Create)
				r.Get("/", documents.List)
				r.Get("/search", documents.Search)
				r.Post("/reindex", documents.Reindex)
				r.Route("/{documentID}", func(r chi.Router) {
					r.Get("/", documents.Get)
					r.Patch("/", documents.Update)
					r.Delete("/", documents.Delete)
				})
			})

			r.Route("/files", func(r chi.Router) {
				r.Post("/", files.Upload)
				r.Get("/", files.List)
				r.Route("/{fileID}", func(r chi.Router) {
					r.Get("/", files.Get)
					r.Post("/extract", files.Extract)
					r.Post("/document", files.CreateDocument)
				})
			})

			r.Method(http.MethodPost, "/chat", handlers.NewChatHandler(deps.ChatService))
		})
	})

	return r
}
