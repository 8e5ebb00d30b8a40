package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"casedesk/internal/contextutil"
	"casedesk/internal/service"
)

// DocumentHandler handles HTTP requests for documents. searchService is nil
// when semantic search is not configured.
type DocumentHandler struct {
	documentService service.DocumentService
	searchService   service.SearchService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, searchService service.SearchService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		searchService:   searchService,
	}
}

// CreateDocumentRequest represents the HTTP request payload for creating a document.
type CreateDocumentRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	CaseID  *string `json:"case_id"`
}

// UpdateDocumentRequest represents the HTTP request payload for editing a
// document. Omitted fields are left unchanged.
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ListDocumentsResponse represents the HTTP response payload for listing documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// SearchHitResponse is one document matching a search.
type SearchHitResponse struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	CaseID     string  `json:"case_id,omitempty"`
	Score      float32 `json:"score"`
	Snippet    string  `json:"snippet"`
}

// SearchResponse represents the HTTP response payload for document search.
type SearchResponse struct {
	Query string              `json:"query"`
	Hits  []SearchHitResponse `json:"hits"`
}

// Create handles POST /api/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.documentService.CreateDocument(ctx, userID, service.CreateDocumentRequest{
		Title:   req.Title,
		Content: req.Content,
		CaseID:  req.CaseID,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to create document")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, documentResponse(doc, true))
}

// List handles GET /api/documents. The optional case_id query parameter
// restricts the list to one case.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	docs, err := h.documentService.ListDocuments(ctx, userID, service.ListDocumentsRequest{
		CaseID: r.URL.Query().Get("case_id"),
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list documents")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ListDocumentsResponse{Documents: documentResponses(docs)})
}

// Get handles GET /api/documents/{documentID}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(ctx, userID, chi.URLParam(r, "documentID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, documentResponse(doc, true))
}

// Update handles PATCH /api/documents/{documentID}.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.documentService.UpdateDocument(ctx, userID, chi.URLParam(r, "documentID"), service.UpdateDocumentRequest{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to update document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, documentResponse(doc, true))
}

// Delete handles DELETE /api/documents/{documentID}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(ctx, userID, chi.URLParam(r, "documentID")); err != nil {
		writeServiceError(ctx, w, err, "Failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/documents/search?q=...&case_id=...&limit=...
func (h *DocumentHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if h.searchService == nil {
		writeError(w, http.StatusNotImplemented, "Document search is not configured")
		return
	}

	query := r.URL.Query()
	var limit int
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	hits, err := h.searchService.Search(ctx, userID, service.SearchRequest{
		Query:  query.Get("q"),
		CaseID: query.Get("case_id"),
		Limit:  limit,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to search documents")
		return
	}

	resp := SearchResponse{Query: query.Get("q"), Hits: make([]SearchHitResponse, 0, len(hits))}
	for _, hit := range hits {
		resp.Hits = append(resp.Hits, SearchHitResponse{
			DocumentID: hit.DocumentID,
			Title:      hit.Title,
			CaseID:     hit.CaseID,
			Score:      hit.Score,
			Snippet:    hit.Snippet,
		})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Reindex handles POST /api/documents/reindex and reports index coverage.
func (h *DocumentHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if h.searchService == nil {
		writeError(w, http.StatusNotImplemented, "Document search is not configured")
		return
	}

	stats, err := h.searchService.Reindex(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to reindex documents")
		return
	}
	writeJSON(ctx, w, http.StatusOK, stats)
}
