package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"casedesk/internal/contextutil"
	"casedesk/internal/service"
)

// CaseHandler handles HTTP requests for cases and the documents attached to them.
type CaseHandler struct {
	caseService     service.CaseService
	documentService service.DocumentService
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(caseService service.CaseService, documentService service.DocumentService) *CaseHandler {
	return &CaseHandler{
		caseService:     caseService,
		documentService: documentService,
	}
}

// CreateCaseRequest represents the HTTP request payload for creating a case.
type CreateCaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCaseRequest represents the HTTP request payload for renaming a case.
// Omitted fields are left unchanged.
type UpdateCaseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListCasesResponse represents the HTTP response payload for listing cases.
type ListCasesResponse struct {
	Cases []CaseResponse `json:"cases"`
}

// CaseDocumentsResponse represents the documents attached to a case.
type CaseDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// Create handles POST /api/cases.
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.caseService.CreateCase(ctx, userID, service.CreateCaseRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to create case")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, caseResponse(c))
}

// List handles GET /api/cases.
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cases, err := h.caseService.ListCases(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list cases")
		return
	}
	resp := ListCasesResponse{Cases: make([]CaseResponse, 0, len(cases))}
	for i := range cases {
		resp.Cases = append(resp.Cases, caseResponse(&cases[i]))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/cases/{caseID}.
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	c, err := h.caseService.GetCase(ctx, userID, chi.URLParam(r, "caseID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load case")
		return
	}
	writeJSON(ctx, w, http.StatusOK, caseResponse(c))
}

// Update handles PATCH /api/cases/{caseID}.
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.caseService.RenameCase(ctx, userID, chi.URLParam(r, "caseID"), service.RenameCaseRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to update case")
		return
	}
	writeJSON(ctx, w, http.StatusOK, caseResponse(c))
}

// Delete handles DELETE /api/cases/{caseID}.
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.caseService.DeleteCase(ctx, userID, chi.URLParam(r, "caseID")); err != nil {
		writeServiceError(ctx, w, err, "Failed to delete case")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /api/cases/{caseID}/documents.
func (h *CaseHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	docs, err := h.documentService.ListDocuments(ctx, userID, service.ListDocumentsRequest{
		CaseID: chi.URLParam(r, "caseID"),
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list case documents")
		return
	}
	writeJSON(ctx, w, http.StatusOK, CaseDocumentsResponse{Documents: documentResponses(docs)})
}

// AttachDocument handles POST /api/cases/{caseID}/documents/{documentID}.
func (h *CaseHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	doc, err := h.documentService.AttachDocument(ctx, userID, chi.URLParam(r, "caseID"), chi.URLParam(r, "documentID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to attach document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, documentResponse(doc, false))
}

// DetachDocument handles DELETE /api/cases/{caseID}/documents/{documentID}.
func (h *CaseHandler) DetachDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	doc, err := h.documentService.DetachDocument(ctx, userID, chi.URLParam(r, "caseID"), chi.URLParam(r, "documentID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to detach document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, documentResponse(doc, false))
}
