package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"casedesk/internal/contextutil"
	"casedesk/internal/service"
)

// multipartOverhead is the allowance for form boundaries and fields on top
// of the file itself.
const multipartOverhead = 1 << 20

// FileHandler handles HTTP requests for uploaded files.
type FileHandler struct {
	fileService    service.FileService
	maxUploadBytes int64
}

// NewFileHandler creates a new FileHandler. maxUploadBytes bounds the
// uploaded file; larger request bodies are cut off before they are read.
func NewFileHandler(fileService service.FileService, maxUploadBytes int64) *FileHandler {
	return &FileHandler{
		fileService:    fileService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListFilesResponse represents the HTTP response payload for listing files.
type ListFilesResponse struct {
	Files []FileResponse `json:"files"`
}

// Upload handles POST /api/files as multipart/form-data with a "file" part
// and an optional "case_id" field.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	part, header, err := r.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "missing file part", "error", err)
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		logger.WarnContext(ctx, "failed to read file part", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid file")
		return
	}

	req := service.UploadFileRequest{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}
	if caseID := r.FormValue("case_id"); caseID != "" {
		req.CaseID = &caseID
	}

	view, err := h.fileService.UploadFile(ctx, userID, req)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to upload file")
		return
	}
	resp := fileResponse(&view.File, false)
	resp.DownloadURL = view.DownloadURL
	writeJSON(ctx, w, http.StatusCreated, resp)
}

// List handles GET /api/files.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	files, err := h.fileService.ListFiles(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list files")
		return
	}
	resp := ListFilesResponse{Files: make([]FileResponse, 0, len(files))}
	for i := range files {
		resp.Files = append(resp.Files, fileResponse(&files[i], false))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/files/{fileID}.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	view, err := h.fileService.GetFile(ctx, userID, chi.URLParam(r, "fileID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load file")
		return
	}
	resp := fileResponse(&view.File, true)
	resp.DownloadURL = view.DownloadURL
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Extract handles POST /api/files/{fileID}/extract.
func (h *FileHandler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.ExtractFile(ctx, userID, chi.URLParam(r, "fileID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to extract text")
		return
	}
	writeJSON(ctx, w, http.StatusOK, fileResponse(file, true))
}

// CreateDocument handles POST /api/files/{fileID}/document.
func (h *FileHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	doc, err := h.fileService.CreateDocumentFromFile(ctx, userID, chi.URLParam(r, "fileID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to create document from file")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, documentResponse(doc, true))
}
