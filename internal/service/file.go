package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_text_extractor.go -package=mocks casedesk/internal/service TextExtractor
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_service.go -package=mocks -mock_names=FileService=MockFileService casedesk/internal/service FileService

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"casedesk/internal/blob"
	"casedesk/internal/config"
	"casedesk/internal/contextutil"
	"casedesk/internal/extract"
	"casedesk/internal/storage"
)

const maxFileNameLength = 255

// TextExtractor pulls readable text out of file bytes. ok is false when
// nothing usable came out.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType, filename string) (text string, ok bool)
}

// UploadFileRequest represents an uploaded file.
type UploadFileRequest struct {
	Name     string  `json:"name"`
	MimeType string  `json:"mime_type"`
	CaseID   *string `json:"case_id"`
	Data     []byte  `json:"file"`
}

// FileView is a file together with a temporary download link.
type FileView struct {
	File storage.FileRecord
	// DownloadURL is empty when the blob store cannot serve files directly.
	DownloadURL string
}

// FileService manages uploaded files and their extracted text.
type FileService interface {
	// UploadFile stores the bytes and caches whatever text can be extracted.
	// A file with no readable text is still stored.
	UploadFile(ctx context.Context, userID string, req UploadFileRequest) (*FileView, error)
	GetFile(ctx context.Context, userID, fileID string) (*FileView, error)
	ListFiles(ctx context.Context, userID string) ([]storage.FileRecord, error)
	// ExtractFile runs extraction again and refreshes the cached text.
	ExtractFile(ctx context.Context, userID, fileID string) (*storage.FileRecord, error)
	// CreateDocumentFromFile turns a file's text into a document, attached to
	// the file's case when it has one.
	CreateDocumentFromFile(ctx context.Context, userID, fileID string) (*storage.DocumentRecord, error)
}

type fileService struct {
	files     storage.FileStore
	cases     storage.CaseStore
	blobs     blob.Store
	extractor TextExtractor
	documents DocumentService
	maxUpload int64
}

// NewFileService creates a new FileService.
func NewFileService(
	files storage.FileStore,
	cases storage.CaseStore,
	blobs blob.Store,
	extractor TextExtractor,
	documents DocumentService,
	limits config.Limits,
) FileService {
	return &fileService{
		files:     files,
		cases:     cases,
		blobs:     blobs,
		extractor: extractor,
		documents: documents,
		maxUpload: limits.MaxUploadBytes,
	}
}

func (s *fileService) UploadFile(ctx context.Context, userID string, req UploadFileRequest) (*FileView, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" {
		return nil, ErrNotFound
	}
	req.Name = filepath.Base(strings.TrimSpace(req.Name))
	if req.Name == "." || req.Name == string(filepath.Separator) {
		req.Name = ""
	}
	if req.MimeType == "" || req.MimeType == "application/octet-stream" {
		if guessed := extract.MimeTypeFor(req.Name); guessed != "" {
			req.MimeType = guessed
		}
	}
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, maxFileNameLength)),
		validation.Field(&req.MimeType, validation.Required),
		validation.Field(&req.Data, validation.Required, validation.Length(1, int(s.maxUpload))),
	)
	if err != nil {
		logger.WarnContext(ctx, "invalid upload", "name", req.Name, "size", len(req.Data), "error", err)
		return nil, validationError(err)
	}

	if req.CaseID != nil && *req.CaseID == "" {
		req.CaseID = nil
	}
	if req.CaseID != nil {
		if _, err := ownedCase(ctx, s.cases, userID, *req.CaseID); err != nil {
			return nil, err
		}
	}

	key := blob.NewKey(userID, req.Name)
	if err := s.blobs.Put(ctx, key, req.Data, req.MimeType); err != nil {
		logger.ErrorContext(ctx, "failed to store file bytes", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	f := &storage.FileRecord{
		OwnerID:    userID,
		CaseID:     req.CaseID,
		StorageKey: key,
		MimeType:   req.MimeType,
		Name:       req.Name,
		SizeBytes:  int64(len(req.Data)),
	}
	if text, ok := s.extractor.Extract(ctx, req.Data, req.MimeType, req.Name); ok {
		f.ExtractedText = &text
	}

	if err := s.files.Create(ctx, f); err != nil {
		logger.ErrorContext(ctx, "failed to record file", "key", key, "error", err)
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.WarnContext(ctx, "failed to remove orphaned blob", "key", key, "error", delErr)
		}
		return nil, WrapError(err, "failed to record file")
	}

	logger.InfoContext(ctx, "file uploaded",
		"file_id", f.ID,
		"kind", extract.Classify(f.MimeType, f.Name).String(),
		"size", f.SizeBytes,
		"extracted", f.ExtractedText != nil,
	)
	return s.view(ctx, f), nil
}

func (s *fileService) GetFile(ctx context.Context, userID, fileID string) (*FileView, error) {
	f, err := ownedFile(ctx, s.files, userID, fileID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, f), nil
}

func (s *fileService) ListFiles(ctx context.Context, userID string) ([]storage.FileRecord, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	files, err := s.files.ListByOwner(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list files")
	}
	return files, nil
}

func (s *fileService) ExtractFile(ctx context.Context, userID, fileID string) (*storage.FileRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	f, err := ownedFile(ctx, s.files, userID, fileID)
	if err != nil {
		return nil, err
	}
	text, ok, err := s.extract(ctx, f)
	if err != nil {
		return nil, err
	}

	var cached *string
	if ok {
		cached = &text
	}
	if err := s.files.SetExtractedText(ctx, f.ID, cached); err != nil {
		logger.ErrorContext(ctx, "failed to cache extracted text", "file_id", f.ID, "error", err)
		return nil, storeError(err, "failed to cache extracted text")
	}
	f.ExtractedText = cached

	if !ok {
		return nil, ErrNoExtractableText
	}
	return f, nil
}

func (s *fileService) CreateDocumentFromFile(ctx context.Context, userID, fileID string) (*storage.DocumentRecord, error) {
	f, err := ownedFile(ctx, s.files, userID, fileID)
	if err != nil {
		return nil, err
	}

	var text string
	if f.ExtractedText != nil && strings.TrimSpace(*f.ExtractedText) != "" {
		text = *f.ExtractedText
	} else {
		extracted, ok, err := s.extract(ctx, f)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoExtractableText
		}
		text = extracted
		if err := s.files.SetExtractedText(ctx, f.ID, &text); err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to cache extracted text", "file_id", f.ID, "error", err)
		}
	}

	return s.documents.CreateDocument(ctx, userID, CreateDocumentRequest{
		Title:   f.Name,
		Content: text,
		CaseID:  f.CaseID,
	})
}

// extract reads the file's bytes back from the blob store and runs extraction.
func (s *fileService) extract(ctx context.Context, f *storage.FileRecord) (string, bool, error) {
	data, err := s.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to read file bytes", "file_id", f.ID, "error", err)
		return "", false, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	text, ok := s.extractor.Extract(ctx, data, f.MimeType, f.Name)
	return text, ok, nil
}

func (s *fileService) view(ctx context.Context, f *storage.FileRecord) *FileView {
	v := &FileView{File: *f}
	url, err := s.blobs.PresignedURL(ctx, f.StorageKey)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to presign download url", "file_id", f.ID, "error", err)
		return v
	}
	v.DownloadURL = url
	return v
}
