package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_service.go -package=mocks -mock_names=DocumentService=MockDocumentService casedesk/internal/service DocumentService

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"casedesk/internal/config"
	"casedesk/internal/contextutil"
	"casedesk/internal/storage"
)

const maxDocumentTitleLength = 300

// DocumentIndexer keeps a search index in step with documents. Failures are
// the indexer's to log; callers never fail because of them.
type DocumentIndexer interface {
	IndexDocument(ctx context.Context, doc *storage.DocumentRecord)
	RemoveDocument(ctx context.Context, documentID string)
}

// CreateDocumentRequest represents a request to create a document.
type CreateDocumentRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	CaseID  *string `json:"case_id"`
}

// UpdateDocumentRequest changes a document's title and/or content. Nil
// fields are left unchanged.
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ListDocumentsRequest filters the caller's documents.
type ListDocumentsRequest struct {
	// CaseID restricts the list to one case when set.
	CaseID string
}

// DocumentService manages documents and their case membership.
type DocumentService interface {
	CreateDocument(ctx context.Context, userID string, req CreateDocumentRequest) (*storage.DocumentRecord, error)
	GetDocument(ctx context.Context, userID, documentID string) (*storage.DocumentRecord, error)
	ListDocuments(ctx context.Context, userID string, req ListDocumentsRequest) ([]storage.DocumentRecord, error)
	UpdateDocument(ctx context.Context, userID, documentID string, req UpdateDocumentRequest) (*storage.DocumentRecord, error)
	DeleteDocument(ctx context.Context, userID, documentID string) error
	// AttachDocument links a document to a case, moving it out of any other
	// case. Attaching to the case it is already in changes nothing.
	AttachDocument(ctx context.Context, userID, caseID, documentID string) (*storage.DocumentRecord, error)
	DetachDocument(ctx context.Context, userID, caseID, documentID string) (*storage.DocumentRecord, error)
}

type documentService struct {
	cases  storage.CaseStore
	docs   storage.DocumentStore
	limits storage.CaseLimits
	index  DocumentIndexer
}

// NewDocumentService creates a new DocumentService. index may be nil.
func NewDocumentService(cases storage.CaseStore, docs storage.DocumentStore, limits config.Limits, index DocumentIndexer) DocumentService {
	return &documentService{
		cases: cases,
		docs:  docs,
		limits: storage.CaseLimits{
			MaxDocuments:  limits.MaxDocumentsPerCase,
			MaxTotalBytes: limits.MaxCaseSizeBytes,
		},
		index: index,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, userID string, req CreateDocumentRequest) (*storage.DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" {
		return nil, ErrNotFound
	}
	req.Title = strings.TrimSpace(req.Title)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, maxDocumentTitleLength)),
		validation.Field(&req.Content, validation.Length(0, int(s.limits.MaxTotalBytes))),
	)
	if err != nil {
		logger.WarnContext(ctx, "invalid create document request", "error", err)
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

	d := &storage.DocumentRecord{
		OwnerID: userID,
		CaseID:  req.CaseID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.docs.Create(ctx, d, s.limits); err != nil {
		logger.WarnContext(ctx, "failed to create document", "error", err)
		return nil, storeError(err, "failed to create document")
	}

	s.reindex(ctx, d)
	logger.InfoContext(ctx, "document created", "document_id", d.ID, "size_bytes", d.SizeBytes)
	return d, nil
}

func (s *documentService) GetDocument(ctx context.Context, userID, documentID string) (*storage.DocumentRecord, error) {
	return ownedDocument(ctx, s.docs, userID, documentID)
}

func (s *documentService) ListDocuments(ctx context.Context, userID string, req ListDocumentsRequest) ([]storage.DocumentRecord, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	if req.CaseID != "" {
		if _, err := ownedCase(ctx, s.cases, userID, req.CaseID); err != nil {
			return nil, err
		}
		docs, err := s.docs.ListByCase(ctx, req.CaseID)
		if err != nil {
			return nil, WrapError(err, "failed to list case documents")
		}
		return docs, nil
	}

	docs, err := s.docs.ListByOwner(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list documents")
	}
	return docs, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, userID, documentID string, req UpdateDocumentRequest) (*storage.DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	d, err := ownedDocument(ctx, s.docs, userID, documentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	err = validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.RuneLength(1, maxDocumentTitleLength)),
		validation.Field(&req.Content, validation.Length(0, int(s.limits.MaxTotalBytes))),
	)
	if err != nil {
		logger.WarnContext(ctx, "invalid update document request", "error", err)
		return nil, validationError(err)
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Content != nil {
		d.Content = *req.Content
	}
	if err := s.docs.UpdateContent(ctx, d, s.limits); err != nil {
		logger.WarnContext(ctx, "failed to update document", "document_id", documentID, "error", err)
		return nil, storeError(err, "failed to update document")
	}

	s.reindex(ctx, d)
	return d, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, userID, documentID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := ownedDocument(ctx, s.docs, userID, documentID); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, documentID); err != nil {
		logger.ErrorContext(ctx, "failed to delete document", "document_id", documentID, "error", err)
		return storeError(err, "failed to delete document")
	}

	if s.index != nil {
		s.index.RemoveDocument(ctx, documentID)
	}
	logger.InfoContext(ctx, "document deleted", "document_id", documentID)
	return nil
}

func (s *documentService) AttachDocument(ctx context.Context, userID, caseID, documentID string) (*storage.DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := ownedCase(ctx, s.cases, userID, caseID); err != nil {
		return nil, err
	}
	d, err := ownedDocument(ctx, s.docs, userID, documentID)
	if err != nil {
		return nil, err
	}

	changed, err := s.docs.Attach(ctx, documentID, caseID, s.limits)
	if err != nil {
		logger.WarnContext(ctx, "failed to attach document", "document_id", documentID, "case_id", caseID, "error", err)
		return nil, storeError(err, "failed to attach document")
	}
	if !changed {
		logger.DebugContext(ctx, "document already attached", "document_id", documentID, "case_id", caseID)
		return d, nil
	}

	d.CaseID = &caseID
	s.reindex(ctx, d)
	logger.InfoContext(ctx, "document attached", "document_id", documentID, "case_id", caseID)
	return d, nil
}

func (s *documentService) DetachDocument(ctx context.Context, userID, caseID, documentID string) (*storage.DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := ownedCase(ctx, s.cases, userID, caseID); err != nil {
		return nil, err
	}
	d, err := ownedDocument(ctx, s.docs, userID, documentID)
	if err != nil {
		return nil, err
	}
	if d.CaseID == nil || *d.CaseID != caseID {
		return nil, ErrNotFound
	}

	if _, err := s.docs.Detach(ctx, documentID); err != nil {
		logger.ErrorContext(ctx, "failed to detach document", "document_id", documentID, "error", err)
		return nil, storeError(err, "failed to detach document")
	}

	d.CaseID = nil
	s.reindex(ctx, d)
	logger.InfoContext(ctx, "document detached", "document_id", documentID, "case_id", caseID)
	return d, nil
}

func (s *documentService) reindex(ctx context.Context, d *storage.DocumentRecord) {
	if s.index != nil {
		s.index.IndexDocument(ctx, d)
	}
}
