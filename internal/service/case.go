package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_case_service.go -package=mocks -mock_names=CaseService=MockCaseService casedesk/internal/service CaseService

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"casedesk/internal/contextutil"
	"casedesk/internal/storage"
)

const (
	maxCaseNameLength        = 200
	maxCaseDescriptionLength = 2000
)

// CreateCaseRequest represents a request to open a case.
type CreateCaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RenameCaseRequest changes a case's name and/or description. Nil fields
// are left unchanged.
type RenameCaseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CaseService manages cases.
type CaseService interface {
	CreateCase(ctx context.Context, userID string, req CreateCaseRequest) (*storage.CaseRecord, error)
	GetCase(ctx context.Context, userID, caseID string) (*storage.CaseRecord, error)
	// ListCases returns the caller's active cases.
	ListCases(ctx context.Context, userID string) ([]storage.CaseRecord, error)
	RenameCase(ctx context.Context, userID, caseID string, req RenameCaseRequest) (*storage.CaseRecord, error)
	// DeleteCase deactivates the case and detaches its documents. Documents
	// are never deleted.
	DeleteCase(ctx context.Context, userID, caseID string) error
}

type caseService struct {
	cases storage.CaseStore
	docs  storage.DocumentStore
	index DocumentIndexer
}

// NewCaseService creates a new CaseService. index may be nil.
func NewCaseService(cases storage.CaseStore, docs storage.DocumentStore, index DocumentIndexer) CaseService {
	return &caseService{cases: cases, docs: docs, index: index}
}

func (s *caseService) CreateCase(ctx context.Context, userID string, req CreateCaseRequest) (*storage.CaseRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" {
		return nil, ErrNotFound
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, maxCaseNameLength)),
		validation.Field(&req.Description, validation.RuneLength(0, maxCaseDescriptionLength)),
	)
	if err != nil {
		logger.WarnContext(ctx, "invalid create case request", "error", err)
		return nil, validationError(err)
	}

	c := &storage.CaseRecord{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.cases.Create(ctx, c); err != nil {
		logger.ErrorContext(ctx, "failed to create case", "error", err)
		return nil, WrapError(err, "failed to create case")
	}

	logger.InfoContext(ctx, "case created", "case_id", c.ID)
	return c, nil
}

func (s *caseService) GetCase(ctx context.Context, userID, caseID string) (*storage.CaseRecord, error) {
	return ownedCase(ctx, s.cases, userID, caseID)
}

func (s *caseService) ListCases(ctx context.Context, userID string) ([]storage.CaseRecord, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	cases, err := s.cases.ListActiveByOwner(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list cases")
	}
	return cases, nil
}

func (s *caseService) RenameCase(ctx context.Context, userID, caseID string, req RenameCaseRequest) (*storage.CaseRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	c, err := ownedCase(ctx, s.cases, userID, caseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	err = validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.RuneLength(1, maxCaseNameLength)),
		validation.Field(&req.Description, validation.RuneLength(0, maxCaseDescriptionLength)),
	)
	if err != nil {
		logger.WarnContext(ctx, "invalid rename case request", "error", err)
		return nil, validationError(err)
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if err := s.cases.Update(ctx, c); err != nil {
		logger.ErrorContext(ctx, "failed to update case", "case_id", caseID, "error", err)
		return nil, storeError(err, "failed to update case")
	}
	return c, nil
}

func (s *caseService) DeleteCase(ctx context.Context, userID, caseID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := ownedCase(ctx, s.cases, userID, caseID); err != nil {
		return err
	}

	var attached []storage.DocumentRecord
	if s.index != nil {
		docs, err := s.docs.ListByCase(ctx, caseID)
		if err != nil {
			logger.WarnContext(ctx, "failed to list case documents before delete", "case_id", caseID, "error", err)
		}
		attached = docs
	}

	if err := s.cases.SoftDelete(ctx, caseID); err != nil {
		logger.ErrorContext(ctx, "failed to delete case", "case_id", caseID, "error", err)
		return storeError(err, "failed to delete case")
	}

	for i := range attached {
		attached[i].CaseID = nil
		s.index.IndexDocument(ctx, &attached[i])
	}

	logger.InfoContext(ctx, "case deleted", "case_id", caseID)
	return nil
}
