package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reply_generator.go -package=mocks casedesk/internal/service ReplyGenerator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_messaging_service.go -package=mocks -mock_names=MessagingService=MockMessagingService casedesk/internal/service MessagingService

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"casedesk/internal/contextutil"
	"casedesk/internal/rag"
	"casedesk/internal/storage"
)

const maxMessageLength = 4000

// ReplyGenerator produces a grounded assistant reply. It never fails; every
// problem is expressed as a fallback reply.
type ReplyGenerator interface {
	Generate(ctx context.Context, c rag.CaseInfo, docs []rag.SourceDocument, question string) rag.Reply
}

// SendMessageRequest represents a question posted to a case.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse carries both messages written by SendMessage.
type SendMessageResponse struct {
	UserMessage storage.CaseMessageRecord
	AIMessage   storage.CaseMessageRecord
	Outcome     rag.Outcome
}

// MessagingService runs case conversations.
type MessagingService interface {
	// SendMessage stores the caller's message, generates a reply grounded in
	// the case documents and stores it as the assistant's message.
	SendMessage(ctx context.Context, userID, caseID string, req SendMessageRequest) (*SendMessageResponse, error)
	// ListMessages returns the case transcript, oldest first.
	ListMessages(ctx context.Context, userID, caseID string) ([]storage.CaseMessageRecord, error)
}

type messagingService struct {
	cases     storage.CaseStore
	docs      storage.DocumentStore
	messages  storage.MessageStore
	generator ReplyGenerator
	now       func() time.Time
}

// NewMessagingService creates a new MessagingService.
func NewMessagingService(cases storage.CaseStore, docs storage.DocumentStore, messages storage.MessageStore, generator ReplyGenerator) MessagingService {
	return &messagingService{
		cases:     cases,
		docs:      docs,
		messages:  messages,
		generator: generator,
		now:       time.Now,
	}
}

func (s *messagingService) SendMessage(ctx context.Context, userID, caseID string, req SendMessageRequest) (*SendMessageResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	c, err := ownedCase(ctx, s.cases, userID, caseID)
	if err != nil {
		return nil, err
	}

	req.Content = strings.TrimSpace(req.Content)
	err = validation.ValidateStruct(&req,
		validation.Field(&req.Content, validation.Required, validation.RuneLength(1, maxMessageLength)),
	)
	if err != nil {
		logger.WarnContext(ctx, "invalid message", "case_id", caseID, "error", err)
		return nil, validationError(err)
	}

	userMsg := storage.CaseMessageRecord{
		CaseID:    caseID,
		AuthorID:  userID,
		Content:   req.Content,
		Timestamp: s.now().UTC(),
	}
	if err := s.messages.Create(ctx, &userMsg); err != nil {
		logger.ErrorContext(ctx, "failed to store user message", "case_id", caseID, "error", err)
		return nil, WrapError(err, "failed to store message")
	}

	// The question is already on record; finish the exchange even if the
	// client goes away.
	genCtx := context.WithoutCancel(ctx)

	docs, err := s.docs.ListByCase(genCtx, caseID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load case documents", "case_id", caseID, "error", err)
		return nil, WrapError(err, "failed to load case documents")
	}

	reply := s.generator.Generate(genCtx,
		rag.CaseInfo{Name: c.Name, Description: c.Description},
		sourceDocuments(docs),
		req.Content,
	)

	aiTime := s.now().UTC()
	if aiTime.Before(userMsg.Timestamp) {
		aiTime = userMsg.Timestamp
	}
	aiMsg := storage.CaseMessageRecord{
		CaseID:    caseID,
		AuthorID:  userID,
		Content:   reply.Text,
		IsAI:      true,
		Timestamp: aiTime,
	}
	if err := s.messages.Create(genCtx, &aiMsg); err != nil {
		logger.ErrorContext(ctx, "failed to store assistant message", "case_id", caseID, "error", err)
		return nil, WrapError(err, "failed to store reply")
	}

	logger.InfoContext(ctx, "case message answered",
		"case_id", caseID,
		"outcome", reply.Outcome,
		"documents", len(docs),
		"documents_used", reply.DocumentsUsed,
	)
	return &SendMessageResponse{UserMessage: userMsg, AIMessage: aiMsg, Outcome: reply.Outcome}, nil
}

func (s *messagingService) ListMessages(ctx context.Context, userID, caseID string) ([]storage.CaseMessageRecord, error) {
	if _, err := ownedCase(ctx, s.cases, userID, caseID); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByCase(ctx, caseID)
	if err != nil {
		return nil, WrapError(err, "failed to list messages")
	}
	return msgs, nil
}
