package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService casedesk/internal/service ChatService

import (
	"context"
	"strings"

	"casedesk/internal/contextutil"
	"casedesk/internal/rag"
	"casedesk/internal/storage"
)

// WorkspaceCaseName is the case name shown to the model for workspace chat.
const WorkspaceCaseName = "Workspace"

// ChatRequest represents a workspace chat request in the domain layer.
type ChatRequest struct {
	Message string
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Reply         string
	Outcome       rag.Outcome
	DocumentsUsed int
}

// ChatService answers questions grounded in all of the caller's documents.
type ChatService interface {
	// ProcessChat processes a chat request and returns a response.
	ProcessChat(ctx context.Context, userID string, req ChatRequest) (ChatResponse, error)
}

// chatService implements ChatService.
type chatService struct {
	docs      storage.DocumentStore
	generator ReplyGenerator
}

// NewChatService creates a new ChatService.
func NewChatService(docs storage.DocumentStore, generator ReplyGenerator) ChatService {
	return &chatService{
		docs:      docs,
		generator: generator,
	}
}

// ProcessChat processes a chat request.
func (s *chatService) ProcessChat(ctx context.Context, userID string, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" {
		return ChatResponse{}, ErrNotFound
	}

	// Business validation
	message := strings.TrimSpace(req.Message)
	if message == "" {
		logger.WarnContext(ctx, "empty message in chat request")
		return ChatResponse{}, &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}
	if len([]rune(message)) > maxMessageLength {
		return ChatResponse{}, &ValidationError{
			Field:   "message",
			Message: "is too long",
		}
	}

	docs, err := s.docs.ListByOwner(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load documents", "error", err)
		return ChatResponse{}, WrapError(err, "failed to load documents")
	}

	reply := s.generator.Generate(ctx, rag.CaseInfo{Name: WorkspaceCaseName}, sourceDocuments(docs), message)

	logger.InfoContext(ctx, "chat request processed",
		"message_length", len(message),
		"reply_length", len(reply.Text),
		"outcome", reply.Outcome,
	)
	return ChatResponse{
		Reply:         reply.Text,
		Outcome:       reply.Outcome,
		DocumentsUsed: reply.DocumentsUsed,
	}, nil
}
