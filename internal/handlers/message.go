package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"casedesk/internal/contextutil"
	"casedesk/internal/rag"
	"casedesk/internal/service"
)

// MessageHandler handles HTTP requests for case messaging.
type MessageHandler struct {
	messagingService service.MessagingService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messagingService service.MessagingService) *MessageHandler {
	return &MessageHandler{messagingService: messagingService}
}

// SendMessageRequest represents the HTTP request payload for posting a message to a case.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse carries both stored messages. Outcome tells the
// client whether the assistant message is a grounded answer or a fallback.
type SendMessageResponse struct {
	UserMessage MessageResponse `json:"user_message"`
	AIMessage   MessageResponse `json:"ai_message"`
	Outcome     rag.Outcome     `json:"outcome"`
}

// ListMessagesResponse represents a case transcript, oldest first.
type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// Send handles POST /api/cases/{caseID}/messages.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.messagingService.SendMessage(ctx, userID, chi.URLParam(r, "caseID"), service.SendMessageRequest{
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to send message")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, SendMessageResponse{
		UserMessage: messageResponse(&resp.UserMessage),
		AIMessage:   messageResponse(&resp.AIMessage),
		Outcome:     resp.Outcome,
	})
}

// List handles GET /api/cases/{caseID}/messages.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	messages, err := h.messagingService.ListMessages(ctx, userID, chi.URLParam(r, "caseID"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list messages")
		return
	}
	resp := ListMessagesResponse{Messages: make([]MessageResponse, 0, len(messages))}
	for i := range messages {
		resp.Messages = append(resp.Messages, messageResponse(&messages[i]))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
