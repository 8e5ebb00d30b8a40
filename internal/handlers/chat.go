package handlers

import (
	"net/http"

	"casedesk/internal/contextutil"
	"casedesk/internal/rag"
	"casedesk/internal/service"
)

// ChatHandler handles HTTP requests for workspace chat.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Reply         string      `json:"reply"`
	Outcome       rag.Outcome `json:"outcome"`
	DocumentsUsed int         `json:"documents_used"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Convert HTTP request to service request
	svcResp, err := h.chatService.ProcessChat(ctx, userID, service.ChatRequest{
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to process chat request")
		return
	}

	// Convert service response to HTTP response
	writeJSON(ctx, w, http.StatusOK, ChatResponse{
		Reply:         svcResp.Reply,
		Outcome:       svcResp.Outcome,
		DocumentsUsed: svcResp.DocumentsUsed,
	})
}
