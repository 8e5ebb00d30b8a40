package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"casedesk/internal/rag"
	"casedesk/internal/service"
	"casedesk/internal/service/mocks"
)

func TestNewChatHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChatService := mocks.NewMockChatService(ctrl)
	handler := NewChatHandler(mockChatService)

	if handler == nil {
		t.Fatal("NewChatHandler() returned nil")
	}
	if handler.chatService != mockChatService {
		t.Error("NewChatHandler() chatService not set correctly")
	}
}

func TestChatHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		userID        string
		body          any
		mockSetup     func(*mocks.MockChatService)
		wantStatus    int
		checkResponse func(*httptest.ResponseRecorder) bool
	}{
		{
			name:   "successful POST request",
			method: http.MethodPost,
			userID: "user-1",
			body:   ChatRequest{Message: "Hello"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), "user-1", service.ChatRequest{Message: "Hello"}).
					Return(service.ChatResponse{Reply: "Hi there!", Outcome: rag.OutcomeAnswered, DocumentsUsed: 1}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				resp, err := decodeBody[ChatResponse](w)
				return err == nil && resp.Reply == "Hi there!" && resp.Outcome == rag.OutcomeAnswered && resp.DocumentsUsed == 1
			},
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			userID:     "user-1",
			mockSetup:  func(m *mocks.MockChatService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unauthenticated",
			method:     http.MethodPost,
			body:       ChatRequest{Message: "Hello"},
			mockSetup:  func(m *mocks.MockChatService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid JSON body",
			method:     http.MethodPost,
			userID:     "user-1",
			body:       "invalid json",
			mockSetup:  func(m *mocks.MockChatService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			userID: "user-1",
			body:   ChatRequest{Message: ""},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), "user-1", service.ChatRequest{Message: ""}).
					Return(service.ChatResponse{}, &service.ValidationError{Field: "message", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "service error",
			method: http.MethodPost,
			userID: "user-1",
			body:   ChatRequest{Message: "Hello"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), "user-1", service.ChatRequest{Message: "Hello"}).
					Return(service.ChatResponse{}, errors.New("service error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockChatService := mocks.NewMockChatService(ctrl)
			tt.mockSetup(mockChatService)
			handler := NewChatHandler(mockChatService)

			req := newRequest(tt.method, "/api/chat", tt.body, tt.userID, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.checkResponse != nil && !tt.checkResponse(w) {
				t.Error("ServeHTTP() response validation failed")
			}
		})
	}
}
