package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	authmocks "casedesk/internal/auth/mocks"
	"casedesk/internal/handlers"
	"casedesk/internal/service"
	"casedesk/internal/service/mocks"
	"casedesk/internal/storage"
)

type routerMocks struct {
	cases     *mocks.MockCaseService
	docs      *mocks.MockDocumentService
	messaging *mocks.MockMessagingService
	files     *mocks.MockFileService
	chat      *mocks.MockChatService
	verifier  *authmocks.MockVerifier
}

func newTestRouter(ctrl *gomock.Controller, search service.SearchService) (http.Handler, routerMocks) {
	m := routerMocks{
		cases:     mocks.NewMockCaseService(ctrl),
		docs:      mocks.NewMockDocumentService(ctrl),
		messaging: mocks.NewMockMessagingService(ctrl),
		files:     mocks.NewMockFileService(ctrl),
		chat:      mocks.NewMockChatService(ctrl),
		verifier:  authmocks.NewMockVerifier(ctrl),
	}
	deps := &Deps{
		CaseService:      m.cases,
		DocumentService:  m.docs,
		MessagingService: m.messaging,
		FileService:      m.files,
		ChatService:      m.chat,
		SearchService:    search,
		Verifier:         m.verifier,
		HealthChecks: []handlers.HealthCheck{
			{Name: "database", Critical: true, Check: func(context.Context) error { return nil }},
		},
		MaxUploadBytes: 1 << 20,
	}
	return NewRouter(deps), m
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(ctrl, nil)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	caseRecord := &storage.CaseRecord{ID: "case-1", Name: "Smith v. Jones", IsActive: true}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      bool
		mockSetup  func(routerMocks)
		wantStatus int
	}{
		{
			name:       "health is public",
			method:     http.MethodGet,
			path:       "/api/health",
			mockSetup:  func(routerMocks) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "cases require a token",
			method:     http.MethodGet,
			path:       "/api/cases",
			mockSetup:  func(routerMocks) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "GET /api/cases",
			method: http.MethodGet,
			path:   "/api/cases",
			token:  true,
			mockSetup: func(m routerMocks) {
				m.cases.EXPECT().ListCases(gomock.Any(), "user-1").Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/cases/{caseID}",
			method: http.MethodGet,
			path:   "/api/cases/case-1",
			token:  true,
			mockSetup: func(m routerMocks) {
				m.cases.EXPECT().GetCase(gomock.Any(), "user-1", "case-1").Return(caseRecord, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /api/cases/{caseID}/documents/{documentID}",
			method: http.MethodPost,
			path:   "/api/cases/case-1/documents/doc-1",
			token:  true,
			mockSetup: func(m routerMocks) {
				m.docs.EXPECT().AttachDocument(gomock.Any(), "user-1", "case-1", "doc-1").Return(&storage.DocumentRecord{ID: "doc-1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /api/cases/{caseID}/messages",
			method: http.MethodPost,
			path:   "/api/cases/case-1/messages",
			body:   `{"content":"hi"}`,
			token:  true,
			mockSetup: func(m routerMocks) {
				m.messaging.EXPECT().
					SendMessage(gomock.Any(), "user-1", "case-1", service.SendMessageRequest{Content: "hi"}).
					Return(&service.SendMessageResponse{}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "GET /api/documents/search without search backend",
			method:     http.MethodGet,
			path:       "/api/documents/search?q=rent",
			token:      true,
			mockSetup:  func(routerMocks) {},
			wantStatus: http.StatusNotImplemented,
		},
		{
			name:   "DELETE /api/documents/{documentID}",
			method: http.MethodDelete,
			path:   "/api/documents/doc-1",
			token:  true,
			mockSetup: func(m routerMocks) {
				m.docs.EXPECT().DeleteDocument(gomock.Any(), "user-1", "doc-1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "POST /api/files/{fileID}/extract",
			method: http.MethodPost,
			path:   "/api/files/file-1/extract",
			token:  true,
			mockSetup: func(m routerMocks) {
				m.files.EXPECT().ExtractFile(gomock.Any(), "user-1", "file-1").Return(nil, service.ErrNoExtractableText)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "POST /api/chat exists",
			method:     http.MethodPost,
			path:       "/api/chat",
			body:       "invalid json",
			token:      true,
			mockSetup:  func(routerMocks) {},
			wantStatus: http.StatusBadRequest, // Bad request due to invalid body, but route exists
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			token:      true,
			mockSetup:  func(routerMocks) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, m := newTestRouter(ctrl, nil)
			if tt.token {
				m.verifier.EXPECT().Verify(gomock.Any(), "token").Return("user-1", nil).AnyTimes()
			}
			tt.mockSetup(m)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token {
				req.Header.Set("Authorization", "Bearer token")
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %v, want %v (body %s)", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_SearchEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	search := mocks.NewMockSearchService(ctrl)
	router, m := newTestRouter(ctrl, search)

	m.verifier.EXPECT().Verify(gomock.Any(), "token").Return("user-1", nil)
	search.EXPECT().
		Search(gomock.Any(), "user-1", service.SearchRequest{Query: "rent"}).
		Return([]service.SearchHit{{DocumentID: "doc-1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/search?q=rent", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("search status = %v, want %v", w.Code, http.StatusOK)
	}
}
