package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"casedesk/internal/service"
	"casedesk/internal/service/mocks"
	"casedesk/internal/storage"
)

type caseHandlerMocks struct {
	cases *mocks.MockCaseService
	docs  *mocks.MockDocumentService
}

func TestCaseHandler(t *testing.T) {
	caseID := "case-1"

	tests := []struct {
		name          string
		call          func(*CaseHandler) http.HandlerFunc
		method        string
		body          any
		userID        string
		params        map[string]string
		mockSetup     func(caseHandlerMocks)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "create",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.Create },
			method: http.MethodPost,
			body:   CreateCaseRequest{Name: "Smith v. Jones", Description: "Lease dispute"},
			userID: "user-1",
			mockSetup: func(m caseHandlerMocks) {
				m.cases.EXPECT().
					CreateCase(gomock.Any(), "user-1", service.CreateCaseRequest{Name: "Smith v. Jones", Description: "Lease dispute"}).
					Return(testCase("case-1"), nil)
			},
			wantStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp, err := decodeBody[CaseResponse](w)
				if err != nil || resp.ID != "case-1" || resp.Name != "Smith v. Jones" {
					t.Errorf("Create() response = %+v, %v", resp, err)
				}
			},
		},
		{
			name:       "create without auth",
			call:       func(h *CaseHandler) http.HandlerFunc { return h.Create },
			method:     http.MethodPost,
			body:       CreateCaseRequest{Name: "x"},
			mockSetup:  func(caseHandlerMocks) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "create with malformed body",
			call:       func(h *CaseHandler) http.HandlerFunc { return h.Create },
			method:     http.MethodPost,
			body:       "{",
			userID:     "user-1",
			mockSetup:  func(caseHandlerMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "list",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.List },
			method: http.MethodGet,
			userID: "user-1",
			mockSetup: func(m caseHandlerMocks) {
				m.cases.EXPECT().ListCases(gomock.Any(), "user-1").Return([]storage.CaseRecord{*testCase("case-1"), *testCase("case-2")}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp, err := decodeBody[ListCasesResponse](w)
				if err != nil || len(resp.Cases) != 2 {
					t.Errorf("List() response = %+v, %v", resp, err)
				}
			},
		},
		{
			name:   "get of another user's case",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.Get },
			method: http.MethodGet,
			userID: "user-2",
			params: map[string]string{"caseID": caseID},
			mockSetup: func(m caseHandlerMocks) {
				m.cases.EXPECT().GetCase(gomock.Any(), "user-2", caseID).Return(nil, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "rename",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.Update },
			method: http.MethodPatch,
			body:   map[string]string{"name": "Renamed"},
			userID: "user-1",
			params: map[string]string{"caseID": caseID},
			mockSetup: func(m caseHandlerMocks) {
				renamed := testCase(caseID)
				renamed.Name = "Renamed"
				m.cases.EXPECT().
					RenameCase(gomock.Any(), "user-1", caseID, service.RenameCaseRequest{Name: strPtr("Renamed")}).
					Return(renamed, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp, err := decodeBody[CaseResponse](w)
				if err != nil || resp.Name != "Renamed" {
					t.Errorf("Update() response = %+v, %v", resp, err)
				}
			},
		},
		{
			name:   "delete",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.Delete },
			method: http.MethodDelete,
			userID: "user-1",
			params: map[string]string{"caseID": caseID},
			mockSetup: func(m caseHandlerMocks) {
				m.cases.EXPECT().DeleteCase(gomock.Any(), "user-1", caseID).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "case documents",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.ListDocuments },
			method: http.MethodGet,
			userID: "user-1",
			params: map[string]string{"caseID": caseID},
			mockSetup: func(m caseHandlerMocks) {
				m.docs.EXPECT().
					ListDocuments(gomock.Any(), "user-1", service.ListDocumentsRequest{CaseID: caseID}).
					Return([]storage.DocumentRecord{*testDocument("doc-1", &caseID)}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp, err := decodeBody[CaseDocumentsResponse](w)
				if err != nil || len(resp.Documents) != 1 || resp.Documents[0].Content != "" {
					t.Errorf("ListDocuments() response = %+v, %v", resp, err)
				}
			},
		},
		{
			name:   "attach",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.AttachDocument },
			method: http.MethodPost,
			userID: "user-1",
			params: map[string]string{"caseID": caseID, "documentID": "doc-1"},
			mockSetup: func(m caseHandlerMocks) {
				m.docs.EXPECT().AttachDocument(gomock.Any(), "user-1", caseID, "doc-1").Return(testDocument("doc-1", &caseID), nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp, err := decodeBody[DocumentResponse](w)
				if err != nil || resp.CaseID == nil || *resp.CaseID != caseID {
					t.Errorf("AttachDocument() response = %+v, %v", resp, err)
				}
			},
		},
		{
			name:   "attach over the limit",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.AttachDocument },
			method: http.MethodPost,
			userID: "user-1",
			params: map[string]string{"caseID": caseID, "documentID": "doc-31"},
			mockSetup: func(m caseHandlerMocks) {
				m.docs.EXPECT().AttachDocument(gomock.Any(), "user-1", caseID, "doc-31").Return(nil, service.ErrLimitExceeded)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "detach",
			call:   func(h *CaseHandler) http.HandlerFunc { return h.DetachDocument },
			method: http.MethodDelete,
			userID: "user-1",
			params: map[string]string{"caseID": caseID, "documentID": "doc-1"},
			mockSetup: func(m caseHandlerMocks) {
				m.docs.EXPECT().DetachDocument(gomock.Any(), "user-1", caseID, "doc-1").Return(testDocument("doc-1", nil), nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := caseHandlerMocks{
				cases: mocks.NewMockCaseService(ctrl),
				docs:  mocks.NewMockDocumentService(ctrl),
			}
			tt.mockSetup(m)
			handler := NewCaseHandler(m.cases, m.docs)

			w := httptest.NewRecorder()
			tt.call(handler)(w, newRequest(tt.method, "/api/cases", tt.body, tt.userID, tt.params))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
