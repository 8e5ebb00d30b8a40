package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"casedesk/internal/rag"
	"casedesk/internal/service"
	svcmocks "casedesk/internal/service/mocks"
	"casedesk/internal/storage"
	"casedesk/internal/storage/mocks"
)

func TestChatService_ProcessChat(t *testing.T) {
	workspace := []storage.DocumentRecord{
		{ID: "doc-1", OwnerID: "user-1", Title: "Lease", Content: "Rent is due on the first."},
		{ID: "doc-2", OwnerID: "user-1", Title: "Notes", Content: "Call the landlord."},
	}

	tests := []struct {
		name         string
		userID       string
		req          service.ChatRequest
		mockSetup    func(*mocks.MockDocumentStore, *svcmocks.MockReplyGenerator)
		want         service.ChatResponse
		wantErr      bool
		checkErrType func(error) bool
	}{
		{
			name:   "successful chat",
			userID: "user-1",
			req:    service.ChatRequest{Message: "  When is rent due? "},
			mockSetup: func(docs *mocks.MockDocumentStore, gen *svcmocks.MockReplyGenerator) {
				docs.EXPECT().ListByOwner(gomock.Any(), "user-1").Return(workspace, nil)
				gen.EXPECT().Generate(gomock.Any(), rag.CaseInfo{Name: service.WorkspaceCaseName}, gomock.Any(), "When is rent due?").DoAndReturn(
					func(_ context.Context, _ rag.CaseInfo, sources []rag.SourceDocument, _ string) rag.Reply {
						if len(sources) != 2 || sources[0].Title != "Lease" {
							t.Errorf("Generate() sources = %+v", sources)
						}
						return rag.Reply{Text: "On the first (Lease).", Outcome: rag.OutcomeAnswered, DocumentsUsed: 2}
					})
			},
			want: service.ChatResponse{Reply: "On the first (Lease).", Outcome: rag.OutcomeAnswered, DocumentsUsed: 2},
		},
		{
			name:   "no documents",
			userID: "user-1",
			req:    service.ChatRequest{Message: "Hello"},
			mockSetup: func(docs *mocks.MockDocumentStore, gen *svcmocks.MockReplyGenerator) {
				docs.EXPECT().ListByOwner(gomock.Any(), "user-1").Return(nil, nil)
				gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Len(0), "Hello").
					Return(rag.Reply{Text: rag.MessageAddDocuments, Outcome: rag.OutcomeNoContext})
			},
			want: service.ChatResponse{Reply: rag.MessageAddDocuments, Outcome: rag.OutcomeNoContext},
		},
		{
			name:         "empty message",
			userID:       "user-1",
			req:          service.ChatRequest{Message: ""},
			mockSetup:    func(*mocks.MockDocumentStore, *svcmocks.MockReplyGenerator) {},
			wantErr:      true,
			checkErrType: isValidation("message"),
		},
		{
			name:         "whitespace only message",
			userID:       "user-1",
			req:          service.ChatRequest{Message: "   \t\n  "},
			mockSetup:    func(*mocks.MockDocumentStore, *svcmocks.MockReplyGenerator) {},
			wantErr:      true,
			checkErrType: isValidation("message"),
		},
		{
			name:         "message too long",
			userID:       "user-1",
			req:          service.ChatRequest{Message: strings.Repeat("a", 4001)},
			mockSetup:    func(*mocks.MockDocumentStore, *svcmocks.MockReplyGenerator) {},
			wantErr:      true,
			checkErrType: isValidation("message"),
		},
		{
			name:         "unauthenticated",
			req:          service.ChatRequest{Message: "Hello"},
			mockSetup:    func(*mocks.MockDocumentStore, *svcmocks.MockReplyGenerator) {},
			wantErr:      true,
			checkErrType: isNotFound,
		},
		{
			name:   "document store error",
			userID: "user-1",
			req:    service.ChatRequest{Message: "Hello"},
			mockSetup: func(docs *mocks.MockDocumentStore, gen *svcmocks.MockReplyGenerator) {
				docs.EXPECT().ListByOwner(gomock.Any(), "user-1").Return(nil, errors.New("database is locked"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			docs := mocks.NewMockDocumentStore(ctrl)
			gen := svcmocks.NewMockReplyGenerator(ctrl)
			tt.mockSetup(docs, gen)

			svc := service.NewChatService(docs, gen)
			got, err := svc.ProcessChat(testContext(), tt.userID, tt.req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("ProcessChat() expected error, got nil")
				}
				if tt.checkErrType != nil && !tt.checkErrType(err) {
					t.Errorf("ProcessChat() error type mismatch: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProcessChat() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ProcessChat() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
