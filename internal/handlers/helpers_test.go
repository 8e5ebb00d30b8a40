package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	"casedesk/internal/contextutil"
	"casedesk/internal/storage"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var testTime = time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

// newRequest builds a request as the router would hand it to a handler:
// authenticated as userID (when set) with the given chi URL params.
func newRequest(method, target string, body any, userID string, params map[string]string) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := req.Context()
	if userID != "" {
		ctx = contextutil.WithUserID(ctx, userID)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}

func testCase(id string) *storage.CaseRecord {
	return &storage.CaseRecord{
		ID:        id,
		OwnerID:   "user-1",
		Name:      "Smith v. Jones",
		IsActive:  true,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func testDocument(id string, caseID *string) *storage.DocumentRecord {
	return &storage.DocumentRecord{
		ID:             id,
		OwnerID:        "user-1",
		CaseID:         caseID,
		Title:          "Lease",
		Content:        "Rent is due on the first.",
		SizeBytes:      25,
		CreatedAt:      testTime,
		LastModifiedAt: testTime,
	}
}

func strPtr(s string) *string {
	return &s
}
