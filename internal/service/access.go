package service

import (
	"context"

	"casedesk/internal/rag"
	"casedesk/internal/storage"
)

// ownedCase loads an active case owned by userID. A missing user, a missing
// case, an inactive case and a case owned by someone else all look the same.
func ownedCase(ctx context.Context, cases storage.CaseStore, userID, caseID string) (*storage.CaseRecord, error) {
	if userID == "" || caseID == "" {
		return nil, ErrNotFound
	}
	c, err := cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, storeError(err, "failed to load case")
	}
	if c.OwnerID != userID || !c.IsActive {
		return nil, ErrNotFound
	}
	return c, nil
}

// ownedDocument loads a document owned by userID.
func ownedDocument(ctx context.Context, docs storage.DocumentStore, userID, documentID string) (*storage.DocumentRecord, error) {
	if userID == "" || documentID == "" {
		return nil, ErrNotFound
	}
	d, err := docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, storeError(err, "failed to load document")
	}
	if d.OwnerID != userID {
		return nil, ErrNotFound
	}
	return d, nil
}

// ownedFile loads a file owned by userID.
func ownedFile(ctx context.Context, files storage.FileStore, userID, fileID string) (*storage.FileRecord, error) {
	if userID == "" || fileID == "" {
		return nil, ErrNotFound
	}
	f, err := files.GetByID(ctx, fileID)
	if err != nil {
		return nil, storeError(err, "failed to load file")
	}
	if f.OwnerID != userID {
		return nil, ErrNotFound
	}
	return f, nil
}

// sourceDocuments converts stored documents into reply generator input.
func sourceDocuments(docs []storage.DocumentRecord) []rag.SourceDocument {
	out := make([]rag.SourceDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, rag.SourceDocument{
			Title:          d.Title,
			Content:        d.Content,
			LastModifiedAt: d.LastModifiedAt,
		})
	}
	return out
}
