package handlers

import (
	"time"

	"casedesk/internal/storage"
)

// CaseResponse is the JSON form of a case.
type CaseResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DocumentCount int       `json:"document_count"`
	TotalSize     int64     `json:"total_size"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DocumentResponse is the JSON form of a document.
type DocumentResponse struct {
	ID             string    `json:"id"`
	CaseID         *string   `json:"case_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content,omitempty"`
	SizeBytes      int64     `json:"size_bytes"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

// MessageResponse is the JSON form of a case message.
type MessageResponse struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	IsAI      bool      `json:"is_ai"`
	Timestamp time.Time `json:"timestamp"`
}

// FileResponse is the JSON form of an uploaded file.
type FileResponse struct {
	ID            string    `json:"id"`
	CaseID        *string   `json:"case_id"`
	Name          string    `json:"name"`
	MimeType      string    `json:"mime_type"`
	SizeBytes     int64     `json:"size_bytes"`
	HasText       bool      `json:"has_text"`
	ExtractedText *string   `json:"extracted_text,omitempty"`
	DownloadURL   string    `json:"download_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func caseResponse(c *storage.CaseRecord) CaseResponse {
	return CaseResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		DocumentCount: c.DocumentCount,
		TotalSize:     c.TotalSize,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func documentResponse(d *storage.DocumentRecord, withContent bool) DocumentResponse {
	resp := DocumentResponse{
		ID:             d.ID,
		CaseID:         d.CaseID,
		Title:          d.Title,
		SizeBytes:      d.SizeBytes,
		CreatedAt:      d.CreatedAt,
		LastModifiedAt: d.LastModifiedAt,
	}
	if withContent {
		resp.Content = d.Content
	}
	return resp
}

func documentResponses(docs []storage.DocumentRecord) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, documentResponse(&docs[i], false))
	}
	return out
}

func messageResponse(m *storage.CaseMessageRecord) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		CaseID:    m.CaseID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		IsAI:      m.IsAI,
		Timestamp: m.Timestamp,
	}
}

func fileResponse(f *storage.FileRecord, withText bool) FileResponse {
	resp := FileResponse{
		ID:        f.ID,
		CaseID:    f.CaseID,
		Name:      f.Name,
		MimeType:  f.MimeType,
		SizeBytes: f.SizeBytes,
		HasText:   f.ExtractedText != nil,
		CreatedAt: f.CreatedAt,
	}
	if withText {
		resp.ExtractedText = f.ExtractedText
	}
	return resp
}
