package storage

import "time"

// CaseRecord represents a case row. DocumentCount and TotalSize mirror the
// documents currently attached to the case.
type CaseRecord struct {
	ID            string // UUID
	OwnerID       string
	Name          string
	Description   string
	IsActive      bool
	DocumentCount int
	TotalSize     int64 // bytes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DocumentRecord represents a document row. CaseID is nil when the document
// is not attached to any case.
type DocumentRecord struct {
	ID             string // UUID
	OwnerID        string
	CaseID         *string
	Title          string
	Content        string
	SizeBytes      int64 // byte length of Content
	CreatedAt      time.Time
	LastModifiedAt time.Time
}

// CaseMessageRecord is one immutable entry of a case transcript.
type CaseMessageRecord struct {
	ID        string // UUID
	CaseID    string
	AuthorID  string
	Content   string
	IsAI      bool
	Timestamp time.Time
}

// FileRecord represents an uploaded file. ExtractedText caches the readable
// text pulled from the file, when any.
type FileRecord struct {
	ID            string // UUID
	OwnerID       string
	CaseID        *string
	StorageKey    string
	MimeType      string
	Name          string
	SizeBytes     int64
	ExtractedText *string
	CreatedAt     time.Time
}

// CaseLimits bounds the aggregate of documents attached to one case.
type CaseLimits struct {
	MaxDocuments  int
	MaxTotalBytes int64
}
