package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks casedesk/internal/vectorstore VectorStore

import "context"

// Payload keys stored with every point.
const (
	KeyDocumentID = "document_id"
	KeyOwnerID    = "owner_id"
	KeyCaseID     = "case_id"
	KeyTitle      = "title"
	KeyChunkIndex = "chunk_index"
	KeyText       = "text"
)

// Point is one embedded chunk of a document.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// Filter restricts a search. OwnerID is always required; CaseID is optional.
type Filter struct {
	OwnerID string
	CaseID  string
}

// VectorStore defines the interface for vector storage operations. A store
// is bound to a single collection.
type VectorStore interface {
	// Upsert inserts or updates points.
	Upsert(ctx context.Context, points []Point) error

	// Search returns the k points closest to query that match filter.
	Search(ctx context.Context, query []float32, k int, filter Filter) ([]SearchResult, error)

	// DeleteByDocument removes every point of a document.
	DeleteByDocument(ctx context.Context, documentID string) error
}
