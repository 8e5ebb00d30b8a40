package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_service.go -package=mocks -mock_names=SearchService=MockSearchService casedesk/internal/service SearchService

import (
	"context"
	"sort"
	"strings"

	"casedesk/internal/contextutil"
	"casedesk/internal/indexer"
	"casedesk/internal/rag"
	"casedesk/internal/storage"
	"casedesk/internal/vectorstore"
)

const (
	defaultSearchResults = 10
	maxSearchResults     = 50
	// Chunks fetched per requested hit, so several chunks of one document
	// still leave room for other documents.
	searchOverfetch = 3
	maxSnippetRunes = 240
)

// SearchRequest represents a semantic document search.
type SearchRequest struct {
	Query  string
	CaseID string // optional
	Limit  int
}

// SearchHit is one matching document.
type SearchHit struct {
	DocumentID string
	Title      string
	CaseID     string
	Score      float32
	Snippet    string
}

// SearchService is the optional semantic document index. It also keeps the
// index current as a DocumentIndexer.
type SearchService interface {
	DocumentIndexer
	Search(ctx context.Context, userID string, req SearchRequest) ([]SearchHit, error)
	// Reindex rebuilds the index entries of all of the caller's documents.
	Reindex(ctx context.Context, userID string) (*indexer.IndexingCoverageStats, error)
}

type searchService struct {
	cases          storage.CaseStore
	docs           storage.DocumentStore
	embedder       indexer.Embedder
	store          vectorstore.VectorStore
	pipeline       *indexer.Pipeline
	embeddingModel string
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	cases storage.CaseStore,
	docs storage.DocumentStore,
	embedder indexer.Embedder,
	store vectorstore.VectorStore,
	embeddingModel string,
) SearchService {
	return &searchService{
		cases:          cases,
		docs:           docs,
		embedder:       embedder,
		store:          store,
		pipeline:       indexer.NewPipeline(embedder, store),
		embeddingModel: embeddingModel,
	}
}

// IndexDocument re-indexes a document. Failures are logged only.
func (s *searchService) IndexDocument(ctx context.Context, doc *storage.DocumentRecord) {
	if _, err := s.pipeline.IndexDocument(ctx, documentInput(doc)); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to index document", "document_id", doc.ID, "error", err)
	}
}

// RemoveDocument drops a document from the index. Failures are logged only.
func (s *searchService) RemoveDocument(ctx context.Context, documentID string) {
	if err := s.pipeline.RemoveDocument(ctx, documentID); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to remove document from index", "document_id", documentID, "error", err)
	}
}

func (s *searchService) Reindex(ctx context.Context, userID string) (*indexer.IndexingCoverageStats, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	docs, err := s.docs.ListByOwner(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list documents")
	}
	inputs := make([]indexer.DocumentInput, 0, len(docs))
	for i := range docs {
		inputs = append(inputs, documentInput(&docs[i]))
	}

	stats, err := s.pipeline.IndexAll(ctx, inputs, s.embeddingModel)
	if err != nil && stats == nil {
		return nil, WrapError(err, "failed to reindex documents")
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "reindex finished with errors", "error", err)
	}
	return stats, nil
}

func (s *searchService) Search(ctx context.Context, userID string, req SearchRequest) ([]SearchHit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" {
		return nil, ErrNotFound
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &ValidationError{Field: "q", Message: "cannot be empty"}
	}
	if req.CaseID != "" {
		if _, err := ownedCase(ctx, s.cases, userID, req.CaseID); err != nil {
			return nil, err
		}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchResults
	}
	if limit > maxSearchResults {
		limit = maxSearchResults
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil || len(vectors) != 1 {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, WrapError(ErrExternalService, "failed to embed query")
	}

	results, err := s.store.Search(ctx, vectors[0], limit*searchOverfetch, vectorstore.Filter{
		OwnerID: userID,
		CaseID:  req.CaseID,
	})
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed", "error", err)
		return nil, WrapError(ErrExternalService, "vector search failed")
	}

	hits := rankHits(query, results)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	logger.InfoContext(ctx, "document search completed", "results", len(results), "hits", len(hits))
	return hits, nil
}

// rankHits keeps the best chunk per document, scored as vector similarity
// plus a lexical bonus, highest first.
func rankHits(query string, results []vectorstore.SearchResult) []SearchHit {
	best := make(map[string]SearchHit)
	for _, r := range results {
		docID := vectorstore.StringMeta(r.Meta, vectorstore.KeyDocumentID)
		if docID == "" {
			continue
		}
		title := vectorstore.StringMeta(r.Meta, vectorstore.KeyTitle)
		text := vectorstore.StringMeta(r.Meta, vectorstore.KeyText)
		score := r.Score + rag.LexicalScore(query, text, title)

		if prev, ok := best[docID]; ok && prev.Score >= score {
			continue
		}
		best[docID] = SearchHit{
			DocumentID: docID,
			Title:      title,
			CaseID:     vectorstore.StringMeta(r.Meta, vectorstore.KeyCaseID),
			Score:      score,
			Snippet:    snippet(text),
		}
	}

	hits := make([]SearchHit, 0, len(best))
	for _, h := range best {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocumentID < hits[j].DocumentID
	})
	return hits
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxSnippetRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:maxSnippetRunes])) + "…"
}

func documentInput(d *storage.DocumentRecord) indexer.DocumentInput {
	in := indexer.DocumentInput{
		ID:      d.ID,
		OwnerID: d.OwnerID,
		Title:   d.Title,
		Content: d.Content,
	}
	if d.CaseID != nil {
		in.CaseID = *d.CaseID
	}
	return in
}
