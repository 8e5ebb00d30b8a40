package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks casedesk/internal/indexer Embedder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"casedesk/internal/contextutil"
	"casedesk/internal/vectorstore"
)

// Embedder turns texts into vectors, one per text, in order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline keeps the vector index in step with document text.
type Pipeline struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	chunker     *GoldmarkChunker
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(embedder Embedder, vectorStore vectorstore.VectorStore) *Pipeline {
	return &Pipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		chunker:     NewGoldmarkChunker(),
	}
}

// PointID returns the stable point id of a document chunk, so re-indexing
// overwrites rather than duplicates.
func PointID(documentID string, chunkIndex int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(documentID+":"+strconv.Itoa(chunkIndex))).String()
}

// IndexDocument replaces every indexed chunk of doc with freshly embedded
// ones. A document without text only has its old chunks removed.
func (p *Pipeline) IndexDocument(ctx context.Context, doc DocumentInput) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if doc.ID == "" || doc.OwnerID == "" {
		return 0, fmt.Errorf("document id and owner are required")
	}

	chunks := p.chunker.Chunk(doc.Content, doc.Title)

	if err := p.vectorStore.DeleteByDocument(ctx, doc.ID); err != nil {
		return 0, fmt.Errorf("failed to delete old chunks: %w", err)
	}

	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "document_id", doc.ID)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		points[i] = vectorstore.Point{
			ID:  PointID(doc.ID, chunk.Index),
			Vec: embeddings[i],
			Meta: map[string]any{
				vectorstore.KeyDocumentID: doc.ID,
				vectorstore.KeyOwnerID:    doc.OwnerID,
				vectorstore.KeyCaseID:     doc.CaseID,
				vectorstore.KeyTitle:      doc.Title,
				vectorstore.KeyChunkIndex: chunk.Index,
				vectorstore.KeyText:       chunk.Text,
				"heading_path":            chunk.HeadingPath,
			},
		}
	}

	if err := p.vectorStore.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.InfoContext(ctx, "indexed document", "document_id", doc.ID, "chunks", len(chunks))
	return len(chunks), nil
}

// RemoveDocument drops every indexed chunk of a document.
func (p *Pipeline) RemoveDocument(ctx context.Context, documentID string) error {
	if err := p.vectorStore.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("failed to remove document from index: %w", err)
	}
	return nil
}

// IndexAll indexes docs one by one. Errors for individual documents are
// logged but don't stop the run.
func (p *Pipeline) IndexAll(ctx context.Context, docs []DocumentInput, embeddingModel string) (*IndexingCoverageStats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting indexing", "total_documents", len(docs))

	run := newRunStats(embeddingModel)
	var errorCount int

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		chunks := p.chunker.Chunk(doc.Content, doc.Title)
		run.observe(chunks)

		n, err := p.IndexDocument(ctx, doc)
		if err != nil {
			errorCount++
			run.skip("error", len(chunks))
			logger.ErrorContext(ctx, "failed to index document", "document_id", doc.ID, "error", err)
			continue
		}
		run.embedded(n)
	}

	stats := run.finish()
	logger.InfoContext(ctx, "indexing completed",
		"total_documents", stats.DocsProcessed,
		"chunks_embedded", stats.ChunksEmbedded,
		"errors", errorCount,
	)

	if errorCount > 0 {
		return stats, fmt.Errorf("indexing completed with %d errors", errorCount)
	}
	return stats, nil
}
