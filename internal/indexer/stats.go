package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

const (
	// ChunkerVersion changes whenever chunk boundaries would move.
	ChunkerVersion = "v1.0"
	// TokensPerRune approximates token counts (4 chars per token).
	TokensPerRune = 4.0
)

// IndexingCoverageStats describes one IndexAll run.
type IndexingCoverageStats struct {
	DocsProcessed        int             `json:"docs_processed"`
	DocsWith0Chunks      int             `json:"docs_with_0_chunks"`
	ChunksAttempted      int             `json:"chunks_attempted"`
	ChunksEmbedded       int             `json:"chunks_embedded"`
	ChunksSkipped        int             `json:"chunks_skipped"`
	ChunksSkippedReasons map[string]int  `json:"chunks_skipped_reasons,omitempty"`
	ChunkTokenStats      ChunkTokenStats `json:"chunk_token_stats"`
	ChunkerVersion       string          `json:"chunker_version"`
	// IndexVersion hashes the chunker version, embedding model and chunk sizes.
	IndexVersion string `json:"index_version"`
}

// ChunkTokenStats contains statistics about token counts in chunks.
type ChunkTokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

type runStats struct {
	stats       IndexingCoverageStats
	tokenCounts []int
}

func newRunStats(embeddingModel string) *runStats {
	return &runStats{
		stats: IndexingCoverageStats{
			ChunksSkippedReasons: make(map[string]int),
			ChunkerVersion:       ChunkerVersion,
			IndexVersion:         IndexVersion(embeddingModel),
		},
	}
}

func (r *runStats) observe(chunks []Chunk) {
	r.stats.DocsProcessed++
	if len(chunks) == 0 {
		r.stats.DocsWith0Chunks++
	}
	r.stats.ChunksAttempted += len(chunks)
	for _, chunk := range chunks {
		r.tokenCounts = append(r.tokenCounts, estimateTokens(chunk.Text))
	}
}

func (r *runStats) embedded(n int) {
	r.stats.ChunksEmbedded += n
}

func (r *runStats) skip(reason string, n int) {
	if n == 0 {
		return
	}
	r.stats.ChunksSkipped += n
	r.stats.ChunksSkippedReasons[reason] += n
}

func (r *runStats) finish() *IndexingCoverageStats {
	r.stats.ChunkTokenStats = computeTokenStats(r.tokenCounts)
	stats := r.stats
	return &stats
}

// IndexVersion identifies an index build. Points written under a different
// version should be re-indexed.
func IndexVersion(embeddingModel string) string {
	input := fmt.Sprintf("%s|%s|minChunkSize=%d|maxChunkSize=%d",
		ChunkerVersion, embeddingModel, minChunkSize, maxChunkSize)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

func estimateTokens(text string) int {
	tokens := int(math.Round(float64(utf8.RuneCountInString(text)) / TokensPerRune))
	if tokens < 1 {
		return 1
	}
	return tokens
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) ChunkTokenStats {
	if len(tokenCounts) == 0 {
		return ChunkTokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range sorted {
		sum += count
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return ChunkTokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
