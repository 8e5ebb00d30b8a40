package indexer

import "testing"

func TestComputeTokenStats(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   ChunkTokenStats
	}{
		{name: "empty", counts: nil, want: ChunkTokenStats{}},
		{name: "single", counts: []int{7}, want: ChunkTokenStats{Min: 7, Max: 7, Mean: 7, P95: 7}},
		{name: "unsorted", counts: []int{30, 10, 20}, want: ChunkTokenStats{Min: 10, Max: 30, Mean: 20, P95: 30}},
		{name: "fractional mean", counts: []int{1, 2}, want: ChunkTokenStats{Min: 1, Max: 2, Mean: 1.5, P95: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeTokenStats(tt.counts); got != tt.want {
				t.Errorf("computeTokenStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 1},
		{"ab", 1},
		{"abcdefgh", 2},
		{"żółwżółw", 2},
	}
	for _, tt := range tests {
		if got := estimateTokens(tt.text); got != tt.want {
			t.Errorf("estimateTokens(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIndexVersion(t *testing.T) {
	v := IndexVersion("nomic-embed-text")
	if len(v) != 16 {
		t.Errorf("IndexVersion() length = %d, want 16", len(v))
	}
	if v != IndexVersion("nomic-embed-text") {
		t.Error("IndexVersion() should be deterministic")
	}
	if v == IndexVersion("text-embedding-3-small") {
		t.Error("IndexVersion() should change with the embedding model")
	}
}
