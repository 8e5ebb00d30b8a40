package indexer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGoldmarkChunker_Chunk(t *testing.T) {
	chunker := NewGoldmarkChunker()
	long := strings.Repeat("The retainer covers advice on the lease. ", 3)

	tests := []struct {
		name      string
		content   string
		title     string
		wantPaths []string
		wantFirst string
	}{
		{
			name:    "empty content",
			content: "   \n\n",
			title:   "Empty",
		},
		{
			name:      "plain text uses the title",
			content:   "Client called about the invoice.\nShe will pay on Friday.",
			title:     "Call notes",
			wantPaths: []string{"Call notes"},
			wantFirst: "Client called about the invoice.\nShe will pay on Friday.",
		},
		{
			name:      "short sections merge",
			content:   "# Main\n\nContent 1\n\n## Sub\n\nContent 2",
			title:     "Doc",
			wantPaths: []string{"Doc > Main"},
			wantFirst: "Content 1\n\nContent 2",
		},
		{
			name:      "heading hierarchy",
			content:   "# A\n\n" + long + "\n\n## B\n\n" + long + "\n\n# C\n\n" + long,
			title:     "Doc",
			wantPaths: []string{"Doc > A", "Doc > A > B", "Doc > C"},
			wantFirst: strings.TrimSpace(long),
		},
		{
			name:      "table rows",
			content:   "| Item | Fee |\n|---|---|\n| Filing | 200 |\n| Review | 350 |\n",
			title:     "Fees",
			wantPaths: []string{"Fees"},
			wantFirst: "Item | Fee\nFiling | 200\nReview | 350",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunker.Chunk(tt.content, tt.title)
			if len(chunks) != len(tt.wantPaths) {
				t.Fatalf("Chunk() returned %d chunks, want %d: %+v", len(chunks), len(tt.wantPaths), chunks)
			}
			for i, chunk := range chunks {
				if chunk.HeadingPath != tt.wantPaths[i] {
					t.Errorf("chunk %d HeadingPath = %q, want %q", i, chunk.HeadingPath, tt.wantPaths[i])
				}
				if chunk.Index != i {
					t.Errorf("chunk %d Index = %d, want %d", i, chunk.Index, i)
				}
			}
			if len(chunks) > 0 && chunks[0].Text != tt.wantFirst {
				t.Errorf("Chunk() first text = %q, want %q", chunks[0].Text, tt.wantFirst)
			}
		})
	}
}

func TestGoldmarkChunker_Chunk_SizeConstraints(t *testing.T) {
	chunker := NewGoldmarkChunker()

	content := strings.Repeat("abcdefghi ", 300)
	chunks := chunker.Chunk(content, "Long")

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want several", len(chunks))
	}
	total := 0
	for i, chunk := range chunks {
		n := utf8.RuneCountInString(chunk.Text)
		if n > maxChunkSize {
			t.Errorf("chunk %d has %d runes, want <= %d", i, n, maxChunkSize)
		}
		if chunk.HeadingPath != "Long" {
			t.Errorf("chunk %d HeadingPath = %q, want Long", i, chunk.HeadingPath)
		}
		total += n
	}
	if total < 2900 {
		t.Errorf("chunks hold %d runes, text was lost", total)
	}
}

func TestSplitChunk_PrefersParagraphBoundary(t *testing.T) {
	first := strings.Repeat("a", 400)
	second := strings.Repeat("b", 400)
	chunks := splitChunk(Chunk{HeadingPath: "Doc", Text: first + "\n\n" + second})

	if len(chunks) != 2 {
		t.Fatalf("splitChunk() returned %d chunks, want 2", len(chunks))
	}
	if chunks[0].Text != first || chunks[1].Text != second {
		t.Errorf("splitChunk() did not split at the paragraph break")
	}
}

func TestBuildHeadingPath(t *testing.T) {
	stack := []headingInfo{{level: 1, text: "Facts"}, {level: 2, text: "Timeline"}}
	if got := buildHeadingPath("Brief", stack); got != "Brief > Facts > Timeline" {
		t.Errorf("buildHeadingPath() = %q", got)
	}
	if got := buildHeadingPath("", stack); got != "Facts > Timeline" {
		t.Errorf("buildHeadingPath() without title = %q", got)
	}
}
