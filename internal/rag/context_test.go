package rag

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func at(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func TestAssembleContext_NoUsableContext(t *testing.T) {
	tests := []struct {
		name    string
		docs    []SourceDocument
		limits  ContextLimits
		wantErr error
	}{
		{
			name:    "no documents",
			docs:    nil,
			limits:  DefaultContextLimits(),
			wantErr: ErrNoDocuments,
		},
		{
			name: "all blank",
			docs: []SourceDocument{
				{Title: "A", Content: "   "},
				{Title: "B", Content: "\n\t"},
				{Title: "C", Content: ""},
			},
			limits:  DefaultContextLimits(),
			wantErr: ErrNoReadableDocuments,
		},
		{
			name: "whitespace after truncation",
			docs: []SourceDocument{
				{Title: "A", Content: "     text after the cap"},
			},
			limits:  ContextLimits{PerDocumentChars: 4, TotalChars: 100},
			wantErr: ErrNoSectionsAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssembleContext(tt.docs, tt.limits)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AssembleContext() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrNoUsableContext) {
				t.Errorf("AssembleContext() error = %v, want it to match ErrNoUsableContext", err)
			}
		})
	}
}

func TestAssembleContext_RecencyOrder(t *testing.T) {
	docs := []SourceDocument{
		{Title: "A", Content: "alpha", LastModifiedAt: at(300)},
		{Title: "B", Content: "bravo", LastModifiedAt: at(400)},
		{Title: "C", Content: "charlie", LastModifiedAt: at(200)},
	}

	packed, err := AssembleContext(docs, DefaultContextLimits())
	if err != nil {
		t.Fatalf("AssembleContext() error = %v", err)
	}

	var got []string
	for _, s := range packed.Sections {
		got = append(got, s.Title)
	}
	if strings.Join(got, ",") != "B,A,C" {
		t.Errorf("AssembleContext() order = %v, want [B A C]", got)
	}
}

func TestAssembleContext_SkipsBlankDocuments(t *testing.T) {
	docs := []SourceDocument{
		{Title: "Empty", Content: "  ", LastModifiedAt: at(500)},
		{Title: "Notes", Content: "  meeting notes  ", LastModifiedAt: at(100)},
	}

	packed, err := AssembleContext(docs, DefaultContextLimits())
	if err != nil {
		t.Fatalf("AssembleContext() error = %v", err)
	}
	if len(packed.Sections) != 1 {
		t.Fatalf("AssembleContext() sections = %d, want 1", len(packed.Sections))
	}
	if packed.Sections[0].Text != "meeting notes" {
		t.Errorf("section text = %q, want trimmed %q", packed.Sections[0].Text, "meeting notes")
	}
}

func TestAssembleContext_PerDocumentTruncation(t *testing.T) {
	long := strings.Repeat("é", 5000)
	packed, err := AssembleContext([]SourceDocument{{Title: "Long", Content: long}}, DefaultContextLimits())
	if err != nil {
		t.Fatalf("AssembleContext() error = %v", err)
	}
	if n := utf8.RuneCountInString(packed.Sections[0].Text); n != 2000 {
		t.Errorf("truncated length = %d, want 2000", n)
	}
}

func TestAssembleContext_Budget(t *testing.T) {
	// Each section is "Title: Dx\nContent:\n" (19 runes) plus the text.
	docs := make([]SourceDocument, 0, 10)
	for i := 0; i < 10; i++ {
		docs = append(docs, SourceDocument{
			Title:          "D" + string(rune('0'+i)),
			Content:        strings.Repeat("x", 2000),
			LastModifiedAt: at(int64(100 - i)),
		})
	}

	limits := DefaultContextLimits()
	packed, err := AssembleContext(docs, limits)
	if err != nil {
		t.Fatalf("AssembleContext() error = %v", err)
	}
	if packed.Len() > limits.TotalChars {
		t.Errorf("packed length = %d, exceeds budget %d", packed.Len(), limits.TotalChars)
	}
	if len(packed.Sections) != 5 {
		t.Errorf("sections = %d, want 5", len(packed.Sections))
	}
}

func TestAssembleContext_OversizeFirstSection(t *testing.T) {
	limits := ContextLimits{PerDocumentChars: 2000, TotalChars: 100}
	docs := []SourceDocument{
		{Title: "Big", Content: strings.Repeat("y", 500), LastModifiedAt: at(2)},
		{Title: "Small", Content: "z", LastModifiedAt: at(1)},
	}

	packed, err := AssembleContext(docs, limits)
	if err != nil {
		t.Fatalf("AssembleContext() error = %v", err)
	}
	if len(packed.Sections) != 1 || packed.Sections[0].Title != "Big" {
		t.Errorf("sections = %+v, want only Big", packed.Sections)
	}
}

func TestAssembleContext_StopsAtExactBudget(t *testing.T) {
	first := Section{Title: "A", Text: "aaaa"}
	limits := ContextLimits{PerDocumentChars: 100, TotalChars: utf8.RuneCountInString(first.String())}
	docs := []SourceDocument{
		{Title: "A", Content: "aaaa", LastModifiedAt: at(2)},
		{Title: "B", Content: "b", LastModifiedAt: at(1)},
	}

	packed, err := AssembleContext(docs, limits)
	if err != nil {
		t.Fatalf("AssembleContext() error = %v", err)
	}
	if len(packed.Sections) != 1 || packed.Len() != limits.TotalChars {
		t.Errorf("sections = %d, len = %d, want 1 section of exactly %d", len(packed.Sections), packed.Len(), limits.TotalChars)
	}
}

func TestPackedContext_Text(t *testing.T) {
	packed := PackedContext{Sections: []Section{
		{Title: "One", Text: "first"},
		{Title: "Two", Text: "second"},
	}}

	want := "Document 1:\nTitle: One\nContent:\nfirst" +
		"\n\n---\n\n" +
		"Document 2:\nTitle: Two\nContent:\nsecond"
	if got := packed.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"héllo", 2, "hé"},
		{"hello", 0, "hello"},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
