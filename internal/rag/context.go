package rag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrNoUsableContext is matched by every "nothing to ground on" result.
var ErrNoUsableContext = errors.New("no usable context")

var (
	// ErrNoDocuments means the case has no documents at all.
	ErrNoDocuments = fmt.Errorf("%w: no documents", ErrNoUsableContext)
	// ErrNoReadableDocuments means every document is blank.
	ErrNoReadableDocuments = fmt.Errorf("%w: no documents with readable content", ErrNoUsableContext)
	// ErrNoSectionsAccepted means nothing survived truncation.
	ErrNoSectionsAccepted = fmt.Errorf("%w: no sections accepted", ErrNoUsableContext)
)

const sectionSeparator = "\n\n---\n\n"

// Section is one document packed into the context.
type Section struct {
	Title string
	Text  string
}

// String renders the section as it is counted against the budget.
func (s Section) String() string {
	return "Title: " + s.Title + "\nContent:\n" + s.Text
}

// PackedContext is the ordered set of accepted sections.
type PackedContext struct {
	Sections []Section
}

// Len returns the number of characters counted against the budget.
func (p PackedContext) Len() int {
	total := 0
	for _, s := range p.Sections {
		total += utf8.RuneCountInString(s.String())
	}
	return total
}

// Text joins the sections with "Document N:" labels for the prompt.
func (p PackedContext) Text() string {
	parts := make([]string, 0, len(p.Sections))
	for i, s := range p.Sections {
		parts = append(parts, fmt.Sprintf("Document %d:\n%s", i+1, s.String()))
	}
	return strings.Join(parts, sectionSeparator)
}

// AssembleContext packs documents, most recently modified first, into a
// block that fits limits.TotalChars. The first accepted section is kept even
// when it alone exceeds the budget.
func AssembleContext(docs []SourceDocument, limits ContextLimits) (PackedContext, error) {
	if len(docs) == 0 {
		return PackedContext{}, ErrNoDocuments
	}

	readable := make([]SourceDocument, 0, len(docs))
	for _, d := range docs {
		if strings.TrimSpace(d.Content) != "" {
			readable = append(readable, d)
		}
	}
	if len(readable) == 0 {
		return PackedContext{}, ErrNoReadableDocuments
	}

	sort.SliceStable(readable, func(i, j int) bool {
		return readable[i].LastModifiedAt.After(readable[j].LastModifiedAt)
	})

	var packed PackedContext
	total := 0
	for _, d := range readable {
		text := strings.TrimSpace(truncateRunes(d.Content, limits.PerDocumentChars))
		if text == "" {
			continue
		}

		section := Section{Title: d.Title, Text: text}
		size := utf8.RuneCountInString(section.String())
		if limits.TotalChars > 0 && total+size > limits.TotalChars && len(packed.Sections) > 0 {
			break
		}

		packed.Sections = append(packed.Sections, section)
		total += size
		if limits.TotalChars > 0 && total >= limits.TotalChars {
			break
		}
	}

	if len(packed.Sections) == 0 {
		return PackedContext{}, ErrNoSectionsAccepted
	}
	return packed, nil
}

// truncateRunes returns at most n runes of s. n <= 0 disables the cap.
func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
