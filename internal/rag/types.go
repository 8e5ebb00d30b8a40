package rag

import "time"

// SourceDocument is the slice of a document the assembler needs.
type SourceDocument struct {
	// Title is used as the citation label in the prompt.
	Title string
	// Content is the document text. Blank content is ignored.
	Content string
	// LastModifiedAt orders documents; the most recent are packed first.
	LastModifiedAt time.Time
}

// CaseInfo describes the case a question is asked about.
type CaseInfo struct {
	// Name is the case name shown to the model.
	Name string
	// Description is optional context about the case.
	Description string
}

// ContextLimits bounds the packed context, in characters (runes).
type ContextLimits struct {
	// PerDocumentChars caps each document before trimming.
	PerDocumentChars int
	// TotalChars caps the sum of accepted sections.
	TotalChars int
}

// DefaultContextLimits returns 2,000 characters per document and 12,000 overall.
func DefaultContextLimits() ContextLimits {
	return ContextLimits{PerDocumentChars: 2000, TotalChars: 12000}
}

// Outcome classifies how a reply was produced.
type Outcome string

const (
	// OutcomeAnswered means the completion backend produced the reply.
	OutcomeAnswered Outcome = "answered"
	// OutcomeNoContext means there were no readable documents to ground on.
	OutcomeNoContext Outcome = "no_context"
	// OutcomeNotConfigured means no completion backend is configured.
	OutcomeNotConfigured Outcome = "not_configured"
	// OutcomeUnavailable means the completion call failed.
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeEmpty means the backend returned a blank completion.
	OutcomeEmpty Outcome = "empty"
)

// Reply is the displayable result of Generate. Text is never empty.
type Reply struct {
	Text          string  `json:"text"`
	Outcome       Outcome `json:"outcome"`
	DocumentsUsed int     `json:"documents_used"`
}

// Fixed replies for every degraded outcome.
const (
	MessageAddDocuments  = "There are no documents with readable text in this case yet. Add documents with readable content and ask again."
	MessageNotConfigured = "The AI service is not configured. Ask an administrator to set up an AI provider."
	MessageUnavailable   = "I wasn't able to reach the AI service right now. Please try again later."
	MessageEmptyReply    = "I couldn't generate a response to that question. Please try rephrasing it."
)
