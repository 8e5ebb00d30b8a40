package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks casedesk/internal/rag Completer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casedesk/internal/contextutil"
	"casedesk/internal/llm"
)

// Completer is the completion backend the generator calls.
type Completer interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// GeneratorConfig tunes the completion call and the context budget.
type GeneratorConfig struct {
	// Temperature is kept low so answers stay close to the documents.
	Temperature float32
	// MaxTokens caps the completion.
	MaxTokens int
	// Limits bounds the packed context.
	Limits ContextLimits
}

// DefaultGeneratorConfig returns temperature 0.2, 512 output tokens and the
// default context limits.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Temperature: 0.2,
		MaxTokens:   512,
		Limits:      DefaultContextLimits(),
	}
}

const systemPrompt = "You are a careful assistant for a case workspace. " +
	"Answer only from the case documents provided in the context. Do not use outside knowledge. " +
	"When you rely on a document, cite its title in parentheses, for example (Engagement Letter). " +
	"If the documents do not contain what is needed to answer, say plainly what information is missing instead of guessing."

// Generator turns case documents and a question into a grounded reply.
type Generator struct {
	completer Completer
	cfg       GeneratorConfig
}

// NewGenerator creates a generator. A nil completer means no AI provider is
// configured; Generate then answers with MessageNotConfigured.
func NewGenerator(completer Completer, cfg GeneratorConfig) *Generator {
	return &Generator{completer: completer, cfg: cfg}
}

// Generate answers question from docs. It never fails: every degraded path
// yields one of the fixed messages, with Outcome telling which.
func (g *Generator) Generate(ctx context.Context, c CaseInfo, docs []SourceDocument, question string) Reply {
	logger := contextutil.LoggerFromContext(ctx)

	packed, err := AssembleContext(docs, g.cfg.Limits)
	if err != nil {
		logger.InfoContext(ctx, "no usable context for question",
			"case", c.Name,
			"documents", len(docs),
			"reason", err.Error(),
		)
		return Reply{Text: MessageAddDocuments, Outcome: OutcomeNoContext}
	}

	if g.completer == nil {
		logger.WarnContext(ctx, "completion backend not configured")
		return Reply{Text: MessageNotConfigured, Outcome: OutcomeNotConfigured, DocumentsUsed: len(packed.Sections)}
	}

	contextText := packed.Text()
	userPrompt := buildUserPrompt(c, contextText, question)
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}

	logger.InfoContext(ctx, "sending request to LLM",
		"case", c.Name,
		"sections", len(packed.Sections),
		"context_length", packed.Len(),
		"user_message_length", len(userPrompt),
	)
	logger.DebugContext(ctx, "full context being sent to LLM", "context", contextText)

	answer, err := g.completer.ChatWithMessages(ctx, messages, llm.ChatParams{
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response",
			"error", err,
			"circuit_open", errors.Is(err, llm.ErrCircuitOpen),
		)
		return Reply{Text: MessageUnavailable, Outcome: OutcomeUnavailable, DocumentsUsed: len(packed.Sections)}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		logger.WarnContext(ctx, "LLM returned an empty answer")
		return Reply{Text: MessageEmptyReply, Outcome: OutcomeEmpty, DocumentsUsed: len(packed.Sections)}
	}

	logger.InfoContext(ctx, "received LLM response", "answer_length", len(answer))
	return Reply{Text: answer, Outcome: OutcomeAnswered, DocumentsUsed: len(packed.Sections)}
}

func buildUserPrompt(c CaseInfo, contextText, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Case: %s\n", c.Name)
	if desc := strings.TrimSpace(c.Description); desc != "" {
		fmt.Fprintf(&b, "Case description: %s\n", desc)
	}
	b.WriteString("\n--- Case documents ---\n\n")
	b.WriteString(contextText)
	b.WriteString("\n\n--- End of case documents ---\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	b.WriteString("Answer concisely in the same language the question was asked in.")
	return b.String()
}
