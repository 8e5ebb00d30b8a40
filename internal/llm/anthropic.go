package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultMaxTokens = 1024

// AnthropicClient implements ChatCompleter against the Anthropic Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	Model  string
}

// NewAnthropicClient creates a client for the given model.
func NewAnthropicClient(apiKey, model string, timeout time.Duration) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	// No client-side retries.
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: timeout}))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicClient{client: &client, Model: model}, nil
}

// ChatWithMessages sends the conversation. System messages are concatenated
// into the request's system prompt.
func (c *AnthropicClient) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	model := params.Model
	if model == "" {
		model = c.Model
	}
	maxTokens := int64(params.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	var system []string
	converted := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		case RoleUser:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		default:
			return "", fmt.Errorf("unsupported message role: %s", m.Role)
		}
	}
	if len(converted) == 0 {
		return "", fmt.Errorf("no user or assistant messages")
	}

	apiParams := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		Messages:    converted,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(float64(params.Temperature)),
	}
	if len(system) > 0 {
		apiParams.System = []anthropic.TextBlockParam{
			{Text: strings.Join(system, "\n\n")},
		}
	}

	return c.send(ctx, apiParams)
}

// DescribeImage asks Claude to describe an image and transcribe its text.
func (c *AnthropicClient) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	apiParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.Model),
		MaxTokens: anthropicDefaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mimeType, base64.StdEncoding.EncodeToString(data)),
				anthropic.NewTextBlock("Describe this image for a case file. Transcribe all visible text verbatim, then summarize what the image shows."),
			),
		},
	}
	return c.send(ctx, apiParams)
}

func (c *AnthropicClient) send(ctx context.Context, apiParams anthropic.MessageNewParams) (string, error) {
	message, err := c.client.Messages.New(ctx, apiParams)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
