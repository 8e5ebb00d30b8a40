package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client is a client for OpenAI-compatible chat completion, vision and
// transcription endpoints.
type Client struct {
	BaseURL     string
	APIKey      string
	Model       string
	VisionModel string
	AudioModel  string
	client      *http.Client
}

// NewClient creates a new LLM client.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		APIKey:      apiKey,
		Model:       model,
		VisionModel: model,
		AudioModel:  "whisper-1",
		client:      http.DefaultClient,
	}
}

// WithTimeout bounds every request made by the client.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.client = &http.Client{Timeout: d}
	return c
}

// ChatMessage represents a single message in a chat request. Content is
// either a string or a slice of ContentPart for multimodal input.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image as a URL or data URI.
type ImageURL struct {
	URL string `json:"url"`
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float32      `json:"temperature,omitempty"`
}

// ChatChoiceMessage represents the message in a chat choice.
type ChatChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int               `json:"index"`
	Message      ChatChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// ChatWithMessages sends a structured conversation and returns the first choice.
func (c *Client) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	model := params.Model
	if model == "" {
		model = c.Model
	}

	payload := ChatRequest{
		Model:     model,
		Messages:  make([]ChatMessage, 0, len(messages)),
		MaxTokens: params.MaxTokens,
	}
	temperature := params.Temperature
	payload.Temperature = &temperature
	for _, m := range messages {
		payload.Messages = append(payload.Messages, ChatMessage{Role: m.Role, Content: m.Content})
	}

	return c.complete(ctx, payload)
}

// DescribeImage asks a vision-capable model to describe an image and
// transcribe any text it contains.
func (c *Client) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	payload := ChatRequest{
		Model: c.VisionModel,
		Messages: []ChatMessage{
			{
				Role: RoleUser,
				Content: []ContentPart{
					{Type: "text", Text: "Describe this image for a case file. Transcribe all visible text verbatim, then summarize what the image shows."},
					{Type: "image_url", ImageURL: &ImageURL{URL: dataURI}},
				},
			},
		},
		MaxTokens: 1024,
	}
	return c.complete(ctx, payload)
}

// TranscriptionResponse is the response of the audio transcription endpoint.
type TranscriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe converts speech in an audio file to text.
func (c *Client) Transcribe(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty audio")
	}
	url := fmt.Sprintf("%s/v1/audio/transcriptions", c.BaseURL)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("model", c.AudioModel); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var out TranscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Text, nil
}

func (c *Client) complete(ctx context.Context, payload ChatRequest) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}
