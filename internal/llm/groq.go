package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.1-8b-instant"
)

// GroqClient talks to Groq's OpenAI-compatible chat completions API.
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// GroqOption configures the Groq client.
type GroqOption func(*GroqClient)

// WithBaseURL sets a custom base URL (used by tests to point at a stub).
func WithBaseURL(url string) GroqOption {
	return func(c *GroqClient) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithModel sets the default model.
func WithModel(model string) GroqOption {
	return func(c *GroqClient) { c.model = model }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) GroqOption {
	return func(c *GroqClient) { c.client = client }
}

// NewGroqClient creates a Groq chat client. The API key is required.
func NewGroqClient(apiKey string, opts ...GroqOption) (*GroqClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c := &GroqClient{
		apiKey:  apiKey,
		baseURL: defaultGroqBaseURL,
		model:   defaultGroqModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type groqRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UpstreamError carries the message Groq returned with a non-2xx
// status, so handlers can pass it through to the client.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: upstream status %d: %s", e.StatusCode, e.Message)
}

// Chat sends a conversation and returns the assistant's reply.
func (c *GroqClient) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error) {
	start := time.Now()

	model := c.model
	temperature := 0.4
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		if opts.Temperature > 0 {
			temperature = opts.Temperature
		}
	}

	body, err := json.Marshal(groqRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderDown, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("groq: read response: %w", err)
	}

	var parsed groqResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		snippet := string(raw)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, fmt.Errorf("groq: decode response (status %d): %w: %s", resp.StatusCode, err, snippet)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "upstream chat API error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyAnswer
	}

	return &Response{
		Content: parsed.Choices[0].Message.Content,
		Model:   parsed.Model,
		Latency: time.Since(start),
	}, nil
}
