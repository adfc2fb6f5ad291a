package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// ChatMessage is one message of an OpenAI-compatible chat completion
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest represents a request to an OpenAI-compatible chat API
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

// ChatCompletionResponse represents the subset of the completion response we read
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int         `json:"index"`
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// ChatConfig configures a ChatClient
type ChatConfig struct {
	// Name identifies the provider in errors, e.g. "groq"
	Name        string
	BaseURL     string
	Model       string
	APIKey      string
	APIKeyName  string
	Timeout     time.Duration
	Temperature *float32
	MaxTokens   int
}

// ChatClient is an HTTP client for OpenAI-compatible chat completion APIs such as Groq
type ChatClient struct {
	name        string
	baseURL     string
	model       string
	apiKey      string
	apiKeyName  string
	temperature *float32
	maxTokens   int
	httpClient  *http.Client
}

// NewChatClient creates a new chat completion client
func NewChatClient(cfg ChatConfig) *ChatClient {
	name := cfg.Name
	if name == "" {
		name = "chat"
	}
	keyName := cfg.APIKeyName
	if keyName == "" {
		keyName = "API key"
	}
	return &ChatClient{
		name:        name,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		apiKeyName:  keyName,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider name
func (c *ChatClient) Name() string {
	return c.name
}

// Configured reports whether an API key is present
func (c *ChatClient) Configured() bool {
	return c.apiKey != ""
}

// Complete sends messages and returns the trimmed content of the first choice
func (c *ChatClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: %s not configured", service.ErrConfiguration, c.apiKeyName)
	}

	body, err := json.Marshal(ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request to %s: %w", service.ErrUpstream, c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", upstreamStatusError(c.name, resp)
	}

	var result ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode %s response: %w", service.ErrUpstream, c.name, err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from %s", service.ErrUpstream, c.name)
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
