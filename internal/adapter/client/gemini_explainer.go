package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiConfig configures a GeminiExplainer
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int32
}

// GeminiExplainer generates explanations with the Gemini API
type GeminiExplainer struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	timeout   time.Duration
}

// NewGeminiExplainer creates a GeminiExplainer. Without an API key the explainer is
// still returned and reports a configuration error on use.
func NewGeminiExplainer(ctx context.Context, cfg GeminiConfig) (*GeminiExplainer, error) {
	if cfg.ModelName == "" {
		cfg.ModelName = DefaultGeminiModel
	}

	e := &GeminiExplainer{modelName: cfg.ModelName, timeout: cfg.Timeout}
	if cfg.APIKey == "" {
		return e, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.ModelName)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		MaxOutputTokens: genai.Ptr(cfg.MaxTokens),
	}

	e.client = client
	e.model = model
	return e, nil
}

// Explain returns the model's rationale
func (e *GeminiExplainer) Explain(ctx context.Context, text string) (string, error) {
	if e.model == nil {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not configured", service.ErrConfiguration)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(BuildExplanationPrompt(text)))
	if err != nil {
		return "", fmt.Errorf("%w: gemini API error: %w", service.ErrUpstream, err)
	}

	explanation := geminiText(resp)
	if explanation == "" {
		return "", fmt.Errorf("%w: empty response from gemini", service.ErrUpstream)
	}
	return explanation, nil
}

// Name returns the provider name
func (e *GeminiExplainer) Name() string {
	return "gemini"
}

// Close releases the underlying client
func (e *GeminiExplainer) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
