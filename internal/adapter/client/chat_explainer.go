package client

import (
	"context"
	"fmt"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// BuildExplanationPrompt asks for a short rationale for a FAKE verdict
func BuildExplanationPrompt(text string) string {
	return fmt.Sprintf(
		"The following news article has been classified as FAKE. "+
			"Explain in 2-3 sentences why this might be fake news:\n\n%s\n\nExplanation:",
		text,
	)
}

// ChatExplainer generates explanations with an OpenAI-compatible chat model
type ChatExplainer struct {
	client *ChatClient
}

// NewChatExplainer creates a new ChatExplainer
func NewChatExplainer(client *ChatClient) service.Explainer {
	return &ChatExplainer{client: client}
}

// Explain returns the model's rationale
func (e *ChatExplainer) Explain(ctx context.Context, text string) (string, error) {
	completion, err := e.client.Complete(ctx, []ChatMessage{
		{Role: "user", Content: BuildExplanationPrompt(text)},
	})
	if err != nil {
		return "", err
	}
	if completion == "" {
		return "", fmt.Errorf("%w: empty explanation from %s", service.ErrUpstream, e.client.Name())
	}
	return completion, nil
}

// Name returns the provider name
func (e *ChatExplainer) Name() string {
	return e.client.Name()
}
