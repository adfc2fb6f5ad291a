package client

import (
	"context"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// VerdictSystemPrompt instructs a general chat model to answer with a JSON verdict
const VerdictSystemPrompt = `You are a fact-checking assistant that detects fake news.
Classify the news text sent by the user as FAKE or REAL.
Respond with only a JSON object of the form
{"label": "FAKE" or "REAL", "score": confidence between 0 and 1, "explanation": "two or three sentences"}.`

// LLMClassifier classifies text with a general chat model that explains its own verdict
type LLMClassifier struct {
	client *ChatClient
}

// NewLLMClassifier creates a new LLMClassifier
func NewLLMClassifier(client *ChatClient) service.Classifier {
	return &LLMClassifier{client: client}
}

// Classify classifies a single text
func (c *LLMClassifier) Classify(ctx context.Context, text string) (*service.ClassificationResult, error) {
	completion, err := c.client.Complete(ctx, []ChatMessage{
		{Role: "system", Content: VerdictSystemPrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		return nil, err
	}

	return ParseVerdict(completion), nil
}

// Name returns the backend name
func (c *LLMClassifier) Name() string {
	return "llm:" + c.client.Name()
}
