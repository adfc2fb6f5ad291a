package client

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

func TestGeminiExplainer_MissingKey(t *testing.T) {
	explainer, err := NewGeminiExplainer(context.Background(), GeminiConfig{})
	require.NoError(t, err)
	defer explainer.Close()

	_, err = explainer.Explain(context.Background(), "text")

	assert.True(t, errors.Is(err, service.ErrConfiguration))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Equal(t, "gemini", explainer.Name())
	assert.Equal(t, DefaultGeminiModel, explainer.modelName)
}

func TestGeminiText(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
	}{
		{name: "nil response", resp: nil, expected: ""},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, expected: ""},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Text(" It cites "), genai.Text("no sources. ")}},
				}},
			},
			expected: "It cites no sources.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, geminiText(tt.resp))
		})
	}
}
