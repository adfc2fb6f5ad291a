package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

func TestLLMClassifier_Classify(t *testing.T) {
	t.Run("sends system prompt and parses verdict", func(t *testing.T) {
		setupHTTPMock(t)
		httpmock.RegisterResponder(http.MethodPost, testChatURL+"/chat/completions",
			func(req *http.Request) (*http.Response, error) {
				var body ChatCompletionRequest
				require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
				require.Len(t, body.Messages, 2)
				assert.Equal(t, "system", body.Messages[0].Role)
				assert.Equal(t, VerdictSystemPrompt, body.Messages[0].Content)
				assert.Equal(t, "user", body.Messages[1].Role)
				assert.Equal(t, "the moon is made of cheese", body.Messages[1].Content)

				content := `Verdict: {"label":"FAKE","score":0.97,"explanation":"Contradicts basic science."}`
				return httpmock.NewStringResponse(http.StatusOK, chatResponse(content)), nil
			})

		classifier := NewLLMClassifier(newTestChatClient("groq-key"))
		result, err := classifier.Classify(context.Background(), "the moon is made of cheese")

		require.NoError(t, err)
		assert.Equal(t, entity.LabelFake, result.Label)
		assert.Equal(t, 0.97, result.Score)
		assert.Equal(t, "Contradicts basic science.", result.Explanation)
		assert.True(t, result.Explained)
	})

	t.Run("upstream failure is fatal", func(t *testing.T) {
		setupHTTPMock(t)
		registerChatResponder(t, http.StatusInternalServerError, "boom")

		classifier := NewLLMClassifier(newTestChatClient("groq-key"))
		result, err := classifier.Classify(context.Background(), "text")

		assert.True(t, errors.Is(err, service.ErrUpstream))
		assert.Nil(t, result)
	})

	t.Run("name includes provider", func(t *testing.T) {
		assert.Equal(t, "llm:groq", NewLLMClassifier(newTestChatClient("k")).Name())
	})
}
