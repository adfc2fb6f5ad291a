package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// maxErrorBody caps how much of an upstream error body is kept in error messages
const maxErrorBody = 4096

// InferenceRequest represents a request to the Hugging Face inference API
type InferenceRequest struct {
	Inputs string `json:"inputs"`
}

// LabelScore is one candidate label returned by a text-classification model
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HuggingFaceClient is an HTTP client for the Hugging Face inference API
type HuggingFaceClient struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewHuggingFaceClient creates a new inference API client
func NewHuggingFaceClient(baseURL, model, apiKey string, timeout time.Duration) *HuggingFaceClient {
	return &HuggingFaceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify sends a single text to the model. The candidates of the first input are
// returned in upstream order, which the inference API sorts by descending score.
func (c *HuggingFaceClient) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: HUGGING_FACE_API_KEY not configured", service.ErrConfiguration)
	}

	body, err := json.Marshal(InferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/models/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request to hugging face: %w", service.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamStatusError("hugging face", resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read hugging face response: %w", service.ErrUpstream, err)
	}

	return decodeLabelScores(raw)
}

// decodeLabelScores accepts both the batched [[...]] and the flat [...] response shapes
func decodeLabelScores(raw []byte) ([]LabelScore, error) {
	var nested [][]LabelScore
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var flat []LabelScore
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	return nil, fmt.Errorf("%w: unexpected hugging face response: %s", service.ErrUpstream, truncate(string(raw)))
}

// upstreamStatusError reads a bounded error body from a non-2xx response
func upstreamStatusError(upstream string, resp *http.Response) error {
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(respBody)) == 0 {
		return fmt.Errorf("%w: %s API returned status %d", service.ErrUpstream, upstream, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s API returned status %d: %s",
		service.ErrUpstream, upstream, resp.StatusCode, strings.TrimSpace(string(respBody)))
}

func truncate(s string) string {
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
