package client

import (
	"context"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// labelMap maps the model's label taxonomy onto the canonical labels
var labelMap = map[string]entity.Label{
	"FAKE":    entity.LabelFake,
	"REAL":    entity.LabelReal,
	"TRUE":    entity.LabelReal,
	"LABEL_1": entity.LabelFake,
	"LABEL_0": entity.LabelReal,
}

// NormalizeLabel maps an upstream label to a canonical one. Labels outside the
// table become UNKNOWN instead of leaking into stored records.
func NormalizeLabel(label string) entity.Label {
	if mapped, ok := labelMap[label]; ok {
		return mapped
	}
	return entity.LabelUnknown
}

// HuggingFaceClassifier adapts HuggingFaceClient to the Classifier interface
type HuggingFaceClassifier struct {
	client *HuggingFaceClient
}

// NewHuggingFaceClassifier creates a new HuggingFaceClassifier
func NewHuggingFaceClassifier(client *HuggingFaceClient) service.Classifier {
	return &HuggingFaceClassifier{client: client}
}

// Classify classifies a single text using the top-scoring candidate
func (c *HuggingFaceClassifier) Classify(ctx context.Context, text string) (*service.ClassificationResult, error) {
	candidates, err := c.client.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return &service.ClassificationResult{Label: entity.LabelUnknown, Score: 0}, nil
	}

	top := candidates[0]
	return &service.ClassificationResult{
		Label: NormalizeLabel(top.Label),
		Score: top.Score,
	}, nil
}

// Name returns the backend name
func (c *HuggingFaceClassifier) Name() string {
	return "huggingface"
}
