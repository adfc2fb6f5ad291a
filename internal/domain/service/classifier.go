package service

import (
	"context"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
)

// ClassificationResult represents the result of text classification
type ClassificationResult struct {
	Label entity.Label `json:"label"`
	Score float64      `json:"score"`
	// Explanation is set by classifiers whose model explains its own verdict
	Explanation string `json:"explanation,omitempty"`
	// Explained is true when Explanation came bundled with the verdict,
	// in which case no separate explanation call is made.
	Explained bool `json:"-"`
}

// Classifier defines the interface for text classification
type Classifier interface {
	// Classify classifies a single text
	Classify(ctx context.Context, text string) (*ClassificationResult, error)

	// Name identifies the backend in logs and metrics
	Name() string
}

// Explainer produces a short rationale for a FAKE verdict
type Explainer interface {
	Explain(ctx context.Context, text string) (string, error)

	Name() string
}
