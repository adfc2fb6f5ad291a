package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/repository"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/metrics"
)

// DefaultWriteTimeout bounds the persistence write when none is configured
const DefaultWriteTimeout = 10 * time.Second

// DetectInput represents one detection request
type DetectInput struct {
	NewsText    string `json:"newsText"`
	BearerToken string `json:"-"`
}

// DetectOutput is the response of a successful detection
type DetectOutput struct {
	Label       entity.Label `json:"label"`
	Score       float64      `json:"score"`
	Explanation string       `json:"explanation"`
}

// DetectionUsecase runs the classification pipeline
type DetectionUsecase interface {
	Detect(ctx context.Context, input *DetectInput) (*DetectOutput, error)
}

// DetectionDeps holds the collaborators of the detection pipeline
type DetectionDeps struct {
	Classifier   service.Classifier
	Explainer    service.Explainer
	Resolver     service.IdentityResolver
	Repository   repository.DetectionRepository
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	WriteTimeout time.Duration
}

type detectionUsecase struct {
	classifier   service.Classifier
	explainer    service.Explainer
	resolver     service.IdentityResolver
	repo         repository.DetectionRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
	writeTimeout time.Duration
}

// NewDetectionUsecase creates a new detection usecase
func NewDetectionUsecase(deps DetectionDeps) DetectionUsecase {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	writeTimeout := deps.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &detectionUsecase{
		classifier:   deps.Classifier,
		explainer:    deps.Explainer,
		resolver:     deps.Resolver,
		repo:         deps.Repository,
		metrics:      deps.Metrics,
		logger:       log,
		writeTimeout: writeTimeout,
	}
}

// Detect validates, classifies, optionally explains and persists one submission.
// Upstream calls are detached from the caller's cancellation and bounded by the
// adapters' own timeouts.
func (u *detectionUsecase) Detect(ctx context.Context, input *DetectInput) (*DetectOutput, error) {
	if input == nil || strings.TrimSpace(input.NewsText) == "" {
		u.metrics.ObserveFailure(metrics.StageValidate)
		return nil, fmt.Errorf("%w: news text is required", service.ErrValidation)
	}
	text := input.NewsText
	upstreamCtx := context.WithoutCancel(ctx)

	result, err := u.classify(upstreamCtx, text)
	if err != nil {
		u.metrics.ObserveFailure(metrics.StageClassify)
		u.logger.Error("classification failed", zap.Error(err))
		return nil, err
	}

	explanation := result.Explanation
	if !result.Explained && result.Label.IsFake() {
		explanation, err = u.explain(upstreamCtx, text)
		if err != nil {
			u.metrics.ObserveFailure(metrics.StageExplain)
			u.logger.Error("explanation failed", zap.Error(err))
			return nil, err
		}
	}

	identity, err := u.authenticate(upstreamCtx, input.BearerToken)
	if err != nil {
		u.metrics.ObserveFailure(metrics.StageAuth)
		u.logger.Warn("authentication failed", zap.Error(err))
		return nil, err
	}

	detection := entity.NewDetection(identity.UserID, text, result.Label, result.Score, explanation)
	if err := u.persist(ctx, detection); err != nil {
		u.metrics.ObserveFailure(metrics.StagePersist)
		u.logger.Error("failed to save detection",
			zap.String("user_id", identity.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	u.metrics.ObserveDetection(string(detection.Label))
	u.logger.Info("detection completed",
		zap.String("detection_id", detection.ID.String()),
		zap.String("user_id", identity.UserID),
		zap.String("label", string(detection.Label)),
		zap.Float64("score", detection.Score),
		zap.String("classifier", u.classifier.Name()),
	)

	return &DetectOutput{
		Label:       detection.Label,
		Score:       detection.Score,
		Explanation: detection.ExplanationText(),
	}, nil
}

func (u *detectionUsecase) classify(ctx context.Context, text string) (*service.ClassificationResult, error) {
	if u.classifier == nil {
		return nil, fmt.Errorf("%w: classifier not configured", service.ErrConfiguration)
	}

	start := time.Now()
	result, err := u.classifier.Classify(ctx, text)
	u.metrics.ObserveUpstream(u.classifier.Name(), start, err)
	if err != nil {
		if errors.Is(err, service.ErrConfiguration) || errors.Is(err, service.ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", service.ErrUpstream, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %s returned no result", service.ErrUpstream, u.classifier.Name())
	}
	return result, nil
}

// explain returns the placeholder on any failure except missing configuration
func (u *detectionUsecase) explain(ctx context.Context, text string) (string, error) {
	if u.explainer == nil {
		return "", fmt.Errorf("%w: explainer not configured", service.ErrConfiguration)
	}

	start := time.Now()
	explanation, err := u.explainer.Explain(ctx, text)
	u.metrics.ObserveUpstream(u.explainer.Name(), start, err)
	if err == nil {
		return explanation, nil
	}
	if errors.Is(err, service.ErrConfiguration) {
		return "", err
	}

	u.metrics.ObserveDegradedExplanation()
	u.logger.Warn("explanation unavailable, using placeholder",
		zap.String("explainer", u.explainer.Name()),
		zap.Error(err),
	)
	return entity.ExplanationUnavailable, nil
}

func (u *detectionUsecase) authenticate(ctx context.Context, token string) (*service.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", service.ErrAuthentication)
	}
	if u.resolver == nil {
		return nil, fmt.Errorf("%w: identity resolver not configured", service.ErrConfiguration)
	}

	identity, err := u.resolver.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrConfiguration) || errors.Is(err, service.ErrAuthentication) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", service.ErrAuthentication, err)
	}
	if identity == nil || identity.UserID == "" {
		return nil, fmt.Errorf("%w: token resolved to no identity", service.ErrAuthentication)
	}
	return identity, nil
}

// persist writes one record. The write is not retried.
func (u *detectionUsecase) persist(ctx context.Context, detection *entity.Detection) error {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.writeTimeout)
	defer cancel()

	if err := u.repo.Create(writeCtx, detection); err != nil {
		return fmt.Errorf("%w: failed to save detection: %w", service.ErrPersistence, err)
	}
	return nil
}
