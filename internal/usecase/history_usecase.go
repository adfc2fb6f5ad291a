package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/repository"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// Pagination bounds of List
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DetectionOutput represents one stored detection
type DetectionOutput struct {
	ID          uuid.UUID    `json:"id"`
	NewsText    string       `json:"news_text"`
	Label       entity.Label `json:"label"`
	Score       float64      `json:"score"`
	Explanation *string      `json:"explanation"`
	CreatedAt   time.Time    `json:"created_at"`
}

// DetectionListOutput represents a paginated detection list
type DetectionListOutput struct {
	Detections []*DetectionOutput `json:"detections"`
	Total      int64              `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
	HasMore    bool               `json:"has_more"`
}

// HistoryUsecase defines the owner-scoped history operations
type HistoryUsecase interface {
	List(ctx context.Context, owner string, limit, offset int) (*DetectionListOutput, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (*DetectionOutput, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
	Export(ctx context.Context, owner string) ([]*DetectionOutput, error)
}

type historyUsecase struct {
	repo repository.DetectionRepository
}

// NewHistoryUsecase creates a new history usecase
func NewHistoryUsecase(repo repository.DetectionRepository) HistoryUsecase {
	return &historyUsecase{repo: repo}
}

func (u *historyUsecase) List(ctx context.Context, owner string, limit, offset int) (*DetectionListOutput, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: missing owner", service.ErrAuthentication)
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	detections, total, err := u.repo.ListByOwner(ctx, owner, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list detections: %w", service.ErrPersistence, err)
	}

	return &DetectionListOutput{
		Detections: toDetectionOutputs(detections),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+limit) < total,
	}, nil
}

func (u *historyUsecase) Get(ctx context.Context, owner string, id uuid.UUID) (*DetectionOutput, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: missing owner", service.ErrAuthentication)
	}

	detection, err := u.repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get detection: %w", service.ErrPersistence, err)
	}
	if detection == nil {
		return nil, fmt.Errorf("%w: detection %s", service.ErrNotFound, id)
	}
	return toDetectionOutput(detection), nil
}

func (u *historyUsecase) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	if owner == "" {
		return fmt.Errorf("%w: missing owner", service.ErrAuthentication)
	}

	deleted, err := u.repo.Delete(ctx, owner, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete detection: %w", service.ErrPersistence, err)
	}
	if !deleted {
		return fmt.Errorf("%w: detection %s", service.ErrNotFound, id)
	}
	return nil
}

func (u *historyUsecase) Export(ctx context.Context, owner string) ([]*DetectionOutput, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: missing owner", service.ErrAuthentication)
	}

	detections, err := u.repo.ListAllByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to export detections: %w", service.ErrPersistence, err)
	}
	return toDetectionOutputs(detections), nil
}

func toDetectionOutputs(detections []*entity.Detection) []*DetectionOutput {
	outputs := make([]*DetectionOutput, len(detections))
	for i, d := range detections {
		outputs[i] = toDetectionOutput(d)
	}
	return outputs
}

func toDetectionOutput(d *entity.Detection) *DetectionOutput {
	return &DetectionOutput{
		ID:          d.ID,
		NewsText:    d.NewsText,
		Label:       d.Label,
		Score:       d.Score,
		Explanation: d.Explanation,
		CreatedAt:   d.CreatedAt,
	}
}
