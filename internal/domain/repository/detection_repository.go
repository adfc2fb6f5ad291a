package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
)

// DetectionRepository defines owner-scoped data operations on detections.
// There is no update operation; detections are immutable once created.
type DetectionRepository interface {
	// Create inserts a new detection
	Create(ctx context.Context, detection *entity.Detection) error

	// GetByID retrieves one of owner's detections, nil when absent
	GetByID(ctx context.Context, owner string, id uuid.UUID) (*entity.Detection, error)

	// ListByOwner retrieves owner's detections newest first with pagination
	ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entity.Detection, int64, error)

	// ListAllByOwner retrieves every detection of owner newest first
	ListAllByOwner(ctx context.Context, owner string) ([]*entity.Detection, error)

	// Delete removes one of owner's detections and reports whether a row was removed
	Delete(ctx context.Context, owner string, id uuid.UUID) (bool, error)
}
