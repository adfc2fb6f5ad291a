package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/repository"
)

type detectionRepository struct {
	db *gorm.DB
}

// NewDetectionRepository creates a new detection repository
func NewDetectionRepository(db *gorm.DB) repository.DetectionRepository {
	return &detectionRepository{db: db}
}

// ownedBy scopes a query to the rows of one owner
func ownedBy(owner string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", owner)
	}
}

func (r *detectionRepository) Create(ctx context.Context, detection *entity.Detection) error {
	return r.db.WithContext(ctx).Create(detection).Error
}

func (r *detectionRepository) GetByID(ctx context.Context, owner string, id uuid.UUID) (*entity.Detection, error) {
	var detection entity.Detection
	err := r.db.WithContext(ctx).Scopes(ownedBy(owner)).First(&detection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &detection, nil
}

func (r *detectionRepository) ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entity.Detection, int64, error) {
	var detections []*entity.Detection
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Detection{}).Scopes(ownedBy(owner)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(ownedBy(owner)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&detections).Error
	if err != nil {
		return nil, 0, err
	}

	return detections, total, nil
}

func (r *detectionRepository) ListAllByOwner(ctx context.Context, owner string) ([]*entity.Detection, error) {
	var detections []*entity.Detection
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(owner)).
		Order("created_at DESC").
		Find(&detections).Error
	if err != nil {
		return nil, err
	}
	return detections, nil
}

func (r *detectionRepository) Delete(ctx context.Context, owner string, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Scopes(ownedBy(owner)).Delete(&entity.Detection{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
