package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
)

// MediaOrphanRepository defines data access for media awaiting removal
type MediaOrphanRepository interface {
	Create(ctx context.Context, key string) error
	FindBatch(ctx context.Context, limit int) ([]*domain.MediaOrphan, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

type mediaOrphanRepositoryImpl struct {
	db *gorm.DB
}

// NewMediaOrphanRepository creates a new instance of MediaOrphanRepository
func NewMediaOrphanRepository(db *gorm.DB) MediaOrphanRepository {
	return &mediaOrphanRepositoryImpl{db: db}
}

func (r *mediaOrphanRepositoryImpl) Create(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Create(&domain.MediaOrphan{Key: key}).Error
}

// FindBatch returns up to limit orphans, oldest first
func (r *mediaOrphanRepositoryImpl) FindBatch(ctx context.Context, limit int) ([]*domain.MediaOrphan, error) {
	var orphans []*domain.MediaOrphan
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Find(&orphans).Error; err != nil {
		return nil, err
	}
	return orphans, nil
}

func (r *mediaOrphanRepositoryImpl) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.MediaOrphan{}).Error
}
