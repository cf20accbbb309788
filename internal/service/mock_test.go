package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"community-feed-api/internal/domain"
	"community-feed-api/internal/repository"
)

// MockEditorialPostRepository overrides selected methods and falls through
// to the wrapped repository for the rest
type MockEditorialPostRepository struct {
	repository.EditorialPostRepository

	CreateFunc     func(ctx context.Context, post *domain.EditorialPost) error
	SlugExistsFunc func(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

func (m *MockEditorialPostRepository) Create(ctx context.Context, post *domain.EditorialPost) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return m.EditorialPostRepository.Create(ctx, post)
}

func (m *MockEditorialPostRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	if m.SlugExistsFunc != nil {
		return m.SlugExistsFunc(ctx, slug, excludeID)
	}
	return m.EditorialPostRepository.SlugExists(ctx, slug, excludeID)
}

// MockUserPostRepository overrides selected methods of a wrapped repository
type MockUserPostRepository struct {
	repository.UserPostRepository

	ExistsOnDayFunc  func(ctx context.Context, authorID uuid.UUID, day datatypes.Date) (bool, error)
	FindApprovedFunc func(ctx context.Context) ([]*domain.UserPost, error)
}

func (m *MockUserPostRepository) FindApproved(ctx context.Context) ([]*domain.UserPost, error) {
	if m.FindApprovedFunc != nil {
		return m.FindApprovedFunc(ctx)
	}
	return m.UserPostRepository.FindApproved(ctx)
}

func (m *MockUserPostRepository) ExistsOnDay(ctx context.Context, authorID uuid.UUID, day datatypes.Date) (bool, error) {
	if m.ExistsOnDayFunc != nil {
		return m.ExistsOnDayFunc(ctx, authorID, day)
	}
	return m.UserPostRepository.ExistsOnDay(ctx, authorID, day)
}

// MockLikeRepository overrides selected methods of a wrapped repository
type MockLikeRepository struct {
	repository.LikeRepository

	DeleteFunc func(ctx context.Context, targetID, userID uuid.UUID) (bool, error)
}

func (m *MockLikeRepository) Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, targetID, userID)
	}
	return m.LikeRepository.Delete(ctx, targetID, userID)
}
