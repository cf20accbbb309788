package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
)

// UserPostRepository defines the interface for community post data access
type UserPostRepository interface {
	Create(ctx context.Context, post *domain.UserPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.UserPost, error)
	FindApproved(ctx context.Context) ([]*domain.UserPost, error)
	FindApprovedByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.UserPost, error)
	FindPending(ctx context.Context) ([]*domain.UserPost, error)
	ExistsOnDay(ctx context.Context, authorID uuid.UUID, day datatypes.Date) (bool, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	Delete(ctx context.Context, post *domain.UserPost) error
	CountApproved(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type userPostRepositoryImpl struct {
	db *gorm.DB
}

// NewUserPostRepository creates a new instance of UserPostRepository
func NewUserPostRepository(db *gorm.DB) UserPostRepository {
	return &userPostRepositoryImpl{db: db}
}

func (r *userPostRepositoryImpl) Create(ctx context.Context, post *domain.UserPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *userPostRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.UserPost, error) {
	var post domain.UserPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindApproved returns approved posts, newest first
func (r *userPostRepositoryImpl) FindApproved(ctx context.Context) ([]*domain.UserPost, error) {
	var posts []*domain.UserPost
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *userPostRepositoryImpl) FindApprovedByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.UserPost, error) {
	var posts []*domain.UserPost
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND is_approved = ?", authorID, true).
		Order("created_at DESC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPending returns posts awaiting moderation, oldest first
func (r *userPostRepositoryImpl) FindPending(ctx context.Context) ([]*domain.UserPost, error) {
	var posts []*domain.UserPost
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ExistsOnDay reports whether the author already submitted on day
func (r *userPostRepositoryImpl) ExistsOnDay(ctx context.Context, authorID uuid.UUID, day datatypes.Date) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.UserPost{}).
		Where("author_id = ? AND submitted_on = ?", authorID, day).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userPostRepositoryImpl) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.UserPost{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the post with its comments and likes and queues its image
// as a media orphan.
func (r *userPostRepositoryImpl) Delete(ctx context.Context, post *domain.UserPost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := tx.Model(&domain.UserPostComment{}).Select("id").Where("post_id = ?", post.ID)
		if err := tx.Where("comment_id IN (?)", comments).Delete(&domain.UserPostCommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&domain.UserPostComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&domain.UserPostLike{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.UserPost{}, "id = ?", post.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if post.ImageKey != "" {
			return tx.Create(&domain.MediaOrphan{Key: post.ImageKey}).Error
		}
		return nil
	})
}

func (r *userPostRepositoryImpl) CountApproved(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserPost{}).Where("is_approved = ?", true).Count(&count).Error
	return count, err
}

func (r *userPostRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserPost{}).Where("is_approved = ?", false).Count(&count).Error
	return count, err
}
