package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
)

// EditorialPostRepository defines the interface for editorial post data access
type EditorialPostRepository interface {
	Create(ctx context.Context, post *domain.EditorialPost) error
	Update(ctx context.Context, post *domain.EditorialPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.EditorialPost, error)
	FindBySlug(ctx context.Context, slug string) (*domain.EditorialPost, error)
	FindPublished(ctx context.Context) ([]*domain.EditorialPost, error)
	FindAll(ctx context.Context) ([]*domain.EditorialPost, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, post *domain.EditorialPost) error
	CountPublished(ctx context.Context) (int64, error)
}

type editorialPostRepositoryImpl struct {
	db *gorm.DB
}

// NewEditorialPostRepository creates a new instance of EditorialPostRepository
func NewEditorialPostRepository(db *gorm.DB) EditorialPostRepository {
	return &editorialPostRepositoryImpl{db: db}
}

func (r *editorialPostRepositoryImpl) Create(ctx context.Context, post *domain.EditorialPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update saves the editable columns of post, slug included; keeping an assigned slug is the caller's job
func (r *editorialPostRepositoryImpl) Update(ctx context.Context, post *domain.EditorialPost) error {
	return r.db.WithContext(ctx).
		Model(post).
		Select("title", "slug", "summary", "body", "cover_key", "published", "updated_at").
		Updates(post).Error
}

func (r *editorialPostRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.EditorialPost, error) {
	var post domain.EditorialPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *editorialPostRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.EditorialPost, error) {
	var post domain.EditorialPost
	if err := r.db.WithContext(ctx).First(&post, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPublished returns published posts, newest first
func (r *editorialPostRepositoryImpl) FindPublished(ctx context.Context) ([]*domain.EditorialPost, error) {
	var posts []*domain.EditorialPost
	if err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *editorialPostRepositoryImpl) FindAll(ctx context.Context) ([]*domain.EditorialPost, error) {
	var posts []*domain.EditorialPost
	if err := r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SlugExists reports whether another post already uses slug
func (r *editorialPostRepositoryImpl) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.EditorialPost{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *editorialPostRepositoryImpl) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.EditorialPost{}).
		Where("id = ?", id).
		Update("published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the post with its comments and likes. The cover, if any, is
// queued as a media orphan in the same transaction.
func (r *editorialPostRepositoryImpl) Delete(ctx context.Context, post *domain.EditorialPost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := tx.Model(&domain.Comment{}).Select("id").Where("post_id = ?", post.ID)
		if err := tx.Where("comment_id IN (?)", comments).Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&domain.Like{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.EditorialPost{}, "id = ?", post.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if post.CoverKey != "" {
			return tx.Create(&domain.MediaOrphan{Key: post.CoverKey}).Error
		}
		return nil
	})
}

func (r *editorialPostRepositoryImpl) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.EditorialPost{}).Where("published = ?", true).Count(&count).Error
	return count, err
}
