package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
)

// CommentRepository defines comment data access for one post family.
// Editorial and community comments share a row shape, so both are read and
// written as domain.Comment against their own table.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	FindByParentIDs(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID][]*domain.Comment, error)
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
}

type commentRepositoryImpl struct {
	db    *gorm.DB
	table string
}

// NewCommentRepository returns the repository for editorial post comments
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db, table: domain.Comment{}.TableName()}
}

// NewUserPostCommentRepository returns the repository for community post comments
func NewUserPostCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db, table: domain.UserPostComment{}.TableName()}
}

func (r *commentRepositoryImpl) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.scoped(ctx).Omit("Likes").Create(comment).Error
}

func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.scoped(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindTopLevelByPost returns comments without a parent, newest first
func (r *commentRepositoryImpl) FindTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.scoped(ctx).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindByParentIDs returns the direct replies of each parent in one query,
// newest first per parent
func (r *commentRepositoryImpl) FindByParentIDs(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID][]*domain.Comment, error) {
	result := make(map[uuid.UUID][]*domain.Comment, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	var replies []*domain.Comment
	if err := r.scoped(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at DESC, id ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}

	for _, reply := range replies {
		result[*reply.ParentID] = append(result[*reply.ParentID], reply)
	}
	return result, nil
}

func (r *commentRepositoryImpl) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.scoped(ctx).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
