package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"community-feed-api/internal/domain"
)

// LikeRepository defines data access for one like table. Rows are keyed by
// (target, user) and are only inserted or deleted.
type LikeRepository interface {
	// CreateIfAbsent inserts the like unless it exists; created is false when
	// the row was already there.
	CreateIfAbsent(ctx context.Context, targetID, userID uuid.UUID) (created bool, err error)
	// Delete removes the like; deleted is false when there was nothing to remove.
	Delete(ctx context.Context, targetID, userID uuid.UUID) (deleted bool, err error)
	Exists(ctx context.Context, targetID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, targetID uuid.UUID) (int64, error)
	CountByTargets(ctx context.Context, targetIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	LikedTargets(ctx context.Context, userID uuid.UUID, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type likeRepositoryImpl[T any] struct {
	db     *gorm.DB
	column string
	newRow func(targetID, userID uuid.UUID) *T
}

// NewPostLikeRepository returns the repository for editorial post likes
func NewPostLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepositoryImpl[domain.Like]{
		db:     db,
		column: "post_id",
		newRow: func(targetID, userID uuid.UUID) *domain.Like {
			return &domain.Like{ID: uuid.New(), PostID: targetID, UserID: userID, CreatedAt: time.Now().UTC()}
		},
	}
}

// NewCommentLikeRepository returns the repository for editorial comment likes
func NewCommentLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepositoryImpl[domain.CommentLike]{
		db:     db,
		column: "comment_id",
		newRow: func(targetID, userID uuid.UUID) *domain.CommentLike {
			return &domain.CommentLike{ID: uuid.New(), CommentID: targetID, UserID: userID, CreatedAt: time.Now().UTC()}
		},
	}
}

// NewUserPostLikeRepository returns the repository for community post likes
func NewUserPostLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepositoryImpl[domain.UserPostLike]{
		db:     db,
		column: "post_id",
		newRow: func(targetID, userID uuid.UUID) *domain.UserPostLike {
			return &domain.UserPostLike{ID: uuid.New(), PostID: targetID, UserID: userID, CreatedAt: time.Now().UTC()}
		},
	}
}

// NewUserPostCommentLikeRepository returns the repository for community comment likes
func NewUserPostCommentLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepositoryImpl[domain.UserPostCommentLike]{
		db:     db,
		column: "comment_id",
		newRow: func(targetID, userID uuid.UUID) *domain.UserPostCommentLike {
			return &domain.UserPostCommentLike{ID: uuid.New(), CommentID: targetID, UserID: userID, CreatedAt: time.Now().UTC()}
		},
	}
}

func (r *likeRepositoryImpl[T]) match(ctx context.Context, targetID, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Where(r.column+" = ? AND user_id = ?", targetID, userID)
}

func (r *likeRepositoryImpl[T]) CreateIfAbsent(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(r.newRow(targetID, userID))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *likeRepositoryImpl[T]) Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	result := r.match(ctx, targetID, userID).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepositoryImpl[T]) Exists(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.match(ctx, targetID, userID).Model(new(T)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepositoryImpl[T]) Count(ctx context.Context, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(r.column+" = ?", targetID).Count(&count).Error
	return count, err
}

func (r *likeRepositoryImpl[T]) CountByTargets(ctx context.Context, targetIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TargetID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Select(r.column+" AS target_id, COUNT(*) AS total").
		Where(r.column+" IN ?", targetIDs).
		Group(r.column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}

func (r *likeRepositoryImpl[T]) LikedTargets(ctx context.Context, userID uuid.UUID, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if len(targetIDs) == 0 || userID == uuid.Nil {
		return liked, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Where("user_id = ? AND "+r.column+" IN ?", userID, targetIDs).
		Pluck(r.column, &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
