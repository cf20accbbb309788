package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like rows are only ever inserted or deleted. Each type carries a unique
// index over (target, user) which the toggle operations rely on.

// Like is a like on an editorial post
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_likes_post_user,priority:1" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_likes_post_user,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Like) TableName() string { return "likes" }

// CommentLike is a like on an editorial post comment
type CommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_comment_likes_comment_user,priority:1" json:"comment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_comment_likes_comment_user,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CommentLike) TableName() string { return "comment_likes" }

// UserPostLike is a like on a community post
type UserPostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_post_likes_post_user,priority:1" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_post_likes_post_user,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UserPostLike) TableName() string { return "user_post_likes" }

// UserPostCommentLike is a like on a community post comment
type UserPostCommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_post_comment_likes_comment_user,priority:1" json:"comment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_post_comment_likes_comment_user,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UserPostCommentLike) TableName() string { return "user_post_comment_likes" }
