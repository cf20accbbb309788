package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to create a comment or a reply
// @Description parentId, when set, must reference a comment on the same post
type CreateCommentRequest struct {
	Content  string     `json:"content" binding:"required" example:"Thanks for sharing"`
	ParentID *uuid.UUID `json:"parentId,omitempty" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
}

// CommentResponse represents a comment. Replies carries one level of direct replies.
type CommentResponse struct {
	ID         uuid.UUID         `json:"commentId" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	PostID     uuid.UUID         `json:"postId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	UserID     uuid.UUID         `json:"userId" example:"b2c3d4e5-f6a7-8901-bcde-f12345678901"`
	AuthorName string            `json:"authorName" example:"maria"`
	ParentID   *uuid.UUID        `json:"parentId,omitempty"`
	Content    string            `json:"content" example:"Thanks for sharing"`
	LikeCount  int64             `json:"likeCount" example:"2"`
	Liked      bool              `json:"liked" example:"false"`
	Replies    []CommentResponse `json:"replies,omitempty"`
	CreatedAt  time.Time         `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}
