package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateEditorialPostRequest represents the request to create an editorial post
// @Description slug is optional; when omitted it is derived from the title with a numeric suffix on collision.
// @Description An explicitly supplied slug that is already taken is rejected.
type CreateEditorialPostRequest struct {
	Title     string  `json:"title" binding:"required,max=200" example:"Living with chemical sensitivity"`
	Slug      *string `json:"slug,omitempty" binding:"omitempty,max=240" example:"living-with-chemical-sensitivity"`
	Summary   string  `json:"summary" example:"A short introduction"`
	Body      string  `json:"body" binding:"required" example:"Full article text"`
	Published *bool   `json:"published,omitempty" example:"true"`
}

// UpdateEditorialPostRequest represents the request to update an editorial post.
// The slug never changes once assigned.
type UpdateEditorialPostRequest struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=1,max=200" example:"Living with MCS"`
	Summary *string `json:"summary,omitempty" example:"Updated summary"`
	Body    *string `json:"body,omitempty" binding:"omitempty,min=1" example:"Updated text"`
}

// EditorialPostResponse represents an editorial post
type EditorialPostResponse struct {
	ID        uuid.UUID `json:"postId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Title     string    `json:"title" example:"Living with chemical sensitivity"`
	Slug      string    `json:"slug" example:"living-with-chemical-sensitivity"`
	Summary   string    `json:"summary" example:"A short introduction"`
	Body      string    `json:"body,omitempty" example:"Full article text"`
	CoverURL  string    `json:"coverUrl,omitempty" example:"https://bucket.s3.ap-northeast-2.amazonaws.com/covers/..."`
	Published bool      `json:"published" example:"true"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T14:20:00Z"`
}

// PostDetailResponse is an editorial post with its comments and like state
// @Description liked is the viewer's own like state and is false for anonymous viewers
type PostDetailResponse struct {
	Post      EditorialPostResponse `json:"post"`
	Comments  []CommentResponse     `json:"comments"`
	LikeCount int64                 `json:"likeCount" example:"3"`
	Liked     bool                  `json:"liked" example:"false"`
}

// LikeToggleResponse reports the like state after a toggle
type LikeToggleResponse struct {
	Liked     bool  `json:"liked" example:"true"`
	LikeCount int64 `json:"likeCount" example:"1"`
}
