package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// SubmitUserPostRequest represents a community post submission.
// It binds from JSON or from multipart form fields; the image travels as the "image" form file.
// @Description embedUrl is optional and must point to YouTube, Instagram or Facebook
type SubmitUserPostRequest struct {
	Title    string `json:"title" form:"title" binding:"required,max=150" example:"My first month after diagnosis"`
	Body     string `json:"body" form:"body" binding:"required" example:"What helped me most was..."`
	EmbedURL string `json:"embedUrl,omitempty" form:"embedUrl" example:"https://youtu.be/abc123"`
}

// FileUpload is an uploaded blob handed to media storage
type FileUpload struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	Size        int64
}

// UserPostResponse represents a community post
// @Description embedKind is youtube, instagram, facebook or empty; embedPlayerUrl is the iframe-ready URL
type UserPostResponse struct {
	ID             uuid.UUID `json:"userPostId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	AuthorID       uuid.UUID `json:"authorId" example:"b2c3d4e5-f6a7-8901-bcde-f12345678901"`
	AuthorName     string    `json:"authorName" example:"maria"`
	Title          string    `json:"title" example:"My first month after diagnosis"`
	Body           string    `json:"body" example:"What helped me most was..."`
	ImageURL       string    `json:"imageUrl,omitempty"`
	EmbedURL       string    `json:"embedUrl,omitempty" example:"https://youtu.be/abc123"`
	EmbedKind      string    `json:"embedKind,omitempty" example:"youtube"`
	EmbedPlayerURL string    `json:"embedPlayerUrl,omitempty" example:"https://www.youtube.com/embed/abc123"`
	IsApproved     bool      `json:"isApproved" example:"false"`
	SubmittedOn    string    `json:"submittedOn" example:"2024-01-15"`
	CreatedAt      time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}

// UserPostDetailResponse is an approved community post with comments and like state
type UserPostDetailResponse struct {
	Post      UserPostResponse  `json:"post"`
	Comments  []CommentResponse `json:"comments"`
	LikeCount int64             `json:"likeCount" example:"3"`
	Liked     bool              `json:"liked" example:"false"`
}
