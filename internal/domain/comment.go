package domain

import "github.com/google/uuid"

// Comment is a comment on an editorial post. ParentID, when set, points to a
// comment on the same post.
type Comment struct {
	BaseModel
	PostID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_comments_post_id" json:"post_id"`
	UserID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	AuthorName string        `gorm:"type:varchar(100)" json:"author_name"`
	ParentID   *uuid.UUID    `gorm:"type:uuid;index:idx_comments_parent_id" json:"parent_id,omitempty"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	Likes      []CommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// UserPostComment mirrors Comment for community posts
type UserPostComment struct {
	BaseModel
	PostID     uuid.UUID             `gorm:"type:uuid;not null;index:idx_user_post_comments_post_id" json:"post_id"`
	UserID     uuid.UUID             `gorm:"type:uuid;not null;index:idx_user_post_comments_user_id" json:"user_id"`
	AuthorName string                `gorm:"type:varchar(100)" json:"author_name"`
	ParentID   *uuid.UUID            `gorm:"type:uuid;index:idx_user_post_comments_parent_id" json:"parent_id,omitempty"`
	Content    string                `gorm:"type:text;not null" json:"content"`
	Likes      []UserPostCommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserPostComment
func (UserPostComment) TableName() string {
	return "user_post_comments"
}
