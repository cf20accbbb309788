package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserPost is a community submission gated by moderation.
// SubmittedOn is the calendar day of submission in the moderation time zone;
// together with AuthorID it enforces one submission per author per day.
type UserPost struct {
	BaseModel
	AuthorID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_user_posts_author_day,priority:1" json:"author_id"`
	AuthorName  string            `gorm:"type:varchar(100)" json:"author_name"`
	Title       string            `gorm:"type:varchar(150);not null" json:"title"`
	Body        string            `gorm:"type:text;not null" json:"body"`
	ImageKey    string            `gorm:"type:text" json:"image_key,omitempty"`
	EmbedURL    string            `gorm:"type:text" json:"embed_url,omitempty"`
	IsApproved  bool              `gorm:"not null;index:idx_user_posts_is_approved" json:"is_approved"`
	SubmittedOn datatypes.Date    `gorm:"not null;uniqueIndex:uq_user_posts_author_day,priority:2" json:"submitted_on"`
	Comments    []UserPostComment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes       []UserPostLike    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserPost
func (UserPost) TableName() string {
	return "user_posts"
}

// EmbedKind classifies the attached embed URL
func (p *UserPost) EmbedKind() EmbedKind {
	return ClassifyEmbed(p.EmbedURL)
}

// EmbedPlayerURL returns the URL a player iframe should load
func (p *UserPost) EmbedPlayerURL() string {
	if p.EmbedKind() == EmbedYouTube {
		return NormalizeYouTubeEmbed(p.EmbedURL)
	}
	return p.EmbedURL
}
