package domain

// EditorialPost is an article published by moderators
type EditorialPost struct {
	BaseModel
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Slug      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_editorial_posts_slug" json:"slug"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CoverKey  string    `gorm:"type:text" json:"cover_key,omitempty"`
	Published bool      `gorm:"not null;index:idx_editorial_posts_published" json:"published"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes     []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for EditorialPost
func (EditorialPost) TableName() string {
	return "editorial_posts"
}
