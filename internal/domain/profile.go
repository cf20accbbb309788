package domain

import "github.com/google/uuid"

// Profile holds the public face of a user. UsernameKey is the lowercased
// username and carries the case-insensitive unique index.
type Profile struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_profiles_user_id" json:"user_id"`
	Username    string    `gorm:"type:varchar(20);not null" json:"username"`
	UsernameKey string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_profiles_username_key" json:"-"`
	Avatar      string    `gorm:"type:varchar(255);not null" json:"avatar"`
	Bio         string    `gorm:"type:varchar(300)" json:"bio"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
