package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest represents the request to update the caller's profile. All fields are optional.
// @Description username: 3 to 20 characters of letters, digits, dot, underscore or hyphen, unique ignoring case
// @Description avatar must be one of the configured avatars
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=20,username" example:"maria.s"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=300" example:"Living with MCS since 2015"`
	Avatar   *string `json:"avatar,omitempty" example:"avatars/avatar2.png"`
}

// ProfileResponse represents a public profile
type ProfileResponse struct {
	UserID    uuid.UUID `json:"userId" example:"b2c3d4e5-f6a7-8901-bcde-f12345678901"`
	Username  string    `json:"username" example:"maria.s"`
	Avatar    string    `json:"avatar" example:"avatars/avatar1.png"`
	Bio       string    `json:"bio" example:"Living with MCS since 2015"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T14:20:00Z"`
}

// ProfileDetailResponse is a profile with the user's approved community posts
type ProfileDetailResponse struct {
	Profile ProfileResponse    `json:"profile"`
	Posts   []UserPostResponse `json:"posts"`
}
