package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	FindByUsername(ctx context.Context, username string) (*domain.Profile, error)
	UsernameTaken(ctx context.Context, username string, excludeUserID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*domain.Profile, error)
}

type profileRepositoryImpl struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}

func (r *profileRepositoryImpl) Create(ctx context.Context, profile *domain.Profile) error {
	profile.UsernameKey = usernameKey(profile.Username)
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepositoryImpl) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UsernameKey = usernameKey(profile.Username)
	return r.db.WithContext(ctx).
		Model(profile).
		Select("username", "username_key", "avatar", "bio", "updated_at").
		Updates(profile).Error
}

func (r *profileRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUsername matches case-insensitively
func (r *profileRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).First(&profile, "username_key = ?", usernameKey(username)).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepositoryImpl) UsernameTaken(ctx context.Context, username string, excludeUserID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("username_key = ?", usernameKey(username))
	if excludeUserID != uuid.Nil {
		q = q.Where("user_id <> ?", excludeUserID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all profiles ordered by username
func (r *profileRepositoryImpl) List(ctx context.Context) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	if err := r.db.WithContext(ctx).Order("username_key ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
