package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-feed-api/internal/client"
	"community-feed-api/internal/config"
	"community-feed-api/internal/domain"
	"community-feed-api/internal/dto"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/response"
	"community-feed-api/internal/util"
)

const (
	minUsernameLen   = 3
	maxUsernameLen   = 20
	maxUsernameTries = 50
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ProfileService defines public profiles and the caller's own profile
type ProfileService interface {
	GetOrCreateProfile(ctx context.Context) (*dto.ProfileResponse, error)
	GetProfileByUsername(ctx context.Context, username string) (*dto.ProfileDetailResponse, error)
	ListProfiles(ctx context.Context) ([]dto.ProfileResponse, error)
	UpdateMyProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileServiceImpl struct {
	profileRepo  repository.ProfileRepository
	userPostRepo repository.UserPostRepository
	storage      client.MediaStorage
	cfg          config.ProfileConfig
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(repos *repository.Repositories, storage client.MediaStorage, cfg config.ProfileConfig, logger *zap.Logger) ProfileService {
	return &profileServiceImpl{
		profileRepo:  repos.Profiles,
		userPostRepo: repos.UserPosts,
		storage:      storage,
		cfg:          cfg,
		validate:     newValidator(),
		logger:       logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegisterValidation(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// mustRegisterValidation panics at construction rather than letting the tag fail on first use
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
	}
}

// GetOrCreateProfile returns the caller's profile, creating it on first access
func (s *profileServiceImpl) GetOrCreateProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.ensureProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileServiceImpl) ensureProfile(ctx context.Context, actor domain.Actor) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, actor.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load profile", err.Error())
	}

	base := seedUsername(actor.Name)
	for n := 1; n <= maxUsernameTries; n++ {
		profile = &domain.Profile{
			UserID:   actor.ID,
			Username: usernameCandidate(base, n),
			Avatar:   s.cfg.DefaultAvatar,
		}

		taken, err := s.profileRepo.UsernameTaken(ctx, profile.Username, uuid.Nil)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check username", err.Error())
		}
		if taken {
			continue
		}

		err = s.profileRepo.Create(ctx, profile)
		if err == nil {
			s.logger.Info("Profile created",
				zap.String("user_id", actor.ID.String()),
				zap.String("username", profile.Username),
			)
			return profile, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("Failed to create profile", zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create profile", err.Error())
		}
		// a concurrent first request may have created it already
		if existing, findErr := s.profileRepo.FindByUserID(ctx, actor.ID); findErr == nil {
			return existing, nil
		}
	}
	return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assign a username", base)
}

// seedUsername derives a valid username base from a display name
func seedUsername(name string) string {
	base := util.SlugifyOr(name, maxUsernameLen, "user")
	if len(base) < minUsernameLen {
		base = "user-" + base
	}
	return base
}

// usernameCandidate returns base with suffix n, trimmed to the username limit
func usernameCandidate(base string, n int) string {
	if n < 2 {
		return base
	}
	suffix := fmt.Sprintf("-%d", n)
	if len(base)+len(suffix) > maxUsernameLen {
		base = strings.TrimRight(base[:maxUsernameLen-len(suffix)], "-")
	}
	return base + suffix
}

// GetProfileByUsername returns a profile, matched ignoring case, with the user's approved posts
func (s *profileServiceImpl) GetProfileByUsername(ctx context.Context, username string) (*dto.ProfileDetailResponse, error) {
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, lookupError(err, "Profile not found")
	}
	posts, err := s.userPostRepo.FindApprovedByAuthor(ctx, profile.UserID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load posts", err.Error())
	}
	return &dto.ProfileDetailResponse{
		Profile: toProfileResponse(profile),
		Posts:   toUserPostResponses(posts, s.storage),
	}, nil
}

func (s *profileServiceImpl) ListProfiles(ctx context.Context) ([]dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list profiles", err.Error())
	}
	result := make([]dto.ProfileResponse, len(profiles))
	for i, p := range profiles {
		result[i] = toProfileResponse(p)
	}
	return result, nil
}

// UpdateMyProfile changes the caller's username, bio or avatar
func (s *profileServiceImpl) UpdateMyProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if trimmed == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Username cannot be empty", "")
		}
		req.Username = &trimmed
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	profile, err := s.ensureProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != profile.Username {
		taken, err := s.profileRepo.UsernameTaken(ctx, *req.Username, actor.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check username", err.Error())
		}
		if taken {
			return nil, response.NewAppError(response.ErrCodeValidation, "Username is already in use", *req.Username)
		}
		profile.Username = *req.Username
	}
	if req.Avatar != nil {
		if !slices.Contains(s.cfg.AllowedAvatars, *req.Avatar) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Avatar is not one of the available avatars", *req.Avatar)
		}
		profile.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		profile.Bio = strings.TrimSpace(*req.Bio)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Username is already in use", profile.Username)
		}
		s.logger.Error("Failed to update profile", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update profile", err.Error())
	}

	resp := toProfileResponse(profile)
	return &resp, nil
}

// validationError flattens validator errors into one VALIDATION_ERROR
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return response.NewAppError(response.ErrCodeValidation, "Invalid request", err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return response.NewAppError(response.ErrCodeValidation, "Invalid profile data", strings.Join(fields, "; "))
}
