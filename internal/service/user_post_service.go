package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"community-feed-api/internal/cache"
	"community-feed-api/internal/client"
	"community-feed-api/internal/domain"
	"community-feed-api/internal/dto"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/response"
)

const maxUserPostTitleLen = 150

// UserPostService defines community post submission, reads and moderation
type UserPostService interface {
	SubmitUserPost(ctx context.Context, req *dto.SubmitUserPostRequest, image *dto.FileUpload) (*dto.UserPostResponse, error)
	GetUserPostDetail(ctx context.Context, userPostID uuid.UUID) (*dto.UserPostDetailResponse, error)

	ListPendingUserPosts(ctx context.Context) ([]dto.UserPostResponse, error)
	ApproveUserPost(ctx context.Context, userPostID uuid.UUID) error
	RejectUserPost(ctx context.Context, userPostID uuid.UUID) error
	DeleteUserPost(ctx context.Context, userPostID uuid.UUID) error
}

type userPostServiceImpl struct {
	userPostRepo repository.UserPostRepository
	family       *contentFamily
	storage      client.MediaStorage
	feedCache    cache.FeedCache
	location     *time.Location
	now          func() time.Time
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewUserPostService creates a new instance of UserPostService. location
// decides where the calendar day of the daily submission limit starts.
func NewUserPostService(
	repos *repository.Repositories,
	storage client.MediaStorage,
	feedCache cache.FeedCache,
	location *time.Location,
	m *metrics.Metrics,
	logger *zap.Logger,
) UserPostService {
	if feedCache == nil {
		feedCache = cache.NoopFeedCache{}
	}
	if location == nil {
		location = time.UTC
	}
	return &userPostServiceImpl{
		userPostRepo: repos.UserPosts,
		family:       communityFamily(repos),
		storage:      storage,
		feedCache:    feedCache,
		location:     location,
		now:          time.Now,
		metrics:      m,
		logger:       logger,
	}
}

// CalendarDay returns the date of t in loc, stored as midnight UTC
func CalendarDay(t time.Time, loc *time.Location) datatypes.Date {
	y, m, d := t.In(loc).Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// SubmitUserPost creates a pending post. An author may submit once per
// calendar day; the unique (author, day) index settles concurrent submissions.
func (s *userPostServiceImpl) SubmitUserPost(ctx context.Context, req *dto.SubmitUserPostRequest, image *dto.FileUpload) (*dto.UserPostResponse, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	embedURL := strings.TrimSpace(req.EmbedURL)
	switch {
	case title == "" || body == "":
		s.metrics.RecordUserPostSubmission(metrics.OutcomeInvalid)
		return nil, response.NewAppError(response.ErrCodeValidation, "Title and body are required", "")
	case utf8.RuneCountInString(title) > maxUserPostTitleLen:
		s.metrics.RecordUserPostSubmission(metrics.OutcomeInvalid)
		return nil, response.NewAppError(response.ErrCodeValidation, "Title must be at most 150 characters", "")
	}
	if err := domain.ValidateEmbedURL(embedURL); err != nil {
		s.metrics.RecordUserPostSubmission(metrics.OutcomeInvalid)
		return nil, response.NewAppError(response.ErrCodeValidation, "Only YouTube, Instagram or Facebook links are allowed", err.Error())
	}

	day := CalendarDay(s.now(), s.location)
	exists, err := s.userPostRepo.ExistsOnDay(ctx, actor.ID, day)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check submission limit", err.Error())
	}
	if exists {
		return nil, s.rateLimited(actor)
	}

	var imageKey string
	if image != nil {
		if imageKey, err = uploadImage(ctx, s.storage, client.MediaKindCommunity, actor.ID.String(), image); err != nil {
			s.metrics.RecordUserPostSubmission(metrics.OutcomeInvalid)
			return nil, err
		}
	}

	post := &domain.UserPost{
		AuthorID:    actor.ID,
		AuthorName:  actor.Name,
		Title:       title,
		Body:        body,
		ImageKey:    imageKey,
		EmbedURL:    embedURL,
		IsApproved:  false,
		SubmittedOn: day,
	}
	if err := s.userPostRepo.Create(ctx, post); err != nil {
		discardUpload(ctx, s.storage, imageKey, s.logger)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.rateLimited(actor)
		}
		s.logger.Error("Failed to create user post", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to submit post", err.Error())
	}

	s.metrics.RecordUserPostSubmission(metrics.OutcomeAccepted)
	s.logger.Info("User post submitted",
		zap.String("user_post_id", post.ID.String()),
		zap.String("author_id", actor.ID.String()),
	)
	resp := toUserPostResponse(post, s.storage)
	return &resp, nil
}

func (s *userPostServiceImpl) rateLimited(actor domain.Actor) error {
	s.metrics.RecordUserPostSubmission(metrics.OutcomeRateLimited)
	s.logger.Info("User post rejected by daily limit", zap.String("author_id", actor.ID.String()))
	return response.NewAppError(response.ErrCodeRateLimited, "You can only submit one post per day", "")
}

// GetUserPostDetail returns an approved post with its comment thread and like state
func (s *userPostServiceImpl) GetUserPostDetail(ctx context.Context, userPostID uuid.UUID) (*dto.UserPostDetailResponse, error) {
	post, err := s.userPostRepo.FindByID(ctx, userPostID)
	if err != nil {
		return nil, lookupError(err, "User post not found")
	}
	if !post.IsApproved {
		return nil, response.NewAppError(response.ErrCodeNotFound, "User post not found", "")
	}

	viewer := viewerFrom(ctx)
	count, liked, err := s.family.postLikeState(ctx, post.ID, viewer)
	if err != nil {
		return nil, err
	}
	comments, err := s.family.thread(ctx, post.ID, viewer)
	if err != nil {
		return nil, err
	}

	return &dto.UserPostDetailResponse{
		Post:      toUserPostResponse(post, s.storage),
		Comments:  comments,
		LikeCount: count,
		Liked:     liked,
	}, nil
}

func (s *userPostServiceImpl) ListPendingUserPosts(ctx context.Context) ([]dto.UserPostResponse, error) {
	posts, err := s.userPostRepo.FindPending(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list pending posts", err.Error())
	}
	return toUserPostResponses(posts, s.storage), nil
}

// ApproveUserPost moves a post from Pending to Approved
func (s *userPostServiceImpl) ApproveUserPost(ctx context.Context, userPostID uuid.UUID) error {
	return s.setApproved(ctx, userPostID, true)
}

// RejectUserPost returns a post to Pending
func (s *userPostServiceImpl) RejectUserPost(ctx context.Context, userPostID uuid.UUID) error {
	return s.setApproved(ctx, userPostID, false)
}

func (s *userPostServiceImpl) setApproved(ctx context.Context, userPostID uuid.UUID, approved bool) error {
	if err := s.userPostRepo.SetApproved(ctx, userPostID, approved); err != nil {
		return lookupError(err, "User post not found")
	}

	action := "reject"
	if approved {
		action = "approve"
	}
	s.feedCache.Invalidate(ctx)
	s.metrics.RecordModeration(action)
	s.logger.Info("User post moderated",
		zap.String("user_post_id", userPostID.String()),
		zap.String("action", action),
	)
	return nil
}

// DeleteUserPost removes a post with its comments and likes; its image is queued for cleanup
func (s *userPostServiceImpl) DeleteUserPost(ctx context.Context, userPostID uuid.UUID) error {
	post, err := s.userPostRepo.FindByID(ctx, userPostID)
	if err != nil {
		return lookupError(err, "User post not found")
	}
	if err := s.userPostRepo.Delete(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "User post not found", "")
		}
		s.logger.Error("Failed to delete user post", zap.String("user_post_id", userPostID.String()), zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete user post", err.Error())
	}

	s.feedCache.Invalidate(ctx)
	s.metrics.RecordModeration("delete")
	s.logger.Info("User post deleted", zap.String("user_post_id", userPostID.String()))
	return nil
}
