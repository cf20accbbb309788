package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-feed-api/internal/cache"
	"community-feed-api/internal/client"
	"community-feed-api/internal/domain"
	"community-feed-api/internal/dto"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/response"
	"community-feed-api/internal/util"
)

// maxSlugAttempts bounds the retries after a unique index violation on slug
const maxSlugAttempts = 10

// PostService defines editorial post reads and administration
type PostService interface {
	GetPostDetail(ctx context.Context, slug string) (*dto.PostDetailResponse, error)

	ListPosts(ctx context.Context) ([]dto.EditorialPostResponse, error)
	CreatePost(ctx context.Context, req *dto.CreateEditorialPostRequest) (*dto.EditorialPostResponse, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, req *dto.UpdateEditorialPostRequest) (*dto.EditorialPostResponse, error)
	SetPublished(ctx context.Context, postID uuid.UUID, published bool) (*dto.EditorialPostResponse, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	UploadCover(ctx context.Context, postID uuid.UUID, upload *dto.FileUpload) (*dto.EditorialPostResponse, error)
}

type postServiceImpl struct {
	postRepo   repository.EditorialPostRepository
	orphanRepo repository.MediaOrphanRepository
	family     *contentFamily
	storage    client.MediaStorage
	feedCache  cache.FeedCache
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewPostService creates a new instance of PostService
func NewPostService(
	repos *repository.Repositories,
	storage client.MediaStorage,
	feedCache cache.FeedCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) PostService {
	if feedCache == nil {
		feedCache = cache.NoopFeedCache{}
	}
	return &postServiceImpl{
		postRepo:   repos.EditorialPosts,
		orphanRepo: repos.MediaOrphans,
		family:     editorialFamily(repos),
		storage:    storage,
		feedCache:  feedCache,
		metrics:    m,
		logger:     logger,
	}
}

// GetPostDetail returns a published post with its comment thread and like state
func (s *postServiceImpl) GetPostDetail(ctx context.Context, slug string) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, lookupError(err, "Post not found")
	}
	if !post.Published {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
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

	return &dto.PostDetailResponse{
		Post:      toEditorialPostResponse(post, s.storage, true),
		Comments:  comments,
		LikeCount: count,
		Liked:     liked,
	}, nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context) ([]dto.EditorialPostResponse, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list posts", err.Error())
	}
	result := make([]dto.EditorialPostResponse, len(posts))
	for i, p := range posts {
		result[i] = toEditorialPostResponse(p, s.storage, false)
	}
	return result, nil
}

// CreatePost creates an editorial post. Without an explicit slug one is
// derived from the title and suffixed until free.
func (s *postServiceImpl) CreatePost(ctx context.Context, req *dto.CreateEditorialPostRequest) (*dto.EditorialPostResponse, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" || body == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Title and body are required", "")
	}

	post := &domain.EditorialPost{
		Title:     title,
		Summary:   strings.TrimSpace(req.Summary),
		Body:      req.Body,
		Published: req.Published == nil || *req.Published,
	}

	create := func() error { return s.postRepo.Create(ctx, post) }

	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		post.Slug = util.Slugify(*req.Slug, 0)
		taken, err := s.postRepo.SlugExists(ctx, post.Slug, uuid.Nil)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check slug", err.Error())
		}
		if taken {
			return nil, response.NewAppError(response.ErrCodeValidation, "Slug is already in use", post.Slug)
		}
		if err := create(); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Slug is already in use", post.Slug)
			}
			s.logger.Error("Failed to create post", zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create post", err.Error())
		}
	} else if err := s.saveWithDerivedSlug(ctx, post, create); err != nil {
		return nil, err
	}

	if post.Published {
		s.feedCache.Invalidate(ctx)
		s.metrics.RecordModeration("publish")
	}
	s.logger.Info("Editorial post created",
		zap.String("post_id", post.ID.String()),
		zap.String("slug", post.Slug),
		zap.Bool("published", post.Published),
	)

	resp := toEditorialPostResponse(post, s.storage, true)
	return &resp, nil
}

// UpdatePost changes title, summary or body. An assigned slug never changes;
// a post without one gets it here.
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID uuid.UUID, req *dto.UpdateEditorialPostRequest) (*dto.EditorialPostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err, "Post not found")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Title cannot be empty", "")
		}
		post.Title = title
	}
	if req.Summary != nil {
		post.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Body cannot be empty", "")
		}
		post.Body = *req.Body
	}

	update := func() error { return s.postRepo.Update(ctx, post) }
	if post.Slug == "" {
		err = s.saveWithDerivedSlug(ctx, post, update)
	} else if err = update(); err != nil {
		s.logger.Error("Failed to update post", zap.String("post_id", postID.String()), zap.Error(err))
		err = response.NewAppError(response.ErrCodeInternal, "Failed to update post", err.Error())
	}
	if err != nil {
		return nil, err
	}

	if post.Published {
		s.feedCache.Invalidate(ctx)
	}
	resp := toEditorialPostResponse(post, s.storage, true)
	return &resp, nil
}

// saveWithDerivedSlug assigns the first free slug derived from the title and
// saves. The unique index decides; on a violation the next suffix is tried.
func (s *postServiceImpl) saveWithDerivedSlug(ctx context.Context, post *domain.EditorialPost, save func() error) error {
	base := util.Slugify(post.Title, 0)
	next := 1
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, n, err := s.nextFreeSlug(ctx, base, next, post.ID)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to check slug", err.Error())
		}
		post.Slug = slug

		err = save()
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("Failed to save post", zap.Error(err))
			return response.NewAppError(response.ErrCodeInternal, "Failed to save post", err.Error())
		}
		s.logger.Info("Slug collision, retrying with next suffix", zap.String("slug", slug))
		next = n + 1
	}
	return response.NewAppError(response.ErrCodeInternal, "Failed to assign a unique slug", base)
}

// nextFreeSlug returns the first free candidate among base-from, base-(from+1), ...
// where suffix 1 is base itself, and the suffix it used.
func (s *postServiceImpl) nextFreeSlug(ctx context.Context, base string, from int, excludeID uuid.UUID) (string, int, error) {
	for n := from; ; n++ {
		candidate := util.SlugWithSuffix(base, n)
		exists, err := s.postRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", 0, err
		}
		if !exists {
			return candidate, n, nil
		}
	}
}

func (s *postServiceImpl) SetPublished(ctx context.Context, postID uuid.UUID, published bool) (*dto.EditorialPostResponse, error) {
	if err := s.postRepo.SetPublished(ctx, postID, published); err != nil {
		return nil, lookupError(err, "Post not found")
	}
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err, "Post not found")
	}

	action := "unpublish"
	if published {
		action = "publish"
	}
	s.feedCache.Invalidate(ctx)
	s.metrics.RecordModeration(action)
	s.logger.Info("Editorial post visibility changed",
		zap.String("post_id", postID.String()),
		zap.Bool("published", published),
	)

	resp := toEditorialPostResponse(post, s.storage, true)
	return &resp, nil
}

// DeletePost removes a post with its comments and likes; its cover is queued for cleanup
func (s *postServiceImpl) DeletePost(ctx context.Context, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return lookupError(err, "Post not found")
	}
	if err := s.postRepo.Delete(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		s.logger.Error("Failed to delete post", zap.String("post_id", postID.String()), zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete post", err.Error())
	}

	s.feedCache.Invalidate(ctx)
	s.metrics.RecordModeration("delete")
	s.logger.Info("Editorial post deleted", zap.String("post_id", postID.String()))
	return nil
}

// UploadCover stores a new cover image; the replaced one is queued for cleanup
func (s *postServiceImpl) UploadCover(ctx context.Context, postID uuid.UUID, upload *dto.FileUpload) (*dto.EditorialPostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err, "Post not found")
	}

	key, err := uploadImage(ctx, s.storage, client.MediaKindCover, post.ID.String(), upload)
	if err != nil {
		return nil, err
	}

	previous := post.CoverKey
	post.CoverKey = key
	if err := s.postRepo.Update(ctx, post); err != nil {
		discardUpload(ctx, s.storage, key, s.logger)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save cover", err.Error())
	}
	if previous != "" {
		if err := s.orphanRepo.Create(ctx, previous); err != nil {
			s.logger.Warn("Failed to queue replaced cover", zap.String("key", previous), zap.Error(err))
		}
	}

	if post.Published {
		s.feedCache.Invalidate(ctx)
	}
	resp := toEditorialPostResponse(post, s.storage, true)
	return &resp, nil
}
