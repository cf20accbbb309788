package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
	"community-feed-api/internal/dto"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/response"
)

// InteractionService defines likes, comments and replies on both post families
type InteractionService interface {
	ToggleLike(ctx context.Context, postID uuid.UUID) (*dto.LikeToggleResponse, error)
	ToggleCommentLike(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error)
	PostComment(ctx context.Context, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error)

	ToggleUserPostLike(ctx context.Context, userPostID uuid.UUID) (*dto.LikeToggleResponse, error)
	ToggleUserPostCommentLike(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error)
	PostUserPostComment(ctx context.Context, userPostID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListUserPostReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error)
}

type interactionServiceImpl struct {
	editorial *contentFamily
	community *contentFamily
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewInteractionService creates a new instance of InteractionService
func NewInteractionService(repos *repository.Repositories, m *metrics.Metrics, logger *zap.Logger) InteractionService {
	return &interactionServiceImpl{
		editorial: editorialFamily(repos),
		community: communityFamily(repos),
		metrics:   m,
		logger:    logger,
	}
}

func (s *interactionServiceImpl) ToggleLike(ctx context.Context, postID uuid.UUID) (*dto.LikeToggleResponse, error) {
	return s.togglePostLike(ctx, s.editorial, postID)
}

func (s *interactionServiceImpl) ToggleUserPostLike(ctx context.Context, userPostID uuid.UUID) (*dto.LikeToggleResponse, error) {
	return s.togglePostLike(ctx, s.community, userPostID)
}

func (s *interactionServiceImpl) ToggleCommentLike(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error) {
	return s.toggleCommentLike(ctx, s.editorial, commentID)
}

func (s *interactionServiceImpl) ToggleUserPostCommentLike(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error) {
	return s.toggleCommentLike(ctx, s.community, commentID)
}

func (s *interactionServiceImpl) PostComment(ctx context.Context, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	return s.postComment(ctx, s.editorial, postID, req)
}

func (s *interactionServiceImpl) PostUserPostComment(ctx context.Context, userPostID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	return s.postComment(ctx, s.community, userPostID, req)
}

func (s *interactionServiceImpl) ListReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error) {
	return s.listReplies(ctx, s.editorial, commentID)
}

func (s *interactionServiceImpl) ListUserPostReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error) {
	return s.listReplies(ctx, s.community, commentID)
}

func (s *interactionServiceImpl) togglePostLike(ctx context.Context, f *contentFamily, postID uuid.UUID) (*dto.LikeToggleResponse, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if err := f.visible(ctx, postID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, f.postLikes, f.postTarget, postID, actor.ID)
}

func (s *interactionServiceImpl) toggleCommentLike(ctx context.Context, f *contentFamily, commentID uuid.UUID) (*dto.LikeToggleResponse, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := f.visibleComment(ctx, commentID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, f.commentLikes, f.commentTarget, commentID, actor.ID)
}

// toggle inserts the like and, when the row already exists, deletes it.
// The unique index on (target, user) arbitrates concurrent toggles; a delete
// that finds nothing lost a race, so the stored state is re-read.
func (s *interactionServiceImpl) toggle(ctx context.Context, likes repository.LikeRepository, target string, targetID, userID uuid.UUID) (*dto.LikeToggleResponse, error) {
	created, err := likes.CreateIfAbsent(ctx, targetID, userID)
	if err != nil {
		s.logger.Error("Failed to create like", zap.String("target", target), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle like", err.Error())
	}

	liked := true
	if !created {
		deleted, err := likes.Delete(ctx, targetID, userID)
		if err != nil {
			s.logger.Error("Failed to delete like", zap.String("target", target), zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle like", err.Error())
		}
		liked = false
		if !deleted {
			if liked, err = likes.Exists(ctx, targetID, userID); err != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle like", err.Error())
			}
		}
	}

	count, err := likes.Count(ctx, targetID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}

	s.metrics.RecordLikeToggle(target, liked)
	return &dto.LikeToggleResponse{Liked: liked, LikeCount: count}, nil
}

func (s *interactionServiceImpl) postComment(ctx context.Context, f *contentFamily, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Comment cannot be empty", "")
	}

	if err := f.visible(ctx, postID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := f.comments.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Parent comment not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load parent comment", err.Error())
		}
		if parent.PostID != postID {
			return nil, response.NewAppError(response.ErrCodeValidation, "Parent comment belongs to a different post", "")
		}
	}

	comment := &domain.Comment{
		PostID:     postID,
		UserID:     actor.ID,
		AuthorName: actor.Name,
		ParentID:   req.ParentID,
		Content:    content,
	}
	if err := f.comments.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment", zap.String("post_id", postID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	s.metrics.IncrementCommentCreated(f.postTarget)
	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *interactionServiceImpl) listReplies(ctx context.Context, f *contentFamily, commentID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := f.visibleComment(ctx, commentID); err != nil {
		return nil, err
	}

	replies, err := f.comments.FindByParentIDs(ctx, []uuid.UUID{commentID})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load replies", err.Error())
	}
	return f.decorate(ctx, replies[commentID], viewerFrom(ctx))
}
