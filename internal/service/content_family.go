package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
	"community-feed-api/internal/dto"
	"community-feed-api/internal/loader"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/response"
)

// contentFamily groups the comment and like stores of one post family with
// its visibility rule, so editorial and community posts share one engine.
type contentFamily struct {
	postTarget    string
	commentTarget string
	comments      repository.CommentRepository
	postLikes     repository.LikeRepository
	commentLikes  repository.LikeRepository
	// visible returns a NOT_FOUND AppError unless the post exists and is public
	visible func(ctx context.Context, postID uuid.UUID) error
}

func editorialFamily(repos *repository.Repositories) *contentFamily {
	return &contentFamily{
		postTarget:    metrics.TargetPost,
		commentTarget: metrics.TargetComment,
		comments:      repos.Comments,
		postLikes:     repos.PostLikes,
		commentLikes:  repos.CommentLikes,
		visible: func(ctx context.Context, postID uuid.UUID) error {
			post, err := repos.EditorialPosts.FindByID(ctx, postID)
			if err != nil {
				return lookupError(err, "Post not found")
			}
			if !post.Published {
				return response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
			}
			return nil
		},
	}
}

func communityFamily(repos *repository.Repositories) *contentFamily {
	return &contentFamily{
		postTarget:    metrics.TargetUserPost,
		commentTarget: metrics.TargetUserPostComment,
		comments:      repos.UserPostComments,
		postLikes:     repos.UserPostLikes,
		commentLikes:  repos.UserPostCommentLikes,
		visible: func(ctx context.Context, postID uuid.UUID) error {
			post, err := repos.UserPosts.FindByID(ctx, postID)
			if err != nil {
				return lookupError(err, "User post not found")
			}
			if !post.IsApproved {
				return response.NewAppError(response.ErrCodeNotFound, "User post not found", "")
			}
			return nil
		},
	}
}

// lookupError maps a repository lookup error to NOT_FOUND or INTERNAL_ERROR
func lookupError(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeNotFound, notFoundMsg, "")
	}
	return response.NewAppError(response.ErrCodeInternal, "Failed to load data", err.Error())
}

// visibleComment loads a comment whose post is publicly visible
func (f *contentFamily) visibleComment(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := f.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, lookupError(err, "Comment not found")
	}
	if err := f.visible(ctx, comment.PostID); err != nil {
		if response.HasCode(err, response.ErrCodeNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, err
	}
	return comment, nil
}

// postLikeState returns the like count of a post and whether viewer liked it
func (f *contentFamily) postLikeState(ctx context.Context, postID uuid.UUID, viewer *domain.Actor) (int64, bool, error) {
	count, err := f.postLikes.Count(ctx, postID)
	if err != nil {
		return 0, false, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	if viewer == nil {
		return count, false, nil
	}
	liked, err := f.postLikes.Exists(ctx, postID, viewer.ID)
	if err != nil {
		return 0, false, response.NewAppError(response.ErrCodeInternal, "Failed to load like state", err.Error())
	}
	return count, liked, nil
}

// decorate converts comments and fills their like counts and viewer state
func (f *contentFamily) decorate(ctx context.Context, comments []*domain.Comment, viewer *domain.Actor) ([]dto.CommentResponse, error) {
	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	counts, err := f.commentLikes.CountByTargets(ctx, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count comment likes", err.Error())
	}
	liked := map[uuid.UUID]bool{}
	if viewer != nil {
		if liked, err = f.commentLikes.LikedTargets(ctx, viewer.ID, ids); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comment like state", err.Error())
		}
	}

	result := make([]dto.CommentResponse, len(comments))
	for i, c := range comments {
		result[i] = toCommentResponse(c)
		result[i].LikeCount = counts[c.ID]
		result[i].Liked = liked[c.ID]
	}
	return result, nil
}

// thread returns the top-level comments of a post, each with its direct replies
func (f *contentFamily) thread(ctx context.Context, postID uuid.UUID, viewer *domain.Actor) ([]dto.CommentResponse, error) {
	top, err := f.comments.FindTopLevelByPost(ctx, postID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comments", err.Error())
	}

	topIDs := make([]uuid.UUID, len(top))
	for i, c := range top {
		topIDs[i] = c.ID
	}
	replies, err := loader.NewReplyLoader(f.comments).LoadMany(ctx, topIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load replies", err.Error())
	}

	all := append([]*domain.Comment{}, top...)
	for _, id := range topIDs {
		all = append(all, replies[id]...)
	}
	decorated, err := f.decorate(ctx, all, viewer)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]dto.CommentResponse, len(decorated))
	for _, c := range decorated {
		byID[c.ID] = c
	}

	result := make([]dto.CommentResponse, len(top))
	for i, c := range top {
		resp := byID[c.ID]
		for _, r := range replies[c.ID] {
			resp.Replies = append(resp.Replies, byID[r.ID])
		}
		result[i] = resp
	}
	return result, nil
}

// viewerFrom returns the authenticated actor of ctx or nil
func viewerFrom(ctx context.Context) *domain.Actor {
	actor, ok := actorFrom(ctx)
	if !ok {
		return nil
	}
	return &actor
}
