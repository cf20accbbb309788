package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
)

func TestInteractionService_ToggleLike(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedEditorial(t, "hello", true, time.Now())
	ctxA, _ := actorCtx("alice")

	res, err := env.interactions.ToggleLike(ctxA, post.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikeCount)

	res, err = env.interactions.ToggleLike(ctxA, post.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(0), res.LikeCount)
}

func TestInteractionService_ToggleLike_Errors(t *testing.T) {
	env := newTestEnv(t)
	draft := env.seedEditorial(t, "draft", false, time.Now())
	pending := env.seedUserPost(t, false, time.Now())
	ctxA, _ := actorCtx("alice")

	tests := []struct {
		name string
		call func() error
		code string
	}{
		{"실패: 인증 없음", func() error {
			_, err := env.interactions.ToggleLike(context.Background(), draft.ID)
			return err
		}, response.ErrCodeUnauthorized},
		{"실패: unpublished post", func() error {
			_, err := env.interactions.ToggleLike(ctxA, draft.ID)
			return err
		}, response.ErrCodeNotFound},
		{"실패: missing post", func() error {
			_, err := env.interactions.ToggleLike(ctxA, uuid.New())
			return err
		}, response.ErrCodeNotFound},
		{"실패: unapproved user post", func() error {
			_, err := env.interactions.ToggleUserPostLike(ctxA, pending.ID)
			return err
		}, response.ErrCodeNotFound},
		{"실패: missing comment", func() error {
			_, err := env.interactions.ToggleCommentLike(ctxA, uuid.New())
			return err
		}, response.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, response.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestInteractionService_ToggleLike_LostDeleteRace(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedEditorial(t, "race", true, time.Now())
	ctxA, actor := actorCtx("alice")

	_, err := env.interactions.ToggleLike(ctxA, post.ID)
	require.NoError(t, err)

	// another request removes the row between our insert attempt and delete
	likes := env.repos.PostLikes
	env.repos.PostLikes = &MockLikeRepository{
		LikeRepository: likes,
		DeleteFunc: func(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
			_, err := likes.Delete(ctx, targetID, userID)
			return false, err
		},
	}
	env.build()

	res, err := env.interactions.ToggleLike(ctxA, post.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(0), res.LikeCount)

	exists, err := likes.Exists(context.Background(), post.ID, actor.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

// actor A likes P, then A toggles again while B likes P concurrently
func TestInteractionService_ConcurrentActors(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedEditorial(t, "scenario", true, time.Now())
	ctxA, actorA := actorCtx("alice")
	ctxB, actorB := actorCtx("bob")

	res, err := env.interactions.ToggleLike(ctxA, post.ID)
	require.NoError(t, err)
	require.True(t, res.Liked)

	var wg sync.WaitGroup
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = env.interactions.ToggleLike(ctxA, post.ID)
	}()
	go func() {
		defer wg.Done()
		_, errB = env.interactions.ToggleLike(ctxB, post.ID)
	}()
	wg.Wait()
	require.NoError(t, errA)
	require.NoError(t, errB)

	var countA, countB int64
	env.db.Table("likes").Where("post_id = ? AND user_id = ?", post.ID, actorA.ID).Count(&countA)
	env.db.Table("likes").Where("post_id = ? AND user_id = ?", post.ID, actorB.ID).Count(&countB)
	assert.Equal(t, int64(0), countA)
	assert.Equal(t, int64(1), countB)
}

func TestInteractionService_PostComment(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedEditorial(t, "commented", true, time.Now())
	other := env.seedEditorial(t, "other", true, time.Now())
	ctxA, actor := actorCtx("alice")

	top, err := env.interactions.PostComment(ctxA, post.ID, &dto.CreateCommentRequest{Content: "  first!  "})
	require.NoError(t, err)
	assert.Equal(t, "first!", top.Content)
	assert.Equal(t, actor.ID, top.UserID)
	assert.Equal(t, "alice", top.AuthorName)
	assert.Nil(t, top.ParentID)

	t.Run("성공: reply on same post", func(t *testing.T) {
		reply, err := env.interactions.PostComment(ctxA, post.ID, &dto.CreateCommentRequest{Content: "reply", ParentID: &top.ID})
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, top.ID, *reply.ParentID)

		replies, err := env.interactions.ListReplies(context.Background(), top.ID)
		require.NoError(t, err)
		require.Len(t, replies, 1)
		assert.Equal(t, "reply", replies[0].Content)
	})

	t.Run("실패: whitespace only", func(t *testing.T) {
		_, err := env.interactions.PostComment(ctxA, post.ID, &dto.CreateCommentRequest{Content: " \n\t "})
		assert.True(t, response.HasCode(err, response.ErrCodeValidation))
	})

	t.Run("실패: parent on a different post", func(t *testing.T) {
		_, err := env.interactions.PostComment(ctxA, other.ID, &dto.CreateCommentRequest{Content: "x", ParentID: &top.ID})
		assert.True(t, response.HasCode(err, response.ErrCodeValidation))
	})

	t.Run("실패: unknown parent", func(t *testing.T) {
		missing := uuid.New()
		_, err := env.interactions.PostComment(ctxA, post.ID, &dto.CreateCommentRequest{Content: "x", ParentID: &missing})
		assert.True(t, response.HasCode(err, response.ErrCodeValidation))
	})

	t.Run("실패: anonymous", func(t *testing.T) {
		_, err := env.interactions.PostComment(context.Background(), post.ID, &dto.CreateCommentRequest{Content: "x"})
		assert.True(t, response.HasCode(err, response.ErrCodeUnauthorized))
	})
}

func TestInteractionService_UserPostComment_RequiresApproval(t *testing.T) {
	env := newTestEnv(t)
	pending := env.seedUserPost(t, false, time.Now())
	approved := env.seedUserPost(t, true, time.Now())
	ctxA, _ := actorCtx("alice")

	_, err := env.interactions.PostUserPostComment(ctxA, pending.ID, &dto.CreateCommentRequest{Content: "hi"})
	assert.True(t, response.HasCode(err, response.ErrCodeNotFound))

	c, err := env.interactions.PostUserPostComment(ctxA, approved.ID, &dto.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, approved.ID, c.PostID)

	res, err := env.interactions.ToggleUserPostCommentLike(ctxA, c.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	// community comments are a separate family
	_, err = env.interactions.ToggleCommentLike(ctxA, c.ID)
	assert.True(t, response.HasCode(err, response.ErrCodeNotFound))
}

func TestInteractionService_CommentLikeHiddenWhenPostUnpublished(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedEditorial(t, "soon-hidden", true, time.Now())
	ctxA, _ := actorCtx("alice")

	c, err := env.interactions.PostComment(ctxA, post.ID, &dto.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)

	_, err = env.posts.SetPublished(context.Background(), post.ID, false)
	require.NoError(t, err)

	_, err = env.interactions.ToggleCommentLike(ctxA, c.ID)
	assert.True(t, response.HasCode(err, response.ErrCodeNotFound))

	_, err = env.interactions.ListReplies(ctxA, c.ID)
	assert.True(t, response.HasCode(err, response.ErrCodeNotFound))
}

// **Feature: community-feed, Property 1: toggling a like twice restores the original state**
func TestInteractionService_ToggleInvolution_Property(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedEditorial(t, "property", true, time.Now())
	ctxA, _ := actorCtx("alice")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("even number of toggles leaves the like unchanged", prop.ForAll(
		func(pairs int) bool {
			before, err := env.repos.PostLikes.Count(context.Background(), post.ID)
			if err != nil {
				return false
			}
			for i := 0; i < pairs*2; i++ {
				if _, err := env.interactions.ToggleLike(ctxA, post.ID); err != nil {
					return false
				}
			}
			after, err := env.repos.PostLikes.Count(context.Background(), post.ID)
			return err == nil && before == after
		},
		gen.IntRange(1, 3),
	))

	properties.TestingRun(t)
}
