package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
)

// withClock pins the submission clock of the user post service
func (e *testEnv) withClock(now func() time.Time) {
	e.userPosts.(*userPostServiceImpl).now = now
}

func TestCalendarDay(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	instant := time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-15", time.Time(CalendarDay(instant, time.UTC)).Format(dateLayout))
	assert.Equal(t, "2024-01-16", time.Time(CalendarDay(instant, kst)).Format(dateLayout))
	assert.Equal(t, time.UTC, time.Time(CalendarDay(instant, kst)).Location())
}

func TestUserPostService_SubmitUserPost(t *testing.T) {
	env := newTestEnv(t)
	ctxA, actor := actorCtx("alice")
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	env.withClock(func() time.Time { return day })

	resp, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{
		Title:    "  My story  ",
		Body:     "It started last year",
		EmbedURL: "https://youtu.be/abc123",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "My story", resp.Title)
	assert.Equal(t, actor.ID, resp.AuthorID)
	assert.Equal(t, "alice", resp.AuthorName)
	assert.False(t, resp.IsApproved)
	assert.Equal(t, "2024-03-01", resp.SubmittedOn)
	assert.Equal(t, "youtube", resp.EmbedKind)
	assert.Equal(t, "https://www.youtube.com/embed/abc123", resp.EmbedPlayerURL)

	t.Run("실패: second submission on the same day", func(t *testing.T) {
		env.withClock(func() time.Time { return day.Add(10 * time.Hour) })
		_, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "again", Body: "b"}, nil)
		require.Error(t, err)
		assert.True(t, response.HasCode(err, response.ErrCodeRateLimited))
		assert.Equal(t, "You can only submit one post per day", err.(*response.AppError).Message)
	})

	t.Run("성공: next day", func(t *testing.T) {
		env.withClock(func() time.Time { return day.Add(24 * time.Hour) })
		resp, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "again", Body: "b"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-02", resp.SubmittedOn)
	})

	t.Run("성공: another author on the same day", func(t *testing.T) {
		env.withClock(func() time.Time { return day })
		ctxB, _ := actorCtx("bob")
		_, err := env.userPosts.SubmitUserPost(ctxB, &dto.SubmitUserPostRequest{Title: "hi", Body: "b"}, nil)
		require.NoError(t, err)
	})
}

func TestUserPostService_SubmitUserPost_Validation(t *testing.T) {
	env := newTestEnv(t)

	longTitle := strings.Repeat("가", 151)
	tests := []struct {
		name     string
		ctx      func() context.Context
		req      *dto.SubmitUserPostRequest
		wantCode string
	}{
		{"실패: anonymous", func() context.Context { return context.Background() },
			&dto.SubmitUserPostRequest{Title: "t", Body: "b"}, response.ErrCodeUnauthorized},
		{"실패: blank title", nil, &dto.SubmitUserPostRequest{Title: " ", Body: "b"}, response.ErrCodeValidation},
		{"실패: blank body", nil, &dto.SubmitUserPostRequest{Title: "t", Body: ""}, response.ErrCodeValidation},
		{"실패: title too long", nil, &dto.SubmitUserPostRequest{Title: longTitle, Body: "b"}, response.ErrCodeValidation},
		{"실패: embed from another provider", nil,
			&dto.SubmitUserPostRequest{Title: "t", Body: "b", EmbedURL: "https://vimeo.com/1"}, response.ErrCodeValidation},
		{"실패: provider only in the path", nil,
			&dto.SubmitUserPostRequest{Title: "t", Body: "b", EmbedURL: "https://evil.com/youtube.com-fake"}, response.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := actorCtx("carol")
			if tt.ctx != nil {
				ctx = tt.ctx()
			}
			_, err := env.userPosts.SubmitUserPost(ctx, tt.req, nil)
			require.Error(t, err)
			assert.True(t, response.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	t.Run("성공: 150 characters", func(t *testing.T) {
		ctx, _ := actorCtx("dave")
		title := strings.Repeat("가", 150)
		_, err := env.userPosts.SubmitUserPost(ctx, &dto.SubmitUserPostRequest{Title: title, Body: "b"}, nil)
		assert.NoError(t, err)
	})

	t.Run("성공: lookalike host passes the substring check", func(t *testing.T) {
		ctx, _ := actorCtx("erin")
		resp, err := env.userPosts.SubmitUserPost(ctx, &dto.SubmitUserPostRequest{
			Title: "t", Body: "b", EmbedURL: "https://notyoutube.com.evil.org/v",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "youtube", resp.EmbedKind)
	})
}

func TestUserPostService_SubmitUserPost_TimezoneBoundary(t *testing.T) {
	env := newTestEnv(t)
	env.userPosts = NewUserPostService(env.repos, env.storage, env.cache, time.FixedZone("KST", 9*60*60), env.metrics, zap.NewNop())
	ctxA, _ := actorCtx("alice")

	// 23:30 and 00:30 in KST, the same UTC date
	env.withClock(func() time.Time { return time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC) })
	first, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "late", Body: "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", first.SubmittedOn)

	env.withClock(func() time.Time { return time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC) })
	second, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "early", Body: "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", second.SubmittedOn)
}

func TestUserPostService_SubmitUserPost_LostRace(t *testing.T) {
	env := newTestEnv(t)
	// the existence check misses a concurrent submission; the unique index catches it
	env.repos.UserPosts = &MockUserPostRepository{
		UserPostRepository: env.repos.UserPosts,
		ExistsOnDayFunc: func(ctx context.Context, authorID uuid.UUID, day datatypes.Date) (bool, error) {
			return false, nil
		},
	}
	env.build()
	ctxA, _ := actorCtx("alice")

	_, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "one", Body: "b"}, nil)
	require.NoError(t, err)

	image := &dto.FileUpload{Reader: bytes.NewReader([]byte("png")), FileName: "a.png", ContentType: "image/png", Size: 3}
	_, err = env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "two", Body: "b"}, image)
	assert.True(t, response.HasCode(err, response.ErrCodeRateLimited))

	// the image uploaded for the rejected row is removed again
	require.Len(t, env.storage.Deleted, 1)
	assert.False(t, env.storage.Has(env.storage.Deleted[0]))
}

func TestUserPostService_SubmitUserPost_WithImage(t *testing.T) {
	env := newTestEnv(t)
	ctxA, actor := actorCtx("alice")

	resp, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "pic", Body: "b"}, &dto.FileUpload{
		Reader:      bytes.NewReader([]byte("gif")),
		FileName:    "anim.gif",
		ContentType: "image/gif",
		Size:        3,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.ImageURL, "community/"+actor.ID.String()+"/")
	assert.Len(t, env.storage.Objects, 1)

	t.Run("실패: wrong content type", func(t *testing.T) {
		ctxB, _ := actorCtx("bob")
		_, err := env.userPosts.SubmitUserPost(ctxB, &dto.SubmitUserPostRequest{Title: "doc", Body: "b"}, &dto.FileUpload{
			Reader:      bytes.NewReader([]byte("%PDF")),
			FileName:    "doc.pdf",
			ContentType: "application/pdf",
			Size:        4,
		})
		assert.True(t, response.HasCode(err, response.ErrCodeValidation))
	})
}

func TestUserPostService_Moderation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ctxA, _ := actorCtx("alice")

	submitted, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "mod", Body: "b"}, nil)
	require.NoError(t, err)

	pending, err := env.userPosts.ListPendingUserPosts(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, submitted.ID, pending[0].ID)

	_, err = env.userPosts.GetUserPostDetail(ctx, submitted.ID)
	assert.True(t, response.HasCode(err, response.ErrCodeNotFound))

	_, version, _ := env.cache.Get(ctx, "all")
	env.cache.Set(ctx, "all", version, []byte("stale"))
	require.NoError(t, env.userPosts.ApproveUserPost(ctx, submitted.ID))
	_, _, ok := env.cache.Get(ctx, "all")
	assert.False(t, ok)

	detail, err := env.userPosts.GetUserPostDetail(ctxA, submitted.ID)
	require.NoError(t, err)
	assert.True(t, detail.Post.IsApproved)
	assert.Empty(t, detail.Comments)

	pending, err = env.userPosts.ListPendingUserPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, env.userPosts.RejectUserPost(ctx, submitted.ID))
	_, err = env.userPosts.GetUserPostDetail(ctx, submitted.ID)
	assert.True(t, response.HasCode(err, response.ErrCodeNotFound))

	assert.True(t, response.HasCode(env.userPosts.ApproveUserPost(ctx, uuid.New()), response.ErrCodeNotFound))
	assert.True(t, response.HasCode(env.userPosts.RejectUserPost(ctx, uuid.New()), response.ErrCodeNotFound))
}

func TestUserPostService_GetUserPostDetail_Thread(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedUserPost(t, true, time.Now())
	ctxA, _ := actorCtx("alice")

	top, err := env.interactions.PostUserPostComment(ctxA, post.ID, &dto.CreateCommentRequest{Content: "top"})
	require.NoError(t, err)
	_, err = env.interactions.PostUserPostComment(ctxA, post.ID, &dto.CreateCommentRequest{Content: "r", ParentID: &top.ID})
	require.NoError(t, err)
	_, err = env.interactions.ToggleUserPostLike(ctxA, post.ID)
	require.NoError(t, err)

	detail, err := env.userPosts.GetUserPostDetail(ctxA, post.ID)
	require.NoError(t, err)
	assert.True(t, detail.Liked)
	assert.Equal(t, int64(1), detail.LikeCount)
	require.Len(t, detail.Comments, 1)
	assert.Len(t, detail.Comments[0].Replies, 1)
}

func TestUserPostService_DeleteUserPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ctxA, _ := actorCtx("alice")

	submitted, err := env.userPosts.SubmitUserPost(ctxA, &dto.SubmitUserPostRequest{Title: "bye", Body: "b"}, &dto.FileUpload{
		Reader: bytes.NewReader([]byte("x")), FileName: "x.webp", ContentType: "image/webp", Size: 1,
	})
	require.NoError(t, err)
	require.NoError(t, env.userPosts.ApproveUserPost(ctx, submitted.ID))
	c, err := env.interactions.PostUserPostComment(ctxA, submitted.ID, &dto.CreateCommentRequest{Content: "c"})
	require.NoError(t, err)
	_, err = env.interactions.ToggleUserPostCommentLike(ctxA, c.ID)
	require.NoError(t, err)

	require.NoError(t, env.userPosts.DeleteUserPost(ctx, submitted.ID))

	for _, table := range []string{"user_posts", "user_post_comments", "user_post_likes", "user_post_comment_likes"} {
		var count int64
		require.NoError(t, env.db.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
	orphans, err := env.repos.MediaOrphans.FindBatch(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, orphans, 1)

	assert.True(t, response.HasCode(env.userPosts.DeleteUserPost(ctx, submitted.ID), response.ErrCodeNotFound))
}
