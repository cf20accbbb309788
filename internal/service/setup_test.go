package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-feed-api/internal/cache"
	"community-feed-api/internal/client"
	"community-feed-api/internal/config"
	"community-feed-api/internal/database"
	"community-feed-api/internal/domain"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/util"
)

type testEnv struct {
	db      *gorm.DB
	repos   *repository.Repositories
	storage *client.MockMediaStorage
	cache   *cache.MemoryFeedCache
	metrics *metrics.Metrics

	posts        PostService
	userPosts    UserPostService
	interactions InteractionService
	feed         FeedService
	profiles     ProfileService
}

var testProfileConfig = config.ProfileConfig{
	DefaultAvatar:  "avatars/avatar1.png",
	AllowedAvatars: []string{"avatars/avatar1.png", "avatars/avatar2.png"},
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewInMemory(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	env := &testEnv{
		db:      db,
		repos:   repository.NewRepositories(db),
		storage: client.NewMockMediaStorage(),
		cache:   cache.NewMemoryFeedCache(),
		metrics: metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop()),
	}
	env.build()
	return env
}

// build (re)creates the services over env.repos, so tests can swap a repository first
func (e *testEnv) build() {
	logger := zap.NewNop()
	e.posts = NewPostService(e.repos, e.storage, e.cache, e.metrics, logger)
	e.userPosts = NewUserPostService(e.repos, e.storage, e.cache, time.UTC, e.metrics, logger)
	e.interactions = NewInteractionService(e.repos, e.metrics, logger)
	e.feed = NewFeedService(e.repos, e.cache, e.storage, config.FeedConfig{DefaultPageSize: 20, MaxPageSize: 100}, e.metrics, logger)
	e.profiles = NewProfileService(e.repos, e.storage, testProfileConfig, logger)
}

func actorCtx(name string) (context.Context, domain.Actor) {
	actor := domain.Actor{ID: uuid.New(), Name: name}
	return util.WithActor(context.Background(), actor), actor
}

func (e *testEnv) seedEditorial(t *testing.T, slug string, published bool, createdAt time.Time) *domain.EditorialPost {
	t.Helper()
	post := &domain.EditorialPost{
		BaseModel: domain.BaseModel{CreatedAt: createdAt.UTC()},
		Title:     slug,
		Slug:      slug,
		Body:      "body of " + slug,
		Published: published,
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

func (e *testEnv) seedUserPost(t *testing.T, approved bool, createdAt time.Time) *domain.UserPost {
	t.Helper()
	post := &domain.UserPost{
		BaseModel:   domain.BaseModel{CreatedAt: createdAt.UTC()},
		AuthorID:    uuid.New(),
		AuthorName:  "member",
		Title:       "community post",
		Body:        "body",
		IsApproved:  approved,
		SubmittedOn: CalendarDay(createdAt, time.UTC),
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}
