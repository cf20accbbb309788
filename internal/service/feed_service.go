package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"community-feed-api/internal/cache"
	"community-feed-api/internal/client"
	"community-feed-api/internal/config"
	"community-feed-api/internal/domain"
	"community-feed-api/internal/dto"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/response"
)

// FeedService defines the merged feed of published editorial and approved community posts
type FeedService interface {
	GetFeed(ctx context.Context, query dto.FeedQuery) (*dto.FeedResponse, error)
}

type feedServiceImpl struct {
	editorialRepo repository.EditorialPostRepository
	userPostRepo  repository.UserPostRepository
	cache         cache.FeedCache
	storage       client.MediaStorage
	cfg           config.FeedConfig
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewFeedService creates a new instance of FeedService
func NewFeedService(
	repos *repository.Repositories,
	feedCache cache.FeedCache,
	storage client.MediaStorage,
	cfg config.FeedConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) FeedService {
	if feedCache == nil {
		feedCache = cache.NoopFeedCache{}
	}
	return &feedServiceImpl{
		editorialRepo: repos.EditorialPosts,
		userPostRepo:  repos.UserPosts,
		cache:         feedCache,
		storage:       storage,
		cfg:           cfg,
		metrics:       m,
		logger:        logger,
	}
}

// GetFeed returns the feed newest first. Without a size the whole feed is one page.
func (s *feedServiceImpl) GetFeed(ctx context.Context, query dto.FeedQuery) (*dto.FeedResponse, error) {
	page, size := s.normalizePage(query)
	key := "all"
	if size > 0 {
		key = fmt.Sprintf("p%d:s%d", page, size)
	}

	// pages are stored under the version seen here, before the store is read
	data, version, ok := s.cache.Get(ctx, key)
	if ok {
		var cached dto.FeedResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			s.metrics.RecordFeedCache("hit")
			return &cached, nil
		}
		s.metrics.RecordFeedCache("error")
	} else {
		s.metrics.RecordFeedCache("miss")
	}

	editorial, err := s.editorialRepo.FindPublished(ctx)
	if err != nil {
		s.logger.Error("Failed to load published posts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load feed", err.Error())
	}
	community, err := s.userPostRepo.FindApproved(ctx)
	if err != nil {
		s.logger.Error("Failed to load approved user posts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load feed", err.Error())
	}

	items := MergeFeed(editorial, community)
	total := len(items)

	if size > 0 {
		items = paginate(items, page, size)
	} else {
		page, size = 1, total
	}

	resp := &dto.FeedResponse{
		Items: make([]dto.FeedItemResponse, len(items)),
		Total: total,
		Page:  page,
		Size:  size,
	}
	for i, item := range items {
		resp.Items[i] = toFeedItemResponse(item, s.storage)
	}

	if data, err := json.Marshal(resp); err == nil {
		s.cache.Set(ctx, key, version, data)
	}
	return resp, nil
}

func (s *feedServiceImpl) normalizePage(query dto.FeedQuery) (int, int) {
	page, size := query.Page, query.Size
	if page < 1 {
		page = 1
	}
	if size <= 0 && query.Page > 0 {
		size = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	return page, size
}

func paginate(items []domain.FeedItem, page, size int) []domain.FeedItem {
	start := (page - 1) * size
	if start >= len(items) {
		return []domain.FeedItem{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// MergeFeed merges two lists that are each sorted by domain.FeedBefore
// into one tagged list in the same order.
func MergeFeed(editorial []*domain.EditorialPost, community []*domain.UserPost) []domain.FeedItem {
	items := make([]domain.FeedItem, 0, len(editorial)+len(community))
	i, j := 0, 0
	for i < len(editorial) && j < len(community) {
		e, c := domain.EditorialItem(editorial[i]), domain.CommunityItem(community[j])
		if domain.FeedBefore(c, e) {
			items = append(items, c)
			j++
		} else {
			items = append(items, e)
			i++
		}
	}
	for ; i < len(editorial); i++ {
		items = append(items, domain.EditorialItem(editorial[i]))
	}
	for ; j < len(community); j++ {
		items = append(items, domain.CommunityItem(community[j]))
	}
	return items
}

// ContentStats reports the content counts behind the business gauges
type ContentStats struct {
	repos *repository.Repositories
}

// NewContentStats creates a metrics.ContentCounter over repos
func NewContentStats(repos *repository.Repositories) *ContentStats {
	return &ContentStats{repos: repos}
}

func (c *ContentStats) CountPending(ctx context.Context) (int64, error) {
	return c.repos.UserPosts.CountPending(ctx)
}

func (c *ContentStats) CountPublishedEditorial(ctx context.Context) (int64, error) {
	return c.repos.EditorialPosts.CountPublished(ctx)
}

func (c *ContentStats) CountApprovedCommunity(ctx context.Context) (int64, error) {
	return c.repos.UserPosts.CountApproved(ctx)
}

var _ metrics.ContentCounter = (*ContentStats)(nil)
