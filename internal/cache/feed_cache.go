package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const versionKey = "feed:version"

// NoVersion is returned by Get when the current version is unknown; Set ignores it
const NoVersion int64 = -1

// FeedCache stores rendered feed pages. Every visibility change calls
// Invalidate, which retires all pages at once.
//
// Get reports the version it looked under. Callers build the page on a miss
// and hand that version back to Set, so a page read before an Invalidate is
// never stored under the newer version.
type FeedCache interface {
	Get(ctx context.Context, key string) (data []byte, version int64, ok bool)
	Set(ctx context.Context, key string, version int64, value []byte)
	Invalidate(ctx context.Context)
}

// RedisFeedCache keys pages under a version counter so invalidation is a single INCR.
// Redis failures are logged and treated as misses.
type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisFeedCache creates a redis backed feed cache
func NewRedisFeedCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisFeedCache {
	return &RedisFeedCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisFeedCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func pageKey(version int64, key string) string {
	return fmt.Sprintf("feed:v%d:%s", version, key)
}

func (c *RedisFeedCache) Get(ctx context.Context, key string) ([]byte, int64, bool) {
	v, err := c.version(ctx)
	if err != nil {
		c.logger.Warn("Feed cache version lookup failed", zap.Error(err))
		return nil, NoVersion, false
	}
	data, err := c.client.Get(ctx, pageKey(v, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Feed cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, v, false
	}
	return data, v, true
}

// Set writes under the given version. A version retired in the meantime only
// leaves an unreachable key behind until its TTL runs out.
func (c *RedisFeedCache) Set(ctx context.Context, key string, version int64, value []byte) {
	if version < 0 {
		return
	}
	if err := c.client.Set(ctx, pageKey(version, key), value, c.ttl).Err(); err != nil {
		c.logger.Warn("Feed cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisFeedCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Warn("Feed cache invalidation failed", zap.Error(err))
	}
}

// NoopFeedCache never stores anything; used when redis is disabled
type NoopFeedCache struct{}

func (NoopFeedCache) Get(context.Context, string) ([]byte, int64, bool) { return nil, NoVersion, false }
func (NoopFeedCache) Set(context.Context, string, int64, []byte)        {}
func (NoopFeedCache) Invalidate(context.Context)                        {}

var (
	_ FeedCache = (*RedisFeedCache)(nil)
	_ FeedCache = NoopFeedCache{}
)
