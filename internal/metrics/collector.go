package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ContentCounter reports the counts behind the business gauges
type ContentCounter interface {
	CountPending(ctx context.Context) (int64, error)
	CountPublishedEditorial(ctx context.Context) (int64, error)
	CountApprovedCommunity(ctx context.Context) (int64, error)
}

// BusinessMetricsCollector refreshes the content gauges; it is driven by the job scheduler
type BusinessMetricsCollector struct {
	counter ContentCounter
	metrics *Metrics
	logger  *zap.Logger
	timeout time.Duration
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(counter ContentCounter, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		counter: counter,
		metrics: metrics,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Collect gathers business metrics
func (c *BusinessMetricsCollector) Collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if count, err := c.counter.CountPending(ctx); err != nil {
		c.logger.Error("Failed to count pending user posts", zap.Error(err))
	} else {
		c.metrics.SetPendingUserPosts(count)
	}

	if count, err := c.counter.CountPublishedEditorial(ctx); err != nil {
		c.logger.Error("Failed to count published editorial posts", zap.Error(err))
	} else {
		c.metrics.SetPublishedEditorialPosts(count)
	}

	if count, err := c.counter.CountApprovedCommunity(ctx); err != nil {
		c.logger.Error("Failed to count approved user posts", zap.Error(err))
	} else {
		c.metrics.SetApprovedUserPosts(count)
	}
}
