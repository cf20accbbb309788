package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestMetricCollectionErrorHandling tests that metric collection errors are handled gracefully
// **Feature: community-feed-metrics, Property 11: 메트릭 수집 에러 처리**
//
// Property: For all metric recording operations, when an error or panic occurs,
// the error should be logged and the operation should continue without crashing
func TestMetricCollectionErrorHandling(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name      string
		operation func(*Metrics)
	}{
		{
			name: "RecordHTTPRequest should not panic",
			operation: func(m *Metrics) {
				m.RecordHTTPRequest("GET", "/test", 200, time.Second)
			},
		},
		{
			name: "RecordDBQuery should not panic",
			operation: func(m *Metrics) {
				m.RecordDBQuery("select", "test_table", time.Millisecond, nil)
			},
		},
		{
			name: "RecordStorageCall should not panic",
			operation: func(m *Metrics) {
				m.RecordStorageCall("put_object", time.Second, nil)
			},
		},
		{
			name: "RecordLikeToggle should not panic",
			operation: func(m *Metrics) {
				m.RecordLikeToggle(TargetComment, true)
			},
		},
		{
			name: "RecordModeration should not panic",
			operation: func(m *Metrics) {
				m.RecordModeration("publish")
			},
		},
		{
			name: "RecordFeedCache should not panic",
			operation: func(m *Metrics) {
				m.RecordFeedCache("miss")
			},
		},
		{
			name: "UpdateDBStats should not panic",
			operation: func(m *Metrics) {
				m.UpdateDBStats(sql.DBStats{OpenConnections: 10, InUse: 5, Idle: 5})
			},
		},
		{
			name: "UpdateDBStats with wrong type should not panic",
			operation: func(m *Metrics) {
				m.UpdateDBStats("not stats")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWithRegistry(prometheus.NewRegistry(), logger)
			assert.NotPanics(t, func() {
				tt.operation(m)
			}, "Metric operation should not panic")
		})
	}
}

// TestMetricCollectionContinuesAfterError tests that request processing continues after metric errors
func TestMetricCollectionContinuesAfterError(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/api/feed", 200, time.Millisecond*100)
		m.RecordHTTPRequest("POST", "/api/user-posts", 429, time.Millisecond*150)
		m.RecordDBQuery("SELECT", "user_posts", time.Millisecond*10, nil)
		m.RecordDBQuery("insert", "likes", time.Millisecond*20, errors.New("duplicated key"))
		m.RecordStorageCall("delete_object", time.Millisecond*50, errors.New("connection refused"))
		m.IncrementCommentCreated(TargetPost)
		m.SetPendingUserPosts(3)
	}, "Multiple metric operations should not panic")
}

// TestSafeExecuteWithPanic tests that safeExecute properly handles panics
func TestSafeExecuteWithPanic(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	assert.NotPanics(t, func() {
		m.safeExecute("test_panic", func() {
			panic("intentional panic for testing")
		})
	}, "safeExecute should catch panics")
}

// TestMetricsWithNilLogger tests that metrics work even without a logger
func TestMetricsWithNilLogger(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), nil)

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/test", 200, time.Second)
		m.RecordDBQuery("select", "test", time.Millisecond, nil)
		m.RecordUserPostSubmission(OutcomeAccepted)
	}, "Metrics should work without a logger")
}

// TestCollectorPanicRecovery tests that the collector recovers from panics
func TestCollectorPanicRecovery(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	// nil counter panics inside Collect
	collector := NewBusinessMetricsCollector(nil, m, zap.NewNop())

	assert.NotPanics(t, func() {
		collector.Collect()
	}, "Collector should handle errors gracefully")
}

func TestStorageErrorType(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "bucket missing"}

	assert.Equal(t, "NoSuchBucket", storageErrorType(fmt.Errorf("put: %w", apiErr)))
	assert.Equal(t, "timeout", storageErrorType(fmt.Errorf("put: %w", context.DeadlineExceeded)))
	assert.Equal(t, "canceled", storageErrorType(context.Canceled))
	assert.Equal(t, "dns_error", storageErrorType(&net.DNSError{Err: "no such host", Name: "minio"}))
	assert.Equal(t, "connection_refused", storageErrorType(errors.New("dial tcp: connection refused")))
	assert.Equal(t, "network_error", storageErrorType(errors.New("boom")))
}

func TestUpdateDBStats_AddsOnlyWaitDelta(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	m.UpdateDBStats(sql.DBStats{WaitCount: 3, WaitDuration: 2 * time.Second})
	m.UpdateDBStats(sql.DBStats{WaitCount: 5, WaitDuration: 3 * time.Second})
	m.UpdateDBStats(sql.DBStats{WaitCount: 5, WaitDuration: 3 * time.Second})

	assert.Equal(t, 5.0, counterValue(t, m.DBConnectionWaitTotal))
	assert.InDelta(t, 3.0, counterValue(t, m.DBConnectionWaitDuration), 1e-9)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return out.GetCounter().GetValue()
}

func TestNilMetricsIsNoop_HTTPAndStorage(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/api/feed", 200, time.Millisecond)
		m.RecordStorageCall("put_object", time.Millisecond, nil)
		m.RecordLikeToggle(TargetPost, true)
	})
}
