package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "community_feed"
)

// Metrics holds all application metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBConnectionsOpen        prometheus.Gauge
	DBConnectionsInUse       prometheus.Gauge
	DBConnectionsIdle        prometheus.Gauge
	DBConnectionsMax         prometheus.Gauge
	DBConnectionWaitTotal    prometheus.Counter
	DBConnectionWaitDuration prometheus.Counter
	DBQueryDuration          *prometheus.HistogramVec
	DBQueryErrors            *prometheus.CounterVec

	// Media storage metrics
	StorageRequestsTotal   *prometheus.CounterVec
	StorageRequestDuration *prometheus.HistogramVec
	StorageErrors          *prometheus.CounterVec

	// Business metrics
	LikesToggledTotal          *prometheus.CounterVec
	CommentsCreatedTotal       *prometheus.CounterVec
	UserPostSubmissionsTotal   *prometheus.CounterVec
	ModerationTransitionsTotal *prometheus.CounterVec
	FeedCacheRequestsTotal     *prometheus.CounterVec
	PendingUserPosts           prometheus.Gauge
	PublishedEditorialPosts    prometheus.Gauge
	ApprovedUserPosts          prometheus.Gauge

	// last cumulative pool wait figures, so counters only grow by the delta
	poolMu       sync.Mutex
	lastWaits    int64
	lastWaitSecs float64

	logger *zap.Logger
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := factory{promauto.With(registerer)}
	m := &Metrics{logger: logger}
	m.registerHTTP(f)
	m.registerDatabase(f)
	m.registerStorage(f)
	m.registerBusiness(f)
	return m
}

func (m *Metrics) registerHTTP(f factory) {
	m.HTTPRequestsTotal = f.counterVec("http_requests_total",
		"Total number of HTTP requests", "method", "endpoint", "status")
	m.HTTPRequestDuration = f.histogramVec("http_request_duration_seconds",
		"HTTP request duration in seconds",
		[]float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}, "method", "endpoint")
}

func (m *Metrics) registerDatabase(f factory) {
	m.DBConnectionsOpen = f.gauge("db_connections_open", "Current number of open database connections")
	m.DBConnectionsInUse = f.gauge("db_connections_in_use", "Current number of in-use database connections")
	m.DBConnectionsIdle = f.gauge("db_connections_idle", "Current number of idle database connections")
	m.DBConnectionsMax = f.gauge("db_connections_max", "Maximum number of open database connections configured")
	m.DBConnectionWaitTotal = f.counter("db_connection_wait_total",
		"Total number of times waited for a database connection")
	m.DBConnectionWaitDuration = f.counter("db_connection_wait_duration_seconds_total",
		"Total duration waited for database connections in seconds")
	m.DBQueryDuration = f.histogramVec("db_query_duration_seconds",
		"Database query duration in seconds",
		[]float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}, "operation", "table")
	m.DBQueryErrors = f.counterVec("db_query_errors_total",
		"Total number of database query errors", "operation", "table")
}

func (m *Metrics) registerStorage(f factory) {
	m.StorageRequestsTotal = f.counterVec("storage_requests_total",
		"Total number of media storage calls by operation and result", "operation", "result")
	m.StorageRequestDuration = f.histogramVec("storage_request_duration_seconds",
		"Media storage call duration in seconds",
		[]float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}, "operation")
	m.StorageErrors = f.counterVec("storage_errors_total",
		"Total number of failed media storage calls by error type", "operation", "error_type")
}

func (m *Metrics) registerBusiness(f factory) {
	m.LikesToggledTotal = f.counterVec("likes_toggled_total",
		"Total number of like toggles by target and resulting state", "target", "result")
	m.CommentsCreatedTotal = f.counterVec("comments_created_total",
		"Total number of comments and replies created", "target")
	m.UserPostSubmissionsTotal = f.counterVec("user_post_submissions_total",
		"Total number of community post submissions by outcome", "outcome")
	m.ModerationTransitionsTotal = f.counterVec("moderation_transitions_total",
		"Total number of moderation and publishing actions", "action")
	m.FeedCacheRequestsTotal = f.counterVec("feed_cache_requests_total",
		"Total number of feed cache lookups by result", "result")
	m.PendingUserPosts = f.gauge("pending_user_posts", "Current number of community posts awaiting approval")
	m.PublishedEditorialPosts = f.gauge("published_editorial_posts", "Current number of published editorial posts")
	m.ApprovedUserPosts = f.gauge("approved_user_posts", "Current number of approved community posts")
}

// factory builds namespaced collectors on one registerer
type factory struct {
	promauto.Factory
}

func (f factory) counter(name, help string) prometheus.Counter {
	return f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

func (f factory) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return f.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func (f factory) gauge(name, help string) prometheus.Gauge {
	return f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

func (f factory) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return f.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

// safeExecute wraps metric operations with panic recovery. A nil *Metrics
// records nothing.
func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("Panic in metrics operation",
					zap.String("operation", operation),
					zap.Any("panic", r),
				)
			}
		}
	}()
	fn()
}
