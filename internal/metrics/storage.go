package metrics

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/aws/smithy-go"
)

// RecordStorageCall records one call to the media storage backend
func (m *Metrics) RecordStorageCall(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordStorageCall", func() {
		result := "success"
		if err != nil {
			result = "error"
			m.StorageErrors.WithLabelValues(operation, storageErrorType(err)).Inc()
		}
		m.StorageRequestsTotal.WithLabelValues(operation, result).Inc()
		m.StorageRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	})
}

// storageErrorType names a storage failure: the service's error code when the
// backend answered, otherwise the kind of transport failure.
func storageErrorType(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		return apiErr.ErrorCode()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns_error"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	if strings.Contains(err.Error(), "connection refused") {
		return "connection_refused"
	}
	return "network_error"
}
