package metrics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	// stored upload names are <uuid>_<unix>.<ext>
	uploadNamePattern = regexp.MustCompile(`\{id\}_[0-9]+\.[A-Za-z0-9]+`)
)

// s3ErrorCodes maps S3 error codes found in SDK error messages to error_type labels
var s3ErrorCodes = []struct {
	code, errorType string
}{
	{"NoSuchKey", "not_found"},
	{"NotFound", "not_found"},
	{"NoSuchBucket", "no_such_bucket"},
	{"AccessDenied", "forbidden"},
	{"InvalidAccessKeyId", "unauthorized"},
	{"SignatureDoesNotMatch", "unauthorized"},
	{"SlowDown", "too_many_requests"},
	{"RequestTimeTooSkewed", "clock_skew"},
	{"EntityTooLarge", "entity_too_large"},
}

// RecordExternalAPICall records calls to the upload object store
func (m *Metrics) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		endpoint = normalizeEndpoint(endpoint)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.ExternalAPIErrors.WithLabelValues(endpoint, getErrorType(statusCode, err)).Inc()
		}
	})
}

// normalizeEndpoint replaces ids and stored upload names with placeholders
// Example: s3/uploads/123e4567-e89b-12d3-a456-426614174000_1700000000.png -> s3/uploads/{file}
func normalizeEndpoint(endpoint string) string {
	endpoint = uuidPattern.ReplaceAllString(endpoint, "{id}")
	return uploadNamePattern.ReplaceAllString(endpoint, "{file}")
}

// getErrorType prefers the S3 error code, then the HTTP status, then the network failure
func getErrorType(statusCode int, err error) string {
	var msg string
	if err != nil {
		msg = err.Error()
		for _, c := range s3ErrorCodes {
			if strings.Contains(msg, c.code) {
				return c.errorType
			}
		}
	}

	switch {
	case statusCode == 400:
		return "bad_request"
	case statusCode == 401:
		return "unauthorized"
	case statusCode == 403:
		return "forbidden"
	case statusCode == 404:
		return "not_found"
	case statusCode == 429:
		return "too_many_requests"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode == 503:
		return "service_unavailable"
	case statusCode >= 500 && statusCode < 600:
		if err == nil {
			return "server_error"
		}
	}

	if err == nil {
		return "unknown"
	}
	switch {
	case strings.Contains(msg, "context canceled"):
		return "canceled"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "connection refused"):
		return "connection_refused"
	case strings.Contains(msg, "no such host"):
		return "dns_error"
	case strings.Contains(msg, "EOF") || strings.Contains(msg, "connection reset"):
		return "connection_reset"
	case strings.Contains(msg, "TLS") || strings.Contains(msg, "certificate"):
		return "tls_error"
	case statusCode >= 500:
		return "server_error"
	}
	return "network_error"
}
