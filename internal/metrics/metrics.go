package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks Walti API call duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "walti_api_request_duration_seconds",
			Help:    "Walti API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts Walti API calls by method, path, status.
	// status is "error" when no response was received.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walti_api_requests_total",
			Help: "Total number of Walti API requests",
		},
		[]string{"method", "path", "status"},
	)

	// ScansQueuedTotal counts scan queue attempts by result (success, skipped, error).
	ScansQueuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walti_scans_queued_total",
			Help: "Total number of scan queue requests by result",
		},
		[]string{"result"},
	)
)

var (
	targetSegment = regexp.MustCompile(`/targets/[^/]+`)
	pluginSegment = regexp.MustCompile(`/plugins/[^/]+`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ScansQueuedTotal)
	})
}

// NormalizePath reduces cardinality by replacing target and plugin names with placeholders.
// E.g. /v1/targets/site1/plugins/xss/scans -> /v1/targets/{target}/plugins/{plugin}/scans.
func NormalizePath(path string) string {
	path = targetSegment.ReplaceAllString(path, "/targets/{target}")
	return pluginSegment.ReplaceAllString(path, "/plugins/{plugin}")
}

// RecordRequest records duration and count for one API call. statusCode 0 means the call failed before a response.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncScansQueued increments the queue counter for result (success, skipped, error).
func IncScansQueued(result string) {
	ScansQueuedTotal.WithLabelValues(result).Inc()
}
