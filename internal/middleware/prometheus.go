package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/walti/internal/metrics"
)

// Prometheus records each outgoing call's duration and status.
func Prometheus(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)
		status := 0
		if err == nil {
			status = resp.StatusCode
		}
		metrics.RecordRequest(r.Method, r.URL.EscapedPath(), status, time.Since(start).Seconds())
		return resp, err
	})
}
