package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestLog logs each outgoing call with method, path, status and duration.
// Credentials in headers are never logged.
func RequestLog(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			dur := time.Since(start)
			if err != nil {
				logger.Warn("walti request failed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration_ms", dur.Milliseconds(),
					"error", err)
				return nil, err
			}
			logger.Debug("walti request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", resp.StatusCode,
				"duration_ms", dur.Milliseconds())
			return resp, nil
		})
	}
}
