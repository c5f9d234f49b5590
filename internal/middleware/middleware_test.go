package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/walti/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/time/rate"
)

func okTransport(status int) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader("")), Request: r}, nil
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := Chain(okTransport(200), mark("first"), mark("second"))
	req, _ := http.NewRequest(http.MethodGet, "http://example.test/v1/me", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("order = %v", order)
	}
}

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rt := RequestLog(logger)(okTransport(201))
	req, _ := http.NewRequest(http.MethodPost, "http://example.test/v1/targets/site1/plugins/xss/scans", nil)
	req.Header.Set("Api-Secret", "s3cr3t")
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"status":201`) || !strings.Contains(out, `"method":"POST"`) {
		t.Errorf("unexpected log line: %s", out)
	}
	if strings.Contains(out, "s3cr3t") {
		t.Errorf("secret leaked into log: %s", out)
	}
}

func TestRequestLog_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	boom := errors.New("connection refused")

	rt := RequestLog(logger)(RoundTripperFunc(func(*http.Request) (*http.Response, error) { return nil, boom }))
	req, _ := http.NewRequest(http.MethodGet, "http://example.test/v1/me", nil)
	if _, err := rt.RoundTrip(req); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("error not logged: %s", buf.String())
	}
}

func TestPrometheus(t *testing.T) {
	counter := metrics.RequestTotal.WithLabelValues("GET", "/v1/targets/{target}", "200")
	before := testutil.ToFloat64(counter)

	rt := Prometheus(okTransport(200))
	req, _ := http.NewRequest(http.MethodGet, "http://example.test/v1/targets/site1", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	base := okTransport(200)
	if NewLimiter(0, 5) != nil {
		t.Fatal("NewLimiter(0) should be nil")
	}
	rt := RateLimit(nil)(base)
	req, _ := http.NewRequest(http.MethodGet, "http://example.test/v1/me", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
}

func TestRateLimit_CancelledWait(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	rt := RateLimit(limiter)(okTransport(200))

	req, _ := http.NewRequest(http.MethodGet, "http://example.test/v1/me", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("first call should use the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req2, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.test/v1/me", nil)
	if _, err := rt.RoundTrip(req2); err == nil {
		t.Fatal("second call should fail waiting for the limiter")
	}
}
