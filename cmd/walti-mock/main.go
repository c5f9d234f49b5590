package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/crucial707/walti/internal/logging"
	"github.com/crucial707/walti/internal/waltitest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	key := flag.String("api-key", "demo-key", "accepted API key")
	secret := flag.String("api-secret", "demo-secret", "accepted API secret")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	logger := logging.New(*logFormat, "info", os.Stderr)
	slog.SetDefault(logger)

	fake := waltitest.New(*key, *secret)
	fake.AddTarget(waltitest.TargetJSON("example.com",
		waltitest.ScannedPluginJSON("xss", "day", 1, "green", 200),
		waltitest.ScannedPluginJSON("ssl", "week", 2, "orange", 500),
		waltitest.PluginJSON("nmap", "off"),
	))
	fake.AddTarget(waltitest.TargetJSON("staging.example.com",
		waltitest.QueuedPluginJSON("xss", "month"),
	))
	fake.SetQueueStatus("example.com", "nmap", http.StatusPaymentRequired)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Mount("/", fake.Handler())

	srv := &http.Server{Addr: *addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	logger.Info("starting mock Walti API", "addr", *addr, "api_key", *key)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
