package main

import (
	"context"
	"net/http"
	"time"

	"bookscan/internal/device"
	"bookscan/internal/export"
	"bookscan/internal/feedback"
	"bookscan/internal/httpx"
	"bookscan/internal/library"
	"bookscan/internal/lookup"
	"bookscan/internal/platform/logger"
	"bookscan/internal/platform/metrics"
	"bookscan/internal/profile"
	"bookscan/internal/stats"
)

type handlers struct {
	device   *device.HTTPHandler
	lookup   *lookup.HTTPHandler
	library  *library.HTTPHandler
	profile  *profile.HTTPHandler
	stats    *stats.HTTPHandler
	export   *export.HTTPHandler
	feedback *feedback.HTTPHandler
}

type routerDeps struct {
	handlers
	log          logger.Logger
	metrics      *metrics.Metrics
	auth         func(http.Handler) http.Handler
	rateLimit    func(http.Handler) http.Handler
	ready        func(ctx context.Context) error
	corsOrigins  []string
	maxBodyBytes int64
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", d.metrics.Handler())

	mux.HandleFunc("POST /v1/devices", d.device.Register)

	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, d.auth(h))
	}
	protected("GET /v1/devices/me", d.device.Me)
	protected("DELETE /v1/devices/me", d.device.Revoke)

	protected("GET /v1/lookup/{isbn}", d.lookup.Lookup)
	protected("GET /v1/isbn/{isbn}", d.lookup.Inspect)

	protected("GET /v1/library", d.library.List)
	protected("POST /v1/library", d.library.Add)
	protected("GET /v1/library/{id}", d.library.Get)
	protected("PATCH /v1/library/{id}", d.library.Update)
	protected("DELETE /v1/library/{id}", d.library.Delete)

	protected("GET /v1/preferences", d.profile.Get)
	protected("PUT /v1/preferences", d.profile.Put)

	protected("GET /v1/stats", d.stats.Get)
	protected("GET /v1/export", d.export.Export)
	protected("POST /v1/feedback", d.feedback.Submit)

	return httpx.Chain(mux,
		httpx.RecoveryMiddleware(d.log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.log),
		d.metrics.Middleware,
		httpx.SecurityHeadersMiddleware(false),
		httpx.CORSMiddleware(d.corsOrigins),
		d.rateLimit,
		httpx.RequestSizeLimitMiddleware(d.maxBodyBytes),
	)
}
