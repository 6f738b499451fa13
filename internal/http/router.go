package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookreviews/internal/httpx"
)

type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
	// Ready reports whether the data store is reachable; used by /readyz.
	Ready func(ctx context.Context) error
}

// NewRouter assembles the middleware chain and mounts all routes.
func NewRouter(cfg RouterConfig, books *BookHandler, reviews *ReviewHandler, authH *AuthHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.RecoveryMiddleware(logger))
	r.Use(httpx.AccessLogMiddleware(logger))
	r.Use(httpx.MetricsMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware)
	r.Use(httpx.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	r.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	requireAuth := httpx.AuthMiddleware(cfg.JWTSecret)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 500*time.Millisecond)
		defer cancel()
		if cfg.Ready != nil {
			if err := cfg.Ready(ctx); err != nil {
				http.Error(w, "store not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.With(requireAuth).Get("/me", authH.Me)
		r.With(requireAuth).Put("/updatedetails", authH.UpdateDetails)
	})

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", books.List)
		r.With(requireAuth).Post("/", books.Create)
		r.Get("/{id}", books.Get)
		r.With(requireAuth).Put("/{id}", books.Update)
		r.With(requireAuth).Delete("/{id}", books.Delete)
	})

	// The id segment is a book id for GET/POST and a review id for
	// PUT/DELETE, mirroring the /api/reviews contract.
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/{id}", reviews.ListByBook)
		r.With(requireAuth).Post("/{id}", reviews.Create)
		r.With(requireAuth).Put("/{id}", reviews.Update)
		r.With(requireAuth).Delete("/{id}", reviews.Delete)
	})

	return r
}
