package routes

import (
	"net/http"
	"time"

	"vikare/airports/internal/api"
	"vikare/airports/internal/logging"
	"vikare/airports/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(deps *api.Dependencies, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(middleware.RecoverMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if deps.Config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			deps.Services.Cache,
			deps.Config.RateLimit.RequestsPerSec,
			deps.Config.RateLimit.Burst,
			deps.Config.RateLimit.LimiterTTL(),
			deps.Config.RateLimit.WhitelistedIPs,
			deps.Metrics,
		)
		r.Use(limiter.Middleware)
	}

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Repo.Airports, upSince))
	r.Handle("/metrics", promhttp.Handler())

	RegisterAPIRoutes(r, deps)

	return r
}
