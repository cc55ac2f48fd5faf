// Package httpapi exposes the garage locator over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/pitstop/internal/auth"
	"github.com/UnknownOlympus/pitstop/internal/metrics"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Log        *slog.Logger
	Accounts   *service.AccountService
	Garages    *service.GarageService
	Requests   *service.RequestService
	Tokens     *auth.Issuer
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Health     Pinger
	CORSOrigin string
	UploadDir  string // served under /uploads/ when set
}

type server struct {
	log      *slog.Logger
	accounts *service.AccountService
	garages  *service.GarageService
	requests *service.RequestService
	health   Pinger
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(d Deps) http.Handler {
	s := &server{
		log:      d.Log,
		accounts: d.Accounts,
		garages:  d.Garages,
		requests: d.Requests,
		health:   d.Health,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Log))
	r.Use(instrument(d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{d.CORSOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	if d.UploadDir != "" {
		r.Method(http.MethodGet, "/uploads/*",
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/userregistration", s.handleUserRegistration)
		r.Post("/auth/login", s.handleLogin(models.RoleUser))
		r.Post("/auth/login/garage", s.handleLogin(models.RoleGarage))
		r.Post("/garages/garageregistration", s.handleGarageRegistration)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(d.Tokens))

			r.Get("/garages/nearby", s.handleNearby)
			r.Get("/garages/{id}/distance", s.handleDistance)

			r.With(requireRole(models.RoleUser)).Post("/notification/createnotification", s.handleCreateRequest)
			r.With(requireRole(models.RoleGarage)).Get("/notification/getnotification", s.handleListRequests)
			r.With(requireRole(models.RoleGarage)).Post("/notification/updatenotification", s.handleUpdateRequest)
		})
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.log.ErrorContext(r.Context(), "Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
