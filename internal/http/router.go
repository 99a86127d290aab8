package apihttp

import (
	"context"
	"net/http"
	"time"

	"github.com/example/monelog/internal/auth"
	"github.com/example/monelog/internal/handlers"
	"github.com/example/monelog/internal/metrics"
	"github.com/example/monelog/internal/rate"
	"github.com/example/monelog/pkg/jsonutil"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Pinger reports backend health for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators NewRouter wires together. Sessions and Health
// may be nil; Admin is mounted only when set.
type Deps struct {
	Total       *handlers.TotalHandler
	Admin       *handlers.AdminHandler
	Limiter     *rate.LimiterMap
	Sessions    auth.SessionValidator
	Health      Pinger
	AuthTimeout time.Duration
	Log         zerolog.Logger
}

// NewRouter wires routes and middlewares.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(d.Log))
	r.Use(CORS)
	if d.Limiter != nil {
		r.Use(RateLimit(d.Limiter))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.Health != nil {
			if err := d.Health.Ping(r.Context()); err != nil {
				jsonutil.JSON(w, http.StatusInternalServerError, map[string]string{"status": "unhealthy"})
				return
			}
		}
		jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(Auth(d.Sessions, d.AuthTimeout))
		api.Post("/total", d.Total.ServeHTTP)
	})

	if d.Admin != nil {
		r.Handle("/admin/sessions", d.Admin)
	}

	return r
}
