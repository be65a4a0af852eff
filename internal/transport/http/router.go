// Package httptransport assembles the full HTTP surface: feature routes,
// middleware chains, health, and metrics.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bankpanel/internal/auth"
	authhandler "bankpanel/internal/auth/handler"
	clienthandler "bankpanel/internal/client/handler"
	"bankpanel/internal/platform/metrics"
	"bankpanel/internal/platform/middleware"
)

// NewRouter wires all public endpoints behind the shared middleware chain.
// Role gates compose in front of the client routes: reads are open to both
// roles, mutations to Admin only.
func NewRouter(
	clients *clienthandler.Handler,
	authH *authhandler.Handler,
	validator middleware.JWTValidator,
	revocation middleware.RevocationChecker,
	m *metrics.Metrics,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(m))

	requireAuth := middleware.RequireAuth(validator, revocation, logger)
	readRoles := chainMiddleware(requireAuth, middleware.RequireRole(logger, auth.RoleAdmin, auth.RoleUser))
	adminOnly := chainMiddleware(requireAuth, middleware.RequireRole(logger, auth.RoleAdmin))

	authH.Register(r, requireAuth)
	clients.Register(r, readRoles, adminOnly)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func chainMiddleware(outer, inner func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return outer(inner(next))
	}
}
