// Package handler exposes the auth endpoints: register, login, logout.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bankpanel/internal/platform/middleware"
	dErrors "bankpanel/pkg/domain-errors"
	"bankpanel/pkg/platform/httputil"
)

// Service defines the auth operations the handler needs.
type Service interface {
	Register(ctx context.Context, username, password, role string) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	TokenTTL() time.Duration
}

// Handler handles the /api/auth routes.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the auth routes. Logout requires an authenticated caller;
// register and login are open.
func (h *Handler) Register(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/logout", h.handleLogout)
		})
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.Register(ctx, req.Username, req.Password, req.Role); err != nil {
		h.logger.WarnContext(ctx, "registration rejected",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Registration successful"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login rejected",
			"username", req.Username,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The revocation deadline only needs to outlive the token; the full
	// configured TTL from now always does.
	jti := middleware.GetJTI(ctx)
	if err := h.service.Logout(ctx, jti, time.Now().Add(h.service.TokenTTL())); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to revoke token"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
