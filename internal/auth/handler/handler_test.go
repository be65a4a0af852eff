package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankpanel/internal/auth"
	"bankpanel/internal/auth/revocation"
	authservice "bankpanel/internal/auth/service"
	authstore "bankpanel/internal/auth/store"
	jwttoken "bankpanel/internal/jwt_token"
	"bankpanel/internal/platform/middleware"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtSvc := jwttoken.NewJWTService("test-signing-key", "bankpanel")
	revoked := revocation.NewInMemory()
	svc := authservice.New(authstore.NewInMemory(), jwtSvc, revoked, time.Hour)
	h := New(svc, logger)

	r := chi.NewRouter()
	h.Register(r, middleware.RequireAuth(jwttoken.NewMiddlewareAdapter(jwtSvc), revoked, logger))
	return r
}

func postJSON(t *testing.T, r chi.Router, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, r chi.Router, username, role string) string {
	t.Helper()

	rec := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": username, "password": "s3cret", "role": role,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": username, "password": "s3cret",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("registers a new user", func(t *testing.T) {
		r := newTestRouter(t)

		rec := postJSON(t, r, "/api/auth/register", map[string]string{
			"username": "alice", "password": "s3cret", "role": auth.RoleAdmin,
		}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Registration successful")
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		r := newTestRouter(t)
		registerAndLogin(t, r, "alice", auth.RoleUser)

		rec := postJSON(t, r, "/api/auth/register", map[string]string{
			"username": "alice", "password": "other", "role": auth.RoleUser,
		}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "username already exists")
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		r := newTestRouter(t)

		rec := postJSON(t, r, "/api/auth/register", map[string]string{
			"username": "alice", "password": "s3cret", "role": "Root",
		}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("issues a verifiable token", func(t *testing.T) {
		r := newTestRouter(t)
		token := registerAndLogin(t, r, "alice", auth.RoleAdmin)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		r := newTestRouter(t)
		registerAndLogin(t, r, "alice", auth.RoleUser)

		rec := postJSON(t, r, "/api/auth/login", map[string]string{
			"username": "alice", "password": "wrong",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		r := newTestRouter(t)

		rec := postJSON(t, r, "/api/auth/logout", map[string]string{}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revokes the presented token", func(t *testing.T) {
		r := newTestRouter(t)
		token := registerAndLogin(t, r, "alice", auth.RoleUser)
		bearer := map[string]string{"Authorization": "Bearer " + token}

		rec := postJSON(t, r, "/api/auth/logout", map[string]string{}, bearer)
		require.Equal(t, http.StatusNoContent, rec.Code)

		// The revoked token no longer passes the auth gate.
		rec = postJSON(t, r, "/api/auth/logout", map[string]string{}, bearer)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "revoked")
	})
}
