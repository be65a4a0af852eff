// Package handler exposes the client registry over HTTP. It parses query
// parameters, runs the validation workflow before mutations, and delegates
// everything else to the service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"bankpanel/internal/client"
	"bankpanel/internal/platform/middleware"
	dErrors "bankpanel/pkg/domain-errors"
	"bankpanel/pkg/platform/httputil"
)

// Service defines the client operations the handler needs.
type Service interface {
	List(ctx context.Context, params client.SearchParams) ([]client.Client, error)
	ListFiltered(ctx context.Context, params client.SearchParams) ([]client.Client, error)
	ListSorted(ctx context.Context, params client.SearchParams) ([]client.Client, error)
	LastSearches() []string
	GetByID(ctx context.Context, id int64) (client.Client, error)
	Create(ctx context.Context, c client.Client) (client.Client, error)
	Update(ctx context.Context, id int64, c client.Client) error
	Delete(ctx context.Context, id int64) error
}

// Validator runs the pre-mutation validation workflows.
type Validator interface {
	ForCreate(ctx context.Context, c client.Client) error
	ForUpdate(ctx context.Context, id int64, c client.Client) error
}

// Handler handles the /api/clients routes.
type Handler struct {
	service  Service
	validate Validator
	logger   *slog.Logger
}

func New(service Service, validate Validator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validate: validate, logger: logger}
}

// Middleware is a chi-compatible middleware constructor.
type Middleware = func(http.Handler) http.Handler

// Register mounts the client routes. Reads are open to any authenticated
// role; mutations require the Admin role. Both gates are composed here, at
// the boundary, never inside the service.
func (h *Handler) Register(r chi.Router, read Middleware, admin Middleware) {
	r.Route("/api/clients", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(read)
			r.Get("/", h.handleList)
			r.Get("/filtered", h.handleListFiltered)
			r.Get("/sorted", h.handleListSorted)
			r.Get("/{id}", h.handleGetByID)
		})
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.handleCreate)
			r.Put("/{id}", h.handleUpdate)
			r.Delete("/{id}", h.handleDelete)
		})
	})
}

// listResponse is the envelope for filtered and sorted listings; it carries
// the recent search signatures alongside the page.
type listResponse struct {
	Clients              []ClientDTO `json:"clients"`
	LastSearchParameters []string    `json:"lastSearchParameters"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseSearchParams(r)

	clients, err := h.service.List(ctx, params)
	if err != nil {
		h.serverError(ctx, w, "failed to list clients", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromDomainList(clients))
}

func (h *Handler) handleListFiltered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseSearchParams(r)
	if !params.HasFilter() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest,
			"at least one of firstName, lastName, or email must have a value for filtering"))
		return
	}

	clients, err := h.service.ListFiltered(ctx, params)
	if err != nil {
		h.serverError(ctx, w, "failed to filter clients", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Clients:              fromDomainList(clients),
		LastSearchParameters: h.service.LastSearches(),
	})
}

func (h *Handler) handleListSorted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseSearchParams(r)
	if !params.HasSort() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest,
			"sortBy and sortOrder must be provided for sorting"))
		return
	}

	clients, err := h.service.ListSorted(ctx, params)
	if err != nil {
		h.serverError(ctx, w, "failed to sort clients", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Clients:              fromDomainList(clients),
		LastSearchParameters: h.service.LastSearches(),
	})
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	c, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get client", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromDomain(c))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, ok := h.decodeClient(w, r)
	if !ok {
		return
	}
	c := toDomain(dto)

	if err := h.validate.ForCreate(ctx, c); err != nil {
		h.writeServiceError(ctx, w, "client rejected by create validation", err)
		return
	}

	created, err := h.service.Create(ctx, c)
	if err != nil {
		h.serverError(ctx, w, "failed to create client", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromDomain(created))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	dto, ok := h.decodeClient(w, r)
	if !ok {
		return
	}
	c := toDomain(dto)

	if err := h.validate.ForUpdate(ctx, id, c); err != nil {
		h.writeServiceError(ctx, w, "client rejected by update validation", err)
		return
	}

	if err := h.service.Update(ctx, id, c); err != nil {
		h.writeServiceError(ctx, w, "failed to update client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	// Existence check first so a missing id reports not-found instead of
	// silently succeeding.
	if _, err := h.service.GetByID(ctx, id); err != nil {
		h.writeServiceError(ctx, w, "failed to load client for delete", err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.serverError(ctx, w, "failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "client id must be an integer"))
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeClient(w http.ResponseWriter, r *http.Request) (ClientDTO, bool) {
	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.WarnContext(r.Context(), "invalid client payload",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return ClientDTO{}, false
	}
	return dto, true
}

// writeServiceError passes coded errors through and masks everything else as
// internal.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	var de *dErrors.Error
	if errors.As(err, &de) {
		if de.Code == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, msg, "error", err, "request_id", middleware.GetRequestID(ctx))
		} else {
			h.logger.WarnContext(ctx, msg, "error", err, "request_id", middleware.GetRequestID(ctx))
		}
		httputil.WriteError(w, de)
		return
	}
	h.serverError(ctx, w, msg, err)
}

func (h *Handler) serverError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg, "error", err, "request_id", middleware.GetRequestID(ctx))
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
}

// parseSearchParams builds the query descriptor from query parameters.
// Blank-after-trim filter values count as absent.
func parseSearchParams(r *http.Request) client.SearchParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	params := client.NewSearchParams(page, pageSize)
	params.SortBy = strings.TrimSpace(q.Get("sortBy"))
	params.SortOrder = strings.TrimSpace(q.Get("sortOrder"))
	params.FirstName = strings.TrimSpace(q.Get("firstName"))
	params.LastName = strings.TrimSpace(q.Get("lastName"))
	params.Email = strings.TrimSpace(q.Get("email"))
	return params
}
