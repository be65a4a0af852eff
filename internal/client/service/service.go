// Package service implements the client query/mutation core: pagination,
// page-local filtering and sorting, search-history tracking, and mutation
// pass-through to the store.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"bankpanel/internal/audit"
	"bankpanel/internal/client"
	dErrors "bankpanel/pkg/domain-errors"
	"bankpanel/pkg/platform/sentinel"
)

// Auditor receives one event per successful mutation. Emission is
// best-effort and must never fail a request.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event)
}

// Metrics is the subset of application metrics the service touches.
type Metrics interface {
	IncClientsCreated()
	IncClientsUpdated()
	IncClientsDeleted()
	IncSearchesRecorded()
}

// Service orchestrates client queries and mutations over the store boundary.
// One instance serves all requests; the only shared mutable state is the
// search history, which synchronizes internally.
type Service struct {
	store   client.Store
	history searchHistory
	auditor Auditor
	metrics Metrics
}

func New(store client.Store, auditor Auditor, metrics Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: metrics}
}

// List fetches one page of clients with no filter or sort applied.
// Out-of-range pages return an empty slice, never an error.
func (s *Service) List(ctx context.Context, params client.SearchParams) ([]client.Client, error) {
	return s.store.ListPage(ctx, params.Page, params.PageSize)
}

// ListFiltered records the search in history, fetches the same unfiltered
// page as List, and narrows it by every non-blank filter criterion,
// conjunctively and case-insensitively. Filtering is page-local: the result
// holds only the current page's matches, so exhaustive filtered search means
// paginating through all pages.
func (s *Service) ListFiltered(ctx context.Context, params client.SearchParams) ([]client.Client, error) {
	if s.history.Add(signature(params)) && s.metrics != nil {
		s.metrics.IncSearchesRecorded()
	}

	clients, err := s.store.ListPage(ctx, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return applyFilters(clients, params), nil
}

// ListSorted fetches the unfiltered page and stable-sorts it by the named
// field. An unrecognized sort field leaves the fetch order unchanged.
// Direction is descending when sortOrder is "desc" (case-insensitive),
// ascending otherwise.
func (s *Service) ListSorted(ctx context.Context, params client.SearchParams) ([]client.Client, error) {
	clients, err := s.store.ListPage(ctx, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	sortClients(clients, params.SortBy, params.SortOrder)
	return clients, nil
}

// LastSearches returns the recorded search signatures, oldest to newest.
func (s *Service) LastSearches() []string {
	return s.history.Snapshot()
}

// GetByID returns the aggregate or a coded not-found error.
func (s *Service) GetByID(ctx context.Context, id int64) (client.Client, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return client.Client{}, dErrors.New(dErrors.CodeNotFound, "no record found with this client id")
		}
		return client.Client{}, err
	}
	return c, nil
}

// Create persists a new aggregate. Any submitted id is discarded so the
// store assigns one.
func (s *Service) Create(ctx context.Context, c client.Client) (client.Client, error) {
	c.ID = 0
	created, err := s.store.Create(ctx, c)
	if err != nil {
		return client.Client{}, err
	}
	if s.metrics != nil {
		s.metrics.IncClientsCreated()
	}
	s.emit(ctx, audit.ActionClientCreated, created.ID)
	return created, nil
}

// Update replaces the aggregate stored under id. A missing id is reported as
// not-found rather than silently succeeding.
func (s *Service) Update(ctx context.Context, id int64, c client.Client) error {
	c.ID = id
	if err := s.store.Update(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "no record found with this client id")
		}
		return err
	}
	if s.metrics != nil {
		s.metrics.IncClientsUpdated()
	}
	s.emit(ctx, audit.ActionClientUpdated, id)
	return nil
}

// Delete removes the aggregate and its owned address and accounts.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncClientsDeleted()
	}
	s.emit(ctx, audit.ActionClientDeleted, id)
	return nil
}

func (s *Service) emit(ctx context.Context, action string, clientID int64) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, audit.Event{Action: action, ClientID: clientID})
}

func applyFilters(clients []client.Client, params client.SearchParams) []client.Client {
	filtered := clients
	if params.FirstName != "" {
		filtered = keep(filtered, func(c client.Client) bool {
			return containsFold(c.FirstName, params.FirstName)
		})
	}
	if params.LastName != "" {
		filtered = keep(filtered, func(c client.Client) bool {
			return containsFold(c.LastName, params.LastName)
		})
	}
	if params.Email != "" {
		filtered = keep(filtered, func(c client.Client) bool {
			return containsFold(c.Email, params.Email)
		})
	}
	return filtered
}

func keep(clients []client.Client, match func(client.Client) bool) []client.Client {
	out := make([]client.Client, 0, len(clients))
	for _, c := range clients {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sortClients orders the page in place. Ties keep their fetch order; field
// values compare byte-ordinally.
func sortClients(clients []client.Client, sortBy, sortOrder string) {
	var field func(client.Client) string
	switch strings.ToLower(sortBy) {
	case "firstname":
		field = func(c client.Client) string { return c.FirstName }
	case "lastname":
		field = func(c client.Client) string { return c.LastName }
	case "email":
		field = func(c client.Client) string { return c.Email }
	default:
		return
	}

	descending := strings.EqualFold(sortOrder, "desc")
	sort.SliceStable(clients, func(i, j int) bool {
		if descending {
			return field(clients[i]) > field(clients[j])
		}
		return field(clients[i]) < field(clients[j])
	})
}
