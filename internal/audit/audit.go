// Package audit records an append-only trail of client mutations.
package audit

import (
	"context"
	"log/slog"
	"time"

	"bankpanel/internal/platform/middleware"
)

const (
	ActionClientCreated = "client.created"
	ActionClientUpdated = "client.updated"
	ActionClientDeleted = "client.deleted"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Action    string
	ClientID  int64
	Actor     string
	RequestID string
}

// Store is the persistence boundary for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}

// Publisher hands events to a background worker through a bounded buffer.
// Emission is best-effort: when the buffer is full the event is dropped and
// logged rather than blocking the request path.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: make(chan Event, buffer), logger: logger}
}

// Emit stamps the event with time and caller identity from context and
// queues it for persistence.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Actor == "" {
		event.Actor = middleware.GetUsername(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = middleware.GetRequestID(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit buffer full, dropping event",
			"action", event.Action,
			"client_id", event.ClientID,
		)
	}
}

// Inbox exposes the receive side for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Worker consumes audit events from the publisher and persists them.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled. Store failures are
// logged and do not stop the worker; the trail is best-effort telemetry.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("failed to append audit event",
					"error", err,
					"action", event.Action,
				)
			}
		}
	}
}
