package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kycgate/pkg/requestcontext"
)

// Publisher stamps and persists audit events. Emit is synchronous; callers on
// paths that must not fail (webhook handling) log and continue on error.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills timestamp, category and request metadata from ctx, then appends.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Action == "" {
		return fmt.Errorf("audit event requires Action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorID == "" {
		event.ActorID = requestcontext.Actor(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.Device(ctx)
	}

	start := time.Now()
	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit persistence failed",
				"action", event.Action,
				"user_id", event.UserID,
				"error", err,
			)
		}
		return fmt.Errorf("audit persistence failed: %w", err)
	}
	if p.logger != nil {
		p.logger.DebugContext(ctx, "audit event persisted",
			"action", event.Action,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return nil
}
