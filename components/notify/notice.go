package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
)

// Topic is the bus topic every notice is published on.
const Topic = "admin:notice"

// Kind is the toast flavour of a notice.
type Kind string

const (
	KindSuccess     Kind = "success"
	KindInfo        Kind = "info"
	KindDestructive Kind = "destructive"
)

// Notice is a transient, user-facing message (a toast).
type Notice struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Telemetry records notify events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// Bus fans notices out to subscribers. Delivery is synchronous so a notice
// is visible to every subscriber before Notify returns.
type Bus struct {
	bus       EventBus.Bus
	now       func() time.Time
	telemetry Telemetry
}

// Option customizes a Bus.
type Option func(*Bus)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Bus) {
		if now != nil {
			b.now = now
		}
	}
}

// WithTelemetry records a telemetry event per published notice.
func WithTelemetry(t Telemetry) Option {
	return func(b *Bus) {
		if t != nil {
			b.telemetry = t
		}
	}
}

// NewBus builds a bus backed by asaskevich/EventBus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		bus:       EventBus.New(),
		now:       time.Now,
		telemetry: noopTelemetry{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Notify stamps the notice and publishes it. Missing ID and timestamp are
// filled in; a notice without a title is dropped.
func (b *Bus) Notify(ctx context.Context, n Notice) {
	if b == nil || n.Title == "" {
		return
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Kind == "" {
		n.Kind = KindSuccess
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}
	b.bus.Publish(Topic, n)
	b.telemetry.Record(ctx, "notify.notice", map[string]any{
		"id":    n.ID,
		"kind":  string(n.Kind),
		"title": n.Title,
	})
}

// Subscribe registers fn for every notice published after the call.
// Subscribers live for the lifetime of the bus.
func (b *Bus) Subscribe(fn func(Notice)) error {
	if fn == nil {
		return errors.New("notify: subscriber is required")
	}
	if err := b.bus.Subscribe(Topic, fn); err != nil {
		return fmt.Errorf("notify: subscribe: %w", err)
	}
	return nil
}
