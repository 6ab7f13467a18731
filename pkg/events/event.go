package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventType string

const (
	RideCreated       EventType = "ride.created"
	RideStatusChanged EventType = "ride.status_changed"
)

type RideEvent struct {
	Type           EventType `json:"type"`
	RideID         uuid.UUID `json:"ride_id"`
	UserID         uuid.UUID `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	At             time.Time `json:"at"`
}

// RoutingKey is the event type without the "ride." prefix, under "ride.".
func (e RideEvent) RoutingKey() string {
	return "ride." + strings.TrimPrefix(string(e.Type), "ride.")
}

type Publisher interface {
	Publish(ctx context.Context, event RideEvent) error
}

// Fanout hands each event to every sink. Failures are logged and never
// returned, so a broker outage cannot fail a booking.
type Fanout struct {
	sinks []Publisher
	log   *zap.Logger
}

func NewFanout(log *zap.Logger, sinks ...Publisher) *Fanout {
	f := &Fanout{log: log.With(zap.String("component", "events"))}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, event RideEvent) error {
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			f.log.Warn("Failed to publish ride event",
				zap.Error(err),
				zap.String("type", string(event.Type)),
				zap.String("ride_id", event.RideID.String()),
			)
		}
	}
	return nil
}

// Len reports the number of attached sinks.
func (f *Fanout) Len() int {
	return len(f.sinks)
}
