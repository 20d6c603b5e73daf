// Package notify fans resource change events out to live subscribers. It
// is a best-effort side channel: delivery is at most once and a slow
// subscriber loses events rather than slowing publishers.
package notify

import (
	"context"
	"time"
)

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
	EventLinked  EventType = "linked"
)

type Event struct {
	Type           EventType `json:"type"`
	Resource       string    `json:"resource"`
	ID             int64     `json:"id,string"`
	OrganizationID *int64    `json:"organizationId,string,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
	// TraceID links relayed events to the request that caused them.
	TraceID string `json:"traceId,omitempty"`
}

// Broker publishes events and hands out subscriptions.
type Broker interface {
	Publish(ctx context.Context, evt Event) error
	Subscribe() *Subscription
}

// Discard drops every event. Subscriptions never receive anything.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

func (Discard) Subscribe() *Subscription {
	return &Subscription{ch: make(chan Event)}
}
