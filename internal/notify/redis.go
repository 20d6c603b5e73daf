package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"chem.app/api/common/logger"
)

// RedisBroker publishes events on a Redis pub/sub channel and relays every
// message it receives into a local Hub, so subscribers on any replica see
// events published by all replicas.
type RedisBroker struct {
	client  *redis.Client
	channel string
	hub     *Hub
}

func NewRedisBroker(client *redis.Client, channel string, hub *Hub) *RedisBroker {
	return &RedisBroker{
		client:  client,
		channel: channel,
		hub:     hub,
	}
}

func (b *RedisBroker) Publish(ctx context.Context, evt Event) error {
	if evt.TraceID == "" {
		evt.TraceID = logger.TraceID(ctx)
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe() *Subscription {
	return b.hub.Subscribe()
}

// Run relays channel messages into the hub until ctx is cancelled.
func (b *RedisBroker) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "chem.notify.redis"})

	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reporting ready.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", b.channel, err)
	}
	slog.InfoContext(ctx, "notification relay subscribed", "channel", b.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.relay(ctx, msg.Payload)
		}
	}
}

func (b *RedisBroker) relay(ctx context.Context, payload string) {
	var evt Event
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		slog.WarnContext(ctx, "dropping malformed notification", "error", err)
		return
	}

	sc := logger.StartSpanFromTraceID(ctx, evt.TraceID, "notify.relay")
	defer sc.End()

	b.hub.broadcast(evt)
	slog.DebugContext(sc.Context(), "notification relayed",
		"type", evt.Type,
		"resource", evt.Resource,
		"id", evt.ID)
}
