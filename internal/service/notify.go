package service

import (
	"context"
	"log/slog"
	"time"

	"chem.app/api/internal/notify"
)

// publish sends a change event after the write has committed. Failures are
// logged and never fail the request.
func publish(ctx context.Context, broker notify.Broker, typ notify.EventType, resource string, id int64, orgID *int64) {
	evt := notify.Event{
		Type:           typ,
		Resource:       resource,
		ID:             id,
		OrganizationID: orgID,
		OccurredAt:     time.Now().UTC(),
	}
	if err := broker.Publish(ctx, evt); err != nil {
		slog.WarnContext(ctx, "failed to publish notification",
			"error", err,
			"type", typ,
			"resource", resource,
			"id", id)
	}
}
