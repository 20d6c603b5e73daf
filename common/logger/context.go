package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and services enrich the context once, and every log statement below them
// carries the resource identifiers without repeating them.
type LogFields struct {
	OrganizationID *int64  // Organization the request is scoped to
	ContributorID  *int64  // Contributor being read or mutated
	TransactionID  *int64  // Transaction being read or mutated
	UserID         *int64  // Authenticated CHEM user, when resolved
	FirebaseUID    *string // Verified identity subject
	Component      string  // Component name (OTel semantic convention style, e.g., "chem.service.organization")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.OrganizationID != nil {
		result.OrganizationID = new.OrganizationID
	}
	if new.ContributorID != nil {
		result.ContributorID = new.ContributorID
	}
	if new.TransactionID != nil {
		result.TransactionID = new.TransactionID
	}
	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.FirebaseUID != nil {
		result.FirebaseUID = new.FirebaseUID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{OrganizationID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
