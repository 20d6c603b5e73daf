package service

import (
	"errors"
	"fmt"

	"chem.app/api/internal/query"
	"chem.app/api/internal/store"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// Error is the only error type services return. Message is safe to show
// to clients; Err is the cause, for logs only.
type Error struct {
	Kind    Kind
	Message string
	// Status overrides the HTTP status derived from Kind when non-zero.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf reports the kind of err, defaulting to internal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// messages names the client-facing text for store failures of one entity.
type messages struct {
	notFound  string
	conflict  string
	reference string
	inUse     string
}

var (
	organizationMessages = messages{
		notFound:  "Organization not found",
		conflict:  "Organization with this name already exists",
		reference: "Organization references a missing record",
		inUse:     "Organization has dependent records",
	}
	contributorMessages = messages{
		notFound:  "Contributor not found",
		conflict:  "Contributor with this name already exists in the organization",
		reference: "Organization not found",
		inUse:     "Contributor has dependent records",
	}
	transactionMessages = messages{
		notFound:  "Transaction not found",
		conflict:  "Transaction already exists",
		reference: "Transaction references a missing organization, contributor or fund",
		inUse:     "Transaction has dependent records",
	}
	userMessages = messages{
		notFound:  "User not found",
		conflict:  "User already exists",
		reference: "Organization not found",
		inUse:     "User has dependent records",
	}
)

// fromStore converts a store failure into a typed error. A foreign key
// violation is the caller's fault on writes and a conflict on deletes.
func fromStore(err error, m messages, deleting bool) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return NotFound(m.notFound)
	case errors.Is(err, store.ErrConflict):
		return &Error{Kind: KindConflict, Message: m.conflict, Err: err}
	case errors.Is(err, store.ErrReference) && deleting:
		return &Error{Kind: KindConflict, Message: m.inUse, Err: err}
	case errors.Is(err, store.ErrReference):
		return &Error{Kind: KindValidation, Message: m.reference, Err: err}
	case errors.Is(err, store.ErrCheck):
		return &Error{Kind: KindValidation, Message: "Invalid field values", Err: err}
	case errors.Is(err, query.ErrInvalid):
		return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	default:
		return Internal(err)
	}
}

// invalidQuery wraps a Query Builder parse failure.
func invalidQuery(err error) error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}
