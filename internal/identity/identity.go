// Package identity wraps the external identity provider that issues ID
// tokens and session cookies. The API never stores credentials itself.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidToken is returned for missing, malformed, expired or revoked
	// credentials.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnavailable is returned when no provider is configured.
	ErrUnavailable = errors.New("identity provider not configured")
)

// SessionTTL is the lifetime of a session cookie minted from an ID token.
const SessionTTL = 5 * 24 * time.Hour

// Identity is the verified subject of a token or session cookie.
type Identity struct {
	UID   string
	Email string
}

type Provider interface {
	VerifyIDToken(ctx context.Context, token string) (*Identity, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error)
	// SessionCookie exchanges a verified ID token for a session cookie.
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by the auth middleware, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKey{}).(*Identity)
	return id
}

// Unavailable rejects every credential. It stands in for the real provider
// in development when no service account is configured.
type Unavailable struct{}

func (Unavailable) VerifyIDToken(context.Context, string) (*Identity, error) {
	return nil, ErrUnavailable
}

func (Unavailable) VerifySessionCookie(context.Context, string) (*Identity, error) {
	return nil, ErrUnavailable
}

func (Unavailable) SessionCookie(context.Context, string, time.Duration) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) RevokeRefreshTokens(context.Context, string) error {
	return ErrUnavailable
}
