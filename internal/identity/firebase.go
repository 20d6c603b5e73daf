package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"chem.app/api/core/config"
)

type Firebase struct {
	client *auth.Client
}

// NewFirebase builds an auth client from service account fields.
func NewFirebase(ctx context.Context, cfg config.FirebaseConfig) (*Firebase, error) {
	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  cfg.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding firebase credentials: %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase auth: %w", err)
	}

	return &Firebase{client: client}, nil
}

func (f *Firebase) VerifyIDToken(ctx context.Context, token string) (*Identity, error) {
	t, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		slog.DebugContext(ctx, "id token rejected", "error", err)
		return nil, ErrInvalidToken
	}
	return fromToken(t), nil
}

func (f *Firebase) VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error) {
	t, err := f.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		slog.DebugContext(ctx, "session cookie rejected", "error", err)
		return nil, ErrInvalidToken
	}
	return fromToken(t), nil
}

func (f *Firebase) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	cookie, err := f.client.SessionCookie(ctx, idToken, expiresIn)
	if err != nil {
		slog.DebugContext(ctx, "session cookie exchange failed", "error", err)
		return "", ErrInvalidToken
	}
	return cookie, nil
}

func (f *Firebase) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := f.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoking refresh tokens: %w", err)
	}
	return nil
}

func fromToken(t *auth.Token) *Identity {
	email, _ := t.Claims["email"].(string)
	return &Identity{UID: t.UID, Email: email}
}

var _ Provider = (*Firebase)(nil)
