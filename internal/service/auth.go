package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"chem.app/api/common/id"
	"chem.app/api/common/logger"
	"chem.app/api/internal/identity"
	"chem.app/api/internal/model"
	"chem.app/api/internal/store"
)

type SignUpInput struct {
	// Email falls back to the verified token's email when empty.
	Email            string
	FirstName        string
	LastName         string
	OrganizationName string
	Role             string

	OrganizationDescription *string
}

type AuthService interface {
	// SignUp creates the caller's organization and user record together.
	SignUp(ctx context.Context, ident *identity.Identity, in SignUpInput) (*model.User, *model.Organization, error)
	Login(ctx context.Context, ident *identity.Identity) (*model.User, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
	Logout(ctx context.Context, ident *identity.Identity) error
	// CreateSession exchanges an ID token for a session cookie value.
	CreateSession(ctx context.Context, idToken string) (string, error)
}

type authService struct {
	userStore store.UserStore
	txRunner  TxRunner
	provider  identity.Provider
}

func NewAuthService(userStore store.UserStore, txRunner TxRunner, provider identity.Provider) AuthService {
	return &authService{
		userStore: userStore,
		txRunner:  txRunner,
		provider:  provider,
	}
}

func (s *authService) SignUp(ctx context.Context, ident *identity.Identity, in SignUpInput) (*model.User, *model.Organization, error) {
	if ident == nil {
		return nil, nil, Unauthorized("Unauthorized")
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{FirebaseUID: &ident.UID})

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = ident.Email
	}
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	orgName := strings.TrimSpace(in.OrganizationName)
	if email == "" || firstName == "" || lastName == "" || orgName == "" {
		return nil, nil, Validation("email, firstName, lastName and organizationName are required")
	}

	role := model.RoleUser
	if in.Role != "" {
		role = model.Role(in.Role)
		if !role.IsValid() {
			return nil, nil, Validation("role must be USER or ADMIN")
		}
	}

	if _, err := s.userStore.GetByFirebaseUID(ctx, ident.UID); err == nil {
		return nil, nil, Conflict("User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, Internal(err)
	}
	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, Internal(err)
	}
	if exists {
		return nil, nil, Conflict("User with this email already exists")
	}

	org := &model.Organization{
		ID:          id.New(),
		Name:        orgName,
		Description: trimOptional(in.OrganizationDescription),
		Type:        model.OrganizationTypeEndowment,
		Restriction: model.RestrictionRestricted,
		Units:       decimal.Zero,
		Amount:      decimal.Zero,
	}
	user := &model.User{
		ID:             id.New(),
		FirebaseUID:    ident.UID,
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		Role:           role,
		OrganizationID: org.ID,
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Organizations().Create(ctx, org); err != nil {
			return fromStore(err, organizationMessages, false)
		}
		if err := stores.Users().Create(ctx, user); err != nil {
			return fromStore(err, userMessages, false)
		}
		return nil
	})
	if err != nil {
		if KindOf(err) == KindInternal {
			slog.ErrorContext(ctx, "sign-up failed", "error", err)
		}
		return nil, nil, fromStore(err, userMessages, false)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID, OrganizationID: &org.ID})
	slog.InfoContext(ctx, "user signed up")
	user.Organization = org
	return user, org, nil
}

func (s *authService) Login(ctx context.Context, ident *identity.Identity) (*model.User, error) {
	if ident == nil {
		return nil, Unauthorized("Unauthorized")
	}
	user, err := s.userStore.GetByFirebaseUID(ctx, ident.UID)
	if err != nil {
		return nil, fromStore(err, userMessages, false)
	}
	return user, nil
}

func (s *authService) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, Validation("email is required")
	}
	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		return false, Internal(err)
	}
	return exists, nil
}

func (s *authService) Logout(ctx context.Context, ident *identity.Identity) error {
	if ident == nil {
		return Unauthorized("Unauthorized")
	}
	if err := s.provider.RevokeRefreshTokens(ctx, ident.UID); err != nil {
		slog.ErrorContext(ctx, "failed to revoke refresh tokens", "error", err, "firebase_uid", ident.UID)
		return Internal(err)
	}
	return nil
}

func (s *authService) CreateSession(ctx context.Context, idToken string) (string, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return "", Validation("idToken is required")
	}
	if _, err := s.provider.VerifyIDToken(ctx, idToken); err != nil {
		return "", &Error{Kind: KindUnauthorized, Message: "Invalid or expired token", Err: err}
	}
	cookie, err := s.provider.SessionCookie(ctx, idToken, identity.SessionTTL)
	if err != nil {
		return "", &Error{Kind: KindUnauthorized, Message: "Invalid or expired token", Err: err}
	}
	return cookie, nil
}

// trimOptional trims s and treats a blank value as absent.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
