package application

import (
	"context"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// MinPasswordLength is the minimum accepted account password length.
const MinPasswordLength = 6

// AuthService fronts the identity provider, enforcing input validation before
// any remote call so invalid sign-ups never produce a provider side effect.
type AuthService struct {
	provider driven.IdentityProvider
}

// NewAuthService creates an AuthService.
func NewAuthService(provider driven.IdentityProvider) *AuthService {
	return &AuthService{provider: provider}
}

// SignUp validates the registration input and creates the account. confirm
// must match password; the check happens here because the provider never sees
// the confirmation field.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirm string) (*model.User, error) {
	if email == "" {
		return nil, validationErr("email", "must not be empty")
	}
	if len(password) < MinPasswordLength {
		return nil, validationErr("password", "must be at least 6 characters")
	}
	if password != confirm {
		return nil, validationErr("confirm", "passwords do not match")
	}

	return s.provider.SignUp(ctx, email, password)
}

// SignIn authenticates and issues a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*driven.Session, error) {
	if email == "" || password == "" {
		return nil, driven.ErrInvalidCredentials
	}
	return s.provider.SignIn(ctx, email, password)
}

// SignOut revokes the session for token.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.provider.SignOut(ctx, token)
}

// CurrentUser resolves a bearer token to its user, or (nil, nil) when the
// token names no live session.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	return s.provider.SessionUser(ctx, token)
}

// OnSessionChange registers fn to observe sign-in (user) and sign-out (nil)
// events. At most one observer is active at a time; the returned cancel func
// frees the slot.
func (s *AuthService) OnSessionChange(fn func(*model.User)) (func(), error) {
	return s.provider.Subscribe(fn)
}
