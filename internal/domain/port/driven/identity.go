package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
)

// ErrInvalidCredentials is returned by IdentityProvider.SignIn for an unknown
// email or a wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrSubscriptionActive is returned by Subscribe when a session-change
// subscription is already registered. At most one subscription is active at a
// time; cancel the previous one first.
var ErrSubscriptionActive = errors.New("session subscription already active")

// Session is an authenticated session handle issued by the identity provider.
type Session struct {
	Token string
	User  model.User
}

// IdentityProvider defines the driven port for authentication. The core
// treats the provider's user id as an opaque owner identifier and performs no
// credential checks of its own.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*model.User, error)

	// SignIn verifies the credentials and issues a session. Returns
	// ErrInvalidCredentials when they do not match an account.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignOut revokes the session for the given token. Revoking an unknown
	// or already-expired token is not an error.
	SignOut(ctx context.Context, token string) error

	// SessionUser resolves a token to its user, or (nil, nil) when the token
	// does not name a live session.
	SessionUser(ctx context.Context, token string) (*model.User, error)

	// Subscribe registers fn to be called with the user on sign-in and nil on
	// sign-out. The returned cancel func unregisters it; Subscribe returns
	// ErrSubscriptionActive while another subscription is registered.
	Subscribe(fn func(*model.User)) (cancel func(), err error)
}
