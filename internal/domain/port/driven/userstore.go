package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
)

// ErrEmailTaken is returned by UserStore.Create when the email is already
// registered.
var ErrEmailTaken = errors.New("email already registered")

// UserStore defines the driven port for identity account persistence. Only
// the password hash ever reaches this boundary.
type UserStore interface {
	// Create persists a new account and returns it. Returns ErrEmailTaken
	// when the email is already in use.
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)

	// GetByEmail returns the account and its password hash, or (nil, "", nil)
	// when the email is unknown.
	GetByEmail(ctx context.Context, email string) (*model.User, string, error)

	// GetByID returns the account, or (nil, nil) when the id is unknown.
	GetByID(ctx context.Context, id string) (*model.User, error)
}
