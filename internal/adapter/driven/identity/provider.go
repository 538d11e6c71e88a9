// Package identity implements the IdentityProvider driven port with
// bcrypt-hashed accounts persisted through the UserStore port and in-memory
// bearer-token sessions.
package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.IdentityProvider = (*Provider)(nil)

type session struct {
	user      model.User
	expiresAt time.Time
}

// Provider issues uuid bearer tokens over bcrypt-verified accounts. Sessions
// live in memory and expire after the configured TTL; restarting the process
// signs everyone out.
type Provider struct {
	users driven.UserStore
	ttl   time.Duration
	now   func() time.Time // Injectable clock for expiry tests.

	mu       sync.Mutex
	sessions map[string]session
	onChange func(*model.User) // At most one active subscription.
}

// NewProvider creates a Provider with the given session TTL.
func NewProvider(users driven.UserStore, ttl time.Duration) *Provider {
	return &Provider{
		users:    users,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]session),
	}
}

// SignUp registers a new account. The password is bcrypt-hashed before it
// reaches the user store.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return p.users.Create(ctx, email, string(hash))
}

// SignIn verifies the credentials and issues a session, notifying any active
// session-change subscriber.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*driven.Session, error) {
	user, hash, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, driven.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, driven.ErrInvalidCredentials
	}

	token := uuid.NewString()

	p.mu.Lock()
	p.sessions[token] = session{user: *user, expiresAt: p.now().Add(p.ttl)}
	notify := p.onChange
	p.mu.Unlock()

	if notify != nil {
		notify(user)
	}

	return &driven.Session{Token: token, User: *user}, nil
}

// SignOut revokes the session for the given token. Unknown tokens are a
// no-op; only a live revoked session triggers a change notification.
func (p *Provider) SignOut(_ context.Context, token string) error {
	p.mu.Lock()
	_, existed := p.sessions[token]
	delete(p.sessions, token)
	notify := p.onChange
	p.mu.Unlock()

	if existed && notify != nil {
		notify(nil)
	}
	return nil
}

// SessionUser resolves a token to its user, dropping the session if it has
// expired. Returns (nil, nil) for unknown or expired tokens.
func (p *Provider) SessionUser(_ context.Context, token string) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[token]
	if !ok {
		return nil, nil
	}
	if p.now().After(s.expiresAt) {
		delete(p.sessions, token)
		return nil, nil
	}

	user := s.user
	return &user, nil
}

// Subscribe registers fn as the single session-change listener. The returned
// cancel func frees the slot; calling it more than once is harmless.
func (p *Provider) Subscribe(fn func(*model.User)) (func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.onChange != nil {
		return nil, driven.ErrSubscriptionActive
	}
	p.onChange = fn

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			p.onChange = nil
			p.mu.Unlock()
		})
	}
	return cancel, nil
}
