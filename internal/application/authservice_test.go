package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// mockIdentityProvider counts remote calls so tests can assert validation
// short-circuits before the provider is touched.
type mockIdentityProvider struct {
	calls      int
	subscribed bool
}

func (m *mockIdentityProvider) SignUp(_ context.Context, email, _ string) (*model.User, error) {
	m.calls++
	return &model.User{ID: "user-1", Email: email}, nil
}

func (m *mockIdentityProvider) SignIn(_ context.Context, email, _ string) (*driven.Session, error) {
	m.calls++
	return &driven.Session{Token: "tok-1", User: model.User{ID: "user-1", Email: email}}, nil
}

func (m *mockIdentityProvider) SignOut(_ context.Context, _ string) error {
	m.calls++
	return nil
}

func (m *mockIdentityProvider) SessionUser(_ context.Context, token string) (*model.User, error) {
	m.calls++
	if token != "tok-1" {
		return nil, nil
	}
	return &model.User{ID: "user-1"}, nil
}

func (m *mockIdentityProvider) Subscribe(func(*model.User)) (func(), error) {
	if m.subscribed {
		return nil, driven.ErrSubscriptionActive
	}
	m.subscribed = true
	return func() { m.subscribed = false }, nil
}

func TestAuthService_SignUp(t *testing.T) {
	provider := &mockIdentityProvider{}
	svc := NewAuthService(provider)

	user, err := svc.SignUp(context.Background(), "alice@example.com", "secret123", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, 1, provider.calls)
}

func TestAuthService_SignUpValidation(t *testing.T) {
	provider := &mockIdentityProvider{}
	svc := NewAuthService(provider)
	ctx := context.Background()

	var verr *ValidationError

	_, err := svc.SignUp(ctx, "", "secret123", "secret123")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	_, err = svc.SignUp(ctx, "alice@example.com", "short", "short")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, err = svc.SignUp(ctx, "alice@example.com", "secret123", "secret124")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "confirm", verr.Field)

	// No provider side effects for rejected input.
	assert.Zero(t, provider.calls)
}

func TestAuthService_SignInEmptyInput(t *testing.T) {
	provider := &mockIdentityProvider{}
	svc := NewAuthService(provider)

	_, err := svc.SignIn(context.Background(), "", "")
	assert.ErrorIs(t, err, driven.ErrInvalidCredentials)
	assert.Zero(t, provider.calls)
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := NewAuthService(&mockIdentityProvider{})
	ctx := context.Background()

	user, err := svc.CurrentUser(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, user)

	none, err := svc.CurrentUser(ctx, "bogus")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAuthService_OnSessionChange(t *testing.T) {
	svc := NewAuthService(&mockIdentityProvider{})

	cancel, err := svc.OnSessionChange(func(*model.User) {})
	require.NoError(t, err)

	_, err = svc.OnSessionChange(func(*model.User) {})
	assert.ErrorIs(t, err, driven.ErrSubscriptionActive)

	cancel()
	cancel2, err := svc.OnSessionChange(func(*model.User) {})
	require.NoError(t, err)
	cancel2()
}
