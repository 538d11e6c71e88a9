package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

func TestUserRepo_CreateAndGetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Alice@Example.com", "hash-1")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)

	user, hash, err := repo.GetByEmail(ctx, "alice@EXAMPLE.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "hash-1", hash)
}

func TestUserRepo_GetByEmailMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	user, hash, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, hash)
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice@example.com", "hash-1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "ALICE@example.com", "hash-2")
	assert.ErrorIs(t, err, driven.ErrEmailTaken)
}

func TestUserRepo_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice@example.com", "hash-1")
	require.NoError(t, err)

	user, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)

	missing, err := repo.GetByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
