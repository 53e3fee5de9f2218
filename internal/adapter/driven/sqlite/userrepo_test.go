package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsheldon/staffdesk/internal/domain/model"
	"github.com/rsheldon/staffdesk/internal/domain/port/driven"
)

func makeUser(id, username string) model.User {
	return model.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
		Role:         model.RoleAdmin,
		CreatedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestUserRepo_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	err := repo.Create(ctx, makeUser("u-1", "alice"))
	require.NoError(t, err)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.NotEmpty(t, got.PasswordHash)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeUser("u-1", "alice")))

	err := repo.Create(ctx, makeUser("u-2", "alice"))
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrUsernameTaken)
}

func TestUserRepo_GetByUsername_Absent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	got, err := repo.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got, "absent user should return nil without error")
}

func TestUserRepo_Create_DefaultsCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := makeUser("u-1", "bob")
	u.CreatedAt = time.Time{}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.CreatedAt.IsZero())
}
