package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rsheldon/staffdesk/internal/application"
	"github.com/rsheldon/staffdesk/internal/domain/model"
	"github.com/rsheldon/staffdesk/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockUserStore struct {
	users   map[string]model.User
	created []model.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]model.User)}
}

func (m *mockUserStore) Create(_ context.Context, user model.User) error {
	if _, ok := m.users[user.Username]; ok {
		return driven.ErrUsernameTaken
	}
	m.users[user.Username] = user
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func newTestAuthService(store *mockUserStore) *application.AuthService {
	tokens := application.NewTokenManager("test-secret", time.Hour)
	return application.NewAuthService(store, tokens, bcrypt.MinCost)
}

// --- Register ---

func TestAuthService_Register(t *testing.T) {
	store := newMockUserStore()
	svc := newTestAuthService(store)

	token, user, err := svc.Register(context.Background(), "admin", "hunter2secret")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, model.RoleAdmin, user.Role)

	// The stored hash must verify against the original password and must not
	// be the password itself.
	require.Len(t, store.created, 1)
	stored := store.created[0]
	assert.NotEqual(t, "hunter2secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2secret")))
}

func TestAuthService_Register_TokenCarriesIdentity(t *testing.T) {
	store := newMockUserStore()
	tokens := application.NewTokenManager("test-secret", time.Hour)
	svc := application.NewAuthService(store, tokens, bcrypt.MinCost)

	token, user, err := svc.Register(context.Background(), "admin", "hunter2secret")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.User.ID)
	assert.Equal(t, string(model.RoleAdmin), claims.User.Role)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	store := newMockUserStore()
	svc := newTestAuthService(store)

	_, _, err := svc.Register(context.Background(), "admin", "hunter2secret")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "admin", "otherpassword")
	assert.ErrorIs(t, err, driven.ErrUsernameTaken)
	assert.Len(t, store.created, 1)
}

func TestAuthService_Register_TrimsUsername(t *testing.T) {
	store := newMockUserStore()
	svc := newTestAuthService(store)

	_, user, err := svc.Register(context.Background(), "  admin  ", "hunter2secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newTestAuthService(newMockUserStore())

	var verr *application.ValidationError

	_, _, err := svc.Register(context.Background(), "   ", "hunter2secret")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)

	_, _, err = svc.Register(context.Background(), "admin", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

// --- Login ---

func TestAuthService_Login(t *testing.T) {
	store := newMockUserStore()
	svc := newTestAuthService(store)

	_, registered, err := svc.Register(context.Background(), "admin", "hunter2secret")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "admin", "hunter2secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthService_Login_UnknownUserAndWrongPassword(t *testing.T) {
	store := newMockUserStore()
	svc := newTestAuthService(store)

	_, _, err := svc.Register(context.Background(), "admin", "hunter2secret")
	require.NoError(t, err)

	// Both failure modes collapse to the same error so usernames cannot be
	// enumerated through login.
	_, _, err = svc.Login(context.Background(), "nobody", "hunter2secret")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "admin", "wrongpassword")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}
