package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rsheldon/staffdesk/internal/domain/model"
	"github.com/rsheldon/staffdesk/internal/domain/port/driven"
)

// ErrInvalidCredentials is returned by Login for both an unknown username and
// a wrong password. The message is deliberately generic so callers cannot
// enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles administrator registration and login, and decides what
// goes into the session tokens it hands out. Passwords are bcrypt-hashed
// before they reach the store.
type AuthService struct {
	users      driven.UserStore
	tokens     *TokenManager
	bcryptCost int
}

// NewAuthService creates an AuthService. bcryptCost below bcrypt.MinCost
// falls back to the bcrypt default (10).
func NewAuthService(users driven.UserStore, tokens *TokenManager, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new administrator account and immediately issues a
// session token for it. Returns driven.ErrUsernameTaken when the username is
// already registered.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, *model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", nil, &ValidationError{Field: "username", Message: "Username is required"}
	}
	if password == "" {
		return "", nil, &ValidationError{Field: "password", Message: "Password is required"}
	}

	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return "", nil, fmt.Errorf("check username: %w", err)
	} else if existing != nil {
		return "", nil, driven.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	// The store enforces uniqueness too, so a concurrent registration of the
	// same username still surfaces as ErrUsernameTaken rather than a 500.
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// Login verifies the given credentials and issues a session token. An unknown
// username and a wrong password both return ErrInvalidCredentials; bcrypt's
// comparison is constant-time.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
