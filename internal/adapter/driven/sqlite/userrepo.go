package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rsheldon/staffdesk/internal/domain/model"
	"github.com/rsheldon/staffdesk/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. Returns driven.ErrUsernameTaken if a user with
// the same username already exists.
func (r *UserRepo) Create(ctx context.Context, user model.User) error {
	const query = `INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, string(user.Role), formatTime(createdAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("create user %s: %w", user.Username, driven.ErrUsernameTaken)
		}
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

// GetByUsername retrieves a user by username. Returns (nil, nil) if no user
// with that username exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`

	var user model.User
	var role, createdAt string

	err := r.db.Reader.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}

	user.Role = model.Role(role)
	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for user %s: %w", username, err)
	}

	return &user, nil
}
