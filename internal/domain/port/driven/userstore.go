package driven

import (
	"context"
	"errors"

	"github.com/rsheldon/staffdesk/internal/domain/model"
)

// ErrUsernameTaken indicates a user with the same username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore defines the driven port for administrator account persistence.
// Create returns ErrUsernameTaken on a duplicate username. GetByUsername
// returns (nil, nil) when no user with that username exists.
type UserStore interface {
	Create(ctx context.Context, user model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
