package driven

import (
	"context"
	"errors"

	"github.com/rsheldon/staffdesk/internal/domain/model"
)

// Sentinel errors returned by EmployeeStore implementations.
var (
	// ErrEmployeeNotFound indicates the requested employee record does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmailTaken indicates another employee record already holds the email.
	ErrEmailTaken = errors.New("email already taken")
)

// EmployeeStore defines the driven port for employee record persistence.
// Create and Update return ErrEmailTaken when the email collides with an
// existing record. Update and Delete return ErrEmployeeNotFound when no row
// with the given ID exists. GetByID returns (nil, nil) when absent.
type EmployeeStore interface {
	Create(ctx context.Context, employee model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	ListAll(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, employee model.Employee) error
	Delete(ctx context.Context, id string) error
}
