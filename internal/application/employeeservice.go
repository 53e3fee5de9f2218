package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rsheldon/staffdesk/internal/domain/model"
	"github.com/rsheldon/staffdesk/internal/domain/port/driven"
)

// EmployeeInput carries the writable fields of an employee record as
// submitted by the client. Salary and HireDate are pointers so "absent" can
// be told apart from a zero value.
type EmployeeInput struct {
	FirstName  string
	LastName   string
	Email      string
	JobTitle   string
	Department string
	Salary     *float64
	HireDate   *time.Time
	Status     model.EmployeeStatus
}

// EmployeeUpdate is a partial field replacement: nil fields keep their
// stored value.
type EmployeeUpdate struct {
	FirstName  *string
	LastName   *string
	Email      *string
	JobTitle   *string
	Department *string
	Salary     *float64
	HireDate   *time.Time
	Status     *model.EmployeeStatus
}

// EmployeeService orchestrates employee record CRUD over the store,
// enforcing field-level validation before anything is written.
type EmployeeService struct {
	employees driven.EmployeeStore
}

// NewEmployeeService creates an EmployeeService backed by the given store.
func NewEmployeeService(employees driven.EmployeeStore) *EmployeeService {
	return &EmployeeService{employees: employees}
}

// Create validates the input and persists a new record tagged with the
// creating user's ID. Email uniqueness is enforced by the store; a collision
// surfaces as a *ValidationError like any other rejected field.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput, createdBy string) (*model.Employee, error) {
	now := time.Now().UTC()

	e := model.Employee{
		ID:         uuid.NewString(),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
		JobTitle:   strings.TrimSpace(input.JobTitle),
		Department: strings.TrimSpace(input.Department),
		HireDate:   now,
		Status:     model.StatusActive,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if input.Salary != nil {
		e.Salary = *input.Salary
	}
	if input.HireDate != nil {
		e.HireDate = input.HireDate.UTC()
	}
	if input.Status != "" {
		e.Status = input.Status
	}

	if verr := validateEmployee(e, input.Salary == nil); verr != nil {
		return nil, verr
	}

	if err := s.employees.Create(ctx, e); err != nil {
		return nil, mapEmailTaken(err)
	}

	return &e, nil
}

// List returns all employee records, newest hire first.
func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.employees.ListAll(ctx)
}

// Get retrieves a record by ID. A syntactically malformed ID and an absent ID
// are indistinguishable to the caller: both return driven.ErrEmployeeNotFound.
func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, driven.ErrEmployeeNotFound
	}

	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, driven.ErrEmployeeNotFound
	}

	return e, nil
}

// Update applies a partial field replacement to the record with the given ID.
// The existence check and the replace are two separate store calls, not a
// transaction: a delete racing between them returns ErrEmployeeNotFound from
// the second call rather than resurrecting the row.
func (s *EmployeeService) Update(ctx context.Context, id string, update EmployeeUpdate) (*model.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		e.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		e.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.Email != nil {
		e.Email = strings.TrimSpace(*update.Email)
	}
	if update.JobTitle != nil {
		e.JobTitle = strings.TrimSpace(*update.JobTitle)
	}
	if update.Department != nil {
		e.Department = strings.TrimSpace(*update.Department)
	}
	if update.Salary != nil {
		e.Salary = *update.Salary
	}
	if update.HireDate != nil {
		e.HireDate = update.HireDate.UTC()
	}
	if update.Status != nil {
		e.Status = *update.Status
	}
	e.UpdatedAt = time.Now().UTC()

	if verr := validateEmployee(*e, false); verr != nil {
		return nil, verr
	}

	if err := s.employees.Update(ctx, *e); err != nil {
		return nil, mapEmailTaken(err)
	}

	return e, nil
}

// Delete removes the record with the given ID, with the same malformed-ID
// collapsing as Get.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return driven.ErrEmployeeNotFound
	}

	return s.employees.Delete(ctx, id)
}

// validateEmployee enforces the field rules shared by create and update.
// salaryMissing distinguishes an omitted salary from an explicit zero.
func validateEmployee(e model.Employee, salaryMissing bool) *ValidationError {
	switch {
	case e.FirstName == "":
		return &ValidationError{Field: "first_name", Message: "First name is required"}
	case e.LastName == "":
		return &ValidationError{Field: "last_name", Message: "Last name is required"}
	case e.Email == "":
		return &ValidationError{Field: "email", Message: "Email is required"}
	case !emailPattern.MatchString(e.Email):
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	case e.JobTitle == "":
		return &ValidationError{Field: "job_title", Message: "Job title is required"}
	case e.Department == "":
		return &ValidationError{Field: "department", Message: "Department is required"}
	case salaryMissing:
		return &ValidationError{Field: "salary", Message: "Salary is required"}
	case e.Salary < 0:
		return &ValidationError{Field: "salary", Message: "Salary cannot be negative"}
	case !model.ValidEmployeeStatus(e.Status):
		return &ValidationError{Field: "status", Message: "Status must be Active, Inactive or Leave"}
	}

	return nil
}

// mapEmailTaken translates the store's uniqueness sentinel into the
// validation taxonomy so the API reports it like any other field complaint.
func mapEmailTaken(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driven.ErrEmailTaken) {
		return &ValidationError{Field: "email", Message: "Email is already in use"}
	}
	return err
}
