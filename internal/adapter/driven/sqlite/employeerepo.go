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
var _ driven.EmployeeStore = (*EmployeeRepo)(nil)

// EmployeeRepo is the SQLite implementation of the EmployeeStore port interface.
type EmployeeRepo struct {
	db *DB
}

// NewEmployeeRepo creates a new EmployeeRepo backed by the given DB.
func NewEmployeeRepo(db *DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeeColumns = `id, first_name, last_name, email, job_title, department, salary, hire_date, status, created_by, created_at, updated_at`

// Create inserts a new employee record. Returns driven.ErrEmailTaken if
// another record already holds the email.
func (r *EmployeeRepo) Create(ctx context.Context, e model.Employee) error {
	const query = `INSERT INTO employees (` + employeeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.JobTitle, e.Department, e.Salary,
		formatTime(e.HireDate), string(e.Status), nullableString(e.CreatedBy),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("create employee %s: %w", e.Email, driven.ErrEmailTaken)
		}
		return fmt.Errorf("create employee %s: %w", e.Email, err)
	}

	return nil
}

// GetByID retrieves an employee record by ID. Returns (nil, nil) if no record
// with that ID exists.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`

	e, err := scanEmployee(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get employee %s: %w", id, err)
	}

	return e, nil
}

// ListAll returns all employee records ordered by hire date, newest first.
func (r *EmployeeRepo) ListAll(ctx context.Context) ([]model.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees ORDER BY hire_date DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}

// Update replaces the stored record with the given ID. Returns
// driven.ErrEmployeeNotFound if the row no longer exists, and
// driven.ErrEmailTaken if the new email collides with another record.
func (r *EmployeeRepo) Update(ctx context.Context, e model.Employee) error {
	const query = `UPDATE employees
		SET first_name = ?, last_name = ?, email = ?, job_title = ?, department = ?,
		    salary = ?, hire_date = ?, status = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query,
		e.FirstName, e.LastName, e.Email, e.JobTitle, e.Department, e.Salary,
		formatTime(e.HireDate), string(e.Status), formatTime(e.UpdatedAt), e.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("update employee %s: %w", e.ID, driven.ErrEmailTaken)
		}
		return fmt.Errorf("update employee %s: %w", e.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update employee %s: %w", e.ID, driven.ErrEmployeeNotFound)
	}

	return nil
}

// Delete removes an employee record by ID. Returns driven.ErrEmployeeNotFound
// if the record does not exist.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM employees WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete employee %s: %w", id, driven.ErrEmployeeNotFound)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (*model.Employee, error) {
	var e model.Employee
	var status, hireDate, createdAt, updatedAt string
	var createdBy sql.NullString

	err := s.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.JobTitle, &e.Department,
		&e.Salary, &hireDate, &status, &createdBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.Status = model.EmployeeStatus(status)
	e.CreatedBy = createdBy.String

	if e.HireDate, err = parseTime(hireDate); err != nil {
		return nil, fmt.Errorf("parse hire_date: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &e, nil
}

// nullableString maps an empty string to NULL so created_by can survive
// ON DELETE SET NULL without a dedicated zero value.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// formatTime normalizes timestamps to UTC RFC3339Nano before storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.000",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}
