package model

import "time"

// Employee is a single personnel record. CreatedBy references the ID of the
// User that created the record and may be empty for records imported outside
// the API.
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	JobTitle   string
	Department string
	Salary     float64
	HireDate   time.Time
	Status     EmployeeStatus
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
