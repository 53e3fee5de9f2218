package model

// Role represents the access role of a portal user. Both roles currently
// grant identical access; the role travels in the session token for future
// capability gating.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleManager
}

// EmployeeStatus represents the employment state of an employee record.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "Active"
	StatusInactive EmployeeStatus = "Inactive"
	StatusLeave    EmployeeStatus = "Leave"
)

// ValidEmployeeStatus reports whether s is one of the known statuses.
func ValidEmployeeStatus(s EmployeeStatus) bool {
	return s == StatusActive || s == StatusInactive || s == StatusLeave
}
