package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rsheldon/staffdesk/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"msg":"Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeMsg writes the standard JSON message body with the given status code.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResponse{Msg: msg})
}

// writeServerError writes the opaque plain-text 500 response. Detail never
// reaches the client; the caller is expected to have logged it.
func writeServerError(w http.ResponseWriter) {
	http.Error(w, "Server Error", http.StatusInternalServerError)
}

// msgResponse is the standard message response body.
type msgResponse struct {
	Msg string `json:"msg"`
}

// UserResponse is the public JSON representation of a portal user. The
// password hash never leaves the server.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthResponse is the JSON body returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// EmployeeResponse is the JSON representation of an employee record.
type EmployeeResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	JobTitle   string  `json:"job_title"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	HireDate   string  `json:"hire_date"`
	Status     string  `json:"status"`
	CreatedBy  string  `json:"created_by,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// credentialsRequest is the JSON body for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// createEmployeeRequest is the JSON body for the create employee endpoint.
// Salary is a pointer so an omitted salary is distinguishable from zero.
type createEmployeeRequest struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email"`
	JobTitle   string   `json:"job_title"`
	Department string   `json:"department"`
	Salary     *float64 `json:"salary"`
	HireDate   string   `json:"hire_date"`
	Status     string   `json:"status"`
}

// updateEmployeeRequest is the JSON body for the update endpoint. Every field
// is optional; absent fields keep their stored value.
type updateEmployeeRequest struct {
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	Email      *string  `json:"email"`
	JobTitle   *string  `json:"job_title"`
	Department *string  `json:"department"`
	Salary     *float64 `json:"salary"`
	HireDate   *string  `json:"hire_date"`
	Status     *string  `json:"status"`
}

// toUserResponse converts a domain User to its public JSON representation.
func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	}
}

// toEmployeeResponse converts a domain Employee to its JSON representation.
func toEmployeeResponse(e model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		JobTitle:   e.JobTitle,
		Department: e.Department,
		Salary:     e.Salary,
		HireDate:   e.HireDate.UTC().Format(time.RFC3339),
		Status:     string(e.Status),
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
