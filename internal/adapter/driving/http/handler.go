package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rsheldon/staffdesk/internal/application"
	"github.com/rsheldon/staffdesk/internal/domain/model"
	"github.com/rsheldon/staffdesk/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	authSvc     *application.AuthService
	employeeSvc *application.EmployeeService
	tokens      *application.TokenManager
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	authSvc *application.AuthService,
	employeeSvc *application.EmployeeService,
	tokens *application.TokenManager,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:     authSvc,
		employeeSvc: employeeSvc,
		tokens:      tokens,
		logger:      logger,
	}
}

// RegisterAPIRoutes registers all API routes on the provided mux. The
// employee routes are gated behind session token verification; the auth
// routes and the health probe are public.
func (h *Handler) RegisterAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)

	mux.HandleFunc("POST /api/employees", requireAuth(h.tokens, h.CreateEmployee))
	mux.HandleFunc("GET /api/employees", requireAuth(h.tokens, h.ListEmployees))
	mux.HandleFunc("GET /api/employees/{id}", requireAuth(h.tokens, h.GetEmployee))
	mux.HandleFunc("PUT /api/employees/{id}", requireAuth(h.tokens, h.UpdateEmployee))
	mux.HandleFunc("DELETE /api/employees/{id}", requireAuth(h.tokens, h.DeleteEmployee))

	mux.HandleFunc("GET /api/health", h.Health)
}

// ApplyMiddleware wraps the mux with logging and recovery middleware.
// Recovery innermost so panics are caught before logging.
func ApplyMiddleware(mux http.Handler, logger *slog.Logger) http.Handler {
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// Register creates a new administrator account and returns a session token
// alongside the public user view.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.authSvc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.Is(err, driven.ErrUsernameTaken):
			writeMsg(w, http.StatusBadRequest, "User already exists")
		case errors.As(err, &verr):
			writeMsg(w, http.StatusBadRequest, verr.Message)
		default:
			h.logger.Error("registration failed", "error", err)
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(*user)})
}

// Login authenticates an administrator and returns a session token. Unknown
// usernames and wrong passwords produce the identical response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			writeMsg(w, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(*user)})
}

// CreateEmployee adds a new employee record tagged with the caller's identity.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input, err := toEmployeeInput(req)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid hire date")
		return
	}

	caller, _ := CallerFromContext(r.Context())

	employee, err := h.employeeSvc.Create(r.Context(), input, caller.ID)
	if err != nil {
		h.respondEmployeeError(w, err, "create employee")
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeResponse(*employee))
}

// ListEmployees returns all employee records, newest hire first.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeSvc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list employees", "error", err)
		writeServerError(w)
		return
	}

	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, toEmployeeResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetEmployee returns a single employee record by ID.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employeeSvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondEmployeeError(w, err, "get employee")
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeResponse(*employee))
}

// UpdateEmployee applies a partial field replacement to an employee record.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update, err := toEmployeeUpdate(req)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid hire date")
		return
	}

	employee, err := h.employeeSvc.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		h.respondEmployeeError(w, err, "update employee")
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeResponse(*employee))
}

// DeleteEmployee removes an employee record by ID.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondEmployeeError(w, err, "delete employee")
		return
	}

	writeMsg(w, http.StatusOK, "Employee removed")
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// respondEmployeeError maps employee service failures onto the API error
// taxonomy: not-found (including malformed IDs) to 404, validation to 400
// with the field complaint, anything else to an opaque 500.
func (h *Handler) respondEmployeeError(w http.ResponseWriter, err error, op string) {
	var verr *application.ValidationError
	switch {
	case errors.Is(err, driven.ErrEmployeeNotFound):
		writeMsg(w, http.StatusNotFound, "Employee not found")
	case errors.As(err, &verr):
		writeMsg(w, http.StatusBadRequest, verr.Message)
	default:
		h.logger.Error("employee request failed", "op", op, "error", err)
		writeServerError(w)
	}
}

// toEmployeeInput converts the create request body into a service input,
// parsing the optional hire date.
func toEmployeeInput(req createEmployeeRequest) (application.EmployeeInput, error) {
	input := application.EmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Salary:     req.Salary,
		Status:     model.EmployeeStatus(req.Status),
	}

	if req.HireDate != "" {
		t, err := parseDate(req.HireDate)
		if err != nil {
			return application.EmployeeInput{}, err
		}
		input.HireDate = &t
	}

	return input, nil
}

// toEmployeeUpdate converts the update request body into a partial update.
func toEmployeeUpdate(req updateEmployeeRequest) (application.EmployeeUpdate, error) {
	update := application.EmployeeUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Salary:     req.Salary,
	}

	if req.Status != nil {
		status := model.EmployeeStatus(*req.Status)
		update.Status = &status
	}

	if req.HireDate != nil && *req.HireDate != "" {
		t, err := parseDate(*req.HireDate)
		if err != nil {
			return application.EmployeeUpdate{}, err
		}
		update.HireDate = &t
	}

	return update, nil
}

// parseDate accepts RFC 3339 timestamps and bare dates as produced by an
// HTML date input.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
