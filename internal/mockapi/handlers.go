package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dvcrn/hrms-api-client/internal/hr"
)

var employeeStatuses = map[string]bool{"active": true, "inactive": true, "on_leave": true}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req hr.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "required"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		respondError(w, r, http.StatusBadRequest, codeValidation, "Invalid", fields)
		return
	}

	user, ok := s.store.authenticate(req.Email, req.Password)
	if !ok {
		respondError(w, r, http.StatusBadRequest, codeInvalidCredentials, "Invalid email or password.", nil)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "token_error", "Could not issue token.", nil)
		return
	}
	respondJSON(w, http.StatusOK, hr.LoginResponse{Token: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	user, ok := s.store.user(claims.Subject)
	if !ok {
		respondError(w, r, http.StatusUnauthorized, codeUnauthorized, "unauthorized: unknown account", nil)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, s.store.listEmployees(hr.EmployeeFilter{
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
	}))
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.employee(chi.URLParam(r, "id"))
	if err != nil {
		respondNotFound(w, r, "Employee")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in hr.EmployeeInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fields := validateEmployee(in, true); len(fields) > 0 {
		respondError(w, r, http.StatusBadRequest, codeValidation, "Invalid", fields)
		return
	}
	e, err := s.store.createEmployee(in)
	if err != nil {
		respondEmailTaken(w, r)
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (s *Server) handleReplaceEmployee(w http.ResponseWriter, r *http.Request) {
	s.writeEmployee(w, r, true, s.store.replaceEmployee)
}

func (s *Server) handlePatchEmployee(w http.ResponseWriter, r *http.Request) {
	s.writeEmployee(w, r, false, s.store.patchEmployee)
}

func (s *Server) writeEmployee(w http.ResponseWriter, r *http.Request, full bool, write func(string, hr.EmployeeInput) (hr.Employee, error)) {
	id := chi.URLParam(r, "id")

	var in hr.EmployeeInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fields := validateEmployee(in, full); len(fields) > 0 {
		respondError(w, r, http.StatusBadRequest, codeValidation, "Invalid", fields)
		return
	}

	e, err := write(id, in)
	switch {
	case errors.Is(err, errEmailTaken):
		respondEmailTaken(w, r)
		return
	case err != nil:
		respondNotFound(w, r, "Employee")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteEmployee(chi.URLParam(r, "id")); err != nil {
		respondNotFound(w, r, "Employee")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func respondEmailTaken(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusConflict, codeConflict, "An employee with this email already exists.", map[string]string{"email": "taken"})
}

// validateEmployee returns field errors for in. full requires every
// mandatory field, as for create and replace.
func validateEmployee(in hr.EmployeeInput, full bool) map[string]string {
	fields := map[string]string{}
	if full {
		for name, value := range map[string]string{
			"name":       in.Name,
			"email":      in.Email,
			"department": in.Department,
			"position":   in.Position,
		} {
			if strings.TrimSpace(value) == "" {
				fields[name] = "required"
			}
		}
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		fields["email"] = "invalid"
	}
	if in.Status != "" && !employeeStatuses[in.Status] {
		fields["status"] = "invalid"
	}
	if in.Salary < 0 {
		fields["salary"] = "invalid"
	}
	if in.JoinDate != "" {
		if _, err := time.Parse(time.DateOnly, in.JoinDate); err != nil {
			fields["joinDate"] = "invalid"
		}
	}
	return fields
}

func (s *Server) handleListDepartments(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.store.listDepartments())
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var in hr.DepartmentInput
	if !decodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		respondError(w, r, http.StatusBadRequest, codeValidation, "Invalid", map[string]string{"name": "required"})
		return
	}
	respondJSON(w, http.StatusCreated, s.store.createDepartment(in))
}

func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteDepartment(chi.URLParam(r, "id")); err != nil {
		respondNotFound(w, r, "Department")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListLeaves(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.listLeaves(r.URL.Query().Get("status")))
}

func (s *Server) handleCreateLeave(w http.ResponseWriter, r *http.Request) {
	var in hr.LeaveRequestInput
	if !decodeBody(w, r, &in) {
		return
	}

	fields := map[string]string{}
	if in.EmployeeID == "" {
		fields["employeeId"] = "required"
	}
	if in.Type == "" {
		fields["type"] = "required"
	}
	start, err := time.Parse(time.DateOnly, in.StartDate)
	if err != nil {
		fields["startDate"] = "invalid"
	}
	end, err := time.Parse(time.DateOnly, in.EndDate)
	if err != nil {
		fields["endDate"] = "invalid"
	}
	if fields["startDate"] == "" && fields["endDate"] == "" && end.Before(start) {
		fields["endDate"] = "before start"
	}
	if len(fields) > 0 {
		respondError(w, r, http.StatusBadRequest, codeValidation, "Invalid", fields)
		return
	}

	days := int(end.Sub(start).Hours()/24) + 1
	l, err := s.store.createLeave(in, days)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, "Invalid", map[string]string{"employeeId": "unknown"})
		return
	}
	respondJSON(w, http.StatusCreated, l)
}

func (s *Server) handleDecideLeave(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := s.store.decideLeave(chi.URLParam(r, "id"), status)
		switch {
		case errors.Is(err, errNotFound):
			respondNotFound(w, r, "Leave request")
		case errors.Is(err, errNotPending):
			respondError(w, r, http.StatusConflict, codeConflict, "Leave request has already been decided.", nil)
		default:
			respondJSON(w, http.StatusOK, l)
		}
	}
}

func respondNotFound(w http.ResponseWriter, r *http.Request, what string) {
	respondError(w, r, http.StatusNotFound, codeNotFound, what+" not found.", nil)
}
