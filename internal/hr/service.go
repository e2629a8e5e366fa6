// Package hr exposes the HRMS backend resources as typed calls over the API
// client. Errors are returned unchanged, so callers can inspect them with
// the apiclient helpers.
package hr

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dvcrn/hrms-api-client/internal/apiclient"
)

// Service is a typed facade over the HRMS API.
type Service struct {
	api *apiclient.Client
}

// NewService wraps api.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Login exchanges credentials for a token and stores it in the client's
// session, so later calls are authenticated.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var res LoginResponse
	if err := s.api.Post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	if err := s.api.Session().SetToken(res.Token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return &res, nil
}

// Logout forgets the stored token.
func (s *Service) Logout() error {
	return s.api.Session().Clear()
}

// Me returns the user behind the current session.
func (s *Service) Me(ctx context.Context) (*User, error) {
	var u User
	if err := s.api.Get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListEmployees returns employees matching filter.
func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Department != "" {
		q.Set("department", filter.Department)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}

	var employees []Employee
	if err := s.api.Get(ctx, "/employees", &employees, apiclient.WithQuery(q)); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetEmployee fetches one employee.
func (s *Service) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	if err := s.api.Get(ctx, employeePath(id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee adds an employee.
func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var e Employee
	if err := s.api.Post(ctx, "/employees", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEmployee replaces an employee record.
func (s *Service) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*Employee, error) {
	var e Employee
	if err := s.api.Put(ctx, employeePath(id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// PatchEmployee changes only the non-zero fields of in.
func (s *Service) PatchEmployee(ctx context.Context, id string, in EmployeeInput) (*Employee, error) {
	var e Employee
	if err := s.api.Patch(ctx, employeePath(id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEmployee removes an employee.
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	return s.api.Delete(ctx, employeePath(id), nil)
}

func employeePath(id string) string {
	return "/employees/" + url.PathEscape(id)
}

// ListDepartments returns every department.
func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	if err := s.api.Get(ctx, "/departments", &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// CreateDepartment adds a department. Requires an admin session.
func (s *Service) CreateDepartment(ctx context.Context, in DepartmentInput) (*Department, error) {
	var d Department
	if err := s.api.Post(ctx, "/departments", in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDepartment removes a department. Requires an admin session.
func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/departments/"+url.PathEscape(id), nil)
}

// ListLeaveRequests returns leave requests, optionally only those in status.
func (s *Service) ListLeaveRequests(ctx context.Context, status string) ([]LeaveRequest, error) {
	var opts []apiclient.RequestOption
	if status != "" {
		opts = append(opts, apiclient.WithQuery(url.Values{"status": {status}}))
	}

	var leaves []LeaveRequest
	if err := s.api.Get(ctx, "/leaves", &leaves, opts...); err != nil {
		return nil, err
	}
	return leaves, nil
}

// CreateLeaveRequest files a new pending leave request.
func (s *Service) CreateLeaveRequest(ctx context.Context, in LeaveRequestInput) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := s.api.Post(ctx, "/leaves", in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ApproveLeaveRequest approves a pending request. Requires an admin session.
func (s *Service) ApproveLeaveRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	return s.decideLeave(ctx, id, "approve")
}

// RejectLeaveRequest rejects a pending request. Requires an admin session.
func (s *Service) RejectLeaveRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	return s.decideLeave(ctx, id, "reject")
}

func (s *Service) decideLeave(ctx context.Context, id, action string) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := s.api.Patch(ctx, "/leaves/"+url.PathEscape(id)+"/"+action, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}
