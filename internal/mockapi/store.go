package mockapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvcrn/hrms-api-client/internal/hr"
)

var (
	errNotFound   = errors.New("not found")
	errNotPending = errors.New("leave request is not pending")
	errEmailTaken = errors.New("email already in use")
)

// passwordCost is the bcrypt cost of mock account hashes.
const passwordCost = bcrypt.MinCost

// account is a user that can log in to the mock backend.
type account struct {
	hr.User
	passwordHash []byte
}

// Store is the in-memory data set behind the mock backend.
type Store struct {
	mu          sync.RWMutex
	accounts    map[string]account
	employees   map[string]hr.Employee
	departments map[string]hr.Department
	leaves      map[string]hr.LeaveRequest
	newID       func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]account),
		employees:   make(map[string]hr.Employee),
		departments: make(map[string]hr.Department),
		leaves:      make(map[string]hr.LeaveRequest),
		newID:       func() string { return uuid.NewString() },
	}
}

// NewSeededStore returns a store holding the demo accounts and records.
func NewSeededStore() *Store {
	s := NewStore()

	for _, a := range []struct {
		user     hr.User
		password string
	}{
		{user: hr.User{ID: "u-1", Name: "Ada Admin", Email: "admin@hr.local", Role: RoleAdmin}, password: "admin"},
		{user: hr.User{ID: "u-2", Name: "Sam Staff", Email: "staff@hr.local", Role: RoleStaff}, password: "staff"},
	} {
		if err := s.AddAccount(a.user, a.password); err != nil {
			panic(err)
		}
	}

	for _, d := range []hr.Department{
		{ID: "d-1", Name: "Engineering", Manager: "Grace Hopper", Description: "Product and platform"},
		{ID: "d-2", Name: "People", Manager: "Mary Parker", Description: "Hiring and HR operations"},
		{ID: "d-3", Name: "Finance", Manager: "Luca Pacioli"},
	} {
		s.departments[d.ID] = d
	}

	for _, e := range []hr.Employee{
		{ID: "e-1", Name: "Grace Hopper", Email: "grace@hr.local", Department: "Engineering", Position: "Engineering Manager", Status: "active", JoinDate: "2019-03-01", Salary: 145000},
		{ID: "e-2", Name: "Alan Turing", Email: "alan@hr.local", Department: "Engineering", Position: "Staff Engineer", Status: "active", JoinDate: "2020-07-15", Salary: 132000},
		{ID: "e-3", Name: "Mary Parker", Email: "mary@hr.local", Department: "People", Position: "HR Lead", Status: "active", JoinDate: "2018-11-05", Salary: 98000},
		{ID: "e-4", Name: "Luca Pacioli", Email: "luca@hr.local", Department: "Finance", Position: "Controller", Status: "on_leave", JoinDate: "2021-01-11", Salary: 105000},
		{ID: "e-5", Name: "Ken Thompson", Email: "ken@hr.local", Department: "Engineering", Position: "Contractor", Status: "inactive", JoinDate: "2022-05-02", Salary: 80000},
	} {
		s.employees[e.ID] = e
	}

	for _, l := range []hr.LeaveRequest{
		{ID: "l-1", EmployeeID: "e-2", Employee: "Alan Turing", Type: "annual", StartDate: "2026-11-02", EndDate: "2026-11-06", Days: 5, Reason: "Family visit", Status: hr.LeavePending},
		{ID: "l-2", EmployeeID: "e-4", Employee: "Luca Pacioli", Type: "sick", StartDate: "2026-10-01", EndDate: "2026-10-03", Days: 3, Status: hr.LeaveApproved},
	} {
		s.leaves[l.ID] = l
	}

	return s
}

// AddAccount registers a user that can log in with password.
func (s *Store) AddAccount(u hr.User, password string) error {
	if u.Email == "" || password == "" {
		return errors.New("account needs an email and a password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.newID()
	}
	s.accounts[strings.ToLower(u.Email)] = account{User: u, passwordHash: hash}
	return nil
}

// authenticate returns the user for the given credentials.
func (s *Store) authenticate(email, password string) (hr.User, bool) {
	s.mu.RLock()
	a, ok := s.accounts[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
		return hr.User{}, false
	}
	return a.User, true
}

func (s *Store) user(id string) (hr.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.ID == id {
			return a.User, true
		}
	}
	return hr.User{}, false
}

func (s *Store) listEmployees(filter hr.EmployeeFilter) []hr.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]hr.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if filter.Department != "" && !strings.EqualFold(e.Department, filter.Department) {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(e.Status, filter.Status) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Email), search) &&
			!strings.Contains(strings.ToLower(e.Position), search) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) employee(id string) (hr.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return hr.Employee{}, errNotFound
	}
	return e, nil
}

func (s *Store) createEmployee(in hr.EmployeeInput) (hr.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(in.Email, "") {
		return hr.Employee{}, errEmailTaken
	}
	e := applyEmployee(hr.Employee{ID: s.newID(), Status: "active"}, in)
	if e.JoinDate == "" {
		e.JoinDate = time.Now().UTC().Format(time.DateOnly)
	}
	s.employees[e.ID] = e
	return e, nil
}

// replaceEmployee overwrites every writable field of id.
func (s *Store) replaceEmployee(id string, in hr.EmployeeInput) (hr.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return hr.Employee{}, errNotFound
	}
	if s.emailTakenLocked(in.Email, id) {
		return hr.Employee{}, errEmailTaken
	}
	e := applyEmployee(hr.Employee{ID: id}, in)
	s.employees[id] = e
	return e, nil
}

// patchEmployee overwrites only the non-zero fields of in.
func (s *Store) patchEmployee(id string, in hr.EmployeeInput) (hr.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return hr.Employee{}, errNotFound
	}
	if s.emailTakenLocked(in.Email, id) {
		return hr.Employee{}, errEmailTaken
	}
	e = applyEmployee(e, in)
	s.employees[id] = e
	return e, nil
}

func (s *Store) deleteEmployee(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return errNotFound
	}
	delete(s.employees, id)
	return nil
}

// emailTakenLocked reports whether another employee uses email. The caller
// holds s.mu.
func (s *Store) emailTakenLocked(email, exceptID string) bool {
	if email == "" {
		return false
	}
	for _, e := range s.employees {
		if e.ID != exceptID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}

func applyEmployee(e hr.Employee, in hr.EmployeeInput) hr.Employee {
	if in.Name != "" {
		e.Name = in.Name
	}
	if in.Email != "" {
		e.Email = in.Email
	}
	if in.Phone != "" {
		e.Phone = in.Phone
	}
	if in.Department != "" {
		e.Department = in.Department
	}
	if in.Position != "" {
		e.Position = in.Position
	}
	if in.Status != "" {
		e.Status = in.Status
	}
	if in.JoinDate != "" {
		e.JoinDate = in.JoinDate
	}
	if in.Salary != 0 {
		e.Salary = in.Salary
	}
	return e
}

// listDepartments returns departments with their current headcount.
func (s *Store) listDepartments() []hr.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]hr.Department, 0, len(s.departments))
	for _, d := range s.departments {
		d.EmployeeCount = 0
		for _, e := range s.employees {
			if strings.EqualFold(e.Department, d.Name) {
				d.EmployeeCount++
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) createDepartment(in hr.DepartmentInput) hr.Department {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := hr.Department{ID: s.newID(), Name: in.Name, Manager: in.Manager, Description: in.Description}
	s.departments[d.ID] = d
	return d
}

func (s *Store) deleteDepartment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.departments[id]; !ok {
		return errNotFound
	}
	delete(s.departments, id)
	return nil
}

func (s *Store) listLeaves(status string) []hr.LeaveRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]hr.LeaveRequest, 0, len(s.leaves))
	for _, l := range s.leaves {
		if status != "" && !strings.EqualFold(l.Status, status) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) createLeave(in hr.LeaveRequestInput, days int) (hr.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[in.EmployeeID]
	if !ok {
		return hr.LeaveRequest{}, errNotFound
	}
	l := hr.LeaveRequest{
		ID:         s.newID(),
		EmployeeID: e.ID,
		Employee:   e.Name,
		Type:       in.Type,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Days:       days,
		Reason:     in.Reason,
		Status:     hr.LeavePending,
	}
	s.leaves[l.ID] = l
	return l, nil
}

// decideLeave moves a pending request to status.
func (s *Store) decideLeave(id, status string) (hr.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leaves[id]
	if !ok {
		return hr.LeaveRequest{}, errNotFound
	}
	if l.Status != hr.LeavePending {
		return hr.LeaveRequest{}, errNotPending
	}
	l.Status = status
	s.leaves[id] = l
	return l, nil
}
