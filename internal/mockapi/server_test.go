package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvcrn/hrms-api-client/internal/hr"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	s, err := NewServer(testSecret, opts...)
	require.NoError(t, err)
	return s
}

func call(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server, email, password string) string {
	t.Helper()
	rec := call(t, s, http.MethodPost, "/api/auth/login", "", hr.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res hr.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewServerRequiresSecret(t *testing.T) {
	_, err := NewServer("")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec := call(t, s, http.MethodPost, "/api/auth/login", "", hr.LoginRequest{Email: "Admin@HR.local", Password: "admin"})
	require.Equal(t, http.StatusOK, rec.Code)

	var res hr.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "admin@hr.local", res.User.Email)
	assert.Equal(t, RoleAdmin, res.User.Role)

	rec = call(t, s, http.MethodPost, "/api/auth/login", "", hr.LoginRequest{Email: "admin@hr.local", Password: "wrong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidCredentials, decodeError(t, rec).Code)

	rec = call(t, s, http.MethodPost, "/api/auth/login", "", hr.LoginRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"email": "required", "password": "required"}, decodeError(t, rec).Errors)
}

func TestCustomStoreAccounts(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.AddAccount(hr.User{Name: "Rita", Email: "rita@hr.local", Role: RoleStaff}, "s3cret"))
	assert.Error(t, st.AddAccount(hr.User{Email: "nopass@hr.local"}, ""))

	s := newTestServer(t, WithStore(st))
	token := login(t, s, "rita@hr.local", "s3cret")

	rec := call(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me hr.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Rita", me.Name)
	assert.NotEmpty(t, me.ID)

	rec = call(t, s, http.MethodGet, "/api/employees", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = call(t, s, http.MethodPost, "/api/auth/login", "", hr.LoginRequest{Email: "admin@hr.local", Password: "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenRequired(t *testing.T) {
	s := newTestServer(t)

	for _, token := range []string{"", "not-a-jwt"} {
		rec := call(t, s, http.MethodGet, "/api/employees", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, codeUnauthorized, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s := newTestServer(t, WithClock(func() time.Time { return now }), WithTokenTTL(time.Minute))
	token := login(t, s, "staff@hr.local", "staff")

	assert.Equal(t, http.StatusOK, call(t, s, http.MethodGet, "/api/auth/me", token, nil).Code)

	now = now.Add(2 * time.Minute)
	rec := call(t, s, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized: token expired", decodeError(t, rec).Message)
}

func TestTokenFromAnotherSecretRejected(t *testing.T) {
	other, err := NewServer("other-secret")
	require.NoError(t, err)
	token := login(t, other, "admin@hr.local", "admin")

	rec := call(t, newTestServer(t), http.MethodGet, "/api/employees", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDEcho(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "rid-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "rid-123", rec.Header().Get(RequestIDHeader))

	rec = call(t, s, http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestEmployeesFiltering(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "staff@hr.local", "staff")

	tests := []struct {
		name  string
		query string
		ids   []string
	}{
		{name: "all", query: "", ids: []string{"e-1", "e-2", "e-3", "e-4", "e-5"}},
		{name: "department", query: "?department=engineering", ids: []string{"e-1", "e-2", "e-5"}},
		{name: "status", query: "?status=active", ids: []string{"e-1", "e-2", "e-3"}},
		{name: "search name", query: "?search=turing", ids: []string{"e-2"}},
		{name: "combined", query: "?department=Engineering&status=inactive", ids: []string{"e-5"}},
		{name: "no match", query: "?search=nobody", ids: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, s, http.MethodGet, "/api/employees"+tt.query, token, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var employees []hr.Employee
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &employees))
			ids := make([]string, 0, len(employees))
			for _, e := range employees {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "staff@hr.local", "staff")

	rec := call(t, s, http.MethodPost, "/api/employees", token, hr.EmployeeInput{Email: "x@hr.local"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Invalid", body.Message)
	assert.Equal(t, map[string]string{"name": "required", "department": "required", "position": "required"}, body.Errors)

	rec = call(t, s, http.MethodPost, "/api/employees", token, hr.EmployeeInput{
		Name: "Barbara Liskov", Email: "barbara@hr.local", Department: "Engineering", Position: "Principal Engineer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created hr.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "active", created.Status)
	assert.NotEmpty(t, created.JoinDate)

	rec = call(t, s, http.MethodPost, "/api/employees", token, hr.EmployeeInput{
		Name: "Dup", Email: "BARBARA@hr.local", Department: "Engineering", Position: "Engineer",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, s, http.MethodPatch, "/api/employees/"+created.ID, token, hr.EmployeeInput{Position: "Fellow"})
	require.Equal(t, http.StatusOK, rec.Code)
	var patched hr.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	assert.Equal(t, "Fellow", patched.Position)
	assert.Equal(t, "Barbara Liskov", patched.Name)

	rec = call(t, s, http.MethodPut, "/api/employees/"+created.ID, token, hr.EmployeeInput{Name: "B. Liskov"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, s, http.MethodPut, "/api/employees/"+created.ID, token, hr.EmployeeInput{
		Name: "B. Liskov", Email: "barbara@hr.local", Department: "People", Position: "Advisor",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var replaced hr.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &replaced))
	assert.Equal(t, "People", replaced.Department)
	assert.Empty(t, replaced.Status)

	assert.Equal(t, http.StatusNoContent, call(t, s, http.MethodDelete, "/api/employees/"+created.ID, token, nil).Code)
	rec = call(t, s, http.MethodGet, "/api/employees/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeNotFound, decodeError(t, rec).Code)
}

func TestConcurrentCreateSameEmail(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "staff@hr.local", "staff")
	payload := `{"name":"Edsger Dijkstra","email":"edsger@hr.local","department":"Engineering","position":"Researcher"}`

	const n = 16
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)
			codes[i] = rec.Code
		}()
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusConflict, code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Len(t, s.store.listEmployees(hr.EmployeeFilter{Search: "edsger"}), 1)
}

func TestPatchToTakenEmailConflicts(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "staff@hr.local", "staff")

	rec := call(t, s, http.MethodPatch, "/api/employees/e-2", token, hr.EmployeeInput{Email: "GRACE@hr.local"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, map[string]string{"email": "taken"}, decodeError(t, rec).Errors)

	rec = call(t, s, http.MethodPatch, "/api/employees/e-1", token, hr.EmployeeInput{Email: "grace@hr.local"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t)
	staff := login(t, s, "staff@hr.local", "staff")
	admin := login(t, s, "admin@hr.local", "admin")

	forbidden := []struct{ method, path string }{
		{http.MethodPost, "/api/departments"},
		{http.MethodDelete, "/api/departments/d-3"},
		{http.MethodPatch, "/api/leaves/l-1/approve"},
		{http.MethodPatch, "/api/leaves/l-1/reject"},
	}
	for _, f := range forbidden {
		rec := call(t, s, f.method, f.path, staff, hr.DepartmentInput{Name: "Legal"})
		assert.Equal(t, http.StatusForbidden, rec.Code, f.path)
		assert.Equal(t, codeForbidden, decodeError(t, rec).Code, f.path)
	}

	rec := call(t, s, http.MethodPost, "/api/departments", admin, hr.DepartmentInput{Name: "Legal"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.StatusNoContent, call(t, s, http.MethodDelete, "/api/departments/d-3", admin, nil).Code)
}

func TestDepartmentsCountEmployees(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "staff@hr.local", "staff")

	rec := call(t, s, http.MethodGet, "/api/departments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var departments []hr.Department
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &departments))
	require.Len(t, departments, 3)
	assert.Equal(t, "Engineering", departments[0].Name)
	assert.Equal(t, 3, departments[0].EmployeeCount)
}

func TestLeaveWorkflow(t *testing.T) {
	s := newTestServer(t)
	staff := login(t, s, "staff@hr.local", "staff")
	admin := login(t, s, "admin@hr.local", "admin")

	rec := call(t, s, http.MethodPost, "/api/leaves", staff, hr.LeaveRequestInput{
		EmployeeID: "e-3", Type: "annual", StartDate: "2026-12-21", EndDate: "2026-12-18",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "before start", decodeError(t, rec).Errors["endDate"])

	rec = call(t, s, http.MethodPost, "/api/leaves", staff, hr.LeaveRequestInput{
		EmployeeID: "e-3", Type: "annual", StartDate: "2026-12-21", EndDate: "2026-12-24",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var leave hr.LeaveRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leave))
	assert.Equal(t, 4, leave.Days)
	assert.Equal(t, "Mary Parker", leave.Employee)
	assert.Equal(t, hr.LeavePending, leave.Status)

	rec = call(t, s, http.MethodPatch, "/api/leaves/"+leave.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leave))
	assert.Equal(t, hr.LeaveApproved, leave.Status)

	rec = call(t, s, http.MethodPatch, "/api/leaves/"+leave.ID+"/reject", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, s, http.MethodGet, "/api/leaves?status=pending", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []hr.LeaveRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "l-1", pending[0].ID)
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "staff@hr.local", "staff")

	req := httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeMalformedBody, decodeError(t, rec).Code)
}
