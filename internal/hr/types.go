package hr

// Employee is a person on the payroll.
type Employee struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Status     string  `json:"status"`
	JoinDate   string  `json:"joinDate,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
}

// EmployeeInput is the writable subset of Employee. Zero fields are omitted,
// which makes the same type usable for PUT and PATCH bodies.
type EmployeeInput struct {
	Name       string  `json:"name,omitempty"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Status     string  `json:"status,omitempty"`
	JoinDate   string  `json:"joinDate,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
}

// EmployeeFilter narrows ListEmployees. Empty fields are ignored.
type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
}

// Department groups employees under a manager.
type Department struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Manager       string `json:"manager,omitempty"`
	EmployeeCount int    `json:"employeeCount"`
	Description   string `json:"description,omitempty"`
}

// DepartmentInput is the body for CreateDepartment.
type DepartmentInput struct {
	Name        string `json:"name"`
	Manager     string `json:"manager,omitempty"`
	Description string `json:"description,omitempty"`
}

// Leave request states.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// LeaveRequest is an employee's request for time off.
type LeaveRequest struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Employee   string `json:"employee,omitempty"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Days       int    `json:"days"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
}

// LeaveRequestInput is the body for CreateLeaveRequest.
type LeaveRequestInput struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason,omitempty"`
}

// User is the account behind a session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
