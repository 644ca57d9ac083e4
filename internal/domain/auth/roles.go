package auth

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// employeeTerminated matches the employees.status value for departed staff.
const employeeTerminated = "퇴사"

// UserContext is the authenticated caller, carried in the request context.
type UserContext struct {
	UserID     string `json:"userId"`
	EmployeeID string `json:"employeeId,omitempty"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	SessionID  string `json:"-"`
}

func (u UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
