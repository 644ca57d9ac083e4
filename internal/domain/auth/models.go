package auth

import "time"

type User struct {
	ID           string
	EmployeeID   string
	Username     string
	PasswordHash string
	Role         string
	MFAEnabled   bool
	MFASecretEnc []byte

	// EmployeeStatus mirrors employees.status; empty for accounts without an employee.
	EmployeeStatus string
}

type NewUser struct {
	EmployeeID string
	Username   string
	Password   string
	Role       string
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserContext `json:"user"`
}

type MFASetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
}
