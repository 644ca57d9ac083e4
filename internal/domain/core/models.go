package core

import "time"

type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DepartmentID string    `json:"departmentId"`
	Department   string    `json:"department"`
	PositionID   string    `json:"positionId"`
	Position     string    `json:"position"`
	HireDate     time.Time `json:"hireDate"`
	Status       string    `json:"status"`
	Gender       string    `json:"gender,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EmployeeInput carries department and position by name, as entered on the form.
type EmployeeInput struct {
	Name       string
	Department string
	Position   string
	HireDate   time.Time
	Gender     string
	Phone      string
	Email      string
	Address    string
	Role       string
	Password   string
}

type EmployeeFilter struct {
	ID         string
	Name       string
	Department string
	Position   string
	Gender     string
	Status     string
}

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	ActiveCount int       `json:"activeCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Position struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SortOrder   int       `json:"sortOrder"`
	ActiveCount int       `json:"activeCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EmailDomain struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

type DepartmentStat struct {
	Department string `json:"department"`
	Active     int    `json:"active"`
	Terminated int    `json:"terminated"`
}

// Created is returned from employee creation. Username is the login id of the new account.
type Created struct {
	Employee Employee `json:"employee"`
	Username string   `json:"username"`
}
