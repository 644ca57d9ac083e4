package leave

import "time"

type Request struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Name        string     `json:"name"`
	Department  string     `json:"department"`
	Type        string     `json:"type"`
	Kind        string     `json:"kind"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Days        float64    `json:"days"`
	Destination string     `json:"destination,omitempty"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	DecidedBy   string     `json:"decidedBy,omitempty"`
}

type NewRequest struct {
	EmployeeID  string
	Type        string
	StartDate   time.Time
	EndDate     time.Time
	Destination string
	Reason      string
}

type Filter struct {
	EmployeeID string
	Status     string
	Kind       string
	Limit      int
	Offset     int
}

type Counts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
