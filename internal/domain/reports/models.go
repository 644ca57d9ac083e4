package reports

import "time"

type PayrollSnapshot struct {
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	Headcount int   `json:"headcount"`
	NetPay    int64 `json:"netPay"`
}

type JobRunFilter struct {
	JobType     string
	Status      string
	StartedFrom *time.Time
	StartedTo   *time.Time
}

type JobRun struct {
	ID          string         `json:"id"`
	JobType     string         `json:"jobType"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

type Dashboard struct {
	Employee map[string]any `json:"employee"`
	Admin    map[string]any `json:"admin,omitempty"`
}
