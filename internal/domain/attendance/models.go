package attendance

import "time"

type Record struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	WorkDate   time.Time `json:"workDate"`
	ClockIn    string    `json:"clockIn,omitempty"`
	ClockOut   string    `json:"clockOut,omitempty"`
	Status     string    `json:"status"`
	Duration   string    `json:"duration,omitempty"`
}

func (r Record) Open() bool {
	return r.ClockIn != "" && r.ClockOut == ""
}

type ClockResult struct {
	Action string `json:"action"`
	Record Record `json:"record"`
}

type Today struct {
	Date       time.Time `json:"date"`
	NextAction string    `json:"nextAction,omitempty"`
	Status     string    `json:"status"`
	Record     *Record   `json:"record,omitempty"`
}

type BoardRow struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	ClockIn    string `json:"clockIn,omitempty"`
	ClockOut   string `json:"clockOut,omitempty"`
	Status     string `json:"status"`
	State      string `json:"state"`
}

type Board struct {
	Date   time.Time      `json:"date"`
	Rows   []BoardRow     `json:"rows"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type BoardFilter struct {
	ID   string
	Name string
}

type Month struct {
	EmployeeID string   `json:"employeeId"`
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	Records    []Record `json:"records"`
	LateCount  int      `json:"lateCount"`
}

type MonthlyStat struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	WorkDays   int    `json:"workDays"`
	Late       int    `json:"late"`
	Absent     int    `json:"absent"`
}

type Correction struct {
	EmployeeID string
	WorkDate   time.Time
	ClockIn    string
	ClockOut   string
}

// LeaveSpan is one approved request seen by the summary builder. Weight is the
// unpaid-day equivalent per weekday covered.
type LeaveSpan struct {
	Start  time.Time
	End    time.Time
	Weight float64
}

type Summary struct {
	EmployeeID      string  `json:"employeeId,omitempty"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	Weekdays        int     `json:"weekdays"`
	UnpaidLeaveDays float64 `json:"unpaidLeaveDays"`
	Factor          float64 `json:"factor"`
}
