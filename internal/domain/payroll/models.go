package payroll

import "time"

type Contract struct {
	EmployeeID    string     `json:"employeeId"`
	Name          string     `json:"name,omitempty"`
	Department    string     `json:"department,omitempty"`
	Position      string     `json:"position,omitempty"`
	AnnualSalary  int64      `json:"annualSalary"`
	BaseSalary    int64      `json:"baseSalary"`
	BankName      string     `json:"bankName,omitempty"`
	AccountNumber string     `json:"accountNumber,omitempty"`
	HasContract   bool       `json:"hasContract"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

type ContractInput struct {
	EmployeeID    string
	AnnualSalary  int64
	BankName      string
	AccountNumber string
}

type Allowance struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	IsTaxable  bool   `json:"isTaxable"`
}

type FixedDeduction struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
}

// GroupItem adds the same allowance or deduction to every employee the target selects.
type GroupItem struct {
	Kind      string
	Target    string
	Value     string
	Name      string
	Amount    int64
	IsTaxable bool
}

type Record struct {
	ID                  string    `json:"id"`
	EmployeeID          string    `json:"employeeId"`
	Name                string    `json:"name,omitempty"`
	Department          string    `json:"department,omitempty"`
	Position            string    `json:"position,omitempty"`
	Year                int       `json:"year"`
	Month               int       `json:"month"`
	PaymentDate         time.Time `json:"paymentDate"`
	BasePay             int64     `json:"basePay"`
	AllowanceTotal      int64     `json:"allowanceTotal"`
	NonTaxableTotal     int64     `json:"nonTaxableTotal"`
	OvertimePay         int64     `json:"overtimePay"`
	OvertimeHours       float64   `json:"overtimeHours"`
	AttendanceFactor    float64   `json:"attendanceFactor"`
	UnpaidLeaveDays     float64   `json:"unpaidLeaveDays"`
	NationalPension     int64     `json:"nationalPension"`
	HealthInsurance     int64     `json:"healthInsurance"`
	CareInsurance       int64     `json:"careInsurance"`
	EmploymentInsurance int64     `json:"employmentInsurance"`
	IncomeTax           int64     `json:"incomeTax"`
	LocalTax            int64     `json:"localTax"`
	FixedDeductionTotal int64     `json:"fixedDeductionTotal"`
	TotalDeduction      int64     `json:"totalDeduction"`
	NetPay              int64     `json:"netPay"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (r Record) TotalIncome() int64 {
	return r.BasePay + r.AllowanceTotal + r.OvertimePay
}

type RunResult struct {
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	PaymentDate time.Time `json:"paymentDate"`
	Inserted    int       `json:"inserted"`
	Skipped     int       `json:"skipped"`
}

type Totals struct {
	Year           int   `json:"year"`
	Month          int   `json:"month"`
	Headcount      int   `json:"headcount"`
	TotalIncome    int64 `json:"totalIncome"`
	TotalDeduction int64 `json:"totalDeduction"`
	NetPay         int64 `json:"netPay"`
}
