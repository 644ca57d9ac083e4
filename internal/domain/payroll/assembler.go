package payroll

import (
	"time"

	"hrpay/internal/domain/attendance"
)

type AssembleInput struct {
	EmployeeID      string
	Year            int
	Month           int
	PaymentDate     time.Time
	BaseSalary      int64
	Allowances      []Allowance
	FixedDeductions []FixedDeduction
	ClockOuts       []string
	Summary         attendance.Summary
	Rates           RateConfig
	Table           TaxTable
	Overtime        OvertimePolicy
}

// Assemble builds one month's payroll record. Base pay is prorated by the
// attendance factor; overtime is priced on the full contract base.
func Assemble(in AssembleInput) Record {
	factor := in.Summary.Factor
	if in.Summary.Weekdays == 0 && factor == 0 {
		factor = 1
	}
	basePay := int64(float64(in.BaseSalary) * factor)

	var allowanceTotal, nonTaxable int64
	for _, a := range in.Allowances {
		allowanceTotal += a.Amount
		if !a.IsTaxable {
			nonTaxable += a.Amount
		}
	}
	var fixedTotal int64
	for _, d := range in.FixedDeductions {
		fixedTotal += d.Amount
	}

	ot := CalculateOvertime(in.ClockOuts, in.BaseSalary, in.Overtime)
	totalIncome := basePay + allowanceTotal + ot.Pay
	statutory := CalculateDeductions(totalIncome, nonTaxable, in.Rates, in.Table)
	totalDeduction := statutory.Total() + fixedTotal

	return Record{
		EmployeeID:          in.EmployeeID,
		Year:                in.Year,
		Month:               in.Month,
		PaymentDate:         in.PaymentDate,
		BasePay:             basePay,
		AllowanceTotal:      allowanceTotal,
		NonTaxableTotal:     nonTaxable,
		OvertimePay:         ot.Pay,
		OvertimeHours:       ot.Hours,
		AttendanceFactor:    factor,
		UnpaidLeaveDays:     in.Summary.UnpaidLeaveDays,
		NationalPension:     statutory.NationalPension,
		HealthInsurance:     statutory.HealthInsurance,
		CareInsurance:       statutory.CareInsurance,
		EmploymentInsurance: statutory.EmploymentInsurance,
		IncomeTax:           statutory.IncomeTax,
		LocalTax:            statutory.LocalTax,
		FixedDeductionTotal: fixedTotal,
		TotalDeduction:      totalDeduction,
		NetPay:              totalIncome - totalDeduction,
	}
}

// PaymentDate is the pay day of the period, clamped to the month's last day.
func PaymentDate(year, month, day int) time.Time {
	if day <= 0 {
		day = DefaultPaymentDay
	}
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func validPeriod(year, month int) bool {
	return year >= 2000 && year <= 9999 && month >= 1 && month <= 12
}
