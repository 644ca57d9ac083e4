package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/leave"
	"hrpay/internal/domain/notifications"
	"hrpay/internal/platform/db"
)

// Run computes and stores the payroll of every active employee with a
// contract for the period. Employees already paid for the period are
// skipped; any failure rolls back the whole batch.
func (s *Service) Run(ctx context.Context, year, month int) (RunResult, error) {
	if !validPeriod(year, month) {
		return RunResult{}, ErrInvalidPeriod
	}
	result := RunResult{Year: year, Month: month, PaymentDate: PaymentDate(year, month, s.PaymentDay)}
	from, to := monthBounds(year, month)
	var paid []string

	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		st := NewStore(tx)
		rates, err := st.GetRates(ctx)
		if errors.Is(err, ErrNoRateConfig) {
			rates = DefaultRates()
		} else if err != nil {
			return fmt.Errorf("load rates: %w", err)
		}

		employees, err := st.RunEmployees(ctx)
		if err != nil {
			return fmt.Errorf("load employees: %w", err)
		}
		allowances, err := st.ListAllowances(ctx, "")
		if err != nil {
			return fmt.Errorf("load allowances: %w", err)
		}
		deductions, err := st.ListFixedDeductions(ctx, "")
		if err != nil {
			return fmt.Errorf("load deductions: %w", err)
		}
		allowancesBy := groupAllowances(allowances)
		deductionsBy := groupDeductions(deductions)

		attendanceStore := attendance.NewStore(tx)
		leaveStore := leave.NewStore(tx)
		for _, emp := range employees {
			clockOuts, err := attendanceStore.ClockOuts(ctx, emp.EmployeeID, from, to)
			if err != nil {
				return fmt.Errorf("load clock-outs for %s: %w", emp.EmployeeID, err)
			}
			spans, err := leaveStore.ApprovedSpans(ctx, emp.EmployeeID, from, to.AddDate(0, 0, -1))
			if err != nil {
				return fmt.Errorf("load leave for %s: %w", emp.EmployeeID, err)
			}

			rec := Assemble(AssembleInput{
				EmployeeID:      emp.EmployeeID,
				Year:            year,
				Month:           month,
				PaymentDate:     result.PaymentDate,
				BaseSalary:      emp.BaseSalary,
				Allowances:      allowancesBy[emp.EmployeeID],
				FixedDeductions: deductionsBy[emp.EmployeeID],
				ClockOuts:       clockOuts,
				Summary:         attendance.BuildSummary(year, month, spans),
				Rates:           rates,
				Table:           s.Table,
				Overtime:        s.Overtime,
			})
			inserted, err := st.InsertRecord(ctx, rec)
			if err != nil {
				return fmt.Errorf("insert payroll for %s: %w", emp.EmployeeID, err)
			}
			if inserted {
				result.Inserted++
				paid = append(paid, emp.EmployeeID)
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("payroll run failed", "year", year, "month", month, "err", err)
		return RunResult{}, err
	}
	slog.Info("payroll run completed", "year", year, "month", month, "inserted", result.Inserted, "skipped", result.Skipped)
	s.announce(ctx, result, paid)
	return result, nil
}

// announce tells each newly paid employee that their payslip is available.
func (s *Service) announce(ctx context.Context, result RunResult, employeeIDs []string) {
	if s.Inbox == nil {
		return
	}
	title := fmt.Sprintf("%d년 %d월 급여명세서", result.Year, result.Month)
	body := "지급일 " + result.PaymentDate.Format("2006-01-02")
	for _, id := range employeeIDs {
		if err := s.Inbox.NotifyEmployee(ctx, id, notifications.TypePayslipPublished, title, body); err != nil {
			slog.Warn("payslip notification failed", "employeeId", id, "err", err)
		}
	}
}

func groupAllowances(items []Allowance) map[string][]Allowance {
	out := make(map[string][]Allowance)
	for _, a := range items {
		out[a.EmployeeID] = append(out[a.EmployeeID], a)
	}
	return out
}

func groupDeductions(items []FixedDeduction) map[string][]FixedDeduction {
	out := make(map[string][]FixedDeduction)
	for _, d := range items {
		out[d.EmployeeID] = append(out[d.EmployeeID], d)
	}
	return out
}
