package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// InsertRecord stores rec unless the employee already has a record for the
// period. It reports whether a row was written.
func (s *Store) InsertRecord(ctx context.Context, rec Record) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_records (
      employee_id, pay_year, pay_month, payment_date,
      base_pay, allowance_total, non_taxable_total, overtime_pay, overtime_hours,
      attendance_factor, unpaid_leave_days,
      national_pension, health_insurance, care_insurance, employment_insurance, income_tax, local_tax,
      fixed_deduction_total, total_deduction, net_pay
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
    ON CONFLICT (employee_id, pay_year, pay_month) DO NOTHING
  `,
		rec.EmployeeID, rec.Year, rec.Month, rec.PaymentDate,
		rec.BasePay, rec.AllowanceTotal, rec.NonTaxableTotal, rec.OvertimePay, rec.OvertimeHours,
		rec.AttendanceFactor, rec.UnpaidLeaveDays,
		rec.NationalPension, rec.HealthInsurance, rec.CareInsurance, rec.EmploymentInsurance, rec.IncomeTax, rec.LocalTax,
		rec.FixedDeductionTotal, rec.TotalDeduction, rec.NetPay,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

const recordSelect = `
    SELECT r.id, r.employee_id, e.name, COALESCE(d.name, ''), COALESCE(p.name, ''),
           r.pay_year, r.pay_month, r.payment_date,
           r.base_pay, r.allowance_total, r.non_taxable_total, r.overtime_pay, r.overtime_hours,
           r.attendance_factor, r.unpaid_leave_days,
           r.national_pension, r.health_insurance, r.care_insurance, r.employment_insurance, r.income_tax, r.local_tax,
           r.fixed_deduction_total, r.total_deduction, r.net_pay, r.created_at
    FROM payroll_records r
    JOIN employees e ON e.id = r.employee_id
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN positions p ON p.id = e.position_id`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.EmployeeID, &r.Name, &r.Department, &r.Position,
		&r.Year, &r.Month, &r.PaymentDate,
		&r.BasePay, &r.AllowanceTotal, &r.NonTaxableTotal, &r.OvertimePay, &r.OvertimeHours,
		&r.AttendanceFactor, &r.UnpaidLeaveDays,
		&r.NationalPension, &r.HealthInsurance, &r.CareInsurance, &r.EmploymentInsurance, &r.IncomeTax, &r.LocalTax,
		&r.FixedDeductionTotal, &r.TotalDeduction, &r.NetPay, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrPayrollNotFound
	}
	return r, err
}

func (s *Store) collect(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) ListRecords(ctx context.Context, year, month int) ([]Record, error) {
	return s.collect(ctx, recordSelect+`
    WHERE r.pay_year = $1 AND r.pay_month = $2
    ORDER BY r.employee_id`, year, month)
}

func (s *Store) ListEmployeeRecords(ctx context.Context, employeeID string) ([]Record, error) {
	return s.collect(ctx, recordSelect+`
    WHERE r.employee_id = $1
    ORDER BY r.pay_year DESC, r.pay_month DESC`, employeeID)
}

func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, recordSelect+" WHERE r.id = $1", id))
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM payroll_records WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPayrollNotFound
	}
	return nil
}

func (s *Store) Totals(ctx context.Context, year, month int) (Totals, error) {
	t := Totals{Year: year, Month: month}
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COALESCE(SUM(base_pay + allowance_total + overtime_pay), 0),
           COALESCE(SUM(total_deduction), 0),
           COALESCE(SUM(net_pay), 0)
    FROM payroll_records
    WHERE pay_year = $1 AND pay_month = $2
  `, year, month).Scan(&t.Headcount, &t.TotalIncome, &t.TotalDeduction, &t.NetPay)
	return t, err
}
