package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrpay/internal/platform/querier"
)

// activeStatus mirrors core.StatusActive.
const activeStatus = "재직"

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) GetRates(ctx context.Context) (RateConfig, error) {
	var r RateConfig
	err := s.DB.QueryRow(ctx, `
    SELECT pension_rate, health_rate, care_rate, employment_rate
    FROM payroll_rates
    WHERE id = 1
  `).Scan(&r.Pension, &r.Health, &r.Care, &r.Employment)
	if errors.Is(err, pgx.ErrNoRows) {
		return RateConfig{}, ErrNoRateConfig
	}
	return r, err
}

func (s *Store) UpsertRates(ctx context.Context, r RateConfig) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_rates (id, pension_rate, health_rate, care_rate, employment_rate, updated_at)
    VALUES (1,$1,$2,$3,$4,now())
    ON CONFLICT (id) DO UPDATE
    SET pension_rate = EXCLUDED.pension_rate,
        health_rate = EXCLUDED.health_rate,
        care_rate = EXCLUDED.care_rate,
        employment_rate = EXCLUDED.employment_rate,
        updated_at = now()
  `, r.Pension, r.Health, r.Care, r.Employment)
	return err
}

// runEmployee is an active employee with a contract, as seen by a payroll run.
type runEmployee struct {
	EmployeeID string
	BaseSalary int64
}

func (s *Store) RunEmployees(ctx context.Context) ([]runEmployee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, c.base_salary
    FROM employees e
    JOIN salary_contracts c ON c.employee_id = e.id
    WHERE e.status = $1
    ORDER BY e.id
  `, activeStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []runEmployee
	for rows.Next() {
		var emp runEmployee
		if err := rows.Scan(&emp.EmployeeID, &emp.BaseSalary); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func monthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
