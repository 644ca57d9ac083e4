package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type contractRow struct {
	Contract
	AccountEnc []byte
}

func (s *Store) UpsertContract(ctx context.Context, employeeID string, annual, base int64, bankName string, accountEnc []byte) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO salary_contracts (employee_id, annual_salary, base_salary, bank_name, account_number_enc, updated_at)
    VALUES ($1,$2,$3,$4,$5,now())
    ON CONFLICT (employee_id) DO UPDATE
    SET annual_salary = EXCLUDED.annual_salary,
        base_salary = EXCLUDED.base_salary,
        bank_name = EXCLUDED.bank_name,
        account_number_enc = EXCLUDED.account_number_enc,
        updated_at = now()
  `, employeeID, annual, base, nullIfEmpty(bankName), accountEnc)
	return err
}

// ListContracts lists active employees with their contract, if any.
func (s *Store) ListContracts(ctx context.Context) ([]contractRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.name, COALESCE(d.name, ''), COALESCE(p.name, ''),
           COALESCE(c.annual_salary, 0), COALESCE(c.base_salary, 0), COALESCE(c.bank_name, ''),
           c.account_number_enc, c.employee_id IS NOT NULL, c.updated_at
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN positions p ON p.id = e.position_id
    LEFT JOIN salary_contracts c ON c.employee_id = e.id
    WHERE e.status = $1
    ORDER BY e.id
  `, activeStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contractRow
	for rows.Next() {
		var row contractRow
		if err := rows.Scan(&row.EmployeeID, &row.Name, &row.Department, &row.Position,
			&row.AnnualSalary, &row.BaseSalary, &row.BankName, &row.AccountEnc, &row.HasContract, &row.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) GetContract(ctx context.Context, employeeID string) (contractRow, error) {
	var row contractRow
	err := s.DB.QueryRow(ctx, `
    SELECT c.employee_id, e.name, c.annual_salary, c.base_salary, COALESCE(c.bank_name, ''),
           c.account_number_enc, c.updated_at
    FROM salary_contracts c
    JOIN employees e ON e.id = c.employee_id
    WHERE c.employee_id = $1
  `, employeeID).Scan(&row.EmployeeID, &row.Name, &row.AnnualSalary, &row.BaseSalary, &row.BankName, &row.AccountEnc, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return contractRow{}, ErrContractNotFound
	}
	row.HasContract = err == nil
	return row, err
}

func (s *Store) EmployeeActive(ctx context.Context, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE id = $1 AND status = $2
  `, employeeID, activeStatus).Scan(&count)
	return count > 0, err
}
