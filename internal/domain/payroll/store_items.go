package payroll

import (
	"context"
	"fmt"
)

func (s *Store) ListAllowances(ctx context.Context, employeeID string) ([]Allowance, error) {
	query := "SELECT id, employee_id, name, amount, is_taxable FROM fixed_allowances"
	var args []any
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY employee_id, name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Allowance
	for rows.Next() {
		var a Allowance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Name, &a.Amount, &a.IsTaxable); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ListFixedDeductions(ctx context.Context, employeeID string) ([]FixedDeduction, error) {
	query := "SELECT id, employee_id, name, amount FROM fixed_deductions"
	var args []any
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY employee_id, name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FixedDeduction
	for rows.Next() {
		var d FixedDeduction
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Name, &d.Amount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) AddAllowance(ctx context.Context, a Allowance) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO fixed_allowances (employee_id, name, amount, is_taxable)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, a.EmployeeID, a.Name, a.Amount, a.IsTaxable).Scan(&id)
	return id, err
}

func (s *Store) AddFixedDeduction(ctx context.Context, d FixedDeduction) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO fixed_deductions (employee_id, name, amount)
    VALUES ($1,$2,$3)
    RETURNING id
  `, d.EmployeeID, d.Name, d.Amount).Scan(&id)
	return id, err
}

func (s *Store) DeleteAllowance(ctx context.Context, id string) error {
	return s.deleteItem(ctx, "fixed_allowances", id)
}

func (s *Store) DeleteFixedDeduction(ctx context.Context, id string) error {
	return s.deleteItem(ctx, "fixed_deductions", id)
}

func (s *Store) deleteItem(ctx context.Context, table, id string) error {
	cmd, err := s.DB.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// GroupTargets resolves a target to active employees whose account is not an admin.
func (s *Store) GroupTargets(ctx context.Context, target, value string) ([]string, error) {
	query := `
    SELECT e.id
    FROM employees e
    LEFT JOIN users u ON u.employee_id = e.id
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN positions p ON p.id = e.position_id
    WHERE e.status = $1 AND COALESCE(u.role, 'user') <> 'admin'`
	args := []any{activeStatus}
	switch target {
	case TargetAll:
	case TargetDepartment:
		query += " AND d.name = $2"
		args = append(args, value)
	case TargetPosition:
		query += " AND p.name = $2"
		args = append(args, value)
	case TargetIndividual:
		query += " AND e.id = $2"
		args = append(args, value)
	default:
		return nil, ErrInvalidTarget
	}
	query += " ORDER BY e.id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
