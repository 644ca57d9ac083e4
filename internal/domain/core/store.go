package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"hrpay/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const employeeSelect = `
    SELECT e.id,
           e.name,
           COALESCE(e.department_id::text, ''),
           COALESCE(d.name, ''),
           COALESCE(e.position_id::text, ''),
           COALESCE(p.name, ''),
           e.hire_date,
           e.status,
           COALESCE(e.gender, ''),
           COALESCE(e.phone, ''),
           COALESCE(e.email, ''),
           COALESCE(e.address, ''),
           COALESCE(u.role, ''),
           e.created_at,
           e.updated_at
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN positions p ON p.id = e.position_id
    LEFT JOIN users u ON u.employee_id = e.id`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.DepartmentID, &emp.Department, &emp.PositionID, &emp.Position,
		&emp.HireDate, &emp.Status, &emp.Gender, &emp.Phone, &emp.Email, &emp.Address, &emp.Role,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, employeeSelect+" WHERE e.id = $1", employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	query := employeeSelect + " WHERE 1=1"
	var args []any
	if filter.ID != "" {
		args = append(args, "%"+filter.ID+"%")
		query += fmt.Sprintf(" AND e.id ILIKE $%d", len(args))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND e.name ILIKE $%d", len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		query += fmt.Sprintf(" AND d.name = $%d", len(args))
	}
	if filter.Position != "" {
		args = append(args, filter.Position)
		query += fmt.Sprintf(" AND p.name = $%d", len(args))
	}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		query += fmt.Sprintf(" AND e.gender = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND e.status = $%d", len(args))
	}
	query += " ORDER BY e.id DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

// LockPrefix serialises id allocation for one prefix until the transaction ends.
func (s *Store) LockPrefix(ctx context.Context, prefix string) error {
	_, err := s.DB.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "employee_id:"+prefix)
	return err
}

func (s *Store) LastEmployeeID(ctx context.Context, prefix string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id
    FROM employees
    WHERE id LIKE $1
    ORDER BY id DESC
    LIMIT 1
  `, prefix+"%").Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (s *Store) InsertEmployee(ctx context.Context, employeeID, departmentID, positionID string, in EmployeeInput) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (id, name, department_id, position_id, hire_date, status, gender, phone, email, address)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, employeeID, in.Name, departmentID, positionID, in.HireDate, StatusActive,
		nullIfEmpty(in.Gender), nullIfEmpty(in.Phone), nullIfEmpty(in.Email), nullIfEmpty(in.Address))
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID, departmentID, positionID string, in EmployeeInput) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        department_id = $2,
        position_id = $3,
        hire_date = $4,
        gender = $5,
        phone = $6,
        email = $7,
        address = $8,
        updated_at = now()
    WHERE id = $9
  `, in.Name, departmentID, positionID, in.HireDate,
		nullIfEmpty(in.Gender), nullIfEmpty(in.Phone), nullIfEmpty(in.Email), nullIfEmpty(in.Address), employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, employeeID, status string) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE employees SET status = $1, updated_at = now() WHERE id = $2", status, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) DepartmentStats(ctx context.Context) ([]DepartmentStat, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.name,
           COUNT(e.id) FILTER (WHERE e.status = $1),
           COUNT(e.id) FILTER (WHERE e.status = $2)
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    GROUP BY d.name
    ORDER BY d.name
  `, StatusActive, StatusTerminated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentStat
	for rows.Next() {
		var stat DepartmentStat
		if err := rows.Scan(&stat.Department, &stat.Active, &stat.Terminated); err != nil {
			return nil, err
		}
		out = append(out, stat)
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
