package core

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.name, d.code, COUNT(e.id) FILTER (WHERE e.status = $1), d.created_at
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    GROUP BY d.id
    ORDER BY d.name
  `, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dep Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.Code, &dep.ActiveCount, &dep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) DepartmentByName(ctx context.Context, name string) (Department, error) {
	var dep Department
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, code, created_at FROM departments WHERE name = $1
  `, name).Scan(&dep.ID, &dep.Name, &dep.Code, &dep.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrDepartmentNotFound
	}
	return dep, err
}

func (s *Store) CreateDepartment(ctx context.Context, name, code string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, code) VALUES ($1,$2) RETURNING id
  `, name, strings.ToUpper(code)).Scan(&id)
	if isUniqueViolation(err) {
		return "", ErrDuplicateDepartment
	}
	return id, err
}

// UpdateDepartment renames in place; employees reference the row by id so they follow.
func (s *Store) UpdateDepartment(ctx context.Context, departmentID, name, code string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE departments SET name = $1, code = $2 WHERE id = $3
  `, name, strings.ToUpper(code), departmentID)
	if isUniqueViolation(err) {
		return ErrDuplicateDepartment
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) DeleteDepartment(ctx context.Context, departmentID string) error {
	var active int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE department_id = $1 AND status = $2
  `, departmentID, StatusActive).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrDepartmentInUse
	}
	cmd, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", departmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) ListPositions(ctx context.Context) ([]Position, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.name, p.sort_order, COUNT(e.id) FILTER (WHERE e.status = $1), p.created_at
    FROM positions p
    LEFT JOIN employees e ON e.position_id = p.id
    GROUP BY p.id
    ORDER BY p.sort_order, p.name
  `, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		var pos Position
		if err := rows.Scan(&pos.ID, &pos.Name, &pos.SortOrder, &pos.ActiveCount, &pos.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, rows.Err()
}

func (s *Store) PositionByName(ctx context.Context, name string) (Position, error) {
	var pos Position
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, sort_order, created_at FROM positions WHERE name = $1
  `, name).Scan(&pos.ID, &pos.Name, &pos.SortOrder, &pos.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Position{}, ErrPositionNotFound
	}
	return pos, err
}

func (s *Store) CreatePosition(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO positions (name, sort_order)
    VALUES ($1, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM positions))
    RETURNING id
  `, name).Scan(&id)
	if isUniqueViolation(err) {
		return "", ErrDuplicatePosition
	}
	return id, err
}

func (s *Store) DeletePosition(ctx context.Context, positionID string) error {
	var active int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE position_id = $1 AND status = $2
  `, positionID, StatusActive).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrPositionInUse
	}
	cmd, err := s.DB.Exec(ctx, "DELETE FROM positions WHERE id = $1", positionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPositionNotFound
	}
	return nil
}

func (s *Store) ListEmailDomains(ctx context.Context) ([]EmailDomain, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, domain FROM email_domains ORDER BY domain")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmailDomain
	for rows.Next() {
		var d EmailDomain
		if err := rows.Scan(&d.ID, &d.Domain); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) CreateEmailDomain(ctx context.Context, domain string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO email_domains (domain) VALUES ($1) RETURNING id", strings.ToLower(domain)).Scan(&id)
	if isUniqueViolation(err) {
		return "", ErrDuplicateEmailDomain
	}
	return id, err
}

func (s *Store) DeleteEmailDomain(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM email_domains WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmailDomainNotFound
	}
	return nil
}
