package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestSelect = `
    SELECT r.id, r.employee_id, e.name, COALESCE(d.name, ''), r.request_type,
           r.start_date, r.end_date, COALESCE(r.destination, ''), COALESCE(r.reason, ''),
           r.status, r.requested_at, r.decided_at, COALESCE(r.decided_by::text, '')
    FROM leave_requests r
    JOIN employees e ON e.id = r.employee_id
    LEFT JOIN departments d ON d.id = e.department_id`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.Name, &req.Department, &req.Type,
		&req.StartDate, &req.EndDate, &req.Destination, &req.Reason,
		&req.Status, &req.RequestedAt, &req.DecidedAt, &req.DecidedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	if err != nil {
		return Request{}, err
	}
	req.Kind = Kind(req.Type)
	req.Days, _ = CalculateDays(req.StartDate, req.EndDate)
	return req, nil
}

func (s *Store) Create(ctx context.Context, in NewRequest) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, request_type, start_date, end_date, destination, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, in.EmployeeID, in.Type, in.StartDate, in.EndDate, nullIfEmpty(in.Destination), in.Reason, StatusPending).Scan(&id); err != nil {
		return "", fmt.Errorf("insert leave request: %w", err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, requestSelect+" WHERE r.id = $1", requestID))
}

func buildFilter(filter Filter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	switch filter.Kind {
	case KindWork:
		args = append(args, TypeFieldWork, TypeBusinessTrip)
		where += fmt.Sprintf(" AND r.request_type IN ($%d, $%d)", len(args)-1, len(args))
	case KindLeave:
		args = append(args, TypeFieldWork, TypeBusinessTrip)
		where += fmt.Sprintf(" AND r.request_type NOT IN ($%d, $%d)", len(args)-1, len(args))
	}
	return where, args
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Request, error) {
	where, args := buildFilter(filter)
	query := requestSelect + where + fmt.Sprintf(" ORDER BY r.requested_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) Counts(ctx context.Context, employeeID string) (Counts, error) {
	var c Counts
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FILTER (WHERE status = $1),
           COUNT(1) FILTER (WHERE status = $2),
           COUNT(1) FILTER (WHERE status = $3)
    FROM leave_requests
    WHERE ($4 = '' OR employee_id = $4)
  `, StatusPending, StatusApproved, StatusRejected, employeeID).Scan(&c.Pending, &c.Approved, &c.Rejected)
	return c, err
}

// Decide moves a pending request to status. Decided requests are left untouched.
func (s *Store) Decide(ctx context.Context, requestID, status, deciderID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, decided_at = now(), decided_by = $2
    WHERE id = $3 AND status = $4
  `, status, nullIfEmpty(deciderID), requestID, StatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	if _, err := s.Get(ctx, requestID); err != nil {
		return err
	}
	return ErrRequestNotPending
}

// ApprovedSpans returns approved requests overlapping [from, to] as weighted spans.
func (s *Store) ApprovedSpans(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.LeaveSpan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT request_type, start_date, end_date
    FROM leave_requests
    WHERE employee_id = $1 AND status = $2 AND start_date <= $4 AND end_date >= $3
    ORDER BY start_date
  `, employeeID, StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []attendance.LeaveSpan
	for rows.Next() {
		var requestType string
		var span attendance.LeaveSpan
		if err := rows.Scan(&requestType, &span.Start, &span.End); err != nil {
			return nil, err
		}
		span.Weight = Weight(requestType)
		out = append(out, span)
	}
	return out, rows.Err()
}

func (s *Store) EmployeeEmail(ctx context.Context, employeeID string) (string, string, error) {
	var name, email string
	err := s.DB.QueryRow(ctx, `
    SELECT name, COALESCE(email, '') FROM employees WHERE id = $1
  `, employeeID).Scan(&name, &email)
	return name, email, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
