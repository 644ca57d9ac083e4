package reports

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"hrpay/internal/domain/leave"
	"hrpay/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) TodayStatus(ctx context.Context, employeeID string, day time.Time) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM attendance WHERE employee_id = $1 AND work_date = $2", employeeID, day).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return status, err
}

func (s *Store) PendingLeaveFor(ctx context.Context, employeeID string) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM leave_requests WHERE employee_id = $1 AND status = $2", employeeID, leave.StatusPending)
}

func (s *Store) PayslipCount(ctx context.Context, employeeID string) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM payroll_records WHERE employee_id = $1", employeeID)
}

func (s *Store) ActiveEmployees(ctx context.Context, activeStatus string) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM employees WHERE status = $1", activeStatus)
}

func (s *Store) ClockedIn(ctx context.Context, day time.Time) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM attendance WHERE work_date = $1 AND clock_in IS NOT NULL", day)
}

func (s *Store) LeavePending(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = $1", leave.StatusPending)
}

// LatestPayroll returns nil when no payroll has been run yet.
func (s *Store) LatestPayroll(ctx context.Context) (*PayrollSnapshot, error) {
	var snap PayrollSnapshot
	err := s.DB.QueryRow(ctx, `
    SELECT pay_year, pay_month, COUNT(1), COALESCE(SUM(net_pay), 0)
    FROM payroll_records
    GROUP BY pay_year, pay_month
    ORDER BY pay_year DESC, pay_month DESC
    LIMIT 1
  `).Scan(&snap.Year, &snap.Month, &snap.Headcount, &snap.NetPay)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) ListJobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, error) {
	query, args := buildJobRunsBaseQuery(filter)
	query += " ORDER BY started_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []JobRun{}
	for rows.Next() {
		run, err := scanJobRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) CountJobRuns(ctx context.Context, filter JobRunFilter) (int, error) {
	query, args := buildJobRunsBaseQuery(filter)
	return s.count(ctx, "SELECT COUNT(1) FROM ("+query+") job_runs", args...)
}

func (s *Store) JobRunByID(ctx context.Context, runID string) (JobRun, error) {
	run, err := scanJobRun(s.DB.QueryRow(ctx, `
    SELECT id::text, job_type, status, COALESCE(details_json, '{}'::jsonb), started_at, completed_at
    FROM job_runs
    WHERE id::text = $1
  `, runID))
	if errors.Is(err, pgx.ErrNoRows) {
		return JobRun{}, ErrJobRunNotFound
	}
	return run, err
}

func scanJobRun(row pgx.Row) (JobRun, error) {
	var run JobRun
	var detailsRaw []byte
	if err := row.Scan(&run.ID, &run.JobType, &run.Status, &detailsRaw, &run.StartedAt, &run.CompletedAt); err != nil {
		return JobRun{}, err
	}
	run.Details = decodeDetails(detailsRaw)
	return run, nil
}

func buildJobRunsBaseQuery(filter JobRunFilter) (string, []any) {
	query := `
    SELECT id::text, job_type, status, COALESCE(details_json, '{}'::jsonb), started_at, completed_at
    FROM job_runs
    WHERE 1=1
  `
	var args []any

	if value := strings.TrimSpace(filter.JobType); value != "" {
		args = append(args, value)
		query += " AND job_type = $" + strconv.Itoa(len(args))
	}
	if value := strings.TrimSpace(filter.Status); value != "" {
		args = append(args, value)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.StartedFrom != nil && !filter.StartedFrom.IsZero() {
		args = append(args, *filter.StartedFrom)
		query += " AND started_at >= $" + strconv.Itoa(len(args))
	}
	if filter.StartedTo != nil && !filter.StartedTo.IsZero() {
		args = append(args, *filter.StartedTo)
		query += " AND started_at < $" + strconv.Itoa(len(args))
	}

	return query, args
}

func decodeDetails(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	details := map[string]any{}
	if err := json.Unmarshal(raw, &details); err != nil {
		return map[string]any{
			"raw": string(raw),
		}
	}
	return details
}
