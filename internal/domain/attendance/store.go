package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrpay/internal/platform/querier"
)

// requestApproved mirrors the approved status of leave requests.
const requestApproved = "승인"

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const recordColumns = "id, employee_id, work_date, COALESCE(clock_in, ''), COALESCE(clock_out, ''), status"

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ClockIn, &rec.ClockOut, &rec.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return rec, err
}

// LockEmployeeDay holds a transaction-scoped advisory lock for one employee and date.
func (s *Store) LockEmployeeDay(ctx context.Context, employeeID string, day time.Time) error {
	_, err := s.DB.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "attendance:"+employeeID+":"+day.Format("2006-01-02"))
	return err
}

func (s *Store) RecordOn(ctx context.Context, employeeID string, day time.Time) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM attendance
    WHERE employee_id = $1 AND work_date = $2
  `, employeeID, day))
}

func (s *Store) InsertClockIn(ctx context.Context, employeeID string, day time.Time, clockIn, status string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, work_date, clock_in, status)
    VALUES ($1,$2,$3,$4)
    RETURNING `+recordColumns,
		employeeID, day, clockIn, status))
}

func (s *Store) SetClockIn(ctx context.Context, recordID, clockIn, status string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    UPDATE attendance SET clock_in = $1, status = $2 WHERE id = $3
    RETURNING `+recordColumns,
		clockIn, status, recordID))
}

func (s *Store) SetClockOut(ctx context.Context, recordID, clockOut string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    UPDATE attendance SET clock_out = $1 WHERE id = $2
    RETURNING `+recordColumns,
		clockOut, recordID))
}

func (s *Store) Upsert(ctx context.Context, c Correction, status string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, work_date, clock_in, clock_out, status)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id, work_date)
    DO UPDATE SET clock_in = EXCLUDED.clock_in, clock_out = EXCLUDED.clock_out, status = EXCLUDED.status
    RETURNING `+recordColumns,
		c.EmployeeID, c.WorkDate, nullIfEmpty(c.ClockIn), nullIfEmpty(c.ClockOut), status))
}

// ListRange returns records with from <= work_date < to, newest first.
func (s *Store) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM attendance
    WHERE employee_id = $1 AND work_date >= $2 AND work_date < $3
    ORDER BY work_date DESC
  `, employeeID, from, to)
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

// ClockOuts returns the raw clock-out strings with from <= work_date < to.
func (s *Store) ClockOuts(ctx context.Context, employeeID string, from, to time.Time) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT clock_out
    FROM attendance
    WHERE employee_id = $1 AND work_date >= $2 AND work_date < $3 AND clock_out IS NOT NULL
    ORDER BY work_date
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type boardSource struct {
	BoardRow
	RequestType string
}

func (s *Store) Board(ctx context.Context, day time.Time, filter BoardFilter) ([]boardSource, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.name, COALESCE(d.name, ''), COALESCE(p.name, ''),
           COALESCE(a.clock_in, ''), COALESCE(a.clock_out, ''), COALESCE(a.status, ''),
           COALESCE(l.request_type, '')
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN positions p ON p.id = e.position_id
    LEFT JOIN attendance a ON a.employee_id = e.id AND a.work_date = $1
    LEFT JOIN LATERAL (
      SELECT r.request_type
      FROM leave_requests r
      WHERE r.employee_id = e.id AND r.status = $2 AND r.start_date <= $1 AND r.end_date >= $1
      ORDER BY r.requested_at DESC
      LIMIT 1
    ) l ON true
    WHERE e.status = '재직'
      AND ($3 = '' OR e.id ILIKE '%' || $3 || '%')
      AND ($4 = '' OR e.name ILIKE '%' || $4 || '%')
    ORDER BY e.id
  `, day, requestApproved, filter.ID, filter.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []boardSource
	for rows.Next() {
		var src boardSource
		if err := rows.Scan(&src.EmployeeID, &src.Name, &src.Department, &src.Position,
			&src.ClockIn, &src.ClockOut, &src.Status, &src.RequestType); err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

func (s *Store) MonthlyStats(ctx context.Context, from, to time.Time) ([]MonthlyStat, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.name, COALESCE(d.name, ''),
           COUNT(a.id) FILTER (WHERE a.clock_in IS NOT NULL),
           COUNT(a.id) FILTER (WHERE a.status = $3),
           COUNT(a.id) FILTER (WHERE a.status = $4)
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN attendance a ON a.employee_id = e.id AND a.work_date >= $1 AND a.work_date < $2
    WHERE e.status = '재직'
    GROUP BY e.id, e.name, d.name
    ORDER BY e.id
  `, from, to, StatusLate, StatusAbsent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyStat
	for rows.Next() {
		var st MonthlyStat
		if err := rows.Scan(&st.EmployeeID, &st.Name, &st.Department, &st.WorkDays, &st.Late, &st.Absent); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
