package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/platform/db"
)

// SpanSource supplies approved leave overlapping [from, to].
type SpanSource interface {
	ApprovedSpans(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveSpan, error)
}

type Service struct {
	DB           *pgxpool.Pool
	Spans        SpanSource
	WorkdayStart string
	Location     *time.Location
	Now          func() time.Time
	store        *Store
}

func NewService(pool *pgxpool.Pool, spans SpanSource, workdayStart string, loc *time.Location) *Service {
	if workdayStart == "" {
		workdayStart = DefaultWorkdayStart
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		DB:           pool,
		Spans:        spans,
		WorkdayStart: workdayStart,
		Location:     loc,
		Now:          time.Now,
		store:        NewStore(pool),
	}
}

func (s *Service) now() time.Time {
	return s.Now().In(s.Location)
}

// Clock toggles today's record: the first call clocks in, the second clocks out.
func (s *Service) Clock(ctx context.Context, employeeID string) (ClockResult, error) {
	now := s.now()
	day := civilDate(now)

	var result ClockResult
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		st := NewStore(tx)
		if err := st.LockEmployeeDay(ctx, employeeID, day); err != nil {
			return err
		}
		rec, err := st.RecordOn(ctx, employeeID, day)
		switch {
		case errors.Is(err, ErrRecordNotFound):
			status, recorded := ClockInStatus(now, s.WorkdayStart)
			rec, err = st.InsertClockIn(ctx, employeeID, day, recorded, status)
			result = ClockResult{Action: ActionClockIn, Record: rec}
			return err
		case err != nil:
			return err
		case rec.ClockOut != "":
			return ErrAlreadyClockedOut
		case rec.ClockIn == "":
			status, recorded := ClockInStatus(now, s.WorkdayStart)
			rec, err = st.SetClockIn(ctx, rec.ID, recorded, status)
			result = ClockResult{Action: ActionClockIn, Record: rec}
			return err
		default:
			rec, err = st.SetClockOut(ctx, rec.ID, now.Format("15:04:05"))
			rec.Duration = durationLabel(rec.ClockIn, rec.ClockOut)
			result = ClockResult{Action: ActionClockOut, Record: rec}
			return err
		}
	})
	return result, err
}

func (s *Service) Today(ctx context.Context, employeeID string) (Today, error) {
	day := civilDate(s.now())
	rec, err := s.store.RecordOn(ctx, employeeID, day)
	if errors.Is(err, ErrRecordNotFound) {
		return Today{Date: day, NextAction: ActionClockIn, Status: NotRegistered}, nil
	}
	if err != nil {
		return Today{}, err
	}
	today := Today{Date: day, Status: rec.Status, Record: &rec}
	switch {
	case rec.ClockIn == "":
		today.NextAction = ActionClockIn
	case rec.ClockOut == "":
		today.NextAction = ActionClockOut
	default:
		rec.Duration = durationLabel(rec.ClockIn, rec.ClockOut)
	}
	return today, nil
}

func boardState(src boardSource) string {
	if src.ClockIn != "" && src.ClockOut == "" {
		return BoardPresent
	}
	switch src.RequestType {
	case "":
	case BoardOutside, BoardTrip:
		return src.RequestType
	default:
		return BoardLeave
	}
	if src.ClockIn != "" {
		return BoardPresent
	}
	return BoardAbsent
}

// BuildBoard classifies each employee and tallies the state counters.
func BuildBoard(day time.Time, sources []boardSource) Board {
	board := Board{
		Date: day,
		Rows: make([]BoardRow, 0, len(sources)),
		Counts: map[string]int{
			BoardPresent: 0,
			BoardLeave:   0,
			BoardOutside: 0,
			BoardTrip:    0,
			BoardAbsent:  0,
		},
	}
	for _, src := range sources {
		row := src.BoardRow
		row.State = boardState(src)
		if row.Status == "" {
			row.Status = BoardAbsent
		}
		board.Counts[row.State]++
		board.Rows = append(board.Rows, row)
	}
	board.Total = len(board.Rows)
	return board
}

func (s *Service) Board(ctx context.Context, filter BoardFilter) (Board, error) {
	day := civilDate(s.now())
	sources, err := s.store.Board(ctx, day, filter)
	if err != nil {
		return Board{}, err
	}
	return BuildBoard(day, sources), nil
}

func (s *Service) EmployeeMonth(ctx context.Context, employeeID string, year, month int) (Month, error) {
	from, to, err := MonthRange(year, month, time.UTC)
	if err != nil {
		return Month{}, err
	}
	records, err := s.store.ListRange(ctx, employeeID, from, to)
	if err != nil {
		return Month{}, err
	}
	out := Month{EmployeeID: employeeID, Year: year, Month: month, Records: records}
	for i := range out.Records {
		out.Records[i].Duration = durationLabel(out.Records[i].ClockIn, out.Records[i].ClockOut)
		if out.Records[i].Status == StatusLate {
			out.LateCount++
		}
	}
	return out, nil
}

func (s *Service) MonthlyStats(ctx context.Context, year, month int) ([]MonthlyStat, error) {
	from, to, err := MonthRange(year, month, time.UTC)
	if err != nil {
		return nil, err
	}
	return s.store.MonthlyStats(ctx, from, to)
}

// Correct overwrites the employee's record for the date and marks it modified.
func (s *Service) Correct(ctx context.Context, c Correction) (Record, error) {
	var err error
	if c.ClockIn != "" {
		if c.ClockIn, err = NormalizeClockTime(c.ClockIn); err != nil {
			return Record{}, err
		}
	}
	if c.ClockOut != "" {
		if c.ClockOut, err = NormalizeClockTime(c.ClockOut); err != nil {
			return Record{}, err
		}
	}
	c.WorkDate = civilDate(c.WorkDate)
	rec, err := s.store.Upsert(ctx, c, StatusModified)
	if err != nil {
		return Record{}, err
	}
	rec.Duration = durationLabel(rec.ClockIn, rec.ClockOut)
	return rec, nil
}

func (s *Service) Summary(ctx context.Context, employeeID string, year, month int) (Summary, error) {
	from, to, err := MonthRange(year, month, time.UTC)
	if err != nil {
		return Summary{}, err
	}
	var spans []LeaveSpan
	if s.Spans != nil {
		spans, err = s.Spans.ApprovedSpans(ctx, employeeID, from, to.AddDate(0, 0, -1))
		if err != nil {
			return Summary{}, err
		}
	}
	summary := BuildSummary(year, month, spans)
	summary.EmployeeID = employeeID
	return summary, nil
}
