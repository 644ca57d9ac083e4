package reports

import (
	"context"
	"time"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
)

type Service struct {
	Store    *Store
	Location *time.Location
}

func NewService(store *Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{Store: store, Location: loc}
}

func (s *Service) today() time.Time {
	now := time.Now().In(s.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Dashboard collects the caller's own counters and, for administrators, the
// company-wide ones.
func (s *Service) Dashboard(ctx context.Context, user auth.UserContext) (Dashboard, error) {
	day := s.today()
	var out Dashboard

	var (
		todayStatus  string
		pendingLeave int
		payslips     int
		err          error
	)
	if user.EmployeeID != "" {
		if todayStatus, err = s.Store.TodayStatus(ctx, user.EmployeeID, day); err != nil {
			return out, err
		}
		if pendingLeave, err = s.Store.PendingLeaveFor(ctx, user.EmployeeID); err != nil {
			return out, err
		}
		if payslips, err = s.Store.PayslipCount(ctx, user.EmployeeID); err != nil {
			return out, err
		}
	}
	out.Employee = EmployeeDashboard(todayStatus, pendingLeave, payslips)

	if !user.IsAdmin() {
		return out, nil
	}
	active, err := s.Store.ActiveEmployees(ctx, core.StatusActive)
	if err != nil {
		return out, err
	}
	clockedIn, err := s.Store.ClockedIn(ctx, day)
	if err != nil {
		return out, err
	}
	leavePending, err := s.Store.LeavePending(ctx)
	if err != nil {
		return out, err
	}
	latest, err := s.Store.LatestPayroll(ctx)
	if err != nil {
		return out, err
	}
	out.Admin = AdminDashboard(active, clockedIn, leavePending, latest)
	return out, nil
}

func (s *Service) JobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, int, error) {
	runs, err := s.Store.ListJobRuns(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.CountJobRuns(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

func (s *Service) JobRun(ctx context.Context, runID string) (JobRun, error) {
	return s.Store.JobRunByID(ctx, runID)
}
