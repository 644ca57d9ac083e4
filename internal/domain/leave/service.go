package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/notifications"
	"hrpay/internal/platform/email"
)

const defaultListLimit = 100

type Service struct {
	Store  *Store
	Mailer email.Mailer
	Inbox  notifications.Notifier
}

func NewService(store *Store, mailer email.Mailer) *Service {
	return &Service{Store: store, Mailer: mailer}
}

func (s *Service) Create(ctx context.Context, in NewRequest) (Request, error) {
	in, err := Normalize(in)
	if err != nil {
		return Request{}, err
	}
	id, err := s.Store.Create(ctx, in)
	if err != nil {
		return Request{}, err
	}
	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if s.Inbox != nil {
		title := fmt.Sprintf("%s %s 신청", req.Name, req.Type)
		if err := s.Inbox.NotifyRole(ctx, auth.RoleAdmin, notifications.TypeLeaveSubmitted, title, periodText(req)); err != nil {
			slog.Warn("leave inbox notification failed", "requestId", req.ID, "err", err)
		}
	}
	return req, nil
}

// List scopes non-admin callers to their own requests.
func (s *Service) List(ctx context.Context, user auth.UserContext, filter Filter) ([]Request, error) {
	if !user.IsAdmin() {
		filter.EmployeeID = user.EmployeeID
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.Store.List(ctx, filter)
}

func (s *Service) Counts(ctx context.Context, user auth.UserContext) (Counts, error) {
	employeeID := ""
	if !user.IsAdmin() {
		employeeID = user.EmployeeID
	}
	return s.Store.Counts(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, user auth.UserContext, requestID string) (Request, error) {
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if !user.IsAdmin() && req.EmployeeID != user.EmployeeID {
		return Request{}, ErrForbidden
	}
	return req, nil
}

func (s *Service) Approve(ctx context.Context, requestID, deciderID string) (Request, error) {
	return s.decide(ctx, requestID, StatusApproved, deciderID)
}

func (s *Service) Reject(ctx context.Context, requestID, deciderID string) (Request, error) {
	return s.decide(ctx, requestID, StatusRejected, deciderID)
}

func (s *Service) decide(ctx context.Context, requestID, status, deciderID string) (Request, error) {
	if err := s.Store.Decide(ctx, requestID, status, deciderID); err != nil {
		return Request{}, err
	}
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	s.notify(ctx, req)
	return req, nil
}

func (s *Service) notify(ctx context.Context, req Request) {
	if s.Inbox != nil {
		ntype := notifications.TypeLeaveApproved
		if req.Status == StatusRejected {
			ntype = notifications.TypeLeaveRejected
		}
		title := fmt.Sprintf("[%s] %s 신청 결과", req.Status, req.Type)
		if err := s.Inbox.NotifyEmployee(ctx, req.EmployeeID, ntype, title, periodText(req)); err != nil {
			slog.Warn("leave inbox notification failed", "requestId", req.ID, "err", err)
		}
	}
	if s.Mailer == nil {
		return
	}
	name, to, err := s.Store.EmployeeEmail(ctx, req.EmployeeID)
	if err != nil {
		slog.Warn("leave notification lookup failed", "requestId", req.ID, "err", err)
		return
	}
	if to == "" {
		return
	}
	if err := s.Mailer.Send(ctx, DecisionMessage(name, to, req)); err != nil {
		slog.Warn("leave notification failed", "requestId", req.ID, "err", err)
	}
}

func periodText(req Request) string {
	period := req.StartDate.Format("2006-01-02")
	if !req.EndDate.Equal(req.StartDate) {
		period += " ~ " + req.EndDate.Format("2006-01-02")
	}
	return period
}

func DecisionMessage(name, to string, req Request) email.Message {
	period := periodText(req)
	return email.Message{
		To:      to,
		Subject: fmt.Sprintf("[%s] %s 신청 결과", req.Status, req.Type),
		Body:    fmt.Sprintf("%s님, %s %s 신청이 %s 처리되었습니다.", name, period, req.Type, req.Status),
	}
}

// ApprovedSpans satisfies attendance.SpanSource.
func (s *Service) ApprovedSpans(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.LeaveSpan, error) {
	return s.Store.ApprovedSpans(ctx, employeeID, from, to)
}
