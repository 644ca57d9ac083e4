package notifications

import (
	"context"
	"strings"
)

const maxTitle = 200

type Service struct {
	store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) NotifyEmployee(ctx context.Context, employeeID, ntype, title, body string) error {
	if s == nil || employeeID == "" {
		return nil
	}
	_, err := s.store.CreateForEmployee(ctx, employeeID, ntype, clip(title), body)
	return err
}

func (s *Service) NotifyRole(ctx context.Context, role, ntype, title, body string) error {
	if s == nil {
		return nil
	}
	_, err := s.store.CreateForRole(ctx, role, ntype, clip(title), body)
	return err
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, int, error) {
	items, err := s.store.List(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.Count(ctx, userID, unreadOnly)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Unread(ctx context.Context, userID string) (int, error) {
	return s.store.Count(ctx, userID, true)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, strings.TrimSpace(notificationID))
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.store.MarkAllRead(ctx, userID)
}

func clip(title string) string {
	title = strings.TrimSpace(title)
	if r := []rune(title); len(r) > maxTitle {
		return string(r[:maxTitle])
	}
	return title
}
