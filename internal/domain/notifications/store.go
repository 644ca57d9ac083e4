package notifications

import (
	"context"

	"hrpay/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateForEmployee(ctx context.Context, employeeID, ntype, title, body string) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (user_id, type, title, body)
    SELECT id, $2, $3, $4 FROM users WHERE employee_id = $1
  `, employeeID, ntype, title, body)
	return tag.RowsAffected(), err
}

func (s *Store) CreateForRole(ctx context.Context, role, ntype, title, body string) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (user_id, type, title, body)
    SELECT id, $2, $3, $4 FROM users WHERE role = $1
  `, role, ntype, title, body)
	return tag.RowsAffected(), err
}

func (s *Store) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, type, title, body, read_at, created_at
    FROM notifications
    WHERE user_id = $1 AND ($2 = false OR read_at IS NULL)
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context, userID string, unreadOnly bool) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications
    WHERE user_id = $1 AND ($2 = false OR read_at IS NULL)
  `, userID, unreadOnly).Scan(&n)
	return n, err
}

func (s *Store) MarkRead(ctx context.Context, userID, notificationID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE notifications
    SET read_at = COALESCE(read_at, now())
    WHERE user_id = $1 AND id::text = $2
  `, userID, notificationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = now()
    WHERE user_id = $1 AND read_at IS NULL
  `, userID)
	return tag.RowsAffected(), err
}
