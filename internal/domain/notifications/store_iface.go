package notifications

import "context"

type StoreAPI interface {
	CreateForEmployee(ctx context.Context, employeeID, ntype, title, body string) (int64, error)
	CreateForRole(ctx context.Context, role, ntype, title, body string) (int64, error)
	List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, error)
	Count(ctx context.Context, userID string, unreadOnly bool) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// Notifier is what other domains use to drop messages into user inboxes.
type Notifier interface {
	NotifyEmployee(ctx context.Context, employeeID, ntype, title, body string) error
	NotifyRole(ctx context.Context, role, ntype, title, body string) error
}
