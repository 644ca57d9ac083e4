package retention

import (
	"context"
	"time"

	"hrpay/internal/platform/querier"
)

// Apply deletes rows of one category older than cutoff.
func Apply(ctx context.Context, db querier.Querier, category string, cutoff time.Time) (int64, error) {
	switch category {
	case CategorySessions:
		tag, err := db.Exec(ctx, `
      DELETE FROM sessions
      WHERE expires_at < $1 OR (revoked_at IS NOT NULL AND revoked_at < $1)
    `, cutoff)
		return tag.RowsAffected(), err
	case CategoryIdempotency:
		tag, err := db.Exec(ctx, `
      DELETE FROM idempotency_keys
      WHERE created_at < $1
    `, cutoff)
		return tag.RowsAffected(), err
	case CategoryJobRuns:
		tag, err := db.Exec(ctx, `
      DELETE FROM job_runs
      WHERE completed_at IS NOT NULL AND completed_at < $1
    `, cutoff)
		return tag.RowsAffected(), err
	case CategoryInbox:
		tag, err := db.Exec(ctx, `
      DELETE FROM notifications
      WHERE read_at IS NOT NULL AND read_at < $1
    `, cutoff)
		return tag.RowsAffected(), err
	case CategoryAudit:
		tag, err := db.Exec(ctx, `
      DELETE FROM audit_events
      WHERE created_at < $1
    `, cutoff)
		return tag.RowsAffected(), err
	default:
		return 0, ErrUnknownCategory
	}
}
