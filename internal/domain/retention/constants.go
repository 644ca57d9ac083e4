package retention

const (
	CategorySessions    = "sessions"
	CategoryIdempotency = "idempotency"
	CategoryJobRuns     = "job_runs"
	CategoryInbox       = "notifications"
	CategoryAudit       = "audit"
)
