package retention

import (
	"context"
	"fmt"
	"time"

	"hrpay/internal/platform/querier"
)

type Policy struct {
	Category string `json:"category"`
	Days     int    `json:"days"`
}

type Result struct {
	Category string    `json:"category"`
	Cutoff   time.Time `json:"cutoff"`
	Deleted  int64     `json:"deleted"`
}

type Service struct {
	DB       querier.Querier
	Policies []Policy
	Now      func() time.Time
}

// Policies maps the configured windows onto categories. Zero disables a category.
func Policies(days, auditDays int) []Policy {
	var out []Policy
	if days > 0 {
		out = append(out,
			Policy{Category: CategorySessions, Days: days},
			Policy{Category: CategoryIdempotency, Days: days},
			Policy{Category: CategoryJobRuns, Days: days},
			Policy{Category: CategoryInbox, Days: days},
		)
	}
	if auditDays > 0 {
		out = append(out, Policy{Category: CategoryAudit, Days: auditDays})
	}
	return out
}

func NewService(db querier.Querier, policies []Policy) *Service {
	return &Service{DB: db, Policies: policies, Now: time.Now}
}

// Run purges every configured category, or only the named one.
func (s *Service) Run(ctx context.Context, category string) ([]Result, error) {
	if category != "" && !known(category) {
		return nil, ErrUnknownCategory
	}
	results := []Result{}
	for _, p := range s.Policies {
		if category != "" && p.Category != category {
			continue
		}
		cutoff := s.Now().AddDate(0, 0, -p.Days)
		deleted, err := Apply(ctx, s.DB, p.Category, cutoff)
		if err != nil {
			return results, fmt.Errorf("%s: %w", p.Category, err)
		}
		results = append(results, Result{Category: p.Category, Cutoff: cutoff, Deleted: deleted})
	}
	return results, nil
}

func known(category string) bool {
	switch category {
	case CategorySessions, CategoryIdempotency, CategoryJobRuns, CategoryInbox, CategoryAudit:
		return true
	}
	return false
}
