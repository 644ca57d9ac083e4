package notices

import (
	"context"
	"strings"
)

const (
	defaultLimit = 5
	maxLimit     = 100
)

type Service struct {
	store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, title, content, createdBy string) (Notice, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Notice{}, ErrTitleRequired
	}
	return s.store.Create(ctx, title, strings.TrimSpace(content), createdBy)
}

// Latest lists notices newest first. The dashboard asks for the default five.
func (s *Service) Latest(ctx context.Context, limit, offset int) ([]Notice, int, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id string) (Notice, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
