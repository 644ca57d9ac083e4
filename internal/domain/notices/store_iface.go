package notices

import "context"

type StoreAPI interface {
	Create(ctx context.Context, title, content, createdBy string) (Notice, error)
	List(ctx context.Context, limit, offset int) ([]Notice, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (Notice, error)
	Delete(ctx context.Context, id string) error
}
