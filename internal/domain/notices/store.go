package notices

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrpay/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const noticeColumns = "id, title, content, COALESCE(created_by::text, ''), created_at"

func scanNotice(row pgx.Row) (Notice, error) {
	var n Notice
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedBy, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Notice{}, ErrNoticeNotFound
	}
	return n, err
}

func (s *Store) Create(ctx context.Context, title, content, createdBy string) (Notice, error) {
	var author any
	if createdBy != "" {
		author = createdBy
	}
	return scanNotice(s.DB.QueryRow(ctx, `
    INSERT INTO notices (title, content, created_by)
    VALUES ($1,$2,$3)
    RETURNING `+noticeColumns, title, content, author))
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Notice, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+noticeColumns+`
    FROM notices
    ORDER BY created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM notices").Scan(&total)
	return total, err
}

func (s *Store) Get(ctx context.Context, id string) (Notice, error) {
	return scanNotice(s.DB.QueryRow(ctx, "SELECT "+noticeColumns+" FROM notices WHERE id = $1", id))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM notices WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoticeNotFound
	}
	return nil
}
