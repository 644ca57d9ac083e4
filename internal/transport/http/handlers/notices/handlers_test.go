package noticeshandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/notices"
)

type memStore struct {
	items []notices.Notice
}

func (m *memStore) Create(ctx context.Context, title, content, createdBy string) (notices.Notice, error) {
	n := notices.Notice{ID: "n1", Title: title, Content: content, CreatedBy: createdBy}
	m.items = append(m.items, n)
	return n, nil
}

func (m *memStore) List(ctx context.Context, limit, offset int) ([]notices.Notice, error) {
	return m.items, nil
}

func (m *memStore) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

func (m *memStore) Get(ctx context.Context, id string) (notices.Notice, error) {
	for _, n := range m.items {
		if n.ID == id {
			return n, nil
		}
	}
	return notices.Notice{}, notices.ErrNoticeNotFound
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	return notices.ErrNoticeNotFound
}

func TestListAndGetNotices(t *testing.T) {
	store := &memStore{items: []notices.Notice{{ID: "n1", Title: "휴무 안내"}}}
	h := NewHandler(notices.New(store), nil, nil)
	r := chi.NewRouter()
	r.Get("/notices", h.handleListNotices)
	r.Get("/notices/{noticeID}", h.handleGetNotice)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notices", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Total-Count") != "1" {
		t.Fatalf("unexpected list response %d %v", rec.Code, rec.Header())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notices/n1", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "휴무 안내") {
		t.Fatalf("unexpected get response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notices/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateNoticeRequiresTitle(t *testing.T) {
	h := NewHandler(notices.New(&memStore{}), nil, nil)
	rec := httptest.NewRecorder()
	h.handleCreateNotice(rec, httptest.NewRequest(http.MethodPost, "/notices", strings.NewReader(`{"content":"본문"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
