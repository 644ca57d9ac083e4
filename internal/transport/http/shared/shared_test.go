package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type samplePayload struct {
	Name      string `json:"name" validate:"required,max=10"`
	StartDate string `json:"startDate" validate:"required,date"`
	ClockIn   string `json:"clockIn" validate:"omitempty,clock"`
	Amount    int64  `json:"amount" validate:"gt=0"`
}

func TestDecodeJSONValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantField  string
	}{
		{"valid", `{"name":"식대","startDate":"2025-03-01","clockIn":"09:00","amount":100}`, true, 0, ""},
		{"malformed json", `{"name":`, false, http.StatusBadRequest, ""},
		{"missing name", `{"startDate":"2025-03-01","amount":1}`, false, http.StatusBadRequest, "name"},
		{"bad date", `{"name":"a","startDate":"03/01/2025","amount":1}`, false, http.StatusBadRequest, "startDate"},
		{"bad clock", `{"name":"a","startDate":"2025-03-01","clockIn":"9시","amount":1}`, false, http.StatusBadRequest, "clockIn"},
		{"zero amount", `{"name":"a","startDate":"2025-03-01","amount":0}`, false, http.StatusBadRequest, "amount"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			var payload samplePayload
			ok := DecodeJSON(rec, req, "req", &payload)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v (%s)", tc.wantOK, ok, rec.Body.String())
			}
			if !ok && rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantField != "" && !strings.Contains(rec.Body.String(), `"field":"`+tc.wantField+`"`) {
				t.Fatalf("expected issue for %s, got %s", tc.wantField, rec.Body.String())
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	y, m, err := ParsePeriod(req, now)
	if err != nil || y != 2026 || m != 10 {
		t.Fatalf("expected current month, got %d-%d %v", y, m, err)
	}
	req = httptest.NewRequest(http.MethodGet, "/?year=2025&month=2", nil)
	if y, m, err = ParsePeriod(req, now); err != nil || y != 2025 || m != 2 {
		t.Fatalf("unexpected period %d-%d %v", y, m, err)
	}
	for _, q := range []string{"?year=2025", "?year=2025&month=13", "?year=x&month=1"} {
		req = httptest.NewRequest(http.MethodGet, "/"+q, nil)
		if _, _, err := ParsePeriod(req, now); err != ErrInvalidPeriod {
			t.Fatalf("%s: expected ErrInvalidPeriod, got %v", q, err)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4433"
	if got := ClientIP(req); got != "10.0.0.5" {
		t.Fatalf("unexpected ip %s", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("unexpected forwarded ip %s", got)
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=1000&offset=-3", nil)
	page := ParsePagination(req, 50, 200)
	if page.Limit != 200 || page.Offset != 0 {
		t.Fatalf("unexpected page %+v", page)
	}
}
