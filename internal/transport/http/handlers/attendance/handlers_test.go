package attendancehandler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/auth"
	"hrpay/internal/transport/http/middleware"
)

func withUser(r *http.Request, user auth.UserContext) *http.Request {
	return r.WithContext(middleware.WithUser(context.Background(), user))
}

func TestClockRequiresEmployeeRecord(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)
	req := withUser(httptest.NewRequest(http.MethodPost, "/attendance/clock", nil), auth.UserContext{UserID: "u1", Role: auth.RoleAdmin})
	rec := httptest.NewRecorder()
	h.handleClock(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCorrectValidation(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing employee", `{"workDate":"2025-03-04","clockIn":"09:00"}`, "employeeId"},
		{"bad date", `{"employeeId":"25HR0001","workDate":"04-03-2025"}`, "workDate"},
		{"bad clock in", `{"employeeId":"25HR0001","workDate":"2025-03-04","clockIn":"9am"}`, "clockIn"},
		{"bad clock out", `{"employeeId":"25HR0001","workDate":"2025-03-04","clockOut":"25:00"}`, "clockOut"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.handleCorrect(rec, httptest.NewRequest(http.MethodPut, "/attendance/records", bytes.NewBufferString(tc.body)))
			if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"field":"`+tc.field+`"`) {
				t.Fatalf("expected issue on %s, got %d %s", tc.field, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestStatsRejectsBadMonth(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	h.handleStats(rec, httptest.NewRequest(http.MethodGet, "/attendance/stats?year=2025&month=13", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFailAlreadyClockedOut(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	h.fail(rec, httptest.NewRequest(http.MethodPost, "/attendance/clock", nil), attendance.ErrAlreadyClockedOut)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
