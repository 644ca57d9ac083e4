package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrpay/internal/domain/auth"
)

func TestRateLimitUsesUserKeyBeforeIPFallback(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	userCtx := WithUser(t.Context(), auth.UserContext{UserID: "user-1", Role: auth.RoleAdmin})

	first := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/runs", nil).WithContext(userCtx)
	first.RemoteAddr = "198.51.100.11:2222"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/runs", nil).WithContext(userCtx)
	second.RemoteAddr = "198.51.100.12:3333"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by user key, got %d", secondRec.Code)
	}
}

func loginRequest(username, remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":"`+username+`","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	return req
}

func TestLoginBodyStillReadableAfterLimit(t *testing.T) {
	var got string
	limited := SensitiveMutationRateLimit(8, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = bodyUsername(r)
	}))
	limited.ServeHTTP(httptest.NewRecorder(), loginRequest("25HR0007", "192.0.2.9:1"))
	if got != "25HR0007" {
		t.Fatalf("expected body to be restored for the handler, got %q", got)
	}
}

func TestRateLimitWindowReset(t *testing.T) {
	limited := RateLimit(1, 40*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec1 := httptest.NewRecorder()
	limited.ServeHTTP(rec1, loginRequest("admin", "192.0.2.20:1111"))
	if rec1.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", rec1.Code)
	}

	rec2 := httptest.NewRecorder()
	limited.ServeHTTP(rec2, loginRequest("admin", "192.0.2.20:1111"))
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
	if rec2.Header().Get("Retry-After") == "" || rec2.Header().Get("X-RateLimit-Reset") == "" {
		t.Fatal("expected retry metadata headers")
	}

	time.Sleep(50 * time.Millisecond)

	rec3 := httptest.NewRecorder()
	limited.ServeHTTP(rec3, loginRequest("admin", "192.0.2.20:1111"))
	if rec3.Code != http.StatusNoContent {
		t.Fatalf("expected third request after window reset to pass, got %d", rec3.Code)
	}
}

func TestSensitiveLimitKeysLoginByUsername(t *testing.T) {
	limited := SensitiveMutationRateLimit(4, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// one attempt per address, same account: the username bucket trips
	codes := []int{}
	for i, remote := range []string{"192.0.2.1:1", "192.0.2.2:1", "192.0.2.3:1"} {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest("25HR0001", remote))
		codes = append(codes, rec.Code)
		if i == 0 && rec.Code != http.StatusNoContent {
			t.Fatalf("first login should pass, got %d", rec.Code)
		}
	}
	if codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected username bucket to throttle, got %v", codes)
	}
}

func TestSensitiveMutationRateLimitScope(t *testing.T) {
	limited := SensitiveMutationRateLimit(4, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/records", nil)
		req.RemoteAddr = "198.51.100.40:8888"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected read route request %d to bypass sensitive limits, got %d", i+1, rec.Code)
		}
	}

	userCtx := WithUser(t.Context(), auth.UserContext{UserID: "admin-1", Role: auth.RoleAdmin})
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leave/requests/r1/approve", nil).WithContext(userCtx)
		req.RemoteAddr = "198.51.100.41:9999"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if i < 2 && rec.Code != http.StatusNoContent {
			t.Fatalf("expected sensitive request %d to pass, got %d", i+1, rec.Code)
		}
		if i == 2 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected third sensitive request to be throttled, got %d", rec.Code)
		}
	}
}

func TestSensitiveRateScope(t *testing.T) {
	tests := []struct {
		method, path string
		want         sensitiveScope
	}{
		{http.MethodPost, "/api/v1/auth/login", sensitiveScopeAuth},
		{http.MethodPost, "/api/v1/auth/password", sensitiveScopeAuth},
		{http.MethodPost, "/api/v1/auth/mfa/enable", sensitiveScopeNone},
		{http.MethodPost, "/api/v1/payroll/rates", sensitiveScopeNone},
		{http.MethodGet, "/api/v1/leave/requests/abc/approve", sensitiveScopeNone},
		{http.MethodPost, "/api/v1/payroll/runs", sensitiveScopeActor},
		{http.MethodPut, "/api/v1/payroll/rates", sensitiveScopeActor},
		{http.MethodPost, "/api/v1/leave/requests/abc/reject", sensitiveScopeActor},
		{http.MethodGet, "/api/v1/payroll/rates", sensitiveScopeNone},
		{http.MethodPost, "/api/v1/attendance/clock", sensitiveScopeNone},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if got := sensitiveRateScope(req); got != tc.want {
			t.Fatalf("%s %s: expected %q, got %q", tc.method, tc.path, tc.want, got)
		}
	}
}
