package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

type rateKeyFunc func(r *http.Request) string

type counter struct {
	hits  int
	reset time.Time
}

// limiter is a fixed-window counter per key.
type limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	key     rateKeyFunc
	buckets map[string]*counter
}

func newLimiter(limit int, window time.Duration, key rateKeyFunc) *limiter {
	return &limiter{limit: limit, window: window, key: key, buckets: map[string]*counter{}}
}

// RateLimit throttles every request, keyed by the signed-in user or the client address.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(limit, window, userOrIPKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.allow(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// SensitiveMutationRateLimit adds tighter budgets for login, password change and
// payroll/leave decisions on top of RateLimit.
func SensitiveMutationRateLimit(baseLimit int, window time.Duration) func(http.Handler) http.Handler {
	loginLimit := max(baseLimit/4, 1)
	loginByIP := newLimiter(loginLimit, window, shared.ClientIP)
	loginByAccount := newLimiter(loginLimit, window, usernameOrIPKey)
	decisions := newLimiter(max(baseLimit/2, 1), window, userOrIPKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch sensitiveRateScope(r) {
			case sensitiveScopeAuth:
				if !loginByIP.allow(w, r) || !loginByAccount.allow(w, r) {
					return
				}
			case sensitiveScopeActor:
				if !decisions.allow(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.UserID
	}
	return shared.ClientIP(r)
}

// usernameOrIPKey buckets login attempts per account so guesses spread over
// several addresses still count against the same username.
func usernameOrIPKey(r *http.Request) string {
	if name := bodyUsername(r); name != "" {
		return "username:" + strings.ToLower(name)
	}
	return shared.ClientIP(r)
}

func (l *limiter) allow(w http.ResponseWriter, r *http.Request) bool {
	if l.limit <= 0 {
		return true
	}
	key := l.key(r)
	if key == "" {
		key = shared.ClientIP(r)
	}
	now := time.Now()

	l.mu.Lock()
	c, ok := l.buckets[key]
	if !ok || now.After(c.reset) {
		c = &counter{reset: now.Add(l.window)}
		l.buckets[key] = c
	}
	c.hits++
	hits, reset := c.hits, c.reset
	l.mu.Unlock()

	resetIn := int(reset.Sub(now).Seconds())
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(l.limit-hits, 0)))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(max(resetIn, 0)))
	if hits <= l.limit {
		return true
	}

	w.Header().Set("Retry-After", strconv.Itoa(max(resetIn, 1)))
	slog.Warn("rate limit exceeded", "key", key, "method", r.Method, "path", r.URL.Path, "limit", l.limit)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

// bodyUsername peeks at a JSON login body and restores it for the handler.
func bodyUsername(r *http.Request) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Username)
}

type sensitiveScope string

const (
	sensitiveScopeNone  sensitiveScope = ""
	sensitiveScopeAuth  sensitiveScope = "auth"
	sensitiveScopeActor sensitiveScope = "actor"
)

var sensitiveRoutes = map[string]sensitiveScope{
	"POST /auth/login":          sensitiveScopeAuth,
	"POST /auth/password":       sensitiveScopeAuth,
	"POST /payroll/runs":        sensitiveScopeActor,
	"PUT /payroll/rates":        sensitiveScopeActor,
	"POST /payroll/group-items": sensitiveScopeActor,
}

func sensitiveRateScope(r *http.Request) sensitiveScope {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	if scope, ok := sensitiveRoutes[r.Method+" "+path]; ok {
		return scope
	}
	if r.Method == http.MethodPost && strings.HasPrefix(path, "/leave/requests/") &&
		(strings.HasSuffix(path, "/approve") || strings.HasSuffix(path, "/reject")) {
		return sensitiveScopeActor
	}
	return sensitiveScopeNone
}
