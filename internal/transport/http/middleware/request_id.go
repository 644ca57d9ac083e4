package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"hrpay/internal/platform/requestctx"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses a caller-supplied id when it looks sane, otherwise mints one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), id)))
	})
}
