package attendancehandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

const clockEndpoint = "attendance.clock"

type Handler struct {
	Service *attendance.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Idem    *middleware.IdempotencyStore
	Metrics *metrics.Collector
}

func NewHandler(service *attendance.Service, perms middleware.PermissionStore, auditSvc *audit.Service, idem *middleware.IdempotencyStore, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, Idem: idem, Metrics: collector}
}

type correctionRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	WorkDate   string `json:"workDate" validate:"required,date"`
	ClockIn    string `json:"clockIn" validate:"omitempty,clock"`
	ClockOut   string `json:"clockOut" validate:"omitempty,clock"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	self := middleware.Require(auth.CapAttendanceSelf, h.Perms)
	admin := middleware.Require(auth.CapAttendanceAdmin, h.Perms)

	r.Route("/attendance", func(r chi.Router) {
		r.With(self).Post("/clock", h.handleClock)
		r.With(self).Get("/today", h.handleToday)
		r.With(self).Get("/me", h.handleMyMonth)
		r.With(admin).Get("/board", h.handleBoard)
		r.With(admin).Get("/employees/{employeeID}", h.handleEmployeeMonth)
		r.With(admin).Get("/stats", h.handleStats)
		r.With(admin).Put("/records", h.handleCorrect)
		r.With(admin).Get("/summary/{employeeID}", h.handleSummary)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		api.Fail(w, http.StatusConflict, "already_clocked_out", err.Error(), requestID)
	case errors.Is(err, attendance.ErrInvalidTime):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "clockIn", Reason: "must be HH:MM or HH:MM:SS"}})
	case errors.Is(err, attendance.ErrInvalidMonth), errors.Is(err, shared.ErrInvalidPeriod):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "month", Reason: "must be between 1 and 12"}})
	case errors.Is(err, attendance.ErrRecordNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, middleware.ErrIdempotencyConflict):
		api.Fail(w, http.StatusConflict, "idempotency_conflict", err.Error(), requestID)
	default:
		slog.Error("attendance request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "request failed", requestID)
	}
}

// employeeOf returns the caller's employee id or writes 403 for accounts
// without an employee record.
func employeeOf(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "no_employee", "account has no employee record", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return user.EmployeeID, true
}

func (h *Handler) handleClock(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeOf(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	key := r.Header.Get(middleware.IdempotencyHeader)
	hash := middleware.RequestHash([]byte(employeeID + "|" + time.Now().In(h.Service.Location).Format("2006-01-02")))
	stored, found, err := h.Idem.Check(r.Context(), user.UserID, clockEndpoint, key, hash)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if found {
		api.Success(w, json.RawMessage(stored), requestID)
		return
	}

	result, err := h.Service.Clock(r.Context(), employeeID)
	h.Metrics.ClockEvent()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Idem.Save(r.Context(), user.UserID, clockEndpoint, key, hash, result); err != nil {
		slog.Warn("idempotency save failed", "endpoint", clockEndpoint, "err", err)
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeOf(w, r)
	if !ok {
		return
	}
	today, err := h.Service.Today(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, today, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMyMonth(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeOf(w, r)
	if !ok {
		return
	}
	h.writeMonth(w, r, employeeID)
}

func (h *Handler) handleEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	h.writeMonth(w, r, chi.URLParam(r, "employeeID"))
}

func (h *Handler) writeMonth(w http.ResponseWriter, r *http.Request, employeeID string) {
	year, month, err := shared.ParsePeriod(r, time.Now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Service.EmployeeMonth(r.Context(), employeeID, year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Service.Board(r.Context(), attendance.BoardFilter{
		ID:   r.URL.Query().Get("id"),
		Name: r.URL.Query().Get("name"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, board, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	year, month, err := shared.ParsePeriod(r, time.Now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stats, err := h.Service.MonthlyStats(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var payload correctionRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	workDate, _ := time.Parse("2006-01-02", payload.WorkDate)
	rec, err := h.Service.Correct(r.Context(), attendance.Correction{
		EmployeeID: payload.EmployeeID,
		WorkDate:   workDate,
		ClockIn:    payload.ClockIn,
		ClockOut:   payload.ClockOut,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, "attendance.correct", "attendance", rec.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, rec); err != nil {
		slog.Warn("audit attendance.correct failed", "err", err)
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := shared.ParsePeriod(r, time.Now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	summary, err := h.Service.Summary(r.Context(), chi.URLParam(r, "employeeID"), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
