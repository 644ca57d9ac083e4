package payrollhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Jobs    *jobs.Service
	Idem    *middleware.IdempotencyStore
	Metrics *metrics.Collector
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore, auditSvc *audit.Service, jobsSvc *jobs.Service, idem *middleware.IdempotencyStore, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, Jobs: jobsSvc, Idem: idem, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	self := middleware.Require(auth.CapPayrollSelf, h.Perms)
	manage := middleware.Require(auth.CapPayrollManage, h.Perms)
	run := middleware.Require(auth.CapPayrollRun, h.Perms)

	r.Route("/payroll", func(r chi.Router) {
		r.With(manage).Get("/rates", h.handleGetRates)
		r.With(manage).Put("/rates", h.handleUpdateRates)

		r.With(manage).Get("/contracts", h.handleListContracts)
		r.With(manage).Put("/contracts", h.handleSaveContract)
		r.With(self).Get("/contracts/me", h.handleMyContract)

		r.With(manage).Get("/allowances", h.handleListAllowances)
		r.With(manage).Post("/allowances", h.handleCreateAllowance)
		r.With(manage).Delete("/allowances/{itemID}", h.handleDeleteAllowance)
		r.With(manage).Get("/deductions", h.handleListDeductions)
		r.With(manage).Post("/deductions", h.handleCreateDeduction)
		r.With(manage).Delete("/deductions/{itemID}", h.handleDeleteDeduction)
		r.With(manage).Post("/group-items", h.handleGroupItem)

		r.With(run).Post("/runs", h.handleRun)
		r.With(manage).Get("/records", h.handleListRecords)
		r.With(manage).Get("/totals", h.handleTotals)
		r.With(self).Get("/records/me", h.handleMyRecords)
		r.With(self).Get("/records/{recordID}", h.handleGetRecord)
		r.With(manage).Delete("/records/{recordID}", h.handleDeleteRecord)
		r.With(self).Get("/records/{recordID}/payslip.pdf", h.handlePayslip)
		r.With(manage).Get("/export.csv", h.handleExportCSV)
		r.With(manage).Get("/export.xlsx", h.handleExportXLSX)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod), errors.Is(err, shared.ErrInvalidPeriod):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "month", Reason: "must be between 1 and 12"}})
	case errors.Is(err, payroll.ErrInvalidRate):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, payroll.ErrInvalidAmount):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "amount", Reason: "must be greater than 0"}})
	case errors.Is(err, payroll.ErrInvalidTarget):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "target", Reason: err.Error()}})
	case errors.Is(err, payroll.ErrPayrollNotFound), errors.Is(err, payroll.ErrContractNotFound),
		errors.Is(err, payroll.ErrItemNotFound), errors.Is(err, payroll.ErrEmployeeNotActive):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, middleware.ErrIdempotencyConflict):
		api.Fail(w, http.StatusConflict, "idempotency_conflict", err.Error(), requestID)
	default:
		slog.Error("payroll request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "request failed", requestID)
	}
}

func (h *Handler) record(r *http.Request, action, entityType, entityID string, before, after any) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, entityType, entityID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

// period reads year and month from the query, defaulting to the current month.
func period(r *http.Request) (int, int, error) {
	return shared.ParsePeriod(r, time.Now())
}
