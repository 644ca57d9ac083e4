package reportshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/reports"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *reports.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.Authenticated).Get("/dashboard", h.handleDashboard)
		r.With(middleware.Require(auth.CapSystemMetrics, h.Perms)).Get("/jobs", h.handleJobRuns)
		r.With(middleware.Require(auth.CapSystemMetrics, h.Perms)).Get("/jobs/{runID}", h.handleJobRun)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboard, err := h.Service.Dashboard(r.Context(), user)
	if err != nil {
		slog.Error("dashboard failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to load dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}

// jobFilterFrom reads jobType, status, startedFrom and startedTo. A bare
// YYYY-MM-DD startedTo covers that whole day.
func jobFilterFrom(r *http.Request) (reports.JobRunFilter, []shared.ValidationIssue) {
	q := r.URL.Query()
	filter := reports.JobRunFilter{JobType: q.Get("jobType"), Status: q.Get("status")}
	var issues []shared.ValidationIssue

	if raw := strings.TrimSpace(q.Get("startedFrom")); raw != "" {
		from, err := shared.ParseDate(raw)
		if err != nil {
			issues = append(issues, shared.ValidationIssue{Field: "startedFrom", Reason: "must be a date"})
		} else {
			filter.StartedFrom = &from
		}
	}
	if raw := strings.TrimSpace(q.Get("startedTo")); raw != "" {
		to, err := shared.ParseDate(raw)
		if err != nil {
			issues = append(issues, shared.ValidationIssue{Field: "startedTo", Reason: "must be a date"})
		} else {
			if len(raw) == len("2006-01-02") {
				to = to.Add(24 * time.Hour)
			}
			filter.StartedTo = &to
		}
	}
	return filter, issues
}

func (h *Handler) handleJobRuns(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	filter, issues := jobFilterFrom(r)
	if len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "invalid filter", map[string]any{"fields": issues}, reqID)
		return
	}
	page := shared.ParsePagination(r, 20, 100)
	runs, total, err := h.Service.JobRuns(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		slog.Error("job runs list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "job_runs_failed", "failed to list job runs", reqID)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, runs, reqID)
}

func (h *Handler) handleJobRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	run, err := h.Service.JobRun(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		if errors.Is(err, reports.ErrJobRunNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "job run not found", reqID)
			return
		}
		slog.Error("job run lookup failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "job_run_failed", "failed to load job run", reqID)
		return
	}
	api.Success(w, run, reqID)
}
