package leavehandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/leave"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *leave.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

type createRequest struct {
	Type        string `json:"type" validate:"required,oneof=연차 반차 병가 기타 외근 출장"`
	StartDate   string `json:"startDate" validate:"required,date"`
	EndDate     string `json:"endDate" validate:"omitempty,date"`
	Destination string `json:"destination" validate:"required_if=Type 외근,required_if=Type 출장,max=200"`
	Reason      string `json:"reason" validate:"max=1000"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	request := middleware.Require(auth.CapLeaveRequest, h.Perms)
	approve := middleware.Require(auth.CapLeaveApprove, h.Perms)

	r.Route("/leave/requests", func(r chi.Router) {
		r.With(request).Get("/", h.handleListRequests)
		r.With(request).Post("/", h.handleCreateRequest)
		r.With(request).Get("/counts", h.handleCounts)
		r.With(request).Get("/{requestID}", h.handleGetRequest)
		r.With(approve).Post("/{requestID}/approve", h.handleApproveRequest)
		r.With(approve).Post("/{requestID}/reject", h.handleRejectRequest)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this request", requestID)
	case errors.Is(err, leave.ErrRequestNotPending):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, leave.ErrInvalidType):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "type", Reason: err.Error()}})
	case errors.Is(err, leave.ErrInvalidRange):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "endDate", Reason: "must be on or after startDate"}})
	case errors.Is(err, leave.ErrDestinationNeeded):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "destination", Reason: "is required"}})
	default:
		slog.Error("leave request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "leave_failed", "request failed", requestID)
	}
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	status := r.URL.Query().Get("status")
	if status != "" && !leave.ValidStatus(status) {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "status", Reason: "must be one of: 대기, 승인, 반려"}})
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	requests, err := h.Service.List(r.Context(), user, leave.Filter{
		Status: status,
		Kind:   r.URL.Query().Get("kind"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "no_employee", "account has no employee record", requestID)
		return
	}
	var payload createRequest
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	start, _ := time.Parse("2006-01-02", payload.StartDate)
	var end time.Time
	if payload.EndDate != "" {
		end, _ = time.Parse("2006-01-02", payload.EndDate)
	}
	v := shared.NewValidator()
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, requestID) {
		return
	}

	req, err := h.Service.Create(r.Context(), leave.NewRequest{
		EmployeeID:  user.EmployeeID,
		Type:        payload.Type,
		StartDate:   start,
		EndDate:     end,
		Destination: payload.Destination,
		Reason:      payload.Reason,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "leave.request", "leave_request", req.ID, requestID, shared.ClientIP(r), nil, req); err != nil {
		slog.Warn("audit leave.request failed", "err", err)
	}
	api.Created(w, req, requestID)
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	counts, err := h.Service.Counts(r.Context(), user)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, counts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	req, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "requestID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "leave.approve", h.Service.Approve)
}

func (h *Handler) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "leave.reject", h.Service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action string, apply func(ctx context.Context, requestID, deciderID string) (leave.Request, error)) {
	user, _ := middleware.GetUser(r.Context())
	leaveID := chi.URLParam(r, "requestID")
	req, err := apply(r.Context(), leaveID, user.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, action, "leave_request", leaveID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]string{"status": leave.StatusPending}, map[string]string{"status": req.Status}); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}
