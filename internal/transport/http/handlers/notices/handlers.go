package noticeshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/notices"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *notices.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *notices.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

type noticeRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"max=10000"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.Require(auth.CapNoticesRead, h.Perms)
	write := middleware.Require(auth.CapNoticesWrite, h.Perms)
	r.Route("/notices", func(r chi.Router) {
		r.With(read).Get("/", h.handleListNotices)
		r.With(write).Post("/", h.handleCreateNotice)
		r.With(read).Get("/{noticeID}", h.handleGetNotice)
		r.With(write).Delete("/{noticeID}", h.handleDeleteNotice)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, notices.ErrNoticeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, notices.ErrTitleRequired):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "title", Reason: "is required"}})
	default:
		slog.Error("notice request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "notices_failed", "request failed", requestID)
	}
}

func (h *Handler) handleListNotices(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 5, 100)
	items, total, err := h.Service.Latest(r.Context(), page.Limit, page.Offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	var payload noticeRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	notice, err := h.Service.Create(r.Context(), payload.Title, payload.Content, user.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "notice.create", "notice", notice.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, notice); err != nil {
		slog.Warn("audit notice.create failed", "err", err)
	}
	api.Created(w, notice, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetNotice(w http.ResponseWriter, r *http.Request) {
	notice, err := h.Service.Get(r.Context(), chi.URLParam(r, "noticeID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, notice, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	noticeID := chi.URLParam(r, "noticeID")
	if err := h.Service.Delete(r.Context(), noticeID); err != nil {
		h.fail(w, r, err)
		return
	}
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, "notice.delete", "notice", noticeID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, nil); err != nil {
		slog.Warn("audit notice.delete failed", "err", err)
	}
	api.Success(w, map[string]string{"id": noticeID}, middleware.GetRequestID(r.Context()))
}
