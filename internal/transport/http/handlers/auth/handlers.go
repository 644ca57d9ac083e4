package authhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
	Audit   *audit.Service
}

func NewHandler(service *auth.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfaCode" validate:"omitempty,len=6,numeric"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type mfaCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// RegisterPublic mounts the routes reachable without a token.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticated)
		r.Post("/auth/logout", h.HandleLogout)
		r.Post("/auth/password", h.HandleChangePassword)
		r.Post("/auth/mfa/setup", h.HandleMFASetup)
		r.Post("/auth/mfa/enable", h.HandleMFAEnable)
		r.Post("/auth/mfa/disable", h.HandleMFADisable)
		r.Get("/me", h.HandleMe)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
	case errors.Is(err, auth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", requestID)
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", requestID)
	case errors.Is(err, auth.ErrMFAUnavailable):
		api.Fail(w, http.StatusConflict, "mfa_unavailable", err.Error(), requestID)
	case errors.Is(err, auth.ErrMFANotSetup):
		api.Fail(w, http.StatusConflict, "mfa_not_setup", err.Error(), requestID)
	case errors.Is(err, auth.ErrPasswordMismatch):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", err.Error(), map[string]any{"fields": []shared.ValidationIssue{{Field: "currentPassword", Reason: "does not match"}}}, requestID)
	case errors.Is(err, auth.ErrPasswordConfirm):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", err.Error(), map[string]any{"fields": []shared.ValidationIssue{{Field: "confirmPassword", Reason: "does not match newPassword"}}}, requestID)
	case errors.Is(err, auth.ErrWeakPassword):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", err.Error(), map[string]any{"fields": []shared.ValidationIssue{{Field: "newPassword", Reason: "must be at least 8"}}}, requestID)
	case errors.Is(err, auth.ErrUserNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
	default:
		slog.Error("auth request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "auth_failed", "request failed", requestID)
	}
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action string) {
	if err := h.Audit.Record(r.Context(), user.UserID, action, "user", user.UserID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, nil); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	result, err := h.Service.Login(r.Context(), payload.Username, payload.Password, payload.MFACode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, result.User, "auth.login")
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Logout(r.Context(), user); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, user, "auth.logout")
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, map[string]any{"user": user, "capabilities": auth.RolePermissions[user.Role]}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload passwordRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	if err := h.Service.ChangePassword(r.Context(), user.UserID, payload.CurrentPassword, payload.NewPassword, payload.ConfirmPassword); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, user, "auth.password.change")
	api.Success(w, map[string]string{"status": "password_changed"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	setup, err := h.Service.SetupMFA(r.Context(), user)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, setup, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	h.setMFA(w, r, true)
}

func (h *Handler) HandleMFADisable(w http.ResponseWriter, r *http.Request) {
	h.setMFA(w, r, false)
}

func (h *Handler) setMFA(w http.ResponseWriter, r *http.Request, enabled bool) {
	user, _ := middleware.GetUser(r.Context())
	var payload mfaCodeRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	if err := h.Service.SetMFA(r.Context(), user.UserID, payload.Code, enabled); err != nil {
		h.fail(w, r, err)
		return
	}
	action := "auth.mfa.disable"
	if enabled {
		action = "auth.mfa.enable"
	}
	h.record(r, user, action)
	api.Success(w, map[string]bool{"mfaEnabled": enabled}, middleware.GetRequestID(r.Context()))
}
