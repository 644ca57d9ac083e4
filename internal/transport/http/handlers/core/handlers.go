package corehandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *core.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

type employeeRequest struct {
	Name       string `json:"name" validate:"required,max=50"`
	Department string `json:"department" validate:"required"`
	Position   string `json:"position" validate:"required"`
	HireDate   string `json:"hireDate" validate:"required,date"`
	Gender     string `json:"gender" validate:"omitempty,oneof=남 여"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address" validate:"omitempty,max=200"`
	Role       string `json:"role" validate:"omitempty,oneof=admin user"`
	Password   string `json:"password"`
}

func (p employeeRequest) input() core.EmployeeInput {
	hire, _ := time.Parse("2006-01-02", p.HireDate)
	return core.EmployeeInput{
		Name:       p.Name,
		Department: p.Department,
		Position:   p.Position,
		HireDate:   hire,
		Gender:     p.Gender,
		Phone:      p.Phone,
		Email:      p.Email,
		Address:    p.Address,
		Role:       p.Role,
		Password:   p.Password,
	}
}

type departmentRequest struct {
	Name string `json:"name" validate:"required,max=50"`
	Code string `json:"code" validate:"required,alphanum,min=2,max=4"`
}

type positionRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type emailDomainRequest struct {
	Domain string `json:"domain" validate:"required,fqdn"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.Require(auth.CapEmployeesRead, h.Perms)
	write := middleware.Require(auth.CapEmployeesWrite, h.Perms)
	orgRead := middleware.Require(auth.CapOrgRead, h.Perms)
	orgWrite := middleware.Require(auth.CapOrgWrite, h.Perms)

	r.Route("/employees", func(r chi.Router) {
		r.With(read).Get("/", h.handleListEmployees)
		r.With(write).Post("/", h.handleCreateEmployee)
		r.With(read).Get("/stats", h.handleStats)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(read).Get("/", h.handleGetEmployee)
			r.With(write).Put("/", h.handleUpdateEmployee)
			r.With(write).Post("/depart", h.handleDepart)
			r.With(write).Post("/rehire", h.handleRehire)
		})
	})
	r.Route("/org", func(r chi.Router) {
		r.With(orgRead).Get("/departments", h.handleListDepartments)
		r.With(orgWrite).Post("/departments", h.handleCreateDepartment)
		r.With(orgWrite).Put("/departments/{departmentID}", h.handleUpdateDepartment)
		r.With(orgWrite).Delete("/departments/{departmentID}", h.handleDeleteDepartment)
		r.With(orgRead).Get("/positions", h.handleListPositions)
		r.With(orgWrite).Post("/positions", h.handleCreatePosition)
		r.With(orgWrite).Delete("/positions/{positionID}", h.handleDeletePosition)
		r.With(orgRead).Get("/email-domains", h.handleListEmailDomains)
		r.With(orgWrite).Post("/email-domains", h.handleCreateEmailDomain)
		r.With(orgWrite).Delete("/email-domains/{domainID}", h.handleDeleteEmailDomain)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	var lookup *core.LookupError
	switch {
	case errors.As(err, &lookup):
		details := map[string]any{"fields": []shared.ValidationIssue{{Field: lookup.Field, Reason: "not found"}}}
		if lookup.Suggestion != "" {
			details["suggestion"] = lookup.Suggestion
		}
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", lookup.Error(), details, requestID)
	case errors.Is(err, core.ErrEmployeeNotFound), errors.Is(err, core.ErrDepartmentNotFound),
		errors.Is(err, core.ErrPositionNotFound), errors.Is(err, core.ErrEmailDomainNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, core.ErrDuplicateDepartment), errors.Is(err, core.ErrDuplicatePosition),
		errors.Is(err, core.ErrDuplicateEmailDomain), errors.Is(err, auth.ErrDuplicateUsername):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	case errors.Is(err, core.ErrDepartmentInUse), errors.Is(err, core.ErrPositionInUse):
		api.Fail(w, http.StatusConflict, "in_use", err.Error(), requestID)
	case errors.Is(err, core.ErrAlreadyTerminated), errors.Is(err, core.ErrAlreadyActive):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, core.ErrSequenceExhausted):
		api.Fail(w, http.StatusConflict, "sequence_exhausted", err.Error(), requestID)
	case errors.Is(err, core.ErrInvalidRole):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "role", Reason: "must be one of: admin, user"}})
	case errors.Is(err, auth.ErrWeakPassword):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "password", Reason: "must be at least 8"}})
	default:
		slog.Error("core request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "core_failed", "request failed", requestID)
	}
}

func (h *Handler) record(r *http.Request, action, entityType, entityID string, before, after any) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, entityType, entityID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.EmployeeFilter{
		ID:         q.Get("id"),
		Name:       q.Get("name"),
		Department: q.Get("department"),
		Position:   q.Get("position"),
		Gender:     q.Get("gender"),
		Status:     q.Get("status"),
	}
	if filter.Status != "" && filter.Status != core.StatusAll && !core.ValidStatus(filter.Status) {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "status", Reason: "must be one of: 재직, 퇴사, 전체"}})
		return
	}
	employees, err := h.Service.ListEmployees(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeeRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	if len(payload.Password) < 8 {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "password", Reason: "must be at least 8"}})
		return
	}
	created, err := h.Service.CreateEmployee(r.Context(), payload.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "employee.create", "employee", created.Employee.ID, nil, created.Employee)
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	var payload employeeRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	before, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	emp, err := h.Service.UpdateEmployee(r.Context(), employeeID, payload.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "employee.update", "employee", employeeID, before, emp)
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDepart(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	emp, err := h.Service.Depart(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "employee.depart", "employee", employeeID, nil, map[string]string{"status": emp.Status})
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRehire(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	emp, err := h.Service.Rehire(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "employee.rehire", "employee", employeeID, nil, map[string]string{"status": emp.Status})
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DepartmentStats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}
