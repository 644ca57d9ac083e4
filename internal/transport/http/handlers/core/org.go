package corehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	deps, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, deps, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	id, err := h.Service.CreateDepartment(r.Context(), payload.Name, payload.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "department.create", "department", id, nil, payload)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "departmentID")
	var payload departmentRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	if err := h.Service.UpdateDepartment(r.Context(), id, payload.Name, payload.Code); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "department.update", "department", id, nil, payload)
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "departmentID")
	if err := h.Service.DeleteDepartment(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "department.delete", "department", id, nil, nil)
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Service.ListPositions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, positions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var payload positionRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	id, err := h.Service.CreatePosition(r.Context(), payload.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "position.create", "position", id, nil, payload)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "positionID")
	if err := h.Service.DeletePosition(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "position.delete", "position", id, nil, nil)
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmailDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.Service.ListEmailDomains(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, domains, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmailDomain(w http.ResponseWriter, r *http.Request) {
	var payload emailDomainRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	id, err := h.Service.CreateEmailDomain(r.Context(), payload.Domain)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmailDomain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "domainID")
	if err := h.Service.DeleteEmailDomain(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}
