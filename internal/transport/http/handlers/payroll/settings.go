package payrollhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/payroll"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type ratesRequest struct {
	Pension    float64 `json:"pension" validate:"gte=0,lte=100"`
	Health     float64 `json:"health" validate:"gte=0,lte=100"`
	Care       float64 `json:"care" validate:"gte=0,lte=100"`
	Employment float64 `json:"employment" validate:"gte=0,lte=100"`
}

type contractRequest struct {
	EmployeeID    string `json:"employeeId" validate:"required"`
	AnnualSalary  int64  `json:"annualSalary" validate:"gt=0"`
	BankName      string `json:"bankName" validate:"max=50"`
	AccountNumber string `json:"accountNumber" validate:"max=50"`
}

type itemRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Name       string `json:"name" validate:"required,max=100"`
	Amount     int64  `json:"amount" validate:"gt=0"`
	IsTaxable  *bool  `json:"isTaxable"`
}

type groupItemRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=allowance deduction"`
	Target    string `json:"target" validate:"required,oneof=all department position individual"`
	Value     string `json:"value" validate:"required_unless=Target all"`
	Name      string `json:"name" validate:"required,max=100"`
	Amount    int64  `json:"amount" validate:"gt=0"`
	IsTaxable *bool  `json:"isTaxable"`
}

// taxable defaults to true when the flag is omitted.
func taxable(flag *bool) bool {
	return flag == nil || *flag
}

func (h *Handler) handleGetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Service.Rates(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, rates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateRates(w http.ResponseWriter, r *http.Request) {
	var payload ratesRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	before, err := h.Service.Rates(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rates, err := h.Service.UpdateRates(r.Context(), payroll.RateConfig(payload))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.rates.update", "payroll_rates", "1", before, rates)
	api.Success(w, rates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Service.Contracts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, contracts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSaveContract(w http.ResponseWriter, r *http.Request) {
	var payload contractRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	contract, err := h.Service.SaveContract(r.Context(), payroll.ContractInput{
		EmployeeID:    payload.EmployeeID,
		AnnualSalary:  payload.AnnualSalary,
		BankName:      payload.BankName,
		AccountNumber: payload.AccountNumber,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.contract.save", "salary_contract", contract.EmployeeID, nil, map[string]int64{
		"annualSalary": contract.AnnualSalary,
		"baseSalary":   contract.BaseSalary,
	})
	api.Success(w, contract, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMyContract(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	contract, err := h.Service.Contract(r.Context(), user.EmployeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, contract, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAllowances(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Allowances(r.Context(), r.URL.Query().Get("employeeId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateAllowance(w http.ResponseWriter, r *http.Request) {
	var payload itemRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	item, err := h.Service.AddAllowance(r.Context(), payroll.Allowance{
		EmployeeID: payload.EmployeeID,
		Name:       payload.Name,
		Amount:     payload.Amount,
		IsTaxable:  taxable(payload.IsTaxable),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.allowance.create", "allowance", item.ID, nil, item)
	api.Created(w, item, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAllowance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemID")
	if err := h.Service.DeleteAllowance(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.allowance.delete", "allowance", id, nil, nil)
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDeductions(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.FixedDeductions(r.Context(), r.URL.Query().Get("employeeId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDeduction(w http.ResponseWriter, r *http.Request) {
	var payload itemRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	item, err := h.Service.AddFixedDeduction(r.Context(), payroll.FixedDeduction{
		EmployeeID: payload.EmployeeID,
		Name:       payload.Name,
		Amount:     payload.Amount,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.deduction.create", "fixed_deduction", item.ID, nil, item)
	api.Created(w, item, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDeduction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemID")
	if err := h.Service.DeleteFixedDeduction(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.deduction.delete", "fixed_deduction", id, nil, nil)
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGroupItem(w http.ResponseWriter, r *http.Request) {
	var payload groupItemRequest
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	item := payroll.GroupItem{
		Kind:      payload.Kind,
		Target:    payload.Target,
		Value:     payload.Value,
		Name:      payload.Name,
		Amount:    payload.Amount,
		IsTaxable: taxable(payload.IsTaxable),
	}
	count, err := h.Service.AddGroupItem(r.Context(), item)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.group_item.create", payload.Kind, payload.Target+":"+payload.Value, nil, map[string]any{
		"name":     payload.Name,
		"amount":   payload.Amount,
		"affected": count,
	})
	api.Created(w, map[string]int{"affected": count}, middleware.GetRequestID(r.Context()))
}
