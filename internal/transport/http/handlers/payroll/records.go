package payrollhandler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

const runEndpoint = "payroll.run"

type runRequest struct {
	Year  int `json:"year" validate:"gte=2000,lte=2100"`
	Month int `json:"month" validate:"gte=1,lte=12"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload runRequest
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	key := r.Header.Get(middleware.IdempotencyHeader)
	hash := middleware.RequestHash([]byte(fmt.Sprintf("%04d-%02d", payload.Year, payload.Month)))
	stored, found, err := h.Idem.Check(r.Context(), user.UserID, runEndpoint, key, hash)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if found {
		api.Success(w, json.RawMessage(stored), requestID)
		return
	}

	out, err := h.Jobs.RunNow(r.Context(), jobs.JobPayrollRun, func(ctx context.Context) (any, error) {
		return h.Service.Run(ctx, payload.Year, payload.Month)
	})
	if err != nil {
		h.Metrics.PayrollRun(0, 0, err)
		h.fail(w, r, err)
		return
	}
	result, _ := out.(payroll.RunResult)
	h.Metrics.PayrollRun(result.Inserted, result.Skipped, nil)
	h.record(r, "payroll.run", "payroll_period", fmt.Sprintf("%04d-%02d", result.Year, result.Month), nil, result)

	if err := h.Idem.Save(r.Context(), user.UserID, runEndpoint, key, hash, result); err != nil {
		slog.Warn("idempotency save failed", "endpoint", runEndpoint, "err", err)
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	year, month, err := period(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	records, err := h.Service.Records(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTotals(w http.ResponseWriter, r *http.Request) {
	year, month, err := period(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	totals, err := h.Service.Totals(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, totals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMyRecords(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	records, err := h.Service.EmployeeRecords(r.Context(), user.EmployeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rec, err := h.Service.Record(r.Context(), user, chi.URLParam(r, "recordID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordID")
	rec, err := h.Service.DeleteRecord(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record(r, "payroll.record.delete", "payroll_record", id, rec, nil)
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rec, err := h.Service.Record(r.Context(), user, chi.URLParam(r, "recordID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := payroll.WritePayslip(&buf, rec); err != nil {
		h.fail(w, r, err)
		return
	}
	name := fmt.Sprintf("payslip_%s_%d_%d.pdf", rec.EmployeeID, rec.Year, rec.Month)
	writeFile(w, "application/pdf", name, buf.Bytes())
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv; charset=utf-8", payroll.WriteCSV)
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payroll.WriteXLSX)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write func(io.Writer, []payroll.Record) error) {
	year, month, err := period(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	records, err := h.Service.Records(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, records); err != nil {
		h.fail(w, r, err)
		return
	}
	writeFile(w, contentType, payroll.ExportFilename(year, month, ext), buf.Bytes())
}

// writeFile buffers the whole document so a render error can still become a JSON failure.
func writeFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Warn("file write failed", "filename", filename, "err", err)
	}
}
