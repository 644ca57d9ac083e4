package retentionhandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"hrpay/internal/domain/retention"
	"hrpay/internal/platform/jobs"
)

func TestRunRejectsUnknownCategory(t *testing.T) {
	h := NewHandler(retention.NewService(nil, retention.Policies(30, 0)), nil, jobs.New(nil), nil)
	rec := httptest.NewRecorder()
	h.handleRun(rec, httptest.NewRequest(http.MethodPost, "/retention/run?category=payroll", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPoliciesListsConfiguredWindows(t *testing.T) {
	h := NewHandler(retention.NewService(nil, retention.Policies(0, 365)), nil, jobs.New(nil), nil)
	rec := httptest.NewRecorder()
	h.handlePolicies(rec, httptest.NewRequest(http.MethodGet, "/retention/policies", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env struct {
		Data []retention.Policy `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].Category != retention.CategoryAudit {
		t.Fatalf("unexpected policies: %+v", env.Data)
	}
}
