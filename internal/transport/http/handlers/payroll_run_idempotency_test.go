package handlers_test

import (
	"context"
	"net/http"
	"testing"
)

func TestPayrollRunReplaysWithIdempotencyKey(t *testing.T) {
	app, ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	employeeID := createEmployee(t, client, ts.URL, adminToken, "Replay123!")
	putJSONStatus(t, client, ts.URL+"/api/v1/payroll/contracts", adminToken, map[string]any{
		"employeeId":   employeeID,
		"annualSalary": 42000000,
	}, http.StatusOK)

	body := map[string]any{"year": 2031, "month": 1}
	headers := map[string]string{"Idempotency-Key": "run-replay-" + employeeID}

	status, first, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/runs", adminToken, body, headers)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for first run, got %d: %+v", status, first.Error)
	}
	status, replay, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/runs", adminToken, body, headers)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for replay, got %d: %+v", status, replay.Error)
	}
	if string(first.Data) != string(replay.Data) {
		t.Fatalf("expected replayed response, got %s vs %s", first.Data, replay.Data)
	}

	var count int
	if err := app.DB.QueryRow(context.Background(), "SELECT COUNT(1) FROM payroll_records WHERE employee_id = $1 AND pay_year = 2031 AND pay_month = 1", employeeID).Scan(&count); err != nil {
		t.Fatalf("failed to count records: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one record, got %d", count)
	}

	// a second plain run skips the employee instead of duplicating the record
	second := envelopeDataMap(t, postJSONStatus(t, client, ts.URL+"/api/v1/payroll/runs", adminToken, body, http.StatusOK))
	if skipped, _ := second["skipped"].(float64); skipped < 1 {
		t.Fatalf("expected existing record to be skipped, got %+v", second)
	}
}

func TestPayrollRunIdempotencyConflictAcrossMonths(t *testing.T) {
	_, ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	headers := map[string]string{"Idempotency-Key": "run-conflict-key"}

	status, env, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/runs", adminToken, map[string]any{"year": 2031, "month": 2}, headers)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for first run, got %d: %+v", status, env.Error)
	}
	status, env, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/runs", adminToken, map[string]any{"year": 2031, "month": 3}, headers)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for reused key, got %d", status)
	}
	if code := envelopeErrorCode(env); code != "idempotency_conflict" {
		t.Fatalf("expected idempotency_conflict, got %s", code)
	}
}
