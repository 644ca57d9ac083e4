package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"hrpay/internal/app/server"
)

func TestReportsJobRunsFilteringAndDetails(t *testing.T) {
	app, ts, cfg := startApp(t)
	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	marker := time.Date(2019, time.March, 1, 10, 0, 0, 0, time.UTC)
	if _, err := app.DB.Exec(context.Background(), "DELETE FROM job_runs WHERE started_at >= $1 AND started_at < $2", marker.AddDate(0, 0, -1), marker.AddDate(0, 0, 3)); err != nil {
		t.Fatalf("failed to clear job runs: %v", err)
	}
	failedID := insertJobRun(t, app, "payroll_run_scheduled", "failed", map[string]any{"error": "contract lookup failed"}, marker)
	_ = insertJobRun(t, app, "payroll_run", "completed", map[string]any{"inserted": 28}, marker.AddDate(0, 0, 1))
	_ = insertJobRun(t, app, "retention", "running", nil, marker.AddDate(0, 0, 2))

	window := "&startedFrom=2019-03-01&startedTo=2019-03-03"
	listEnv, total := getJSONWithTotal(t, client, ts.URL+"/api/v1/reports/jobs?limit=2"+window, adminToken)
	if total != 3 {
		t.Fatalf("expected 3 job runs in window, got %d", total)
	}
	if runs := envelopeDataSlice(t, listEnv); len(runs) != 2 {
		t.Fatalf("expected 2 runs on the page, got %d", len(runs))
	}

	filterEnv, filtered := getJSONWithTotal(t, client, ts.URL+"/api/v1/reports/jobs?jobType=payroll_run_scheduled&status=failed"+window, adminToken)
	if filtered != 1 {
		t.Fatalf("expected 1 filtered run, got %d", filtered)
	}
	runs := envelopeDataSlice(t, filterEnv)
	if id, _ := runs[0]["id"].(string); id != failedID {
		t.Fatalf("expected run %s, got %v", failedID, runs[0]["id"])
	}

	detail := envelopeDataMap(t, getJSONStatus(t, client, ts.URL+"/api/v1/reports/jobs/"+failedID, adminToken, http.StatusOK))
	details, _ := detail["details"].(map[string]any)
	if msg, _ := details["error"].(string); msg == "" {
		t.Fatalf("expected error details, got %+v", detail)
	}

	getJSONStatus(t, client, ts.URL+"/api/v1/reports/jobs/00000000-0000-0000-0000-000000000000", adminToken, http.StatusNotFound)
	getJSONStatus(t, client, ts.URL+"/api/v1/reports/jobs?startedFrom=yesterday", adminToken, http.StatusBadRequest)
}

func TestRetentionRunIsRecordedAsJob(t *testing.T) {
	_, ts, cfg := startApp(t)
	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	results := envelopeDataSlice(t, postJSONStatus(t, client, ts.URL+"/api/v1/retention/run?category=sessions", adminToken, nil, http.StatusOK))
	if len(results) != 1 || results[0]["category"] != "sessions" {
		t.Fatalf("unexpected retention results: %+v", results)
	}

	env, total := getJSONWithTotal(t, client, ts.URL+"/api/v1/reports/jobs?jobType=retention&status=completed&limit=1", adminToken)
	if total < 1 || len(envelopeDataSlice(t, env)) != 1 {
		t.Fatalf("expected a completed retention job run, got total %d", total)
	}

	postJSONStatus(t, client, ts.URL+"/api/v1/retention/run?category=payroll", adminToken, nil, http.StatusBadRequest)
}

func insertJobRun(t *testing.T, app *server.App, jobType, status string, details map[string]any, startedAt time.Time) string {
	t.Helper()
	var detailsRaw []byte
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			t.Fatalf("failed to marshal job details: %v", err)
		}
		detailsRaw = raw
	}
	var completedAt *time.Time
	if status != "running" {
		done := startedAt.Add(10 * time.Minute)
		completedAt = &done
	}

	var runID string
	if err := app.DB.QueryRow(context.Background(), `
    INSERT INTO job_runs (job_type, status, details_json, started_at, completed_at)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id::text
  `, jobType, status, detailsRaw, startedAt, completedAt).Scan(&runID); err != nil {
		t.Fatalf("failed to insert job run: %v", err)
	}
	return runID
}
