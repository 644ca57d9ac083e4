package reportshandler

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestJobFilterFrom(t *testing.T) {
	req := httptest.NewRequest("GET", "/reports/jobs?jobType=payroll_run&status=failed&startedFrom=2026-01-02&startedTo=2026-01-02", nil)
	filter, issues := jobFilterFrom(req)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if filter.JobType != "payroll_run" || filter.Status != "failed" {
		t.Fatalf("unexpected filter: %+v", filter)
	}
	wantFrom := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !filter.StartedFrom.Equal(wantFrom) {
		t.Fatalf("unexpected from: %v", filter.StartedFrom)
	}
	if !filter.StartedTo.Equal(wantFrom.Add(24 * time.Hour)) {
		t.Fatalf("date-only upper bound should cover the day, got %v", filter.StartedTo)
	}
}

func TestJobFilterFromTimestampBound(t *testing.T) {
	req := httptest.NewRequest("GET", "/reports/jobs?startedTo=2026-01-02T10:00:00Z", nil)
	filter, issues := jobFilterFrom(req)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if !filter.StartedTo.Equal(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("timestamp bound should be kept as is, got %v", filter.StartedTo)
	}
	if filter.StartedFrom != nil {
		t.Fatal("expected no lower bound")
	}
}

func TestJobFilterFromRejectsBadDates(t *testing.T) {
	req := httptest.NewRequest("GET", "/reports/jobs?startedFrom=yesterday&startedTo=2026-13-40", nil)
	_, issues := jobFilterFrom(req)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	if issues[0].Field != "startedFrom" || issues[1].Field != "startedTo" {
		t.Fatalf("unexpected fields: %v", issues)
	}
}
