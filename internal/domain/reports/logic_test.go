package reports

import (
	"strings"
	"testing"
	"time"
)

func TestEmployeeDashboard(t *testing.T) {
	payload := EmployeeDashboard("정상", 1, 3)
	if payload["todayStatus"].(string) != "정상" {
		t.Fatal("unexpected today status")
	}
	if payload["pendingLeave"].(int) != 1 {
		t.Fatal("unexpected pending leave")
	}
	if payload["payslipCount"].(int) != 3 {
		t.Fatal("unexpected payslip count")
	}
}

func TestAdminDashboard(t *testing.T) {
	payload := AdminDashboard(12, 9, 2, nil)
	if payload["activeEmployees"].(int) != 12 || payload["clockedInToday"].(int) != 9 || payload["leavePending"].(int) != 2 {
		t.Fatalf("unexpected counters: %v", payload)
	}
	if payload["latestPayroll"] != nil {
		t.Fatal("expected no payroll snapshot")
	}

	snap := &PayrollSnapshot{Year: 2026, Month: 9, Headcount: 12, NetPay: 31000000}
	payload = AdminDashboard(12, 9, 2, snap)
	if payload["latestPayroll"].(*PayrollSnapshot).Month != 9 {
		t.Fatalf("unexpected snapshot: %v", payload["latestPayroll"])
	}
}

func TestBuildJobRunsBaseQuery(t *testing.T) {
	query, args := buildJobRunsBaseQuery(JobRunFilter{})
	if len(args) != 0 || strings.Contains(query, "$1") {
		t.Fatalf("empty filter should add no placeholders: %s %v", query, args)
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	query, args = buildJobRunsBaseQuery(JobRunFilter{JobType: " payroll_run ", Status: "failed", StartedFrom: &from, StartedTo: &to})
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
	if args[0] != "payroll_run" {
		t.Fatalf("job type should be trimmed, got %q", args[0])
	}
	for _, want := range []string{"job_type = $1", "status = $2", "started_at >= $3", "started_at < $4"} {
		if !strings.Contains(query, want) {
			t.Fatalf("query missing %q:\n%s", want, query)
		}
	}
}

func TestDecodeDetails(t *testing.T) {
	if got := decodeDetails(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
	if got := decodeDetails([]byte(`{"inserted":3}`)); got["inserted"].(float64) != 3 {
		t.Fatalf("unexpected details: %v", got)
	}
	if got := decodeDetails([]byte(`not json`)); got["raw"] != "not json" {
		t.Fatalf("expected raw fallback, got %v", got)
	}
}
