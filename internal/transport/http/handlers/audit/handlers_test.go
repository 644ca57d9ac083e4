package audithandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrpay/internal/domain/audit"
)

func TestFilterFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/audit/events?action=leave.approve&entityType=leave_request&entityId=7&actorUserId=u1", nil)
	got := filterFrom(r)
	want := audit.Filter{Action: "leave.approve", EntityType: "leave_request", EntityID: "7", ActorUser: "u1"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestWriteEventsCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	at := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	writeEventsCSV(rec, []audit.Event{{ID: "1", ActorID: "u1", Action: "payroll.run", EntityType: "payroll_period", EntityID: "2025-03", CreatedAt: at}})
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", rec.Body.String())
	}
	if !strings.HasPrefix(lines[1], "1,u1,payroll.run,payroll_period,2025-03,,,2025-03-04T09:00:00Z") {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("unexpected content type %q", ct)
	}
}
