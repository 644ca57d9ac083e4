package audit

import (
	"context"
	"strings"
	"testing"
)

func TestBuildBaseQuery(t *testing.T) {
	query, args := buildBaseQuery("SELECT COUNT(1)", Filter{Action: "payroll.run", EntityType: "payroll_record"})
	if !strings.Contains(query, "action = $1") || !strings.Contains(query, "entity_type = $2") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "payroll.run" {
		t.Fatalf("unexpected args: %v", args)
	}

	query, args = buildBaseQuery("SELECT 1", Filter{})
	if strings.Contains(query, "$") || len(args) != 0 {
		t.Fatalf("empty filter should not add placeholders: %s %v", query, args)
	}
}

func TestRecordWithoutDatabaseIsNoop(t *testing.T) {
	var svc *Service
	if err := svc.Record(context.Background(), "u1", "login", "user", "u1", "req", "127.0.0.1", nil, map[string]string{"a": "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
