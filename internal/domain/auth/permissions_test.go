package auth

import (
	"context"
	"testing"
)

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[Capability]struct{}{}
	for _, perm := range AllCapabilities {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestAllCapabilitiesUnique(t *testing.T) {
	seen := map[Capability]struct{}{}
	for _, perm := range AllCapabilities {
		if _, ok := seen[perm]; ok {
			t.Fatalf("duplicate permission %s", perm)
		}
		seen[perm] = struct{}{}
	}
}

func TestPolicy(t *testing.T) {
	policy := NewPolicy()
	for _, c := range AllCapabilities {
		if !policy.Allows(RoleAdmin, c) {
			t.Fatalf("admin should hold %s", c)
		}
	}

	cases := []struct {
		cap  Capability
		want bool
	}{
		{CapAttendanceSelf, true},
		{CapLeaveRequest, true},
		{CapPayrollSelf, true},
		{CapPayrollRun, false},
		{CapLeaveApprove, false},
		{CapEmployeesWrite, false},
		{CapAuditRead, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.cap), func(t *testing.T) {
			ok, err := policy.HasPermission(context.Background(), RoleUser, tc.cap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("user %s: got %v want %v", tc.cap, ok, tc.want)
			}
		})
	}

	if policy.Allows("guest", CapNoticesRead) {
		t.Fatal("unknown role should be denied")
	}
}
