package auth

import "context"

// Capability is a single action a role may perform. Handlers declare the
// capability they need and middleware.Require checks it against the policy.
type Capability string

const (
	CapEmployeesRead   Capability = "employees.read"
	CapEmployeesWrite  Capability = "employees.write"
	CapOrgRead         Capability = "org.read"
	CapOrgWrite        Capability = "org.write"
	CapAttendanceSelf  Capability = "attendance.self"
	CapAttendanceAdmin Capability = "attendance.admin"
	CapLeaveRequest    Capability = "leave.request"
	CapLeaveApprove    Capability = "leave.approve"
	CapNoticesRead     Capability = "notices.read"
	CapNoticesWrite    Capability = "notices.write"
	CapPayrollSelf     Capability = "payroll.self"
	CapPayrollManage   Capability = "payroll.manage"
	CapPayrollRun      Capability = "payroll.run"
	CapAuditRead       Capability = "audit.read"
	CapSystemMetrics   Capability = "system.metrics"
)

var AllCapabilities = []Capability{
	CapEmployeesRead,
	CapEmployeesWrite,
	CapOrgRead,
	CapOrgWrite,
	CapAttendanceSelf,
	CapAttendanceAdmin,
	CapLeaveRequest,
	CapLeaveApprove,
	CapNoticesRead,
	CapNoticesWrite,
	CapPayrollSelf,
	CapPayrollManage,
	CapPayrollRun,
	CapAuditRead,
	CapSystemMetrics,
}

var RolePermissions = map[string][]Capability{
	RoleUser: {
		CapEmployeesRead,
		CapOrgRead,
		CapAttendanceSelf,
		CapLeaveRequest,
		CapNoticesRead,
		CapPayrollSelf,
	},
	RoleAdmin: AllCapabilities,
}

// Policy answers capability checks from the static role table.
type Policy struct {
	grants map[string]map[Capability]struct{}
}

func NewPolicy() *Policy {
	grants := make(map[string]map[Capability]struct{}, len(RolePermissions))
	for role, caps := range RolePermissions {
		set := make(map[Capability]struct{}, len(caps))
		for _, c := range caps {
			set[c] = struct{}{}
		}
		grants[role] = set
	}
	return &Policy{grants: grants}
}

func (p *Policy) Allows(role string, capability Capability) bool {
	set, ok := p.grants[role]
	if !ok {
		return false
	}
	_, ok = set[capability]
	return ok
}

func (p *Policy) HasPermission(ctx context.Context, role string, capability Capability) (bool, error) {
	return p.Allows(role, capability), nil
}
