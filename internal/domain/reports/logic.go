package reports

// EmployeeDashboard is the summary shown to every signed-in user.
func EmployeeDashboard(todayStatus string, pendingLeave, payslipCount int) map[string]any {
	return map[string]any{
		"todayStatus":  todayStatus,
		"pendingLeave": pendingLeave,
		"payslipCount": payslipCount,
	}
}

// AdminDashboard adds company-wide counters for administrators.
func AdminDashboard(activeEmployees, clockedInToday, leavePending int, latest *PayrollSnapshot) map[string]any {
	payload := map[string]any{
		"activeEmployees": activeEmployees,
		"clockedInToday":  clockedInToday,
		"leavePending":    leavePending,
		"latestPayroll":   nil,
	}
	if latest != nil {
		payload["latestPayroll"] = latest
	}
	return payload
}
