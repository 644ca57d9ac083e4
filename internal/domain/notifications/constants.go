package notifications

const (
	TypeLeaveSubmitted   = "leave_submitted"
	TypeLeaveApproved    = "leave_approved"
	TypeLeaveRejected    = "leave_rejected"
	TypePayslipPublished = "payslip_published"
)
