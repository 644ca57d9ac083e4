package payroll

const (
	// DefaultPaymentDay is the day of the month salaries are paid.
	DefaultPaymentDay = 25

	TargetAll        = "all"
	TargetDepartment = "department"
	TargetPosition   = "position"
	TargetIndividual = "individual"

	ItemAllowance = "allowance"
	ItemDeduction = "deduction"

	RegisterSheet = "급여대장"

	ratesCacheKey = "payroll:rates"
)

// ExportHeaders is the column order of the CSV and XLSX registers.
var ExportHeaders = []string{
	"사번", "이름", "부서", "직급", "기본급", "수당", "야근수당", "공제총액", "실수령액", "지급일",
	"국민연금", "건강보험", "장기요양", "고용보험", "소득세", "지방소득세",
}
