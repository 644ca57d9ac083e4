package payroll

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/jung-kurt/gofpdf"
)

// latin transliterates text for the PDF core fonts, which cannot draw Hangul.
func latin(s string) string {
	return strings.TrimSpace(unidecode.Unidecode(s))
}

func won(v int64) string {
	raw := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	var b strings.Builder
	for i, c := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String() + " KRW"
	}
	return b.String() + " KRW"
}

func WritePayslip(w io.Writer, r Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Payslip %d-%02d", r.Year, r.Month))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", latin(r.Name), r.EmployeeID))
	pdf.Ln(6)
	if r.Department != "" || r.Position != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Department: %s / %s", latin(r.Department), latin(r.Position)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, "Payment date: "+r.PaymentDate.Format("2006-01-02"))
	pdf.Ln(10)

	lines := []struct {
		label  string
		amount int64
	}{
		{"Base pay", r.BasePay},
		{"Allowances", r.AllowanceTotal},
		{"Overtime pay", r.OvertimePay},
		{"Total income", r.TotalIncome()},
		{"National pension", r.NationalPension},
		{"Health insurance", r.HealthInsurance},
		{"Long-term care", r.CareInsurance},
		{"Employment insurance", r.EmploymentInsurance},
		{"Income tax", r.IncomeTax},
		{"Local income tax", r.LocalTax},
		{"Other deductions", r.FixedDeductionTotal},
		{"Total deductions", r.TotalDeduction},
	}
	for _, line := range lines {
		pdf.CellFormat(80, 7, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, won(line.amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, won(r.NetPay), "T", 1, "R", false, 0, "")
	if r.OvertimeHours > 0 || r.UnpaidLeaveDays > 0 {
		pdf.SetFont("Helvetica", "", 9)
		pdf.Ln(4)
		pdf.Cell(0, 6, fmt.Sprintf("Overtime %.1f h, unpaid leave %.1f d, attendance factor %.3f", r.OvertimeHours, r.UnpaidLeaveDays, r.AttendanceFactor))
	}
	return pdf.Output(w)
}
