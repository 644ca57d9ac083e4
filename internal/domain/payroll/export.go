package payroll

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func ExportFilename(year, month int, ext string) string {
	return fmt.Sprintf("payroll_%d_%d.%s", year, month, ext)
}

func exportRow(r Record) []any {
	return []any{
		r.EmployeeID, r.Name, r.Department, r.Position,
		r.BasePay, r.AllowanceTotal, r.OvertimePay, r.TotalDeduction, r.NetPay,
		r.PaymentDate.Format("2006-01-02"),
		r.NationalPension, r.HealthInsurance, r.CareInsurance, r.EmploymentInsurance, r.IncomeTax, r.LocalTax,
	}
}

// WriteCSV writes the register with a UTF-8 BOM so spreadsheet tools detect the encoding.
func WriteCSV(w io.Writer, records []Record) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return err
	}
	for _, r := range records {
		row := exportRow(r)
		line := make([]string, len(row))
		for i, v := range row {
			switch val := v.(type) {
			case int64:
				line[i] = strconv.FormatInt(val, 10)
			default:
				line[i] = fmt.Sprint(val)
			}
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RegisterSheet); err != nil {
		return err
	}
	header := make([]any, len(ExportHeaders))
	for i, h := range ExportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(RegisterSheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRow(r)
		if err := f.SetSheetRow(RegisterSheet, cell, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
