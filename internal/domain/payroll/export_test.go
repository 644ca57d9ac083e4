package payroll

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleRecords() []Record {
	in := baseInput()
	rec := Assemble(in)
	rec.Name = "김민수"
	rec.Department = "인사팀"
	rec.Position = "대리"
	return []Record{rec}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	raw := buf.Bytes()
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("csv must start with a UTF-8 BOM")
	}
	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "사번,이름,부서,직급,기본급,수당,야근수당,공제총액,실수령액,지급일,국민연금,건강보험,장기요양,고용보험,소득세,지방소득세" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	row := rows[1]
	if row[0] != "25HR0001" || row[1] != "김민수" || row[4] != "3000000" || row[8] != "2505450" || row[9] != "2025-03-25" {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(RegisterSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "사번" || rows[1][0] != "25HR0001" || rows[1][8] != "2505450" {
		t.Fatalf("unexpected sheet contents %v", rows)
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename(2025, 3, "csv"); got != "payroll_2025_3.csv" {
		t.Fatalf("unexpected filename %s", got)
	}
}

func TestWritePayslip(t *testing.T) {
	rec := sampleRecords()[0]
	rec.CreatedAt = time.Now()
	var buf bytes.Buffer
	if err := WritePayslip(&buf, rec); err != nil {
		t.Fatalf("WritePayslip: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("payslip is not a PDF")
	}
}

func TestWonFormatting(t *testing.T) {
	tests := map[int64]string{0: "0 KRW", 999: "999 KRW", 1000: "1,000 KRW", 2505450: "2,505,450 KRW", -12000: "-12,000 KRW"}
	for in, want := range tests {
		if got := won(in); got != want {
			t.Fatalf("won(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestLatinTransliteration(t *testing.T) {
	got := latin("김민수")
	if got == "" || strings.ContainsFunc(got, func(r rune) bool { return r > 127 }) {
		t.Fatalf("expected ascii transliteration, got %q", got)
	}
}
