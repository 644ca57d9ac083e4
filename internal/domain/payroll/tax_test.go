package payroll

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTaxTableValid(t *testing.T) {
	if err := DefaultTaxTable().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestTaxTableValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TaxTable)
	}{
		{"no brackets", func(tt *TaxTable) { tt.Brackets = nil }},
		{"closed top band", func(tt *TaxTable) { tt.Brackets[len(tt.Brackets)-1].UpTo = 1 }},
		{"unordered bands", func(tt *TaxTable) { tt.StandardDeduction[1].UpTo = 1 }},
		{"negative rate", func(tt *TaxTable) { tt.Brackets[0].Rate = -0.1 }},
		{"negative personal deduction", func(tt *TaxTable) { tt.PersonalDeduction = -1 }},
		{"local rate above one", func(tt *TaxTable) { tt.LocalTaxRate = 1.5 }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			table := DefaultTaxTable()
			tc.mutate(&table)
			if err := table.Validate(); !errors.Is(err, ErrInvalidTaxTable) {
				t.Fatalf("expected ErrInvalidTaxTable, got %v", err)
			}
		})
	}
}

func TestLoadTaxTable(t *testing.T) {
	table, err := LoadTaxTable("")
	if err != nil {
		t.Fatalf("empty path: %v", err)
	}
	if table.PersonalDeduction != 1_500_000 {
		t.Fatalf("expected default table, got %+v", table)
	}

	dir := t.TempDir()
	flat := filepath.Join(dir, "flat.json")
	if err := os.WriteFile(flat, []byte(`{
		"standardDeduction": [{"upTo": 0, "base": 0, "over": 0, "rate": 0}],
		"personalDeduction": 0,
		"brackets": [{"upTo": 0, "base": 0, "over": 0, "rate": 0.1}],
		"localTaxRate": 0.1
	}`), 0o600); err != nil {
		t.Fatalf("write table: %v", err)
	}
	table, err = LoadTaxTable(flat)
	if err != nil {
		t.Fatalf("load flat table: %v", err)
	}
	if got := MonthlyIncomeTax(1_000_000, table); got != 100_000 {
		t.Fatalf("expected 10%% flat tax, got %d", got)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"brackets": []}`), 0o600); err != nil {
		t.Fatalf("write table: %v", err)
	}
	if _, err := LoadTaxTable(bad); !errors.Is(err, ErrInvalidTaxTable) {
		t.Fatalf("expected ErrInvalidTaxTable, got %v", err)
	}
	if _, err := LoadTaxTable(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
