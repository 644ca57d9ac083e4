package payroll

import "testing"

func TestCalculateDeductionsKnownValues(t *testing.T) {
	tests := []struct {
		name       string
		gross      int64
		nonTaxable int64
		want       Deductions
		total      int64
	}{
		{"typical salary", 3_000_000, 0, Deductions{135000, 106350, 13770, 27000, 193120, 19310}, 494550},
		{"non-taxable allowance", 3_000_000, 200_000, Deductions{135000, 106350, 13770, 27000, 167620, 16760}, 466500},
		{"below pension floor", 250_000, 0, Deductions{16650, 8860, 1140, 2250, 0, 0}, 28900},
		{"above pension ceiling", 8_000_000, 0, Deductions{265500, 283600, 36720, 72000, 1119000, 111900}, 1888720},
		{"high earner", 12_000_000, 300_000, Deductions{265500, 425400, 55080, 108000, 2310800, 231080}, 3395860},
		{"zero gross", 0, 0, Deductions{NationalPension: 16650}, 16650},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateDeductions(tc.gross, tc.nonTaxable, DefaultRates(), DefaultTaxTable())
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if got.Total() != tc.total {
				t.Fatalf("expected total %d, got %d", tc.total, got.Total())
			}
		})
	}
}

func TestDeductionLinesAreMultiplesOfTen(t *testing.T) {
	rateSets := []RateConfig{
		DefaultRates(),
		{Pension: 4.75, Health: 3.595, Care: 13.14, Employment: 0.95},
		{Pension: 0, Health: 0, Care: 0, Employment: 0},
		{Pension: 100, Health: 100, Care: 100, Employment: 100},
	}
	for _, rates := range rateSets {
		for gross := int64(0); gross <= 20_000_000; gross += 123_457 {
			d := CalculateDeductions(gross, gross/10, rates, DefaultTaxTable())
			for _, line := range []int64{d.NationalPension, d.HealthInsurance, d.CareInsurance, d.EmploymentInsurance, d.IncomeTax, d.LocalTax} {
				if line < 0 || line%10 != 0 {
					t.Fatalf("gross %d rates %+v: line %d not a non-negative multiple of 10", gross, rates, line)
				}
			}
		}
	}
}

func TestPensionBaseIsClamped(t *testing.T) {
	rates := DefaultRates()
	low := CalculateDeductions(100_000, 0, rates, DefaultTaxTable())
	floor := CalculateDeductions(PensionFloor, 0, rates, DefaultTaxTable())
	if low.NationalPension != floor.NationalPension {
		t.Fatalf("pension below floor should match floor: %d vs %d", low.NationalPension, floor.NationalPension)
	}
	high := CalculateDeductions(50_000_000, 0, rates, DefaultTaxTable())
	ceiling := CalculateDeductions(PensionCeiling, 0, rates, DefaultTaxTable())
	if high.NationalPension != ceiling.NationalPension {
		t.Fatalf("pension above ceiling should match ceiling: %d vs %d", high.NationalPension, ceiling.NationalPension)
	}
}

func TestNegativeGrossTreatedAsZero(t *testing.T) {
	got := CalculateDeductions(-500_000, 0, DefaultRates(), DefaultTaxTable())
	want := CalculateDeductions(0, 0, DefaultRates(), DefaultTaxTable())
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestNonTaxableAboveGross(t *testing.T) {
	d := CalculateDeductions(1_000_000, 2_000_000, DefaultRates(), DefaultTaxTable())
	if d.IncomeTax != 0 || d.LocalTax != 0 {
		t.Fatalf("expected no income tax, got %+v", d)
	}
}

func TestRateValidate(t *testing.T) {
	if err := DefaultRates().Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	for _, r := range []RateConfig{{Pension: -1}, {Health: 100.5}, {Care: 101}, {Employment: -0.1}} {
		if err := r.Validate(); err != ErrInvalidRate {
			t.Fatalf("expected ErrInvalidRate for %+v, got %v", r, err)
		}
	}
}
