package payroll

const (
	PensionFloor   = 370_000
	PensionCeiling = 5_900_000
)

type Deductions struct {
	NationalPension     int64 `json:"nationalPension"`
	HealthInsurance     int64 `json:"healthInsurance"`
	CareInsurance       int64 `json:"careInsurance"`
	EmploymentInsurance int64 `json:"employmentInsurance"`
	IncomeTax           int64 `json:"incomeTax"`
	LocalTax            int64 `json:"localTax"`
}

func (d Deductions) Total() int64 {
	return d.NationalPension + d.HealthInsurance + d.CareInsurance + d.EmploymentInsurance + d.IncomeTax + d.LocalTax
}

// truncate10 drops the won digit of a non-negative amount.
func truncate10(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v / 10 * 10
}

func percentOf(amount int64, rate float64) int64 {
	return truncate10(int64(float64(amount) * (rate / 100)))
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CalculateDeductions computes the six statutory lines for one month of gross
// pay. nonTaxable is exempt from income tax only; insurance applies to gross.
func CalculateDeductions(gross, nonTaxable int64, rates RateConfig, table TaxTable) Deductions {
	if gross < 0 {
		gross = 0
	}
	if nonTaxable < 0 {
		nonTaxable = 0
	}

	d := Deductions{
		NationalPension:     percentOf(clamp(gross, PensionFloor, PensionCeiling), rates.Pension),
		HealthInsurance:     percentOf(gross, rates.Health),
		EmploymentInsurance: percentOf(gross, rates.Employment),
	}
	d.CareInsurance = percentOf(d.HealthInsurance, rates.Care)
	d.IncomeTax = MonthlyIncomeTax(gross-nonTaxable, table)
	d.LocalTax = truncate10(int64(float64(d.IncomeTax) * table.LocalTaxRate))
	return d
}

// MonthlyIncomeTax annualises taxable pay, applies the standard and personal
// deductions and the progressive brackets, and returns a twelfth of the result.
func MonthlyIncomeTax(taxable int64, table TaxTable) int64 {
	if taxable < 0 {
		taxable = 0
	}
	annual := float64(taxable * 12)
	base := annual - evalTiers(table.StandardDeduction, annual) - float64(table.PersonalDeduction)
	if base < 0 {
		base = 0
	}
	tax := evalTiers(table.Brackets, base)
	return truncate10(int64(tax / 12))
}
