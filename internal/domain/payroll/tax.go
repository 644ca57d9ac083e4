package payroll

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Tier is one band of a piecewise-linear schedule: for amounts up to UpTo
// the value is Base + (amount - Over) * Rate. UpTo of 0 marks the open top band.
type Tier struct {
	UpTo int64   `json:"upTo"`
	Base int64   `json:"base"`
	Over int64   `json:"over"`
	Rate float64 `json:"rate"`
}

type TaxTable struct {
	StandardDeduction []Tier  `json:"standardDeduction"`
	PersonalDeduction int64   `json:"personalDeduction"`
	Brackets          []Tier  `json:"brackets"`
	LocalTaxRate      float64 `json:"localTaxRate"`
}

// DefaultTaxTable is the simplified Korean earned-income withholding estimate.
func DefaultTaxTable() TaxTable {
	return TaxTable{
		StandardDeduction: []Tier{
			{UpTo: 5_000_000, Base: 0, Over: 0, Rate: 0.7},
			{UpTo: 15_000_000, Base: 3_500_000, Over: 5_000_000, Rate: 0.4},
			{UpTo: 45_000_000, Base: 7_500_000, Over: 15_000_000, Rate: 0.15},
			{UpTo: 100_000_000, Base: 12_000_000, Over: 45_000_000, Rate: 0.05},
			{UpTo: 0, Base: 14_750_000, Over: 100_000_000, Rate: 0.02},
		},
		PersonalDeduction: 1_500_000,
		Brackets: []Tier{
			{UpTo: 14_000_000, Base: 0, Over: 0, Rate: 0.06},
			{UpTo: 50_000_000, Base: 840_000, Over: 14_000_000, Rate: 0.15},
			{UpTo: 88_000_000, Base: 6_240_000, Over: 50_000_000, Rate: 0.24},
			{UpTo: 0, Base: 15_360_000, Over: 88_000_000, Rate: 0.35},
		},
		LocalTaxRate: 0.1,
	}
}

func evalTiers(tiers []Tier, amount float64) float64 {
	for _, t := range tiers {
		if t.UpTo == 0 || amount <= float64(t.UpTo) {
			return float64(t.Base) + (amount-float64(t.Over))*t.Rate
		}
	}
	return 0
}

func validTiers(tiers []Tier) bool {
	if len(tiers) == 0 || tiers[len(tiers)-1].UpTo != 0 {
		return false
	}
	var prev int64
	for i, t := range tiers {
		if t.Rate < 0 || t.Base < 0 || t.Over < 0 {
			return false
		}
		if i < len(tiers)-1 && t.UpTo <= prev {
			return false
		}
		prev = t.UpTo
	}
	return true
}

func (t TaxTable) Validate() error {
	if !validTiers(t.StandardDeduction) || !validTiers(t.Brackets) {
		return ErrInvalidTaxTable
	}
	if t.PersonalDeduction < 0 || t.LocalTaxRate < 0 || t.LocalTaxRate > 1 {
		return ErrInvalidTaxTable
	}
	return nil
}

// LoadTaxTable reads a JSON table from path. An empty path yields the default.
func LoadTaxTable(path string) (TaxTable, error) {
	if path == "" {
		return DefaultTaxTable(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return TaxTable{}, fmt.Errorf("read tax table: %w", err)
	}
	var table TaxTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return TaxTable{}, fmt.Errorf("parse tax table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return TaxTable{}, err
	}
	return table, nil
}
