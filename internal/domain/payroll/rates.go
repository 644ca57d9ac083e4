package payroll

// RateConfig holds the social insurance rates in percent. Care applies to the
// health insurance amount, the others to gross pay.
type RateConfig struct {
	Pension    float64 `json:"pension"`
	Health     float64 `json:"health"`
	Care       float64 `json:"care"`
	Employment float64 `json:"employment"`
}

func DefaultRates() RateConfig {
	return RateConfig{
		Pension:    4.5,
		Health:     3.545,
		Care:       12.95,
		Employment: 0.9,
	}
}

func (r RateConfig) Validate() error {
	for _, v := range []float64{r.Pension, r.Health, r.Care, r.Employment} {
		if v < 0 || v > 100 {
			return ErrInvalidRate
		}
	}
	return nil
}
