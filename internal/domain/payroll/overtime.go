package payroll

import (
	"math"

	"hrpay/internal/domain/attendance"
)

type OvertimePolicy struct {
	Threshold    string  `json:"threshold"`
	MonthlyHours float64 `json:"monthlyHours"`
	Multiplier   float64 `json:"multiplier"`
}

func DefaultOvertimePolicy() OvertimePolicy {
	return OvertimePolicy{Threshold: "18:00:00", MonthlyHours: 209, Multiplier: 1.5}
}

type Overtime struct {
	Pay   int64   `json:"pay"`
	Hours float64 `json:"hours"`
}

// CalculateOvertime sums the time past the threshold over all clock-outs and
// pays it at the hourly rate times the multiplier. Unparseable values are skipped.
func CalculateOvertime(clockOuts []string, basePay int64, policy OvertimePolicy) Overtime {
	threshold, ok := attendance.ParseClock(policy.Threshold)
	if !ok {
		threshold, _ = attendance.ParseClock(DefaultOvertimePolicy().Threshold)
	}
	monthlyHours := policy.MonthlyHours
	if monthlyHours <= 0 {
		monthlyHours = DefaultOvertimePolicy().MonthlyHours
	}
	multiplier := policy.Multiplier
	if multiplier <= 0 {
		multiplier = DefaultOvertimePolicy().Multiplier
	}

	seconds := 0
	for _, raw := range clockOuts {
		out, ok := attendance.ParseClock(raw)
		if !ok {
			continue
		}
		if out > threshold {
			seconds += out - threshold
		}
	}
	hours := float64(seconds) / 3600
	hourly := float64(basePay) / monthlyHours
	return Overtime{
		Pay:   int64(hourly * multiplier * hours),
		Hours: math.Round(hours*10) / 10,
	}
}
