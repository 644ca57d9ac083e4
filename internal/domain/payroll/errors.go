package payroll

import "errors"

var (
	ErrNoRateConfig      = errors.New("payroll rate configuration missing")
	ErrInvalidRate       = errors.New("rates must be between 0 and 100")
	ErrInvalidTaxTable   = errors.New("invalid tax table")
	ErrInvalidPeriod     = errors.New("invalid payroll period")
	ErrPayrollNotFound   = errors.New("payroll record not found")
	ErrContractNotFound  = errors.New("salary contract not found")
	ErrItemNotFound      = errors.New("payroll item not found")
	ErrInvalidTarget     = errors.New("invalid group target")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrEmployeeNotActive = errors.New("employee not found or not active")
)
