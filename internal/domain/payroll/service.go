package payroll

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/notifications"
	"hrpay/internal/platform/cache"
	"hrpay/internal/platform/crypto"
	"hrpay/internal/platform/db"
)

type Service struct {
	DB         *pgxpool.Pool
	Crypto     *crypto.Service
	Cache      *cache.Client
	Table      TaxTable
	Overtime   OvertimePolicy
	PaymentDay int
	Inbox      notifications.Notifier
	store      *Store
}

func NewService(pool *pgxpool.Pool, crypt *crypto.Service, c *cache.Client, table TaxTable, overtime OvertimePolicy, paymentDay int) *Service {
	if paymentDay <= 0 {
		paymentDay = DefaultPaymentDay
	}
	return &Service{
		DB:         pool,
		Crypto:     crypt,
		Cache:      c,
		Table:      table,
		Overtime:   overtime,
		PaymentDay: paymentDay,
		store:      NewStore(pool),
	}
}

// Rates returns the statutory rates, reading through the cache. A missing
// row is replaced by the defaults.
func (s *Service) Rates(ctx context.Context) (RateConfig, error) {
	var cached RateConfig
	if ok, err := s.Cache.GetJSON(ctx, ratesCacheKey, &cached); err != nil {
		slog.Warn("rates cache read failed", "err", err)
	} else if ok {
		return cached, nil
	}

	rates, err := s.store.GetRates(ctx)
	if errors.Is(err, ErrNoRateConfig) {
		rates = DefaultRates()
		if err := s.store.UpsertRates(ctx, rates); err != nil {
			return RateConfig{}, err
		}
	} else if err != nil {
		return RateConfig{}, err
	}
	if err := s.Cache.SetJSON(ctx, ratesCacheKey, rates); err != nil {
		slog.Warn("rates cache write failed", "err", err)
	}
	return rates, nil
}

func (s *Service) UpdateRates(ctx context.Context, rates RateConfig) (RateConfig, error) {
	if err := rates.Validate(); err != nil {
		return RateConfig{}, err
	}
	if err := s.store.UpsertRates(ctx, rates); err != nil {
		return RateConfig{}, err
	}
	if err := s.Cache.Del(ctx, ratesCacheKey); err != nil {
		slog.Warn("rates cache invalidation failed", "err", err)
	}
	return rates, nil
}

func (s *Service) SaveContract(ctx context.Context, in ContractInput) (Contract, error) {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	if in.AnnualSalary <= 0 {
		return Contract{}, ErrInvalidAmount
	}
	active, err := s.store.EmployeeActive(ctx, in.EmployeeID)
	if err != nil {
		return Contract{}, err
	}
	if !active {
		return Contract{}, ErrEmployeeNotActive
	}
	var accountEnc []byte
	if account := strings.TrimSpace(in.AccountNumber); account != "" {
		accountEnc, err = s.Crypto.SealString(account)
		if err != nil {
			return Contract{}, err
		}
	}
	if err := s.store.UpsertContract(ctx, in.EmployeeID, in.AnnualSalary, in.AnnualSalary/12, strings.TrimSpace(in.BankName), accountEnc); err != nil {
		return Contract{}, err
	}
	return s.Contract(ctx, in.EmployeeID)
}

// Contracts lists every active employee; account numbers are masked.
func (s *Service) Contracts(ctx context.Context) ([]Contract, error) {
	rows, err := s.store.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Contract, 0, len(rows))
	for _, row := range rows {
		c := row.Contract
		if len(row.AccountEnc) > 0 {
			account, err := s.Crypto.OpenString(row.AccountEnc)
			if err != nil {
				return nil, err
			}
			c.AccountNumber = crypto.MaskAccount(account)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) Contract(ctx context.Context, employeeID string) (Contract, error) {
	row, err := s.store.GetContract(ctx, employeeID)
	if err != nil {
		return Contract{}, err
	}
	c := row.Contract
	if len(row.AccountEnc) > 0 {
		if c.AccountNumber, err = s.Crypto.OpenString(row.AccountEnc); err != nil {
			return Contract{}, err
		}
	}
	return c, nil
}

func (s *Service) Allowances(ctx context.Context, employeeID string) ([]Allowance, error) {
	return s.store.ListAllowances(ctx, employeeID)
}

func (s *Service) FixedDeductions(ctx context.Context, employeeID string) ([]FixedDeduction, error) {
	return s.store.ListFixedDeductions(ctx, employeeID)
}

func (s *Service) AddAllowance(ctx context.Context, a Allowance) (Allowance, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Amount <= 0 {
		return Allowance{}, ErrInvalidAmount
	}
	if err := s.requireActive(ctx, a.EmployeeID); err != nil {
		return Allowance{}, err
	}
	id, err := s.store.AddAllowance(ctx, a)
	if err != nil {
		return Allowance{}, err
	}
	a.ID = id
	return a, nil
}

func (s *Service) AddFixedDeduction(ctx context.Context, d FixedDeduction) (FixedDeduction, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Amount <= 0 {
		return FixedDeduction{}, ErrInvalidAmount
	}
	if err := s.requireActive(ctx, d.EmployeeID); err != nil {
		return FixedDeduction{}, err
	}
	id, err := s.store.AddFixedDeduction(ctx, d)
	if err != nil {
		return FixedDeduction{}, err
	}
	d.ID = id
	return d, nil
}

func (s *Service) DeleteAllowance(ctx context.Context, id string) error {
	return s.store.DeleteAllowance(ctx, id)
}

func (s *Service) DeleteFixedDeduction(ctx context.Context, id string) error {
	return s.store.DeleteFixedDeduction(ctx, id)
}

func (s *Service) requireActive(ctx context.Context, employeeID string) error {
	active, err := s.store.EmployeeActive(ctx, employeeID)
	if err != nil {
		return err
	}
	if !active {
		return ErrEmployeeNotActive
	}
	return nil
}

func validGroupItem(item GroupItem) error {
	if item.Kind != ItemAllowance && item.Kind != ItemDeduction {
		return ErrInvalidTarget
	}
	switch item.Target {
	case TargetAll:
	case TargetDepartment, TargetPosition, TargetIndividual:
		if strings.TrimSpace(item.Value) == "" {
			return ErrInvalidTarget
		}
	default:
		return ErrInvalidTarget
	}
	if item.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// AddGroupItem inserts the item for every employee the target selects and
// returns how many rows were written.
func (s *Service) AddGroupItem(ctx context.Context, item GroupItem) (int, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Value = strings.TrimSpace(item.Value)
	if err := validGroupItem(item); err != nil {
		return 0, err
	}

	count := 0
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		st := NewStore(tx)
		ids, err := st.GroupTargets(ctx, item.Target, item.Value)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if item.Kind == ItemAllowance {
				_, err = st.AddAllowance(ctx, Allowance{EmployeeID: id, Name: item.Name, Amount: item.Amount, IsTaxable: item.IsTaxable})
			} else {
				_, err = st.AddFixedDeduction(ctx, FixedDeduction{EmployeeID: id, Name: item.Name, Amount: item.Amount})
			}
			if err != nil {
				return err
			}
		}
		count = len(ids)
		return nil
	})
	return count, err
}

func (s *Service) Records(ctx context.Context, year, month int) ([]Record, error) {
	if !validPeriod(year, month) {
		return nil, ErrInvalidPeriod
	}
	return s.store.ListRecords(ctx, year, month)
}

func (s *Service) EmployeeRecords(ctx context.Context, employeeID string) ([]Record, error) {
	return s.store.ListEmployeeRecords(ctx, employeeID)
}

// Record returns one payroll record. Non-admin callers only see their own.
func (s *Service) Record(ctx context.Context, user auth.UserContext, id string) (Record, error) {
	rec, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !user.IsAdmin() && rec.EmployeeID != user.EmployeeID {
		return Record{}, ErrPayrollNotFound
	}
	return rec, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id string) (Record, error) {
	rec, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Totals(ctx context.Context, year, month int) (Totals, error) {
	if !validPeriod(year, month) {
		return Totals{}, ErrInvalidPeriod
	}
	return s.store.Totals(ctx, year, month)
}
