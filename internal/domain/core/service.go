package core

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/auth"
	"hrpay/internal/platform/db"
)

type Service struct {
	DB    *pgxpool.Pool
	store *Store
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{DB: pool, store: NewStore(pool)}
}

// CreateEmployee allocates the next id for the hire year and department and
// creates the matching login account in the same transaction.
func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (Created, error) {
	if in.Role == "" {
		in.Role = auth.RoleUser
	}
	if !auth.ValidRole(in.Role) {
		return Created{}, ErrInvalidRole
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return Created{}, err
	}
	in.HireDate = dateOnly(in.HireDate)

	var created Created
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		st := NewStore(tx)
		dep, pos, err := resolveOrg(ctx, st, in.Department, in.Position)
		if err != nil {
			return err
		}

		prefix := EmployeeIDPrefix(in.HireDate, dep.Code)
		if err := st.LockPrefix(ctx, prefix); err != nil {
			return err
		}
		last, err := st.LastEmployeeID(ctx, prefix)
		if err != nil {
			return err
		}
		employeeID, err := NextEmployeeID(prefix, last)
		if err != nil {
			return err
		}
		if err := st.InsertEmployee(ctx, employeeID, dep.ID, pos.ID, in); err != nil {
			return err
		}
		if _, err := auth.NewStore(tx).CreateUser(ctx, auth.NewUser{
			EmployeeID: employeeID,
			Username:   employeeID,
			Password:   in.Password,
			Role:       in.Role,
		}); err != nil {
			return err
		}
		emp, err := st.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		created = Created{Employee: *emp, Username: employeeID}
		return nil
	})
	return created, err
}

func (s *Service) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	return s.store.GetEmployee(ctx, employeeID)
}

// ListEmployees defaults to active employees; StatusAll lists everyone.
func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	switch filter.Status {
	case "":
		filter.Status = StatusActive
	case StatusAll:
		filter.Status = ""
	}
	return s.store.ListEmployees(ctx, filter)
}

func (s *Service) UpdateEmployee(ctx context.Context, employeeID string, in EmployeeInput) (*Employee, error) {
	if in.Role != "" && !auth.ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}
	in.HireDate = dateOnly(in.HireDate)

	var out *Employee
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		st := NewStore(tx)
		dep, pos, err := resolveOrg(ctx, st, in.Department, in.Position)
		if err != nil {
			return err
		}
		if err := st.UpdateEmployee(ctx, employeeID, dep.ID, pos.ID, in); err != nil {
			return err
		}
		if in.Role != "" {
			if err := auth.NewStore(tx).SetRoleForEmployee(ctx, employeeID, in.Role); err != nil {
				return err
			}
		}
		out, err = st.GetEmployee(ctx, employeeID)
		return err
	})
	return out, err
}

// Depart marks the employee as terminated and demotes their account to a plain user.
func (s *Service) Depart(ctx context.Context, employeeID string) (*Employee, error) {
	return s.changeStatus(ctx, employeeID, StatusTerminated)
}

func (s *Service) Rehire(ctx context.Context, employeeID string) (*Employee, error) {
	return s.changeStatus(ctx, employeeID, StatusActive)
}

func (s *Service) changeStatus(ctx context.Context, employeeID, status string) (*Employee, error) {
	var out *Employee
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		st := NewStore(tx)
		emp, err := st.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp.Status == status {
			if status == StatusTerminated {
				return ErrAlreadyTerminated
			}
			return ErrAlreadyActive
		}
		if err := st.SetStatus(ctx, employeeID, status); err != nil {
			return err
		}
		if status == StatusTerminated {
			if err := auth.NewStore(tx).SetRoleForEmployee(ctx, employeeID, auth.RoleUser); err != nil {
				return err
			}
		}
		out, err = st.GetEmployee(ctx, employeeID)
		return err
	})
	return out, err
}

func (s *Service) DepartmentStats(ctx context.Context) ([]DepartmentStat, error) {
	return s.store.DepartmentStats(ctx)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, name, code string) (string, error) {
	return s.store.CreateDepartment(ctx, strings.TrimSpace(name), strings.TrimSpace(code))
}

func (s *Service) UpdateDepartment(ctx context.Context, departmentID, name, code string) error {
	return s.store.UpdateDepartment(ctx, departmentID, strings.TrimSpace(name), strings.TrimSpace(code))
}

func (s *Service) DeleteDepartment(ctx context.Context, departmentID string) error {
	return s.store.DeleteDepartment(ctx, departmentID)
}

func (s *Service) ListPositions(ctx context.Context) ([]Position, error) {
	return s.store.ListPositions(ctx)
}

func (s *Service) CreatePosition(ctx context.Context, name string) (string, error) {
	return s.store.CreatePosition(ctx, strings.TrimSpace(name))
}

func (s *Service) DeletePosition(ctx context.Context, positionID string) error {
	return s.store.DeletePosition(ctx, positionID)
}

func (s *Service) ListEmailDomains(ctx context.Context) ([]EmailDomain, error) {
	return s.store.ListEmailDomains(ctx)
}

func (s *Service) CreateEmailDomain(ctx context.Context, domain string) (string, error) {
	return s.store.CreateEmailDomain(ctx, strings.TrimSpace(domain))
}

func (s *Service) DeleteEmailDomain(ctx context.Context, id string) error {
	return s.store.DeleteEmailDomain(ctx, id)
}

func resolveOrg(ctx context.Context, st *Store, department, position string) (Department, Position, error) {
	dep, err := st.DepartmentByName(ctx, department)
	if errors.Is(err, ErrDepartmentNotFound) {
		deps, listErr := st.ListDepartments(ctx)
		if listErr != nil {
			return Department{}, Position{}, listErr
		}
		names := make([]string, 0, len(deps))
		for _, d := range deps {
			names = append(names, d.Name)
		}
		return Department{}, Position{}, &LookupError{Field: "department", Value: department, Suggestion: Suggest(department, names), kind: ErrUnknownDepartment}
	}
	if err != nil {
		return Department{}, Position{}, err
	}

	pos, err := st.PositionByName(ctx, position)
	if errors.Is(err, ErrPositionNotFound) {
		positions, listErr := st.ListPositions(ctx)
		if listErr != nil {
			return Department{}, Position{}, listErr
		}
		names := make([]string, 0, len(positions))
		for _, p := range positions {
			names = append(names, p.Name)
		}
		return Department{}, Position{}, &LookupError{Field: "position", Value: position, Suggestion: Suggest(position, names), kind: ErrUnknownPosition}
	}
	if err != nil {
		return Department{}, Position{}, err
	}
	return dep, pos, nil
}
