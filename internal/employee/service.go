package employee

import (
	"log/slog"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
)

var (
	errUserNotFound       = internal.NewNotFoundError("user not found")
	errDepartmentNotFound = internal.NewNotFoundError("department not found")
)

// DepartmentChecker verifies the department reference on create/update.
type DepartmentChecker interface {
	Exists(departmentID string) (bool, error)
}

// UserChecker verifies the linked user account exists.
type UserChecker interface {
	Exists(userID string) (bool, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentChecker
	users       UserChecker
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentChecker, users UserChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		users:       users,
		logger:      logger,
	}
}

func (s *Service) List(caller auth.Caller, departmentID string) ([]*Employee, error) {
	if err := auth.Authorize(caller, auth.ResourceEmployee, auth.ActionList); err != nil {
		return nil, err
	}
	return s.repo.GetAll(departmentID)
}

func (s *Service) Get(caller auth.Caller, id string) (*Employee, error) {
	// Employees may read their own profile; anything else is admin-only.
	if !caller.OwnsEmployee(id) {
		if err := auth.Authorize(caller, auth.ResourceEmployee, auth.ActionRead); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(caller auth.Caller, dto CreateEmployeeDTO) (*Employee, error) {
	if err := auth.Authorize(caller, auth.ResourceEmployee, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(dto.UserID, dto.DepartmentID); err != nil {
		return nil, err
	}

	e := &Employee{
		UserID:        dto.UserID,
		DepartmentID:  dto.DepartmentID,
		Position:      dto.Position,
		ContractHours: dto.ContractHours,
	}
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create employee", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", e.ID, "user_id", e.UserID)
	return e, nil
}

func (s *Service) Update(caller auth.Caller, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := auth.Authorize(caller, auth.ResourceEmployee, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.DepartmentID != nil {
		if err := s.checkReferences("", *dto.DepartmentID); err != nil {
			return nil, err
		}
		e.DepartmentID = *dto.DepartmentID
	}
	if dto.Position != nil {
		e.Position = *dto.Position
	}
	if dto.ContractHours != nil {
		e.ContractHours = dto.ContractHours
	}

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(caller auth.Caller, id string) error {
	if err := auth.Authorize(caller, auth.ResourceEmployee, auth.ActionDelete); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) checkReferences(userID, departmentID string) error {
	if userID != "" {
		ok, err := s.users.Exists(userID)
		if err != nil {
			return err
		}
		if !ok {
			return errUserNotFound
		}
	}
	if departmentID != "" {
		ok, err := s.departments.Exists(departmentID)
		if err != nil {
			return err
		}
		if !ok {
			return errDepartmentNotFound
		}
	}
	return nil
}
