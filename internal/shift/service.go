package shift

import (
	"log/slog"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/timeutil"
)

// DepartmentChecker verifies that a referenced department exists.
type DepartmentChecker interface {
	Exists(id string) (bool, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentChecker
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		logger:      logger,
	}
}

func (s *Service) List(caller auth.Caller, filter Filter) ([]*Shift, error) {
	if err := auth.Authorize(caller, auth.ResourceShift, auth.ActionList); err != nil {
		return nil, err
	}
	return s.repo.Find(filter)
}

func (s *Service) Get(caller auth.Caller, id string) (*Shift, error) {
	if err := auth.Authorize(caller, auth.ResourceShift, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(caller auth.Caller, dto CreateShiftDTO) (*Shift, error) {
	if err := auth.Authorize(caller, auth.ResourceShift, auth.ActionCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(dto.DepartmentID); err != nil {
		return nil, err
	}

	date, err := timeutil.ParseDate(dto.Date)
	if err != nil {
		return nil, err
	}

	sh := &Shift{
		DepartmentID: dto.DepartmentID,
		Date:         date,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		Notes:        dto.Notes,
	}
	if err := s.repo.Create(sh); err != nil {
		s.logger.Error("failed to create shift", "error", err, "department_id", dto.DepartmentID)
		return nil, err
	}

	s.logger.Info("shift created",
		"shift_id", sh.ID,
		"department_id", sh.DepartmentID,
		"date", sh.Date.Format("2006-01-02"))
	return sh, nil
}

func (s *Service) Update(caller auth.Caller, id string, dto UpdateShiftDTO) (*Shift, error) {
	if err := auth.Authorize(caller, auth.ResourceShift, auth.ActionUpdate); err != nil {
		return nil, err
	}

	sh, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.DepartmentID != nil {
		if err := s.checkDepartment(*dto.DepartmentID); err != nil {
			return nil, err
		}
		sh.DepartmentID = *dto.DepartmentID
	}
	if dto.Date != nil {
		d, err := timeutil.ParseDate(*dto.Date)
		if err != nil {
			return nil, err
		}
		sh.Date = d
	}
	if dto.StartTime != nil {
		sh.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		sh.EndTime = *dto.EndTime
	}
	if dto.Notes != nil {
		sh.Notes = *dto.Notes
	}

	if dto.StartTime != nil || dto.EndTime != nil {
		if err := AssertTimeOrder(sh.StartTime, sh.EndTime); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(sh); err != nil {
		s.logger.Error("failed to update shift", "error", err, "shift_id", id)
		return nil, err
	}
	return sh, nil
}

func (s *Service) Delete(caller auth.Caller, id string) error {
	if err := auth.Authorize(caller, auth.ResourceShift, auth.ActionDelete); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) checkDepartment(id string) error {
	exists, err := s.departments.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return internal.NewNotFoundError("department not found")
	}
	return nil
}
