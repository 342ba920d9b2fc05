package availability

import (
	"log/slog"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List applies the self-scope: an EMPLOYEE caller's filter is overwritten
// with their own employee id. A caller with no employee profile owns
// nothing, so they get an empty list rather than an error.
func (s *Service) List(caller auth.Caller, filter Filter) ([]*Availability, error) {
	if err := auth.Authorize(caller, auth.ResourceAvailability, auth.ActionList); err != nil {
		return nil, err
	}

	if caller.Role == auth.RoleEmployee {
		if caller.EmployeeID == nil {
			return []*Availability{}, nil
		}
		filter.EmployeeID = *caller.EmployeeID
	}

	return s.repo.Find(filter)
}

func (s *Service) Get(caller auth.Caller, id string) (*Availability, error) {
	if err := auth.Authorize(caller, auth.ResourceAvailability, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Create forces the employee field to the caller's own profile for EMPLOYEE
// callers: the body field is a field they may not influence, so it is
// silently overwritten rather than rejected.
func (s *Service) Create(caller auth.Caller, dto CreateAvailabilityDTO) (*Availability, error) {
	if err := auth.Authorize(caller, auth.ResourceAvailability, auth.ActionCreate); err != nil {
		return nil, err
	}

	if caller.Role == auth.RoleEmployee {
		if caller.EmployeeID == nil {
			return nil, internal.NewForbiddenError("no employee profile")
		}
		dto.EmployeeID = *caller.EmployeeID
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := &Availability{
		EmployeeID: dto.EmployeeID,
		Weekday:    *dto.Weekday,
		StartTime:  dto.StartTime,
		EndTime:    dto.EndTime,
	}
	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create availability", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("availability created",
		"availability_id", a.ID,
		"employee_id", a.EmployeeID,
		"weekday", a.Weekday)
	return a, nil
}

func (s *Service) Update(caller auth.Caller, id string, dto UpdateAvailabilityDTO) (*Availability, error) {
	if err := auth.Authorize(caller, auth.ResourceAvailability, auth.ActionUpdate); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if caller.Role == auth.RoleEmployee {
		if !caller.OwnsEmployee(a.EmployeeID) {
			return nil, internal.ErrForbidden
		}
		// employees cannot move a window to another employee
		dto.EmployeeID = nil
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.EmployeeID != nil {
		a.EmployeeID = *dto.EmployeeID
	}
	if dto.Weekday != nil {
		a.Weekday = *dto.Weekday
	}
	if dto.StartTime != nil {
		a.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		a.EndTime = *dto.EndTime
	}

	// the resulting window must still be ordered
	if err := validateWindow(a.StartTime, a.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update availability", "error", err, "availability_id", id)
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(caller auth.Caller, id string) error {
	if err := auth.Authorize(caller, auth.ResourceAvailability, auth.ActionDelete); err != nil {
		return err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if caller.Role == auth.RoleEmployee && !caller.OwnsEmployee(a.EmployeeID) {
		return internal.ErrForbidden
	}

	return s.repo.Delete(id)
}
