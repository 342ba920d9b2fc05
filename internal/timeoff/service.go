package timeoff

import (
	"context"
	"log/slog"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/core/events"
	"github.com/staffgrid/backend/internal/timeutil"
)

// Publisher is the slice of the event bus this service needs.
type Publisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	publisher Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) List(caller auth.Caller, filter Filter) ([]*TimeOff, error) {
	if err := auth.Authorize(caller, auth.ResourceTimeOff, auth.ActionList); err != nil {
		return nil, err
	}

	if caller.Role == auth.RoleEmployee {
		if caller.EmployeeID == nil {
			return []*TimeOff{}, nil
		}
		filter.EmployeeID = *caller.EmployeeID
	}

	return s.repo.Find(filter)
}

func (s *Service) Get(caller auth.Caller, id string) (*TimeOff, error) {
	if err := auth.Authorize(caller, auth.ResourceTimeOff, auth.ActionRead); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if caller.Role == auth.RoleEmployee && !caller.OwnsEmployee(t.EmployeeID) {
		return nil, internal.ErrForbidden
	}
	return t, nil
}

// Create strips any caller-supplied status: every request starts PENDING.
func (s *Service) Create(caller auth.Caller, dto CreateTimeOffDTO) (*TimeOff, error) {
	if err := auth.Authorize(caller, auth.ResourceTimeOff, auth.ActionCreate); err != nil {
		return nil, err
	}

	if caller.Role == auth.RoleEmployee {
		if caller.EmployeeID == nil {
			return nil, internal.NewForbiddenError("no employee profile")
		}
		dto.EmployeeID = *caller.EmployeeID
	}
	dto.Status = ""

	if err := dto.Validate(); err != nil {
		return nil, err
	}
	startDate, endDate, err := parseDateRange(dto.StartDate, dto.EndDate)
	if err != nil {
		return nil, err
	}

	t := &TimeOff{
		EmployeeID: dto.EmployeeID,
		Type:       dto.Type,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     StatusPending,
		Reason:     dto.Reason,
	}
	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create time-off request", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("time-off request created",
		"timeoff_id", t.ID,
		"employee_id", t.EmployeeID,
		"type", t.Type)
	return t, nil
}

// Update is only defined while the request is PENDING: that is the single
// pre-terminal state, so terminal records reject every edit. Employees may
// touch the substantive fields of their own request only; status and
// employee are stripped from their payload, never rejected.
func (s *Service) Update(caller auth.Caller, id string, dto UpdateTimeOffDTO) (*TimeOff, error) {
	if err := auth.Authorize(caller, auth.ResourceTimeOff, auth.ActionUpdate); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if caller.Role == auth.RoleEmployee {
		if !caller.OwnsEmployee(t.EmployeeID) {
			return nil, internal.ErrForbidden
		}
		dto.Status = nil
		dto.EmployeeID = nil
	}

	if t.IsTerminal() {
		return nil, internal.ErrNotDeletable
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	previousStatus := t.Status
	if dto.EmployeeID != nil {
		t.EmployeeID = *dto.EmployeeID
	}
	if dto.Type != nil {
		t.Type = *dto.Type
	}
	if dto.StartDate != nil {
		d, err := timeutil.ParseDate(*dto.StartDate)
		if err != nil {
			return nil, err
		}
		t.StartDate = d
	}
	if dto.EndDate != nil {
		d, err := timeutil.ParseDate(*dto.EndDate)
		if err != nil {
			return nil, err
		}
		t.EndDate = d
	}
	if dto.Reason != nil {
		t.Reason = *dto.Reason
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}

	if t.EndDate.Before(t.StartDate) {
		return nil, internal.NewValidationError("end_date must not be before start_date", internal.ErrCodeInvalidDateOrder)
	}

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update time-off request", "error", err, "timeoff_id", id)
		return nil, err
	}

	if t.Status != previousStatus {
		s.publishStatusChange(t, caller.UserID)
	}
	return t, nil
}

// Approve and Decline are the two transitions out of PENDING. Employees
// cannot drive them even for their own requests.
func (s *Service) Approve(caller auth.Caller, id string) (*TimeOff, error) {
	return s.setStatus(caller, id, StatusApproved)
}

func (s *Service) Decline(caller auth.Caller, id string) (*TimeOff, error) {
	return s.setStatus(caller, id, StatusDeclined)
}

func (s *Service) setStatus(caller auth.Caller, id, status string) (*TimeOff, error) {
	if err := auth.Authorize(caller, auth.ResourceTimeOff, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if caller.Role == auth.RoleEmployee {
		return nil, internal.ErrForbidden
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t.IsTerminal() {
		return nil, internal.ErrNotDeletable
	}

	t.Status = status
	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update time-off status", "error", err, "timeoff_id", id)
		return nil, err
	}

	s.publishStatusChange(t, caller.UserID)
	return t, nil
}

func (s *Service) Delete(caller auth.Caller, id string) error {
	if err := auth.Authorize(caller, auth.ResourceTimeOff, auth.ActionDelete); err != nil {
		return err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if caller.Role == auth.RoleEmployee && !caller.OwnsEmployee(t.EmployeeID) {
		return internal.ErrForbidden
	}
	if t.Status != StatusPending {
		return internal.ErrNotDeletable
	}

	return s.repo.Delete(id)
}

func (s *Service) publishStatusChange(t *TimeOff, changedByID string) {
	if s.publisher == nil {
		return
	}
	ev := events.NewTimeOffStatusChangedEvent(t.ID, t.EmployeeID, t.Status, changedByID)
	if err := s.publisher.PublishSync(context.Background(), ev); err != nil {
		s.logger.Error("failed to publish time-off status change", "error", err, "timeoff_id", t.ID)
	}

	s.logger.Info("time-off status changed",
		"timeoff_id", t.ID,
		"employee_id", t.EmployeeID,
		"status", t.Status,
		"changed_by", changedByID)
}
