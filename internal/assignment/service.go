package assignment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/core/events"
	"github.com/staffgrid/backend/internal/shift"
)

// ShiftReader resolves the target shift of a proposed assignment.
type ShiftReader interface {
	GetByID(id string) (*shift.Shift, error)
}

// EmployeeChecker verifies the target employee exists.
type EmployeeChecker interface {
	Exists(id string) (bool, error)
}

// Publisher is the slice of the event bus this service needs.
type Publisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// employeeLocks serializes admission decisions per employee. The rule chain
// is read-then-decide, so two concurrent proposals for the same employee must
// not interleave between check and commit. The (shift, employee) unique index
// backs this up at the store for the duplicate rule.
type employeeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEmployeeLocks() *employeeLocks {
	return &employeeLocks{locks: make(map[string]*sync.Mutex)}
}

func (el *employeeLocks) lock(employeeID string) func() {
	el.mu.Lock()
	m, ok := el.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		el.locks[employeeID] = m
	}
	el.mu.Unlock()

	m.Lock()
	return m.Unlock
}

type Service struct {
	repo      RepositoryAPI
	shifts    ShiftReader
	employees EmployeeChecker
	evaluator *ConflictEvaluator
	publisher Publisher
	logger    *slog.Logger
	admission *employeeLocks
}

func NewService(repo RepositoryAPI, shifts ShiftReader, employees EmployeeChecker, evaluator *ConflictEvaluator, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		shifts:    shifts,
		employees: employees,
		evaluator: evaluator,
		publisher: publisher,
		logger:    logger,
		admission: newEmployeeLocks(),
	}
}

func (s *Service) List(caller auth.Caller, filter Filter) ([]*ShiftAssignment, error) {
	if err := auth.Authorize(caller, auth.ResourceAssignment, auth.ActionList); err != nil {
		return nil, err
	}

	if caller.Role == auth.RoleEmployee {
		if caller.EmployeeID == nil {
			return []*ShiftAssignment{}, nil
		}
		filter.EmployeeID = *caller.EmployeeID
	}

	return s.repo.Find(filter)
}

func (s *Service) Get(caller auth.Caller, id string) (*ShiftAssignment, error) {
	if err := auth.Authorize(caller, auth.ResourceAssignment, auth.ActionRead); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if caller.Role == auth.RoleEmployee && !caller.OwnsEmployee(a.EmployeeID) {
		return nil, internal.ErrForbidden
	}
	return a, nil
}

// Propose runs the admission chain and commits the assignment if every rule
// passes. First failure wins and carries its own code; the chain never
// reports more than one violation.
func (s *Service) Propose(caller auth.Caller, dto CreateAssignmentDTO) (*ShiftAssignment, error) {
	if err := auth.Authorize(caller, auth.ResourceAssignment, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	unlock := s.admission.lock(dto.EmployeeID)
	defer unlock()

	if _, err := s.admit(dto.ShiftID, dto.EmployeeID, ""); err != nil {
		return nil, err
	}

	a := &ShiftAssignment{
		ShiftID:      dto.ShiftID,
		EmployeeID:   dto.EmployeeID,
		AssignedByID: caller.UserID,
	}
	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create assignment",
			"error", err,
			"shift_id", dto.ShiftID,
			"employee_id", dto.EmployeeID)
		return nil, err
	}

	s.publish(events.NewAssignmentCreatedEvent(a.ID, a.ShiftID, a.EmployeeID, a.AssignedByID))
	s.logger.Info("assignment admitted",
		"assignment_id", a.ID,
		"shift_id", a.ShiftID,
		"employee_id", a.EmployeeID,
		"assigned_by", a.AssignedByID)

	return s.repo.GetByID(a.ID)
}

// Update re-runs the full admission chain against the resulting pair even
// when neither field changed, so a partial edit is always re-validated.
func (s *Service) Update(caller auth.Caller, id string, dto UpdateAssignmentDTO) (*ShiftAssignment, error) {
	if err := auth.Authorize(caller, auth.ResourceAssignment, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.ShiftID != nil {
		a.ShiftID = *dto.ShiftID
	}
	if dto.EmployeeID != nil {
		a.EmployeeID = *dto.EmployeeID
	}
	a.AssignedByID = caller.UserID

	unlock := s.admission.lock(a.EmployeeID)
	defer unlock()

	if _, err := s.admit(a.ShiftID, a.EmployeeID, a.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update assignment", "error", err, "assignment_id", id)
		return nil, err
	}

	return s.repo.GetByID(a.ID)
}

// Remove has no admission rules: unassigning is always structurally valid.
func (s *Service) Remove(caller auth.Caller, id string) error {
	if err := auth.Authorize(caller, auth.ResourceAssignment, auth.ActionDelete); err != nil {
		return err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publish(events.NewAssignmentRemovedEvent(a.ID, a.ShiftID, a.EmployeeID))
	s.logger.Info("assignment removed",
		"assignment_id", a.ID,
		"shift_id", a.ShiftID,
		"employee_id", a.EmployeeID)
	return nil
}

// admit walks the rule chain in its fixed order: shift exists, employee
// exists, no duplicate pairing, no approved time off, no overlapping shift,
// inside declared availability.
func (s *Service) admit(shiftID, employeeID, excludeID string) (*shift.Shift, error) {
	sh, err := s.shifts.GetByID(shiftID)
	if err != nil {
		return nil, err
	}

	ok, err := s.employees.Exists(employeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}

	dup, err := s.repo.ExistsForShiftAndEmployee(shiftID, employeeID, excludeID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, internal.ErrDuplicateAssignment
	}

	conflict, err := s.evaluator.HasTimeOffConflict(employeeID, sh.Date)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, internal.ErrTimeOffConflict
	}

	overlap, err := s.evaluator.HasShiftOverlap(employeeID, sh.Date, sh.StartTime, sh.EndTime, excludeID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, internal.ErrShiftOverlap
	}

	violates, err := s.evaluator.ViolatesAvailability(employeeID, sh.Date, sh.StartTime, sh.EndTime)
	if err != nil {
		return nil, err
	}
	if violates {
		return nil, internal.ErrAvailabilityViolation
	}

	return sh, nil
}

func (s *Service) publish(ev events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSync(context.Background(), ev); err != nil {
		s.logger.Error("failed to publish assignment event", "error", err, "event_type", ev.EventType())
	}
}
