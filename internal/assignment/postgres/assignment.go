package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/assignment"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.RepositoryAPI {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Find(filter assignment.Filter) ([]*assignment.ShiftAssignment, error) {
	var rows []*assignment.ShiftAssignment
	q := r.db.Preload("Shift").Order("created_at ASC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ShiftID != "" {
		q = q.Where("shift_id = ?", filter.ShiftID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, internal.NewStoreError("could not list assignments", err)
	}
	return rows, nil
}

func (r *AssignmentRepository) GetByID(id string) (*assignment.ShiftAssignment, error) {
	var a assignment.ShiftAssignment
	if err := r.db.Preload("Shift").Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssignmentNotFound
		}
		return nil, internal.NewStoreError("could not read assignment", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) ExistsForShiftAndEmployee(shiftID, employeeID, excludeID string) (bool, error) {
	var count int64
	q := r.db.Model(&assignment.ShiftAssignment{}).
		Where("shift_id = ? AND employee_id = ?", shiftID, employeeID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, internal.NewStoreError("could not check for duplicate assignment", err)
	}
	return count > 0, nil
}

func (r *AssignmentRepository) FindForEmployeeOnDate(employeeID string, date time.Time, excludeID string) ([]*assignment.ShiftAssignment, error) {
	var rows []*assignment.ShiftAssignment
	q := r.db.Preload("Shift").
		Joins("JOIN shifts ON shifts.id = shift_assignments.shift_id").
		Where("shift_assignments.employee_id = ?", employeeID).
		Where("shifts.date = ?", date)
	if excludeID != "" {
		q = q.Where("shift_assignments.id <> ?", excludeID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, internal.NewStoreError("could not load same-day assignments", err)
	}
	return rows, nil
}

// Create relies on the (shift_id, employee_id) unique index as the hard
// guarantee behind the advisory duplicate pre-check.
func (r *AssignmentRepository) Create(a *assignment.ShiftAssignment) error {
	if err := r.db.Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrDuplicateAssignment
		}
		return internal.NewStoreError("could not create assignment", err)
	}
	return nil
}

func (r *AssignmentRepository) Update(a *assignment.ShiftAssignment) error {
	if err := r.db.Omit("Shift").Save(a).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrDuplicateAssignment
		}
		return internal.NewStoreError("could not update assignment", err)
	}
	return nil
}

func (r *AssignmentRepository) Delete(id string) error {
	if err := r.db.Delete(&assignment.ShiftAssignment{}, "id = ?", id).Error; err != nil {
		return internal.NewStoreError("could not delete assignment", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
