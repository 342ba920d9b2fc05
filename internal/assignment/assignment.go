package assignment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal/shift"
)

// ShiftAssignment links exactly one employee to one shift. The store enforces
// at most one row per (shift_id, employee_id) pair.
type ShiftAssignment struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	ShiftID      string       `json:"shift_id" gorm:"not null;uniqueIndex:idx_assignment_shift_employee"`
	EmployeeID   string       `json:"employee_id" gorm:"not null;uniqueIndex:idx_assignment_shift_employee;index"`
	AssignedByID string       `json:"assigned_by_id" gorm:"not null"`
	Shift        *shift.Shift `json:"shift,omitempty" gorm:"foreignKey:ShiftID"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}

func (a *ShiftAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Filter struct {
	EmployeeID string
	ShiftID    string
}

type RepositoryAPI interface {
	Find(filter Filter) ([]*ShiftAssignment, error)
	GetByID(id string) (*ShiftAssignment, error)
	// ExistsForShiftAndEmployee reports a live (shift, employee) pairing,
	// optionally ignoring one assignment id for update-in-place.
	ExistsForShiftAndEmployee(shiftID, employeeID, excludeID string) (bool, error)
	// FindForEmployeeOnDate returns the employee's assignments whose shift
	// falls on the given calendar date, shift preloaded.
	FindForEmployeeOnDate(employeeID string, date time.Time, excludeID string) ([]*ShiftAssignment, error)
	Create(a *ShiftAssignment) error
	Update(a *ShiftAssignment) error
	Delete(id string) error
}
