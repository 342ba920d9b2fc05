package assignment

import (
	"github.com/staffgrid/backend/internal"
)

type CreateAssignmentDTO struct {
	ShiftID    string `json:"shift_id"`
	EmployeeID string `json:"employee_id"`
}

func (dto CreateAssignmentDTO) Validate() error {
	if dto.ShiftID == "" {
		return internal.NewValidationFieldError("shift_id", "shift_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.EmployeeID == "" {
		return internal.NewValidationFieldError("employee_id", "employee_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateAssignmentDTO struct {
	ShiftID    *string `json:"shift_id"`
	EmployeeID *string `json:"employee_id"`
}

func (dto UpdateAssignmentDTO) Validate() error {
	if dto.ShiftID != nil && *dto.ShiftID == "" {
		return internal.NewValidationFieldError("shift_id", "shift_id must not be empty", internal.ErrCodeValidationFailed)
	}
	if dto.EmployeeID != nil && *dto.EmployeeID == "" {
		return internal.NewValidationFieldError("employee_id", "employee_id must not be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
