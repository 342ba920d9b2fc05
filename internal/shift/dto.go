package shift

import (
	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/timeutil"
)

type CreateShiftDTO struct {
	DepartmentID string `json:"department_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Notes        string `json:"notes"`
}

func (dto CreateShiftDTO) Validate() error {
	if dto.DepartmentID == "" {
		return internal.NewValidationFieldError("department_id", "department_id is required", internal.ErrCodeValidationFailed)
	}
	if _, err := timeutil.ParseDate(dto.Date); err != nil {
		return err
	}
	return AssertTimeOrder(dto.StartTime, dto.EndTime)
}

type UpdateShiftDTO struct {
	DepartmentID *string `json:"department_id"`
	Date         *string `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Notes        *string `json:"notes"`
}

func (dto UpdateShiftDTO) Validate() error {
	if dto.Date != nil {
		if _, err := timeutil.ParseDate(*dto.Date); err != nil {
			return err
		}
	}
	if dto.StartTime != nil {
		if _, err := timeutil.ToMinutes(*dto.StartTime); err != nil {
			return err
		}
	}
	if dto.EndTime != nil {
		if _, err := timeutil.ToMinutes(*dto.EndTime); err != nil {
			return err
		}
	}
	return nil
}

// AssertTimeOrder rejects windows that do not strictly move forward.
func AssertTimeOrder(start, end string) error {
	startMin, err := timeutil.ToMinutes(start)
	if err != nil {
		return err
	}
	endMin, err := timeutil.ToMinutes(end)
	if err != nil {
		return err
	}
	if endMin <= startMin {
		return internal.NewValidationError("end_time must be after start_time", internal.ErrCodeInvalidTimeOrder)
	}
	return nil
}
