package availability

import (
	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/timeutil"
)

type CreateAvailabilityDTO struct {
	EmployeeID string `json:"employee_id"`
	Weekday    *int   `json:"weekday"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

func (dto CreateAvailabilityDTO) Validate() error {
	if dto.EmployeeID == "" {
		return internal.NewValidationFieldError("employee_id", "employee_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.Weekday == nil {
		return internal.NewValidationFieldError("weekday", "weekday is required", internal.ErrCodeValidationFailed)
	}
	if *dto.Weekday < 0 || *dto.Weekday > 6 {
		return internal.NewValidationError("weekday must be between 0 (Sunday) and 6 (Saturday)", internal.ErrCodeInvalidWeekday)
	}
	return validateWindow(dto.StartTime, dto.EndTime)
}

type UpdateAvailabilityDTO struct {
	EmployeeID *string `json:"employee_id"`
	Weekday    *int    `json:"weekday"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
}

func (dto UpdateAvailabilityDTO) Validate() error {
	if dto.Weekday != nil && (*dto.Weekday < 0 || *dto.Weekday > 6) {
		return internal.NewValidationError("weekday must be between 0 (Sunday) and 6 (Saturday)", internal.ErrCodeInvalidWeekday)
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

func validateWindow(start, end string) error {
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
