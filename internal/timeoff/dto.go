package timeoff

import (
	"time"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/timeutil"
)

type CreateTimeOffDTO struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
	// Status is accepted in the body but always stripped: requests are born PENDING.
	Status string `json:"status"`
}

func (dto CreateTimeOffDTO) Validate() error {
	if dto.EmployeeID == "" {
		return internal.NewValidationFieldError("employee_id", "employee_id is required", internal.ErrCodeValidationFailed)
	}
	if _, err := ParseType(dto.Type); err != nil {
		return err
	}
	_, _, err := parseDateRange(dto.StartDate, dto.EndDate)
	return err
}

type UpdateTimeOffDTO struct {
	EmployeeID *string `json:"employee_id"`
	Type       *string `json:"type"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Reason     *string `json:"reason"`
	Status     *string `json:"status"`
}

func (dto UpdateTimeOffDTO) Validate() error {
	if dto.Type != nil {
		if _, err := ParseType(*dto.Type); err != nil {
			return err
		}
	}
	if dto.Status != nil {
		if _, err := ParseStatus(*dto.Status); err != nil {
			return err
		}
	}
	if dto.StartDate != nil {
		if _, err := timeutil.ParseDate(*dto.StartDate); err != nil {
			return err
		}
	}
	if dto.EndDate != nil {
		if _, err := timeutil.ParseDate(*dto.EndDate); err != nil {
			return err
		}
	}
	return nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := timeutil.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := timeutil.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, internal.NewValidationError("end_date must not be before start_date", internal.ErrCodeInvalidDateOrder)
	}
	return startDate, endDate, nil
}
