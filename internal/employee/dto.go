package employee

import "github.com/staffgrid/backend/internal"

type CreateEmployeeDTO struct {
	UserID        string   `json:"user_id"`
	DepartmentID  string   `json:"department_id"`
	Position      string   `json:"position"`
	ContractHours *float64 `json:"contract_hours"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if dto.UserID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.DepartmentID == "" {
		return internal.NewValidationFieldError("department_id", "department_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.ContractHours != nil && *dto.ContractHours < 0 {
		return internal.NewValidationFieldError("contract_hours", "contract_hours cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateEmployeeDTO struct {
	DepartmentID  *string  `json:"department_id"`
	Position      *string  `json:"position"`
	ContractHours *float64 `json:"contract_hours"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.DepartmentID != nil && *dto.DepartmentID == "" {
		return internal.NewValidationFieldError("department_id", "department_id cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.ContractHours != nil && *dto.ContractHours < 0 {
		return internal.NewValidationFieldError("contract_hours", "contract_hours cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}
