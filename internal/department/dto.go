package department

import "github.com/staffgrid/backend/internal"

type CreateDepartmentDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CreateDepartmentDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateDepartmentDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (dto UpdateDepartmentDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
