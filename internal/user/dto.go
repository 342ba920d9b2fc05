package user

import (
	"strings"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
)

type CreateUserDTO struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.FullName == "" {
		return internal.NewValidationFieldError("full_name", "full name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == "" || !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if _, err := auth.ParseRole(dto.Role); err != nil {
		return err
	}
	return nil
}

type UpdateUserDTO struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Email != nil && !strings.Contains(*dto.Email, "@") {
		return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password != nil && len(*dto.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if dto.Role != nil {
		if _, err := auth.ParseRole(*dto.Role); err != nil {
			return err
		}
	}
	return nil
}
